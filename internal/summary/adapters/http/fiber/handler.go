package fiber

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"spike-metrics-service/internal/summary/core/domain"
	"spike-metrics-service/internal/summary/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type SummaryUseCase interface {
	Execute(ctx context.Context, in usecase.GetSummaryInput) (*domain.Summary, error)
	ListDatasets(ctx context.Context) ([]string, error)
	Events(ctx context.Context, in usecase.GetEventsInput) (*domain.EventPoints, error)
}

// Options are the dashboard choices advertised by GET /datasets.
type Options struct {
	BinWidths       []int64
	DefaultBinWidth int64
	DefaultCeiling  int64
	DefaultPolicy   domain.BoundaryPolicy
}

type SummaryHandler struct {
	uc     SummaryUseCase
	opts   Options
	logger *slog.Logger
}

func NewSummaryHandler(uc SummaryUseCase, opts Options, logger *slog.Logger) *SummaryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummaryHandler{uc: uc, opts: opts, logger: logger}
}

// ListDatasets godoc
// @Summary List datasets
// @Description Returns the dataset ids and the dashboard defaults
// @Tags Summary
// @Produce json
// @Success 200 {object} DatasetsResponse
// @Failure 500 {object} ErrorResponse
// @Router /datasets [get]
func (h *SummaryHandler) ListDatasets(c *fiber.Ctx) error {
	ids, err := h.uc.ListDatasets(c.UserContext())
	if err != nil {
		h.logger.Error("list datasets failed", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}

	binWidths := h.opts.BinWidths
	if binWidths == nil {
		binWidths = []int64{}
	}

	return c.Status(http.StatusOK).JSON(DatasetsResponse{
		Datasets:        ids,
		BinWidths:       binWidths,
		DefaultBinWidth: h.opts.DefaultBinWidth,
		DefaultCeiling:  h.opts.DefaultCeiling,
		DefaultPolicy:   string(h.opts.DefaultPolicy),
		Modes:           []string{string(domain.ModeSingle), string(domain.ModeDual)},
	})
}

// GetSummary godoc
// @Summary Spike counts per interval
// @Description Bins spike timestamps into fixed-width intervals and counts spikes per (condition, interval, dataset)
// @Tags Summary
// @Produce json
// @Param bin_width query int true "Bin width in ms"
// @Param ceiling query int false "Domain ceiling in ms"
// @Param dataset query string false "Dataset id or all"
// @Param mode query string false "Mode: single | dual"
// @Param policy query string false "Boundary policy: reject | clamp | strict"
// @Success 200 {object} SummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /summary [get]
func (h *SummaryHandler) GetSummary(c *fiber.Ctx) error {
	binWidthStr := c.Query("bin_width", "")
	if binWidthStr == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_parameter",
			Message: "bin_width is required",
		})
	}

	binWidth, err := strconv.ParseInt(binWidthStr, 10, 64)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_parameter",
			Message: "invalid 'bin_width' parameter",
		})
	}

	var ceiling int64
	if s := c.Query("ceiling", ""); s != "" {
		ceiling, err = strconv.ParseInt(s, 10, 64)
		if err != nil || ceiling <= 0 {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_parameter",
				Message: "invalid 'ceiling' parameter",
			})
		}
	}

	in := usecase.GetSummaryInput{
		BinWidth: binWidth,
		Ceiling:  ceiling,
		Dataset:  c.Query("dataset", ""),
		Mode:     c.Query("mode", ""),
		Policy:   c.Query("policy", ""),
	}

	res, err := h.uc.Execute(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidParameter):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_parameter",
				Message: err.Error(),
			})
		case errors.Is(err, domain.ErrSchemaMismatch):
			return c.Status(http.StatusUnprocessableEntity).JSON(ErrorResponse{
				Error:   "schema_mismatch",
				Message: err.Error(),
			})
		case errors.Is(err, domain.ErrOutOfDomainEvent):
			return c.Status(http.StatusUnprocessableEntity).JSON(ErrorResponse{
				Error:   "out_of_domain_event",
				Message: err.Error(),
			})
		default:
			h.logger.Error("summary failed", "error", err, "bin_width", binWidth, "dataset", in.Dataset, "mode", in.Mode)
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error: "internal_server_error",
			})
		}
	}

	if n := len(res.OutOfDomain); n > 0 {
		h.logger.Warn("events outside the binning domain were dropped",
			"count", n,
			"last_edge", res.LastEdge,
		)
	}

	return c.Status(http.StatusOK).JSON(toSummaryResponse(res))
}

// GetEvents godoc
// @Summary Raw spikes of one recording
// @Description Returns every (timestamp, neuron_id) pair of a recording with the raster axis bounds
// @Tags Summary
// @Produce json
// @Param dataset query string true "Dataset id"
// @Param recording query string false "Recording: baseline | alternate"
// @Success 200 {object} EventsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /events [get]
func (h *SummaryHandler) GetEvents(c *fiber.Ctx) error {
	in := usecase.GetEventsInput{
		Dataset:   c.Query("dataset", ""),
		Recording: c.Query("recording", ""),
	}
	if in.Dataset == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_parameter",
			Message: "dataset is required",
		})
	}

	res, err := h.uc.Events(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidParameter):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_parameter",
				Message: err.Error(),
			})
		case errors.Is(err, domain.ErrSchemaMismatch):
			return c.Status(http.StatusUnprocessableEntity).JSON(ErrorResponse{
				Error:   "schema_mismatch",
				Message: err.Error(),
			})
		default:
			h.logger.Error("events failed", "error", err, "dataset", in.Dataset, "recording", in.Recording)
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error: "internal_server_error",
			})
		}
	}

	return c.Status(http.StatusOK).JSON(toEventsResponse(res))
}
