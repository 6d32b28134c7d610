package fiber

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"spike-metrics-service/internal/spikes/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type StoreSpikesUseCase interface {
	Execute(ctx context.Context, in usecase.StoreSpikesInput) (usecase.StoreSpikesResult, error)
}

type SpikeHandler struct {
	storeUC StoreSpikesUseCase
	logger  *slog.Logger
}

func NewSpikeHandler(storeUC StoreSpikesUseCase, logger *slog.Logger) *SpikeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SpikeHandler{storeUC: storeUC, logger: logger}
}

// StoreSpikes godoc
// @Summary Store a spike batch
// @Description Appends spikes to one recording of a dataset
// @Tags Spikes
// @Accept json
// @Produce json
// @Param dataset path string true "Dataset id"
// @Param request body StoreSpikesRequest true "Spike batch"
// @Success 201 {object} StoreSpikesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /datasets/{dataset}/spikes [post]
func (h *SpikeHandler) StoreSpikes(c *fiber.Ctx) error {
	var req StoreSpikesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid_json",
		})
	}

	input := usecase.StoreSpikesInput{
		DatasetID: c.Params("dataset"),
		Recording: req.Recording,
		Spikes:    make([]usecase.SpikeInput, len(req.Spikes)),
	}
	for i, s := range req.Spikes {
		input.Spikes[i] = usecase.SpikeInput{
			Timestamp: s.Timestamp,
			NeuronID:  s.NeuronID,
			Condition: s.Condition,
		}
	}

	res, err := h.storeUC.Execute(c.UserContext(), input)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidSpike):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_spike",
				Message: err.Error(),
			})
		default:
			h.logger.Error("store spikes failed", "error", err, "dataset", input.DatasetID)
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error: "internal_server_error",
			})
		}
	}

	h.logger.Info("spike batch stored",
		"dataset", input.DatasetID,
		"batch_id", res.BatchID,
		"stored", res.Stored,
	)

	return c.Status(http.StatusCreated).JSON(StoreSpikesResponse{
		BatchID: res.BatchID,
		Stored:  res.Stored,
	})
}
