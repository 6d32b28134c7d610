package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"spike-metrics-service/internal/summary/core/domain"
)

var ErrInvalidCatalog = errors.New("invalid dataset catalog")

// Catalog lists the recordings the service can serve and the dashboard
// defaults. It is loaded from an HCL file:
//
//	data_dir  = "./csv"
//	delimiter = ";"
//
//	defaults {
//	  bin_width      = 100
//	  bin_widths     = [50, 75, 100, 150, 200, 300]
//	  domain_ceiling = 3000
//	}
//
//	dataset "df0" {
//	  baseline  = "spikes_0.csv"
//	  alternate = "flo_0.csv"
//	}
//
//	discover {
//	  baseline  = "spikes_*.csv"
//	  alternate = "flo_*.csv"
//	  id_prefix = "df"
//	}
type Catalog struct {
	DataDir   string
	Delimiter rune
	Defaults  Defaults
	Datasets  []DatasetFiles
}

type Defaults struct {
	BinWidth       int64
	BinWidths      []int64
	DomainCeiling  int64
	BoundaryPolicy domain.BoundaryPolicy
}

// DatasetFiles holds resolved paths. Alternate is empty when the dataset has
// no attack recording.
type DatasetFiles struct {
	ID        string
	Baseline  string
	Alternate string
}

type hclCatalog struct {
	DataDir   *string        `hcl:"data_dir,optional"`
	Delimiter *string        `hcl:"delimiter,optional"`
	Defaults  *hclDefaults   `hcl:"defaults,block"`
	Datasets  []hclDataset   `hcl:"dataset,block"`
	Discover  []hclDiscovery `hcl:"discover,block"`
}

type hclDefaults struct {
	BinWidth       *int64  `hcl:"bin_width,optional"`
	BinWidths      []int64 `hcl:"bin_widths,optional"`
	DomainCeiling  *int64  `hcl:"domain_ceiling,optional"`
	BoundaryPolicy *string `hcl:"boundary_policy,optional"`
}

type hclDataset struct {
	ID        string  `hcl:"id,label"`
	Baseline  string  `hcl:"baseline"`
	Alternate *string `hcl:"alternate,optional"`
}

type hclDiscovery struct {
	Baseline  string  `hcl:"baseline"`
	Alternate *string `hcl:"alternate,optional"`
	IDPrefix  *string `hcl:"id_prefix,optional"`
}

func DefaultDefaults() Defaults {
	return Defaults{
		BinWidth:       100,
		BinWidths:      []int64{50, 75, 100, 150, 200, 300},
		DomainCeiling:  3000,
		BoundaryPolicy: domain.PolicyReject,
	}
}

// LoadCatalog reads and decodes the catalog at path. Relative data_dir values
// are resolved against the catalog's own directory.
func LoadCatalog(path string) (*Catalog, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(src, path, filepath.Dir(path))
}

func ParseCatalog(src []byte, filename, baseDir string) (*Catalog, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCatalog, diags.Error())
	}

	var raw hclCatalog
	diags = gohcl.DecodeBody(file.Body, catalogEvalContext(), &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCatalog, diags.Error())
	}

	cat := &Catalog{
		DataDir:   baseDir,
		Delimiter: ';',
		Defaults:  DefaultDefaults(),
	}

	if raw.DataDir != nil {
		cat.DataDir = *raw.DataDir
		if !filepath.IsAbs(cat.DataDir) {
			cat.DataDir = filepath.Join(baseDir, cat.DataDir)
		}
	}

	if raw.Delimiter != nil {
		if utf8.RuneCountInString(*raw.Delimiter) != 1 {
			return nil, fmt.Errorf("%w: delimiter must be a single character, got %q", ErrInvalidCatalog, *raw.Delimiter)
		}
		cat.Delimiter, _ = utf8.DecodeRuneInString(*raw.Delimiter)
	}

	if err := applyDefaults(&cat.Defaults, raw.Defaults); err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	add := func(ds DatasetFiles) error {
		if strings.TrimSpace(ds.ID) == "" || strings.EqualFold(ds.ID, "all") {
			return fmt.Errorf("%w: invalid dataset id %q", ErrInvalidCatalog, ds.ID)
		}
		if seen[ds.ID] {
			return fmt.Errorf("%w: duplicate dataset %q", ErrInvalidCatalog, ds.ID)
		}
		seen[ds.ID] = true
		cat.Datasets = append(cat.Datasets, ds)
		return nil
	}

	for _, d := range raw.Datasets {
		ds := DatasetFiles{ID: d.ID, Baseline: cat.resolve(d.Baseline)}
		if d.Alternate != nil {
			ds.Alternate = cat.resolve(*d.Alternate)
		}
		if err := add(ds); err != nil {
			return nil, err
		}
	}

	for _, d := range raw.Discover {
		found, err := cat.discover(d)
		if err != nil {
			return nil, err
		}
		for _, ds := range found {
			// explicit dataset blocks win over discovered files
			if seen[ds.ID] {
				continue
			}
			if err := add(ds); err != nil {
				return nil, err
			}
		}
	}

	slices.SortFunc(cat.Datasets, func(a, b DatasetFiles) int {
		return strings.Compare(a.ID, b.ID)
	})

	return cat, nil
}

// Dataset looks up a dataset by id.
func (c *Catalog) Dataset(id string) (DatasetFiles, bool) {
	for _, ds := range c.Datasets {
		if ds.ID == id {
			return ds, true
		}
	}
	return DatasetFiles{}, false
}

func (c *Catalog) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.DataDir, p)
}

func applyDefaults(dst *Defaults, raw *hclDefaults) error {
	if raw == nil {
		return nil
	}

	if raw.BinWidth != nil {
		dst.BinWidth = *raw.BinWidth
	}
	if len(raw.BinWidths) > 0 {
		dst.BinWidths = raw.BinWidths
	}
	if raw.DomainCeiling != nil {
		dst.DomainCeiling = *raw.DomainCeiling
	}
	if raw.BoundaryPolicy != nil {
		p, err := domain.ParseBoundaryPolicy(*raw.BoundaryPolicy)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}
		dst.BoundaryPolicy = p
	}

	if dst.BinWidth <= 0 || dst.DomainCeiling <= 0 {
		return fmt.Errorf("%w: bin_width and domain_ceiling must be positive", ErrInvalidCatalog)
	}
	for _, w := range dst.BinWidths {
		if w <= 0 {
			return fmt.Errorf("%w: bin_widths must be positive, got %d", ErrInvalidCatalog, w)
		}
	}
	return nil
}

// discover expands a baseline glob. The text matched by the single '*' in the
// file name becomes the dataset id suffix and is substituted into the
// alternate pattern.
func (c *Catalog) discover(d hclDiscovery) ([]DatasetFiles, error) {
	pattern := c.resolve(d.Baseline)
	base := filepath.Base(pattern)
	if strings.Count(base, "*") != 1 {
		return nil, fmt.Errorf("%w: discover pattern %q needs exactly one '*' in its file name", ErrInvalidCatalog, d.Baseline)
	}
	prefix, suffix, _ := strings.Cut(base, "*")

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	idPrefix := ""
	if d.IDPrefix != nil {
		idPrefix = *d.IDPrefix
	}

	var out []DatasetFiles
	for _, m := range matches {
		name := filepath.Base(m)
		key := strings.TrimSuffix(strings.TrimPrefix(name, prefix), suffix)
		if key == "" {
			continue
		}

		ds := DatasetFiles{ID: idPrefix + key, Baseline: m}
		if d.Alternate != nil {
			alt := c.resolve(strings.Replace(*d.Alternate, "*", key, 1))
			if _, err := os.Stat(alt); err == nil {
				ds.Alternate = alt
			}
		}
		out = append(out, ds)
	}

	return out, nil
}

func catalogEvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{},
		Functions: map[string]function.Function{
			"env": function.New(&function.Spec{
				Params: []function.Parameter{
					{
						Name: "name",
						Type: cty.String,
					},
				},
				Type: function.StaticReturnType(cty.String),
				Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
					return cty.StringVal(os.Getenv(args[0].AsString())), nil
				},
			}),
		},
	}
}
