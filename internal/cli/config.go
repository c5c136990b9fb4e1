package cli

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/ctgplot/ctgplot/pkg/errors"
)

// plotConfig holds optional defaults for the plot command, loaded from a
// TOML file. Flags given explicitly on the command line always win.
type plotConfig struct {
	PanelWidth       *float64 `toml:"panel_width"`
	TotalTargetBases *float64 `toml:"total_target_bases"`
	Ctg              *string  `toml:"ctg"`
	CytobandJSON     *string  `toml:"cytoband_json"`
	RefAnnotationBED *string  `toml:"ref_annotation_bed"`
	SVG              *bool    `toml:"svg"`
}

// loadPlotConfig reads and decodes a TOML defaults file.
func loadPlotConfig(path string) (*plotConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "failed to open config file %s", path)
	}

	var cfg plotConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to parse config file %s", path)
	}
	return &cfg, nil
}

// apply copies config values into opts for every flag the user did not set
// explicitly.
func (c *plotConfig) apply(flags *pflag.FlagSet, opts *plotOpts) {
	if c.PanelWidth != nil && !flags.Changed("panel-width") {
		opts.panelWidth = *c.PanelWidth
	}
	if c.TotalTargetBases != nil && !flags.Changed("total-target-bases") {
		opts.totalTargetBases = *c.TotalTargetBases
	}
	if c.Ctg != nil && !flags.Changed("ctg") {
		opts.target = *c.Ctg
	}
	if c.CytobandJSON != nil && !flags.Changed("cytoband-json") {
		opts.cytobandJSON = *c.CytobandJSON
	}
	if c.RefAnnotationBED != nil && !flags.Changed("ref-annotation-bed") {
		opts.annotationBED = *c.RefAnnotationBED
	}
	if c.SVG != nil && !flags.Changed("svg") {
		opts.svg = *c.SVG
	}
}
