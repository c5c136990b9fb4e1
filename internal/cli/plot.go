package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ctgplot/ctgplot/pkg/ctgmap"
	"github.com/ctgplot/ctgplot/pkg/errors"
	"github.com/ctgplot/ctgplot/pkg/render/ribbon"
	"github.com/ctgplot/ctgplot/pkg/render/ribbon/sink"
)

// defaultPanelWidth is the target panel width in pixels.
const defaultPanelWidth = 1400.0

// plotOpts holds the command-line flags for the plot command.
type plotOpts struct {
	panelWidth       float64 // target panel width in pixels
	totalTargetBases float64 // fixed scale denominator (0 = use the layout extent)
	target           string  // single-target selector; "summary" = overview only
	cytobandJSON     string  // optional cytoband JSON path
	annotationBED    string  // optional highlight BED path
	svg              bool    // emit bare SVG instead of interactive HTML
	configPath       string  // optional TOML defaults file
}

// newPlotCmd creates the plot command: the alignment layout and projection
// engine. It reads a ctgmap JSON document and writes either a standalone
// SVG or an interactive HTML page, named from the output prefix.
func newPlotCmd() *cobra.Command {
	opts := plotOpts{panelWidth: defaultPanelWidth}

	cmd := &cobra.Command{
		Use:   "plot [ctgmap.json] [output-prefix]",
		Short: "Render an alignment map from a ctgmap JSON file",
		Long: `Render contig-to-reference alignments as a two-tier vector drawing.

Every query contig is assigned to the reference target covering most of its
aligned bases, laid out alongside that target on a shared axis, and drawn as
colored ribbons connecting target and contig intervals. The output is a
genome-wide overview plus one zoomable detail scene per target.

Examples:
  ctgplot plot asm.ctgmap.json asm                     # writes asm.html
  ctgplot plot asm.ctgmap.json asm --svg               # writes asm.svg
  ctgplot plot asm.ctgmap.json asm --ctg chr3          # chr3 detail only
  ctgplot plot asm.ctgmap.json asm --ctg summary       # overview only`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.configPath != "" {
				cfg, err := loadPlotConfig(opts.configPath)
				if err != nil {
					return err
				}
				cfg.apply(cmd.Flags(), &opts)
			}
			return runPlot(cmd.Context(), args[0], args[1], &opts)
		},
	}

	cmd.Flags().Float64Var(&opts.panelWidth, "panel-width", opts.panelWidth, "target panel width in pixels")
	cmd.Flags().Float64Var(&opts.totalTargetBases, "total-target-bases", 0, "fixed total bases for the plot scale, to keep multiple plots on the same scale")
	cmd.Flags().StringVar(&opts.target, "ctg", "", "only plot the named reference target ('summary' plots the overview only)")
	cmd.Flags().StringVar(&opts.cytobandJSON, "cytoband-json", "", "draw the reference track with cytobands from this JSON file")
	cmd.Flags().StringVar(&opts.annotationBED, "ref-annotation-bed", "", "highlight regions from this BED file on the reference track")
	cmd.Flags().BoolVar(&opts.svg, "svg", false, "generate SVG instead of HTML")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML file with default plot settings")

	return cmd
}

// runPlot executes the full pipeline: load, assign, lay out, project, and
// serialize. Any input or output error aborts the run with no partial
// output.
func runPlot(ctx context.Context, input, prefix string, opts *plotOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	set, err := ctgmap.LoadRecordSet(input)
	if err != nil {
		return err
	}
	logger.Infof("Loaded %d alignment records (%d targets, %d queries)",
		len(set.Records), len(set.TargetLength), len(set.QueryLength))

	asg, err := ribbon.Assign(set)
	if err != nil {
		return err
	}
	logger.Debugf("Assigned %d query contigs to primary targets", len(asg.PrimaryTarget))

	sceneOpts := ribbon.Options{
		PanelWidth:       opts.panelWidth,
		TotalTargetBases: opts.totalTargetBases,
		Target:           opts.target,
	}
	if opts.cytobandJSON != "" {
		cyto, err := ctgmap.LoadCytobands(opts.cytobandJSON)
		if err != nil {
			return err
		}
		sceneOpts.Cytobands = cyto.Bands
	}
	if opts.annotationBED != "" {
		highlights, err := ctgmap.LoadHighlights(opts.annotationBED)
		if err != nil {
			return err
		}
		sceneOpts.Highlights = highlights
	}

	scene, err := ribbon.BuildScene(set, asg, sceneOpts)
	if err != nil {
		return err
	}

	var data []byte
	var outPath string
	if opts.svg {
		data = sink.RenderSVG(scene)
		outPath = prefix + ".svg"
	} else {
		data = sink.RenderHTML(scene)
		outPath = prefix + ".html"
	}

	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, err, "failed to write output file %s", outPath)
	}

	prog.done(fmt.Sprintf("Wrote %s", outPath))
	return nil
}
