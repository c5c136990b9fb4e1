package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ctgplot/ctgplot/pkg/buildinfo"
)

// Execute runs the ctgplot CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (plot,
// merge-bed, serve) and configures logging based on the --verbose flag.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "ctgplot",
		Short:        "ctgplot draws contig-to-reference alignment maps",
		Long:         `ctgplot lays out pairwise contig-to-reference alignments on a shared coordinate axis and renders them as a two-tier vector drawing: a genome-wide overview plus zoomable per-target detail scenes.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(os.Stderr, level)
			logger.Debugf("ctgplot %s", buildinfo.String())
			cmd.SetContext(withLogger(cmd.Context(), logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newPlotCmd())
	root.AddCommand(newMergeBedCmd())
	root.AddCommand(newServeCmd())

	return root.ExecuteContext(ctx)
}
