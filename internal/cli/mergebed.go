package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ctgplot/ctgplot/pkg/bedmerge"
)

// newMergeBedCmd creates the merge-bed command. It merges BED intervals
// from multiple labeled input files into one annotated output, computing
// the merged regions per sequence.
func newMergeBedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge-bed [input-list] [output.bed]",
		Short: "Merge BED intervals across labeled input sets",
		Long: `Merge BED intervals from multiple labeled input files and compute the
merged regions. Useful for identifying regions unique to one specific
labeled set (e.g. one haplotype).

The input list contains one "label<TAB>path" line per BED file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			if err := bedmerge.MergeFiles(args[0], args[1]); err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Wrote %s", args[1]))
			return nil
		},
	}
}
