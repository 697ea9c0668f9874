package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tabclean/pkg/cleaner"
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "List the cleaning stages in execution order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tSTAGE\tFLAG\tDESCRIPTION")
		for i, id := range cleaner.Sequence() {
			fmt.Fprintf(tw, "%d\t%s\t--%s\t%s\n", i+1, id, stageFlag(id), id.Description())
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(stagesCmd)
}
