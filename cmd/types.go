package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-activity/internal/domain"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "Lists the common GitHub event types",
	Long: `Lists the common GitHub event types accepted by --type.
Filtering is an exact, case-sensitive match and is not limited to this list.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeEventTypes(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(typesCmd)
}

func writeEventTypes(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "TYPE\tDESCRIPTION")
	for _, eventType := range domain.SortedEventTypes() {
		fmt.Fprintf(w, "%s\t%s\n", eventType, domain.KnownEventTypes[eventType])
	}
	return w.Flush()
}
