package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/brogergvhs/komikd/internal/providers"

	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the available sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 4, ' ', 0)
		_, _ = fmt.Fprintln(w, "ID\tNAME\tLANG\tBASE URL")

		for _, s := range providers.All() {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Lang, s.BaseURL)
		}

		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
