package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/brogergvhs/komikd/internal/config"
	"github.com/brogergvhs/komikd/internal/providers"

	"github.com/spf13/cobra"
)

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the config profiles with their source and timezone",
	RunE: func(cmd *cobra.Command, args []string) error {
		profiles, err := config.DefaultStore().List()
		if err != nil {
			return fmt.Errorf("cannot read configs directory: %w", err)
		}
		if len(profiles) == 0 {
			fmt.Println("No configs yet. Run `komikd config init`.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 4, ' ', 0)
		_, _ = fmt.Fprintln(w, "LABEL\tSOURCE\tTIMEZONE\tACTIVE\tPATH")
		for _, p := range profiles {
			active := ""
			if p.Active {
				active = "yes"
			}
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.Label, profileSource(p), p.Timezone, active, p.Path)
		}

		return w.Flush()
	},
}

func profileSource(p config.Profile) string {
	switch {
	case p.Err != nil:
		return "(unreadable)"
	case p.Source == "":
		return "-"
	}

	if _, ok := providers.Get(p.Source); !ok {
		return p.Source + " (unknown)"
	}

	return p.Source
}

func init() {
	configCmd.AddCommand(configListCmd)
}
