package cmd

import (
	"fmt"

	"github.com/brogergvhs/komikd/internal/config"

	"github.com/spf13/cobra"
)

var flagResetAll bool

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the active profile to defaults, keeping its source, base URL and timezone",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := config.DefaultStore()

		label, err := store.Active()
		if err != nil {
			return err
		}

		fresh := config.DefaultConfig()
		if !flagResetAll {
			if old, err := store.Load(label); err == nil {
				keepSiteSettings(fresh, old)
			}
		}

		if err := store.Save(label, fresh); err != nil {
			return err
		}

		fmt.Printf("Reset config %s (source: %s)\n", store.Path(label), fresh.Source)
		return nil
	},
}

// keepSiteSettings copies the fields that tie a profile to a site.
func keepSiteSettings(dst, src *config.Config) {
	if src.Source != "" {
		dst.Source = src.Source
	}
	if src.Timezone != "" {
		dst.Timezone = src.Timezone
	}
	dst.BaseURL = src.BaseURL
}

func init() {
	configResetCmd.Flags().BoolVar(&flagResetAll, "all", false, "reset the site settings too")
	configCmd.AddCommand(configResetCmd)
}
