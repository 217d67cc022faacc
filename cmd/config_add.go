package cmd

import (
	"fmt"
	"strings"

	"github.com/brogergvhs/komikd/internal/config"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var flagAddFrom string

var configAddCmd = &cobra.Command{
	Use:   "add [label]",
	Short: "Create a profile for a source, or copy one in with --from",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := config.DefaultStore()

		var label string
		if len(args) == 1 {
			label = args[0]
		} else {
			p := promptui.Prompt{Label: "Label for the new config"}
			var err error
			if label, err = p.Run(); err != nil {
				return fmt.Errorf("selection cancelled")
			}
		}
		label = strings.TrimSpace(label)

		if flagAddFrom != "" {
			if err := store.Import(label, flagAddFrom); err != nil {
				return err
			}
			cfg, err := store.Load(label)
			if err != nil {
				return err
			}
			if _, err := lookupSource(cfg.Source); cfg.Source != "" && err != nil {
				fmt.Printf("warning: %v\n", err)
			}
			fmt.Printf("Created config %q from %s\n", label, flagAddFrom)
			return nil
		}

		cfg := config.DefaultConfig()
		if err := askSiteSettings(cfg); err != nil {
			return err
		}

		path, err := store.Create(label, cfg)
		if err != nil {
			return err
		}

		fmt.Printf("Created config %q for %s: %s\n", label, cfg.Source, path)
		fmt.Printf("Activate it with `komikd config switch %s`.\n", label)
		return nil
	},
}

func init() {
	configAddCmd.Flags().StringVar(&flagAddFrom, "from", "", "copy an existing YAML file instead of asking")
	configCmd.AddCommand(configAddCmd)
}
