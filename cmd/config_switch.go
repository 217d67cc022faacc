package cmd

import (
	"fmt"

	"github.com/brogergvhs/komikd/internal/config"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var configSwitchCmd = &cobra.Command{
	Use:   "switch [label]",
	Short: "Switch to a different configuration profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := config.DefaultStore()

		var label string
		if len(args) == 1 {
			label = args[0]
		} else {
			profiles, err := store.List()
			if err != nil {
				return err
			}
			if len(profiles) == 0 {
				return fmt.Errorf("no configs available")
			}

			items := make([]string, len(profiles))
			cursor := 0
			for i, p := range profiles {
				items[i] = fmt.Sprintf("%s  [%s, %s]", p.Label, profileSource(p), p.Timezone)
				if p.Active {
					items[i] += "  (active)"
					cursor = i
				}
			}

			prompt := promptui.Select{Label: "Select config", Items: items, CursorPos: cursor}
			idx, _, err := prompt.Run()
			if err != nil {
				return fmt.Errorf("selection cancelled")
			}
			label = profiles[idx].Label
		}

		if err := store.Switch(label); err != nil {
			return err
		}

		cfg, err := store.Load(label)
		if err != nil {
			fmt.Printf("Switched to %s (warning: %v)\n", label, err)
			return nil
		}
		fmt.Printf("Switched to %s (source: %s)\n", label, cfg.Source)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSwitchCmd)
}
