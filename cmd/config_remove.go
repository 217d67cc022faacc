package cmd

import (
	"fmt"

	"github.com/brogergvhs/komikd/internal/config"

	"github.com/spf13/cobra"
)

var flagForceRemove bool

var configRemoveCmd = &cobra.Command{
	Use:   "remove <label>",
	Short: "Remove a config profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := config.DefaultStore()
		label := args[0]

		if active, _ := store.Active(); label == active && !flagForceRemove {
			if !confirm(fmt.Sprintf("Config %q is currently active. Remove it anyway", label)) {
				fmt.Println("Aborted.")
				return nil
			}
		}

		switched, err := store.Remove(label)
		if err != nil {
			return err
		}

		fmt.Printf("Removed configuration %q\n", label)
		if switched {
			fmt.Println("Fallback switched to:", config.DefaultLabel)
		}
		return nil
	},
}

func init() {
	configRemoveCmd.Flags().BoolVar(&flagForceRemove, "force", false, "remove the active profile without asking")
	configCmd.AddCommand(configRemoveCmd)
}
