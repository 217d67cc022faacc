package cmd

import (
	"fmt"

	"github.com/brogergvhs/komikd/internal/config"

	"github.com/spf13/cobra"
)

var configRenameCmd = &cobra.Command{
	Use:   "rename <old_label> <new_label>",
	Short: "Rename a config profile; an active profile stays active",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] == config.DefaultLabel {
			return fmt.Errorf("the %s profile keeps its name", config.DefaultLabel)
		}

		if err := config.DefaultStore().Rename(args[0], args[1]); err != nil {
			return err
		}

		fmt.Printf("Renamed config %q to %q\n", args[0], args[1])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configRenameCmd)
}
