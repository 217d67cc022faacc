package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/brogergvhs/komikd/internal/config"

	"github.com/spf13/cobra"
)

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the Default profile (source, timezone and base URL are asked unless given as flags)",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := config.DefaultStore()

		if path, err := store.Lookup(config.DefaultLabel); err == nil {
			fmt.Printf("Configuration already exists at:\n  %s\n", path)
			fmt.Println("Use `komikd config reset` to recreate it.")
			return nil
		}

		cfg := config.DefaultConfig()
		if err := askSiteSettings(cfg); err != nil {
			return err
		}

		fmt.Println("\nDefault configuration:")
		cfg.Print()
		fmt.Println()

		if !confirm(fmt.Sprintf("Create Default config at %s", store.Path(config.DefaultLabel))) {
			fmt.Println("Aborted.")
			return nil
		}

		path, err := store.InitDefault(cfg)
		if err != nil && !errors.Is(err, os.ErrExist) {
			return fmt.Errorf("failed to write config file: %w", err)
		}

		fmt.Println("Config created at:", path)
		fmt.Printf("This config is now active (label: %s, source: %s).\n", config.DefaultLabel, cfg.Source)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}
