package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/brogergvhs/komikd/internal/config"

	"github.com/spf13/cobra"
)

var configEditCmd = &cobra.Command{
	Use:   "edit [label]",
	Short: "Open the active or the given profile in $EDITOR and check it afterwards",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := config.DefaultStore()

		var label string
		if len(args) == 1 {
			label = args[0]
		} else {
			var err error
			if label, err = store.Active(); err != nil {
				return fmt.Errorf("failed to get current config label: %w", err)
			}
		}

		path, err := store.Lookup(label)
		if err != nil {
			return err
		}

		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "nvim"
		}

		run := exec.Command(editor, path)
		run.Stdin = os.Stdin
		run.Stdout = os.Stdout
		run.Stderr = os.Stderr
		if err := run.Run(); err != nil {
			return fmt.Errorf("failed to open editor: %w", err)
		}

		cfg, err := store.Load(label)
		if err != nil {
			return fmt.Errorf("%s no longer parses: %w", path, err)
		}
		for _, problem := range profileProblems(cfg) {
			fmt.Println("warning:", problem)
		}
		return nil
	},
}

// profileProblems lists the site settings of cfg that would fail at runtime.
func profileProblems(cfg *config.Config) []string {
	var out []string
	if cfg.Source != "" {
		if _, err := lookupSource(cfg.Source); err != nil {
			out = append(out, err.Error())
		}
	}
	if cfg.Timezone != "" {
		if err := checkTimezone(cfg.Timezone); err != nil {
			out = append(out, fmt.Sprintf("timezone %q: %v", cfg.Timezone, err))
		}
	}
	if err := checkBaseURL(cfg.BaseURL); err != nil {
		out = append(out, err.Error())
	}

	return out
}

func init() {
	configCmd.AddCommand(configEditCmd)
}
