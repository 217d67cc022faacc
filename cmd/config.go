package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/brogergvhs/komikd/internal/config"
	"github.com/brogergvhs/komikd/internal/providers"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the merged config, or manage the config profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, used, err := config.LoadMerged(baseOptions())
		if err != nil {
			return err
		}

		fmt.Printf("Loaded config from:\n  %s\n\n", used)
		cfg.Print()

		if _, err := lookupSource(cfg.Source); err != nil {
			fmt.Printf("\nwarning: %v\n", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// lookupSource checks id against the registered sources.
func lookupSource(id string) (providers.Info, error) {
	var known []string
	for _, info := range providers.All() {
		if info.ID == id {
			return info, nil
		}
		known = append(known, info.ID)
	}

	return providers.Info{}, fmt.Errorf("unknown source %q (known: %s)", id, strings.Join(known, ", "))
}

func checkTimezone(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("timezone cannot be empty")
	}
	_, err := time.LoadLocation(name)
	return err
}

// checkBaseURL accepts an empty value (use the source's own) or an absolute http(s) URL.
func checkBaseURL(raw string) error {
	if raw == "" {
		return nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%q is not an http(s) URL", raw)
	}

	return nil
}

// askSiteSettings fills source, timezone and base_url from the global flags,
// prompting for the ones that were not given.
func askSiteSettings(cfg *config.Config) error {
	info, err := askSource()
	if err != nil {
		return err
	}
	cfg.Source = info.ID

	tz := flagTimezone
	if tz == "" {
		p := promptui.Prompt{Label: "Timezone for absolute chapter dates", Default: cfg.Timezone, Validate: checkTimezone}
		if tz, err = p.Run(); err != nil {
			return fmt.Errorf("selection cancelled")
		}
	}
	if err := checkTimezone(tz); err != nil {
		return fmt.Errorf("timezone %q: %w", tz, err)
	}
	cfg.Timezone = tz

	base := flagBaseURL
	if base == "" {
		p := promptui.Prompt{Label: fmt.Sprintf("Base URL (empty for %s)", info.BaseURL), Validate: checkBaseURL}
		if base, err = p.Run(); err != nil {
			return fmt.Errorf("selection cancelled")
		}
	}
	if err := checkBaseURL(base); err != nil {
		return err
	}
	cfg.BaseURL = strings.TrimRight(base, "/")

	return nil
}

func askSource() (providers.Info, error) {
	if flagSource != "" {
		return lookupSource(flagSource)
	}

	all := providers.All()
	if len(all) == 0 {
		return providers.Info{}, errors.New("no sources registered")
	}

	items := make([]string, len(all))
	for i, info := range all {
		items[i] = fmt.Sprintf("%s  %s (%s)", info.ID, info.Name, info.Lang)
	}

	prompt := promptui.Select{Label: "Source", Items: items}
	idx, _, err := prompt.Run()
	if err != nil {
		return providers.Info{}, fmt.Errorf("selection cancelled")
	}

	return all[idx], nil
}

func confirm(label string) bool {
	p := promptui.Prompt{Label: label, IsConfirm: true}
	_, err := p.Run()
	return err == nil
}
