package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/brogergvhs/komikd/internal/config"
	"github.com/brogergvhs/komikd/internal/providers"
	"github.com/brogergvhs/komikd/internal/ui"
	"github.com/brogergvhs/komikd/internal/util"
)

type session struct {
	cfg    *config.Config
	used   string
	log    *ui.Logger
	client *http.Client
	src    providers.Source
}

func baseOptions() config.Options {
	return config.Options{
		IgnoreConfig: flagIgnoreConfig,
		Debug:        flagDebug,
		Source:       flagSource,
		BaseURL:      flagBaseURL,
		Timezone:     flagTimezone,
		RateLimit:    flagRateLimit,
		Cloudflare:   optionalBool(rootCmd.PersistentFlags().Changed("cloudflare"), flagCloudflare),
	}
}

// optionalBool returns nil for a flag left at its default so the config
// value stands.
func optionalBool(changed, v bool) *bool {
	if !changed {
		return nil
	}
	return &v
}

// openSession loads the merged config and builds the configured source.
func openSession(opts config.Options) (*session, error) {
	cfg, used, err := config.LoadMerged(opts)
	if err != nil {
		return nil, err
	}

	logSvc := ui.NewLogger(cfg.Debug)

	client, err := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:     30 * time.Second,
		UserAgent:   util.PickUserAgent(cfg.UserAgent),
		Cookie:      cfg.Cookie,
		CookieFile:  cfg.CookieFile,
		Cloudflare:  cfg.Cloudflare,
		RateLimit:   cfg.RateLimit,
		DebugLogger: logSvc,
	})
	if err != nil {
		return nil, err
	}

	src, err := providers.New(cfg.Source, client, providers.Options{
		BaseURL:  cfg.BaseURL,
		Timezone: cfg.Timezone,
		Logger:   logSvc,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (run `komikd sources` for the list)", err)
	}

	return &session{cfg: cfg, used: used, log: logSvc, client: client, src: src}, nil
}

func formatDate(ms int64) string {
	if ms == 0 {
		return "-"
	}

	return time.UnixMilli(ms).Format("2006-01-02 15:04")
}

func formatNumber(c providers.Chapter) string {
	if !c.HasNumber() {
		return "-"
	}

	return fmt.Sprintf("%g", c.Number)
}
