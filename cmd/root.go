package cmd

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/spf13/cobra"
)

var (
	flagIgnoreConfig bool
	flagDebug        bool
	flagSource       string
	flagBaseURL      string
	flagTimezone     string
	flagCloudflare   bool
	flagRateLimit    float64
)

var rootCmd = &cobra.Command{
	Use:   "komikd",
	Short: "GudangKomik catalog client and CBZ downloader",
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagIgnoreConfig, "ignore-config", false, "ignore config and use only CLI flags")
	rootCmd.PersistentFlags().StringVar(&flagSource, "source", "", "source ID (see `komikd sources`)")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "override the site base URL (mirrors)")
	rootCmd.PersistentFlags().StringVar(&flagTimezone, "timezone", "", "IANA zone absolute chapter dates are read in")
	rootCmd.PersistentFlags().Float64Var(&flagRateLimit, "rate-limit", 0, "requests per second to each host (0 keeps the config value)")
	rootCmd.PersistentFlags().BoolVar(&flagCloudflare, "cloudflare", true, "use the Cloudflare-friendly transport (--cloudflare=false disables it)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
