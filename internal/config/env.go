package config

import (
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every config key, e.g. KOMIKD_OUTPUT.
const EnvPrefix = "KOMIKD"

// applyEnv overrides c with the KOMIKD_* environment variables that are set.
func applyEnv(c *Config) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	strs := map[string]*string{
		"source":      &c.Source,
		"base_url":    &c.BaseURL,
		"timezone":    &c.Timezone,
		"output":      &c.Output,
		"default_url": &c.DefaultURL,
		"cookie":      &c.Cookie,
		"cookie_file": &c.CookieFile,
		"user_agent":  &c.UserAgent,
	}
	for k, p := range strs {
		if v.IsSet(k) {
			*p = v.GetString(k)
		}
	}

	ints := map[string]*int{
		"image_workers":   &c.ImageWorkers,
		"chapter_workers": &c.ChapterWorkers,
	}
	for k, p := range ints {
		if v.IsSet(k) {
			*p = v.GetInt(k)
		}
	}

	if v.IsSet("rate_limit") {
		c.RateLimit = v.GetFloat64("rate_limit")
	}

	bools := map[string]*bool{
		"debug":       &c.Debug,
		"cloudflare":  &c.Cloudflare,
		"skip_broken": &c.SkipBroken,
	}
	for k, p := range bools {
		if v.IsSet(k) {
			*p = v.GetBool(k)
		}
	}
}
