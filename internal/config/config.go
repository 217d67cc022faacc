package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Source         string `yaml:"source"`
	BaseURL        string `yaml:"base_url"`
	Timezone       string `yaml:"timezone"`
	Output         string `yaml:"output"`
	ImageWorkers   int    `yaml:"image_workers"`
	ChapterWorkers int    `yaml:"chapter_workers"`
	KeepFolders    bool   `yaml:"keep_folders"`
	Debug          bool   `yaml:"debug"`

	DefaultURL   string `yaml:"default_url"`
	DefaultRange string `yaml:"default_range"`
	DefaultList  string `yaml:"default_list"`

	Cloudflare bool   `yaml:"cloudflare"`
	Cookie     string `yaml:"cookie"`
	CookieFile string `yaml:"cookie_file"`
	UserAgent  string `yaml:"user_agent"`

	// RateLimit is requests per second to each host, 0 for no limit.
	RateLimit float64 `yaml:"rate_limit"`

	SkipBroken bool `yaml:"skip_broken"`
}

// Options carries CLI flag values; zero values leave the config untouched.
type Options struct {
	Store          *Store // nil means DefaultStore()
	IgnoreConfig   bool
	Debug          bool
	Source         string
	BaseURL        string
	Timezone       string
	Output         string
	ImageWorkers   int
	ChapterWorkers int
	KeepFolders    bool
	DefaultURL     string
	DefaultRange   string
	DefaultList    string
	Cloudflare     *bool // nil when the flag was not given
	Cookie         string
	CookieFile     string
	UserAgent      string
	RateLimit      float64
	SkipBroken     bool
}

const DefaultSource = "gudangkomik"

func DefaultConfig() *Config {
	return &Config{
		Source:         DefaultSource,
		BaseURL:        "",
		Timezone:       "Asia/Jakarta",
		Output:         ".",
		ImageWorkers:   5,
		ChapterWorkers: 2,
		KeepFolders:    false,
		Debug:          false,
		DefaultURL:     "",
		DefaultRange:   "",
		DefaultList:    "",
		Cloudflare:     true,
		Cookie:         "",
		CookieFile:     "",
		UserAgent:      "",
		RateLimit:      4,
		SkipBroken:     false,
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	return &c, nil
}

// LoadMerged layers defaults, the active profile, KOMIKD_* variables and
// opts, later layers winning. The returned string describes where the
// profile came from.
func LoadMerged(opts Options) (*Config, string, error) {
	cfg, used, err := loadBase(opts)
	if err != nil {
		return nil, "", err
	}

	applyEnv(cfg)
	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, used, nil
}

func loadBase(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		return DefaultConfig(), "(ignored config)", nil
	}

	store := opts.Store
	if store == nil {
		store = DefaultStore()
	}

	activePath, err := store.ActivePath()
	if errors.Is(err, ErrNoConfig) {
		return DefaultConfig(), "(default config in memory)\nRun `komikd config init` to create an actual config\n", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	return cfg, activePath, nil
}

func mergeConfig(c *Config, o Options) {
	if o.Source != "" {
		c.Source = o.Source
	}
	if o.BaseURL != "" {
		c.BaseURL = o.BaseURL
	}
	if o.Timezone != "" {
		c.Timezone = o.Timezone
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.ImageWorkers != 0 {
		c.ImageWorkers = o.ImageWorkers
	}
	if o.ChapterWorkers != 0 {
		c.ChapterWorkers = o.ChapterWorkers
	}
	if o.KeepFolders {
		c.KeepFolders = true
	}
	if o.Debug {
		c.Debug = true
	}
	if o.DefaultURL != "" {
		c.DefaultURL = o.DefaultURL
	}
	if o.DefaultRange != "" {
		c.DefaultRange = o.DefaultRange
	}
	if o.DefaultList != "" {
		c.DefaultList = o.DefaultList
	}
	if o.Cloudflare != nil {
		c.Cloudflare = *o.Cloudflare
	}
	if o.Cookie != "" {
		c.Cookie = o.Cookie
	}
	if o.CookieFile != "" {
		c.CookieFile = o.CookieFile
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.RateLimit != 0 {
		c.RateLimit = o.RateLimit
	}
	if o.SkipBroken {
		c.SkipBroken = true
	}
}

func normalizeDefaults(c *Config) {
	if c.Source == "" {
		c.Source = DefaultSource
	}
	if c.Output == "" {
		c.Output = "."
	}
	if c.ImageWorkers == 0 {
		c.ImageWorkers = 5
	}
	if c.ChapterWorkers == 0 {
		c.ChapterWorkers = 2
	}
}

func (c *Config) Print() {
	fmt.Printf(" -source: %s\n", c.Source)
	if c.BaseURL != "" {
		fmt.Printf(" -base_url: %s\n", c.BaseURL)
	}
	if c.Timezone != "" {
		fmt.Printf(" -timezone: %s\n", c.Timezone)
	}
	if c.Output != "" {
		fmt.Printf(" -output: %s\n", c.Output)
	}
	fmt.Printf(" -image_workers: %d\n", c.ImageWorkers)
	fmt.Printf(" -chapter_workers: %d\n", c.ChapterWorkers)
	if c.KeepFolders {
		fmt.Printf(" -keep_folders: %t\n", c.KeepFolders)
	}
	if c.Debug {
		fmt.Printf(" -debug: %t\n", c.Debug)
	}
	if c.DefaultURL != "" {
		fmt.Printf(" -url: %s\n", c.DefaultURL)
	}
	if c.DefaultRange != "" {
		fmt.Printf(" -range: %s\n", c.DefaultRange)
	}
	if c.DefaultList != "" {
		fmt.Printf(" -list: %s\n", c.DefaultList)
	}
	fmt.Printf(" -cloudflare: %t\n", c.Cloudflare)
	if c.CookieFile != "" {
		fmt.Printf(" -cookie_file: %s\n", c.CookieFile)
	}
	if c.RateLimit > 0 {
		fmt.Printf(" -rate_limit: %g/s\n", c.RateLimit)
	}
	if c.SkipBroken {
		fmt.Printf(" -skip_broken: %t\n", c.SkipBroken)
	}
}
