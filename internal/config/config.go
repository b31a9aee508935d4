package config

import (
	"fmt"
	"net/url"
	"time"
	"volby-harvest/internal/components/telemetry"
	"volby-harvest/lib/configutil"
)

const DefaultPath = "volby.json5"

type Config struct {
	BaseUrl           string  `json:"base_url"`
	ForeignListing    string  `json:"foreign_listing"`
	DistrictIndex     string  `json:"district_index"`
	ForeignSentinel   int     `json:"foreign_sentinel"`
	TimeoutSeconds    int     `json:"timeout_seconds"`
	RequestsPerSecond float64 `json:"requests_per_second"`
	CloudflareBypass  bool    `json:"cloudflare_bypass"`
	UserAgent         string  `json:"user_agent"`
	Concurrency       int     `json:"concurrency"`
	OutputDir         string  `json:"output_dir"`
	Format            string  `json:"format"`
	// DumpHttpDir, when set, receives one file per http exchange.
	DumpHttpDir string `json:"dump_http_dir"`

	Telemetry telemetry.Config `json:"telemetry"`
}

func Default() Config {
	return Config{
		BaseUrl:         "https://www.volby.cz/pls/ps2017nss/",
		ForeignListing:  "ps36?xjazyk=CZ",
		DistrictIndex:   "ps3?xjazyk=CZ",
		ForeignSentinel: 14,
		TimeoutSeconds:  10,
		Concurrency:     1,
		OutputDir:       ".",
		Format:          "xlsx",
	}
}

// Load reads the config at path (and its .local override) over Default.
// Missing files leave the defaults in place.
func Load(path string) (Config, error) {
	cfg, err := configutil.ReadConfigWithDefaults(path, Default())
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

var formats = map[string]struct{}{
	"xlsx":   {},
	"csv":    {},
	"sqlite": {},
}

func (c Config) Validate() error {
	base, err := url.Parse(c.BaseUrl)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if !base.IsAbs() {
		return fmt.Errorf("base_url must be absolute, got %q", c.BaseUrl)
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative, got %d", c.TimeoutSeconds)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must not be negative, got %v", c.RequestsPerSecond)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if _, ok := formats[c.Format]; !ok {
		return fmt.Errorf("unknown format %q", c.Format)
	}
	return nil
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
