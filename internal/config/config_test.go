package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), DefaultPath))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "volby.json5"), []byte(`{
		// shared settings
		concurrency: 4,
		format: "csv",
		telemetry: {
			otlp: { traces: { http_endpoint: "localhost:4318" } },
		},
	}`), 0600)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "volby.local.json5"), []byte(`{
		output_dir: "out",
		requests_per_second: 2.5,
	}`), 0600)
	require.NoError(t, err)

	cfg, err := Load(filepath.Join(dir, "volby.json5"))
	require.NoError(t, err)

	expected := Default()
	expected.Concurrency = 4
	expected.Format = "csv"
	expected.OutputDir = "out"
	expected.RequestsPerSecond = 2.5
	expected.Telemetry.Otlp.Traces.HttpEndpoint = "localhost:4318"
	require.Equal(t, expected, cfg)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(c *Config)
		ok     bool
	}{
		{name: "default", mutate: func(c *Config) {}, ok: true},
		{name: "relative base", mutate: func(c *Config) { c.BaseUrl = "pls/ps2017nss/" }},
		{name: "zero concurrency", mutate: func(c *Config) { c.Concurrency = 0 }},
		{name: "negative rate", mutate: func(c *Config) { c.RequestsPerSecond = -1 }},
		{name: "unknown format", mutate: func(c *Config) { c.Format = "ods" }},
		{name: "sqlite", mutate: func(c *Config) { c.Format = "sqlite" }, ok: true},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.mutate(&cfg)
			err := cfg.Validate()
			if test.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}
