package commands

import (
	"context"
	"fmt"
	"volby-harvest/internal/components/chrono"
	"volby-harvest/internal/components/telemetry"
	"volby-harvest/internal/config"
	"volby-harvest/internal/export"
	"volby-harvest/internal/harvest"
	"volby-harvest/internal/scrapers/volby"
	"volby-harvest/lib/restyutil"

	"go.opentelemetry.io/otel"
)

// Env is everything a command needs, built once per invocation.
type Env struct {
	Config    config.Config
	Telemetry telemetry.API
	Runner    harvest.Runner
	Clock     chrono.StandardImpl

	otel telemetry.Telemetry
}

type envKey struct{}

func withEnv(ctx context.Context, env *Env) context.Context {
	return context.WithValue(ctx, envKey{}, env)
}

func getEnv(ctx context.Context) *Env {
	return ctx.Value(envKey{}).(*Env)
}

func NewEnv(ctx context.Context, cfg config.Config) (*Env, error) {
	otelProviders, err := telemetry.Setup(ctx, "volby-harvest", cfg.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("setup telemetry: %w", err)
	}

	var tel telemetry.API = telemetry.SlogAPI{}
	if otelProviders.MeterProvider != nil {
		tel, err = telemetry.NewMetricsAPI(tel, otel.Meter("volby-harvest"))
		if err != nil {
			return nil, err
		}
	}

	var dumpOutput restyutil.InstrumentOutput
	if cfg.DumpHttpDir != "" {
		output, err := restyutil.NewFilesystemOutput(cfg.DumpHttpDir)
		if err != nil {
			return nil, err
		}
		dumpOutput = output
	}

	client, err := volby.NewClient(volby.ClientOptions{
		BaseUrl:           cfg.BaseUrl,
		Timeout:           cfg.Timeout(),
		UserAgent:         cfg.UserAgent,
		RequestsPerSecond: cfg.RequestsPerSecond,
		CloudflareBypass:  cfg.CloudflareBypass,
		DumpOutput:        dumpOutput,
	}, tel)
	if err != nil {
		return nil, err
	}

	writer, err := export.WriterFor(cfg.Format)
	if err != nil {
		return nil, err
	}
	clock, err := chrono.NewStandardImpl()
	if err != nil {
		return nil, err
	}

	runner := harvest.NewRunner(
		volby.NewCrawler(client, tel, cfg.Concurrency),
		export.NewExporter(cfg.OutputDir, writer, clock, tel),
		clock,
		harvest.Options{
			OutputDir:      cfg.OutputDir,
			ForeignListing: cfg.ForeignListing,
			DistrictIndex:  cfg.DistrictIndex,
		},
		tel,
	)

	return &Env{
		Config:    cfg,
		Telemetry: tel,
		Runner:    runner,
		Clock:     clock,
		otel:      otelProviders,
	}, nil
}

func (e *Env) Close(ctx context.Context) error {
	return e.otel.Shutdown(ctx)
}
