package harvest

import (
	"context"
	"volby-harvest/internal/components/chrono"
	"volby-harvest/internal/components/telemetry"
	"volby-harvest/internal/export"
	"volby-harvest/internal/scrapers/volby"
)

const (
	report_harvest_staging = "harvest.staging"
	report_harvest_run     = "harvest.run"
)

// Result summarizes a finished run.
type Result struct {
	Path    string
	Leaves  int
	Records int
	Parties int
	Columns int
}

func (r Result) Skipped() int {
	return r.Leaves - r.Records
}

type Options struct {
	OutputDir      string
	ForeignListing string
	DistrictIndex  string
}

// Runner drives one harvest from the top listing to the exported file.
type Runner struct {
	crawler  volby.Crawler
	exporter export.Exporter
	clock    chrono.API
	options  Options
	tel      telemetry.API
}

func NewRunner(crawler volby.Crawler, exporter export.Exporter, clock chrono.API, options Options, tel telemetry.API) Runner {
	return Runner{
		crawler:  crawler,
		exporter: exporter,
		clock:    clock,
		options:  options,
		tel:      telemetry.NewScopedAPI("harvest", tel),
	}
}

// Foreign harvests every foreign precinct.
func (r Runner) Foreign(ctx context.Context) (Result, error) {
	listing, err := r.crawler.ForeignListing(ctx, r.options.ForeignListing)
	if err != nil {
		return Result{}, err
	}
	return r.run(ctx, "zahranici", listing, volby.Leaves(listing), volby.HeaderMapped)
}

// Districts lists the districts a domestic run can be started for.
func (r Runner) Districts(ctx context.Context) ([]volby.District, error) {
	return r.crawler.Districts(ctx, r.options.DistrictIndex)
}

// Domestic harvests every municipality of one district.
func (r Runner) Domestic(ctx context.Context, district volby.District) (Result, error) {
	municipalities, err := r.crawler.Municipalities(ctx, district)
	if err != nil {
		return Result{}, err
	}
	return r.run(ctx, "obce", municipalities, volby.Leaves(municipalities), volby.Turnout)
}

func (r Runner) run(ctx context.Context, stagingPrefix string, listing any, leaves []volby.Leaf, layout volby.MetadataLayout) (Result, error) {
	staging, err := export.WriteStaging(r.options.OutputDir, export.StagingName(r.clock, stagingPrefix), listing)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		err := staging.Remove()
		if err != nil {
			r.tel.ReportWarning(report_harvest_staging, err, staging.Path)
		}
	}()
	r.tel.ReportDebug(report_harvest_staging, staging.Path, len(leaves))

	collection, err := r.crawler.Aggregate(ctx, leaves, layout)
	if err != nil {
		return Result{}, err
	}
	table := volby.Unify(collection)

	path, err := r.exporter.Export(table)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Path:    path,
		Leaves:  len(leaves),
		Records: len(table.Rows),
		Parties: len(collection.Parties),
		Columns: len(table.Columns),
	}
	r.tel.ReportDebug(report_harvest_run, path, result.Records, result.Skipped())
	return result, nil
}
