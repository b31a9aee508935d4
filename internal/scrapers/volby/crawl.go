package volby

import (
	"context"
	"errors"
	"fmt"
	"volby-harvest/internal/components/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("volby-harvest/internal/scrapers/volby")

const (
	report_crawler_listing           = "crawler.listing"
	report_crawler_aggregate_leaf    = "crawler.aggregate-leaf"
	report_crawler_leaves_aggregated = "crawler.leaves-aggregated"
	report_crawler_leaves_skipped    = "crawler.leaves-skipped"
)

var ErrMissingLink = errors.New("leaf has no detail link")

// Crawler walks listing pages down to detail pages and accumulates one
// merged record per leaf.
type Crawler struct {
	client      Fetcher
	tel         telemetry.API
	concurrency int
}

// NewCrawler creates a crawler, concurrency <= 1 aggregates leaves one at a
// time.
func NewCrawler(client Fetcher, tel telemetry.API, concurrency int) Crawler {
	if concurrency < 1 {
		concurrency = 1
	}
	return Crawler{
		client:      client,
		tel:         telemetry.NewScopedAPI("volby_crawler", tel),
		concurrency: concurrency,
	}
}

// ForeignListing fetches and classifies the foreign precinct listing. A
// transport failure here aborts the run.
func (c Crawler) ForeignListing(ctx context.Context, link string) ([]ListingRecord, error) {
	ctx, span := tracer.Start(ctx, "ForeignListing")
	defer span.End()

	page, err := c.client.Fetch(ctx, link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	records := ExtractListing(c.tel, page.Doc)
	span.SetAttributes(attribute.Int("records", len(records)))
	c.tel.ReportDebug(report_crawler_listing, "foreign listing", len(records))
	return records, nil
}

// Districts fetches the district index.
func (c Crawler) Districts(ctx context.Context, link string) ([]District, error) {
	ctx, span := tracer.Start(ctx, "Districts")
	defer span.End()

	page, err := c.client.Fetch(ctx, link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	districts := ExtractDistricts(c.tel, page.Doc, page.URL)
	span.SetAttributes(attribute.Int("districts", len(districts)))
	return districts, nil
}

// Municipalities fetches the listing of a single district.
func (c Crawler) Municipalities(ctx context.Context, district District) ([]Municipality, error) {
	ctx, span := tracer.Start(ctx, "Municipalities")
	defer span.End()
	span.SetAttributes(
		attribute.Int("district.number", district.Number),
		attribute.String("district.name", district.Name),
	)

	page, err := c.client.Fetch(ctx, district.Link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	municipalities := ExtractMunicipalities(c.tel, page.Doc, page.URL)
	span.SetAttributes(attribute.Int("municipalities", len(municipalities)))
	return municipalities, nil
}

// AggregateLeaf fetches one leaf's detail page and merges it with the leaf
// identity.
func (c Crawler) AggregateLeaf(ctx context.Context, leaf Leaf, layout MetadataLayout) (MergedRecord, []string, error) {
	ctx, span := tracer.Start(ctx, "AggregateLeaf")
	defer span.End()
	span.SetAttributes(attribute.String("leaf", leaf.String()))

	link := leaf.DetailLink()
	if link == "" {
		return MergedRecord{}, nil, ErrMissingLink
	}
	page, err := c.client.Fetch(ctx, link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return MergedRecord{}, nil, err
	}
	detail, err := ParseDetail(c.tel, page.Doc, layout)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return MergedRecord{}, nil, fmt.Errorf("%s: %w", page.URL, err)
	}
	return Merge(leaf, detail), detail.Tally.Parties(), nil
}

type leafResult struct {
	record  MergedRecord
	parties []string
	ok      bool
}

// Aggregate builds the collection for leaves, in leaf order. Leaves that
// fail are reported and skipped, the only error returned is cancellation.
func (c Crawler) Aggregate(ctx context.Context, leaves []Leaf, layout MetadataLayout) (*Collection, error) {
	ctx, span := tracer.Start(ctx, "Aggregate")
	defer span.End()
	span.SetAttributes(
		attribute.Int("leaves", len(leaves)),
		attribute.Int("concurrency", c.concurrency),
	)

	results := make([]leafResult, len(leaves))
	aggregate := func(i int) {
		record, parties, err := c.AggregateLeaf(ctx, leaves[i], layout)
		if err != nil {
			if ctx.Err() == nil {
				c.tel.ReportWarning(report_crawler_aggregate_leaf, err, leaves[i].String())
			}
			return
		}
		c.tel.ReportDebug(report_crawler_aggregate_leaf, "merged", leaves[i].String())
		results[i] = leafResult{record: record, parties: parties, ok: true}
	}

	if c.concurrency == 1 {
		for i := range leaves {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			aggregate(i)
		}
	} else {
		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(c.concurrency)
		for i := range leaves {
			if groupCtx.Err() != nil {
				break
			}
			i := i
			group.Go(func() error {
				aggregate(i)
				return nil
			})
		}
		group.Wait()
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	collection := NewCollection()
	skipped := 0
	for _, res := range results {
		if !res.ok {
			skipped++
			continue
		}
		collection.Append(res.record, res.parties)
	}
	c.tel.ReportCount(report_crawler_leaves_aggregated, int64(len(collection.Records)))
	c.tel.ReportCount(report_crawler_leaves_skipped, int64(skipped))
	span.SetAttributes(attribute.Int("skipped", skipped))

	return collection, nil
}

// Leaves converts listing rows into leaves.
func Leaves[T Leaf](items []T) []Leaf {
	out := make([]Leaf, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}
