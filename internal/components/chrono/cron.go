package chrono

import (
	"context"
	"fmt"
	"time"
	"volby-harvest/internal/components/telemetry"

	"github.com/robfig/cron/v3"
)

// CronAPI is the interface that anything depending on things to happen on a cron job should use.
type CronAPI interface {
	Cron(spec string, callback func()) error
	// Stop prevents further runs, the returned context is done once running
	// jobs have finished.
	Stop() context.Context
}

// StandardCron is the standard implementation of CronAPI using `github.com/robfig/cron/v3`
type StandardCron struct {
	cron *cron.Cron
}

// NewStandardCron starts a scheduler that reads specs in location. Runs of
// a job never overlap, a run that is due while the previous one is still
// going is skipped.
func NewStandardCron(tel telemetry.API, location *time.Location) StandardCron {
	logger := cronLogger{tel: tel}
	cronner := cron.New(
		cron.WithLogger(logger),
		cron.WithLocation(location),
		cron.WithChain(cron.SkipIfStillRunning(logger)),
	)
	cronner.Start()

	return StandardCron{
		cron: cronner,
	}
}

func (s StandardCron) Cron(spec string, callback func()) error {
	_, err := s.cron.AddFunc(spec, callback)
	return err
}

func (s StandardCron) Stop() context.Context {
	return s.cron.Stop()
}

type cronLogger struct {
	tel telemetry.API
}

func (l cronLogger) formatParams(keysAndValues []any) []any {
	params := []any{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		params = append(params, fmt.Sprintf("%v: %v", keysAndValues[i], keysAndValues[i+1]))
	}
	return params
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.tel.ReportDebug(
		fmt.Sprintf("cron: %s", msg),
		l.formatParams(keysAndValues)...,
	)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.tel.ReportBroken(
		"cron",
		append([]any{fmt.Errorf("%s: %w", msg, err)}, l.formatParams(keysAndValues)...)...,
	)
}
