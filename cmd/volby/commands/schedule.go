package commands

import (
	"fmt"
	"volby-harvest/internal/components/chrono"

	"github.com/spf13/cobra"
)

const report_schedule_run = "schedule.run"

// schedule runs job once, or with --cron on every tick until the command's
// context is cancelled. A failed scheduled run is reported and the next
// tick still runs.
func schedule(cmd *cobra.Command, job func() error) error {
	if cronSpec == "" {
		return job()
	}

	env := getEnv(cmd.Context())
	cronner := chrono.NewStandardCron(env.Telemetry, env.Clock.Location())
	err := cronner.Cron(cronSpec, func() {
		if err := job(); err != nil {
			env.Telemetry.ReportBroken(report_schedule_run, err)
		}
	})
	if err != nil {
		cronner.Stop()
		return fmt.Errorf("invalid --cron schedule: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Sklízím podle plánu %q, ukončete pomocí Ctrl+C.\n", cronSpec)

	<-cmd.Context().Done()
	<-cronner.Stop().Done()
	return nil
}
