package commands

import (
	"context"
	"fmt"
	"volby-harvest/internal/components/telemetry"
	"volby-harvest/internal/config"
	"volby-harvest/lib/util/serviceutil"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	verbose     bool
	format      string
	outputDir   string
	concurrency int
	dumpHttpDir string
	cronSpec    string
)

var rootCmd = &cobra.Command{
	Use:           "volby",
	Short:         "volby harvests election results from volby.cz into a spreadsheet.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(verbose)

		if cronSpec != "" {
			if _, err := cron.ParseStandard(cronSpec); err != nil {
				return fmt.Errorf("invalid --cron schedule: %w", err)
			}
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		flags := cmd.Flags()
		if flags.Changed("format") {
			cfg.Format = format
		}
		if flags.Changed("output") {
			cfg.OutputDir = outputDir
		}
		if flags.Changed("concurrency") {
			cfg.Concurrency = concurrency
		}
		if flags.Changed("dump-http") {
			cfg.DumpHttpDir = dumpHttpDir
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		env, err := NewEnv(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		cmd.SetContext(withEnv(cmd.Context(), env))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return getEnv(cmd.Context()).Close(context.Background())
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", config.DefaultPath, "The config file, <name>.local.<ext> next to it overrides it.")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log debug reports.")
	flags.StringVar(&format, "format", "xlsx", "The export format: xlsx, csv or sqlite.")
	flags.StringVarP(&outputDir, "output", "o", ".", "The directory the export is written to.")
	flags.IntVar(&concurrency, "concurrency", 1, "How many detail pages are fetched at once.")
	flags.StringVar(&dumpHttpDir, "dump-http", "", "Write every http exchange into this directory.")
	flags.StringVar(&cronSpec, "cron", "", "Repeat the harvest on this cron schedule (Europe/Prague) until interrupted.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		serviceutil.Fatal("harvest failed", err)
	}
}
