package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/sl40168/bondetl/internal/config"
	"github.com/sl40168/bondetl/internal/etl"
	"github.com/sl40168/bondetl/internal/lock"
	"github.com/sl40168/bondetl/internal/logging"
)

func newRootCmd(logger *logging.Logger) *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:           "bondetl",
		Short:         "bondetl runs the daily bond-market ETL batch",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runBatch(cmd.Context(), opts, logger)
			return err
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "", "start date, YYYYMMDD")
	cmd.Flags().StringVar(&opts.To, "to", "", "end date, YYYYMMDD")
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "path to the INI configuration file")

	return cmd
}

// runBatch validates input, loads and validates configuration, acquires
// the single-instance lock, and runs the workflow engine over the
// requested date range.
func runBatch(ctx context.Context, opts runOptions, logger *logging.Logger) (*etl.WorkflowResult, error) {
	from, to, configPath, err := parsedRunOptions(opts)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	runLogger := loggerFor(cfg, logger)

	executor := etl.NewExecutor(runLogger)
	daily := etl.NewDailyWorkflow(executor, buildPhases(runLogger), runLogger)
	engine := etl.NewWorkflowEngine(daily, lock.New(lockPathFor(cfg)), runLogger)

	return engine.Execute(ctx, from, to, cfg)
}

// loggerFor re-points logging at the configured sink once the config
// file is known; logger (stdout, built before any flag is parsed) is
// kept as the fallback if no log file is configured or it can't be
// opened.
func loggerFor(cfg *config.Config, fallback *logging.Logger) *logging.Logger {
	if cfg.Logging.LogFilePath == "" {
		return fallback
	}

	file, err := os.OpenFile(cfg.Logging.LogFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fallback.Warn("could not open configured log file, logging to stdout", "path", cfg.Logging.LogFilePath, "error", err.Error())
		return fallback
	}

	return logging.New(logging.Options{Writer: file, Level: cfg.Logging.LogLevel, Component: "bondetl"})
}

func lockPathFor(cfg *config.Config) string {
	if cfg.Loader.TemporaryTablePrefix != "" {
		return cfg.Loader.TemporaryTablePrefix + "bondetl.lock"
	}
	return "bondetl.lock"
}
