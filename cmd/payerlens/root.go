package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/okian/payerlens/internal/app"
	"github.com/okian/payerlens/internal/config"
	"github.com/okian/payerlens/internal/refdata"
	"github.com/okian/payerlens/pkg/logger"
	"github.com/okian/payerlens/pkg/metrics"
)

// cli carries state shared by every subcommand for one invocation.
type cli struct {
	configPath string
	tablesPath string
	logLevel   string
	workers    int

	cfg    *config.Config
	log    logger.Logger
	engine *app.Engine
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:          "payerlens",
		Short:        "Score eye-care practices and plan payer rate negotiations",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return c.flushMetrics(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "YAML config file (overrides "+config.EnvFile+")")
	pf.StringVar(&c.tablesPath, "tables", "", "reference tables YAML (overrides reference_data_path)")
	pf.StringVar(&c.logLevel, "log-level", "", "debug, info, warn or error (overrides log_level)")
	pf.IntVar(&c.workers, "workers", 0, "batch concurrency (overrides batch_workers)")

	root.AddCommand(
		newScoreCmd(c),
		newCompareCmd(c),
		newFMVCmd(c),
		newPositionCmd(c),
		newPlaybookCmd(c),
		newBatchCmd(c),
		newContractsCmd(c),
		newTablesCmd(c),
	)
	return root
}

// setup loads .env and config, then builds the logger, metrics and engine.
func (c *cli) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	if c.configPath != "" {
		if err := os.Setenv(config.EnvFile, c.configPath); err != nil {
			return err
		}
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if c.tablesPath != "" {
		cfg.ReferenceDataPath = c.tablesPath
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}
	if c.workers > 0 {
		cfg.BatchWorkers = c.workers
	}
	c.cfg = cfg

	if err := logger.InitWithWriter(cmd.ErrOrStderr()); err != nil {
		return err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return err
	}
	c.log = logger.Named("payerlens")

	metrics.Init(metrics.WithNamespace(cfg.MetricsNamespace))

	store := refdata.NewStore(nil)
	c.engine = app.New(
		app.WithLogger(c.log),
		app.WithStore(store),
		app.WithWorkers(cfg.BatchWorkers),
		app.WithSeed(cfg.RandomSeed),
		app.WithDefaultServiceCount(cfg.DefaultServiceCount),
	)
	if cfg.ReferenceDataPath != "" {
		if err := c.engine.Reload(ctx, cfg.ReferenceDataPath); err != nil {
			return err
		}
	}
	c.log.Debug(ctx, "engine ready", logger.Any("stats", c.engine.Stats()))
	return nil
}

func (c *cli) flushMetrics(ctx context.Context) error {
	if c.cfg == nil || c.cfg.MetricsTextfile == "" {
		return nil
	}
	if err := metrics.WriteTextfile(c.cfg.MetricsTextfile); err != nil {
		c.log.Error(ctx, "metrics export failed", logger.String("path", c.cfg.MetricsTextfile), logger.Error(err))
		return err
	}
	return nil
}
