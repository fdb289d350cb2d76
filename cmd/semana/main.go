package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/td0m/semana/internal/config"
	"github.com/td0m/semana/pkg/clock"
	"github.com/td0m/semana/pkg/persist"
	"github.com/td0m/semana/pkg/planner"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// cli holds what every command shares, filled in before any of them runs
type cli struct {
	configPath string
	jsonOutput bool

	cfg   *config.Config
	log   *zap.Logger
	clock clock.Clock
	out   Formatter
}

func newRootCmd() *cobra.Command {
	c := &cli{clock: clock.Real{}}
	root := &cobra.Command{
		Use:           "semana",
		Short:         "A weekly study planner",
		Long:          "semana plans study weeks around a syllabus. Without a subcommand it opens the board.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return c.setup()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = c.log.Sync()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runTUI(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", config.DefaultPath(), "Path to the config file")
	root.PersistentFlags().BoolVar(&c.jsonOutput, "json", false, "Output in JSON format")

	root.AddCommand(
		c.weekCmd(),
		c.addCmd(),
		c.logCmd(),
		c.stickerCmd(),
		c.doneCmd(),
		c.rmCmd(),
		c.statsCmd(),
		c.syllabusCmd(),
		c.planCmd(),
		c.configCmd(),
		c.exportCmd(),
		c.importCmd(),
	)
	return root
}

func (c *cli) setup() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.log, err = newLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	if c.jsonOutput {
		c.out = NewJSONFormatter()
	} else {
		c.out = NewHumanFormatter()
	}
	return nil
}

// newLogger writes to a file since the board owns the terminal
func newLogger(lc config.LogConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(lc.File), 0o755); err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = level
	zc.OutputPaths = []string{lc.File}
	zc.ErrorOutputPaths = []string{lc.File}
	return zc.Build()
}

func openKV(cfg *config.Config) (persist.KV, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		return persist.OpenSQLite(filepath.Join(cfg.DataDir, "semana.db"))
	default:
		return persist.InDir(cfg.DataDir)
	}
}

// open loads the planner, call the returned func once done with it
func (c *cli) open(clk clock.Clock) (*planner.Planner, func(), error) {
	kv, err := openKV(c.cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s store: %w", c.cfg.Store, err)
	}
	p := planner.Load(kv, planner.Options{Clock: clk, Log: c.log})
	done := func() {
		if err := persist.Close(kv); err != nil {
			c.log.Warn("close store", zap.Error(err))
		}
	}
	return p, done, nil
}
