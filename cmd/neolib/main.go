// Package main implements the neolib command line tool: container
// benchmarks, Lua workloads and application metadata.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/jopadan/neolib/internal/config"
	"github.com/jopadan/neolib/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// cli carries state shared by all subcommands.
type cli struct {
	configPath string
	logLevel   string
	pocket     bool

	cfg      config.Config
	log      *logging.Logger
	registry *prometheus.Registry
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "neolib",
		Short: "Gap vector benchmarks and scripted workloads",
		Long: `neolib exercises the gap vector container and the text buffer built on it.

Configuration is read from --config (TOML or YAML), then NEOLIB_* environment
variables, then command line flags.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a TOML or YAML config file")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level (debug, info, warning, error)")
	root.PersistentFlags().BoolVar(&c.pocket, "pocket", false, "keep settings and data next to the application")

	root.AddCommand(newBenchCmd(c))
	root.AddCommand(newRunCmd(c))
	root.AddCommand(newInfoCmd(c))
	root.AddCommand(newVersionCmd())
	return root
}

// setup loads configuration and builds the logger before any subcommand.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if c.logLevel != "" {
		cfg.Logging.Level = c.logLevel
	}

	lc, err := cfg.LoggingConfig()
	if err != nil {
		return fmt.Errorf("logging config: %w", err)
	}
	log, err := logging.NewWithWriter(lc, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	c.cfg = cfg
	c.log = log
	c.registry = prometheus.NewRegistry()
	return nil
}
