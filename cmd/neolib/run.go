package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/jopadan/neolib/internal/config"
	"github.com/jopadan/neolib/internal/engine/buffer"
	"github.com/jopadan/neolib/internal/engine/gapvec"
	"github.com/jopadan/neolib/internal/script"
)

type runOptions struct {
	watch   bool
	opLimit int64
	timeout time.Duration
}

func newRunCmd(c *cli) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run <script.lua>",
		Short: "Run a Lua workload against a gap vector and a text buffer",
		Long: `Run a Lua script with the vec and buf modules installed.

Examples:
  # Run once
  neolib run workload.lua

  # Re-run every time the file is saved
  neolib run --watch workload.lua`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScript(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-run the script when it changes")
	cmd.Flags().Int64Var(&opts.opLimit, "op-limit", script.DefaultOpLimit, "maximum vec/buf calls per run (0 for none)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", script.DefaultTimeout, "maximum run time (0 for none)")
	return cmd
}

func (c *cli) runScript(cmd *cobra.Command, path string, opts runOptions) error {
	log := c.log.Underlying().Named("script")

	runOnce := func(ctx context.Context) error {
		r := script.NewRunner(
			script.WithVector(gapvec.New(
				append(config.VectorOptions[lua.LValue](c.cfg), gapvec.WithLogger[lua.LValue](log))...)),
			script.WithBuffer(buffer.NewBuffer(
				buffer.WithGapConfig(c.cfg.Vector), buffer.WithLogger(log))),
			script.WithLogger(log),
			script.WithOutput(cmd.OutOrStdout()),
			script.WithOpLimit(opts.opLimit),
			script.WithTimeout(opts.timeout),
		)
		defer r.Close()
		return r.RunFile(ctx, path)
	}

	ctx := cmd.Context()
	err := runOnce(ctx)
	if !opts.watch {
		return err
	}
	if err != nil {
		c.log.Error("script failed", zap.String("path", path), zap.Error(err))
	}

	c.log.Info("watching for changes", zap.String("path", path))
	return script.Watch(ctx, path, func() {
		if err := runOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
			c.log.Error("script failed", zap.String("path", path), zap.Error(err))
		}
	}, script.WithWatchLogger(log))
}
