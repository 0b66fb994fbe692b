package main

import (
	"fmt"
	"io"

	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/jopadan/neolib/internal/bench"
	"github.com/jopadan/neolib/internal/engine/alloc"
)

type benchOptions struct {
	size     int
	ops      int
	seed     uint64
	gapSize  int
	nearness int
	limit    int
	pool     bool
	metrics  bool
}

func newBenchCmd(c *cli) *cobra.Command {
	var opts benchOptions

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare the gap vector with a slice under clustered edits",
		Long: `Fill a gap vector and a slice with 1..size, then apply the same random
clustered inserts and erases to both, verify they agree and print timings.

Examples:
  # Default workload
  neolib bench

  # Small gaps, Prometheus allocator metrics afterwards
  neolib bench --gap-size 16 --metrics

  # Fail once 500000 elements are outstanding
  neolib bench --limit 500000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runBench(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.size, "size", bench.DefaultSize, "elements pushed before editing")
	cmd.Flags().IntVar(&opts.ops, "ops", bench.DefaultOps, "clustered edits to apply")
	cmd.Flags().Uint64Var(&opts.seed, "seed", bench.DefaultSeed, "random seed for the edit sequence")
	cmd.Flags().IntVar(&opts.gapSize, "gap-size", 0, "gap size (default from config)")
	cmd.Flags().IntVar(&opts.nearness, "nearness", -1, "nearness factor (default from config)")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "fail allocations beyond this many elements (0 for none)")
	cmd.Flags().BoolVar(&opts.pool, "pool", false, "recycle blocks through a size-class pool")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "print allocator metrics (also metrics.enabled)")
	return cmd
}

func (c *cli) runBench(cmd *cobra.Command, opts benchOptions) error {
	cfg := bench.Config{
		Size:   opts.size,
		Ops:    opts.ops,
		Seed:   opts.seed,
		Vector: c.cfg.Vector,
	}
	if opts.gapSize > 0 {
		cfg.Vector.GapSize = opts.gapSize
	}
	if opts.nearness >= 0 {
		cfg.Vector.NearnessFactor = opts.nearness
	}

	var a alloc.Allocator[int] = alloc.Heap[int]{}
	if opts.pool {
		a = alloc.NewPool[int]()
	}
	if opts.limit > 0 {
		a = alloc.NewLimited(a, opts.limit)
	}
	metrics := opts.metrics || c.cfg.Metrics.Enabled
	if metrics {
		inst, err := alloc.NewInstrumented(a, c.registry, "bench")
		if err != nil {
			return fmt.Errorf("registering metrics: %w", err)
		}
		a = inst
	}
	cfg.Allocator = a

	res, runErr := bench.Run(cmd.Context(), cfg, c.log.Underlying().Named("bench"))
	out := cmd.OutOrStdout()
	if runErr == nil {
		printResult(out, res)
	}
	if metrics {
		if err := c.writeMetrics(out); err != nil {
			return err
		}
	}
	return runErr
}

func printResult(w io.Writer, res bench.Result) {
	fmt.Fprintf(w, "size: %d, edits: %d, final length: %d\n", res.Size, res.Ops, res.FinalLen)
	fmt.Fprintf(w, "gap vector: fill %.3f s, edit %.3f s\n", res.VectorFill.Seconds(), res.VectorEdit.Seconds())
	fmt.Fprintf(w, "slice:      fill %.3f s, edit %.3f s\n", res.SliceFill.Seconds(), res.SliceEdit.Seconds())
	fmt.Fprintf(w, "edit speedup: %.1fx\n", res.Speedup())
}

func (c *cli) writeMetrics(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
