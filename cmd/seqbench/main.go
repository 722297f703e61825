// Command seqbench replays container workloads and times synthetic
// push/pop cycles.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/pavanmanishd/seq/internal/workload"
)

// cli holds the flag values and logger shared by the subcommands.
type cli struct {
	verbose bool
	timeout time.Duration
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "seqbench",
		Short:         "Replay and benchmark seq container workloads",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if c.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", time.Minute, "Replay timeout")

	root.AddCommand(c.runCmd(), c.benchCmd())
	return root
}

func (c *cli) runCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "run <workload.yaml>",
		Short: "Replay a YAML workload and print the resulting contents and metrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := workload.Load(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), c.timeout)
			defer cancel()
			res, err := workload.Run(ctx, cfg, c.logger)
			if err != nil {
				return err
			}

			if err := yaml.NewEncoder(cmd.OutOrStdout()).Encode(res); err != nil {
				return fmt.Errorf("failed to write result: %w", err)
			}
			if strict && len(res.Errors) > 0 {
				return fmt.Errorf("%d operations failed", len(res.Errors))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero if any operation fails")
	return cmd
}

// benchReport is the YAML summary printed by the bench command.
type benchReport struct {
	Container string         `yaml:"container"`
	Backing   string         `yaml:"backing,omitempty"`
	Ops       int            `yaml:"ops"`
	Rounds    int            `yaml:"rounds"`
	Elapsed   time.Duration  `yaml:"elapsed"`
	NsPerOp   float64        `yaml:"ns_per_op"`
	Metrics   map[string]any `yaml:"metrics,omitempty"`
}

func (c *cli) benchCmd() *cobra.Command {
	var (
		container string
		backing   string
		n         int
		rounds    int
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time a synthetic cycle of n pushes followed by n pops",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if n <= 0 || rounds <= 0 {
				return fmt.Errorf("--elements and --rounds must be positive")
			}
			cfg := workload.Synthetic(container, n)
			cfg.Backing = backing
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), c.timeout)
			defer cancel()

			report := benchReport{Container: container, Backing: backing, Ops: len(cfg.Ops), Rounds: rounds}
			start := time.Now()
			for i := range rounds {
				res, err := workload.Run(ctx, cfg, c.logger)
				if err != nil {
					return fmt.Errorf("round %d: %w", i, err)
				}
				report.Metrics = res.Metrics
			}
			report.Elapsed = time.Since(start)
			report.NsPerOp = float64(report.Elapsed.Nanoseconds()) / float64(report.Ops*rounds)

			c.logger.Debug("Benchmark finished",
				zap.String("container", container),
				zap.Duration("elapsed", report.Elapsed),
			)
			return yaml.NewEncoder(cmd.OutOrStdout()).Encode(report)
		},
	}
	cmd.Flags().StringVarP(&container, "container", "c", workload.Vector, "Container: vector, list, dlist, queue or stack")
	cmd.Flags().StringVar(&backing, "backing", "", "Backing sequence for queue or stack")
	cmd.Flags().IntVarP(&n, "elements", "n", 10000, "Elements pushed per round")
	cmd.Flags().IntVar(&rounds, "rounds", 10, "Number of rounds")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
