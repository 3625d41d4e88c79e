package cli

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ermabp/builder"
	"github.com/katalvlaran/ermabp/core"
	"github.com/katalvlaran/ermabp/deptree"
	"github.com/katalvlaran/ermabp/erma"
)

// runFlags are shared by every graph command.
type runFlags struct {
	configPath string
	algebra    string
	seed       int64
	states     int
	stddev     float64
	grad       bool
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "YAML file with BP options")
	cmd.Flags().StringVar(&f.algebra, "algebra", "", "Override the configured algebra (real, log, logsign)")
	cmd.Flags().Int64Var(&f.seed, "seed", 1, "Seed for the random log potentials")
	cmd.Flags().IntVar(&f.states, "states", 2, "States per variable")
	cmd.Flags().Float64Var(&f.stddev, "stddev", 1, "Standard deviation of the log potentials")
	cmd.Flags().BoolVar(&f.grad, "grad", false, "Differentiate the sum of P(x=last state) and print potential adjoints")
}

func (f *runFlags) builderOptions() ([]builder.BuilderOption, error) {
	if f.states < 1 {
		return nil, fmt.Errorf("--states must be >= 1, got %d", f.states)
	}
	if f.stddev < 0 {
		return nil, fmt.Errorf("--stddev must be >= 0, got %g", f.stddev)
	}
	return []builder.BuilderOption{
		builder.WithSeed(f.seed),
		builder.WithNumStates(f.states),
		builder.WithNormalPotential(0, f.stddev),
	}, nil
}

func (c *CLI) newChainCommand() *cobra.Command {
	var flags runFlags
	var n int

	cmd := &cobra.Command{
		Use:   "chain",
		Short: "Run BP on a chain of pairwise factors",
		Example: `  ermabp chain --n 5
  ermabp chain --n 5 --config bp.yaml --algebra logsign --grad`,
		RunE: func(cmd *cobra.Command, args []string) error {
			bopts, err := flags.builderOptions()
			if err != nil {
				return err
			}
			g, err := builder.BuildGraph(bopts, builder.Chain(n))
			if err != nil {
				return fmt.Errorf("build chain: %w", err)
			}
			return c.runGraph(cmd, g, &flags)
		},
	}
	cmd.Flags().IntVar(&n, "n", 4, "Number of variables")
	flags.register(cmd)
	return cmd
}

func (c *CLI) newGridCommand() *cobra.Command {
	var flags runFlags
	var rows, cols int

	cmd := &cobra.Command{
		Use:     "grid",
		Short:   "Run loopy BP on a grid of pairwise factors",
		Example: `  ermabp grid --rows 3 --cols 3 -v`,
		RunE: func(cmd *cobra.Command, args []string) error {
			bopts, err := flags.builderOptions()
			if err != nil {
				return err
			}
			g, err := builder.BuildGraph(bopts, builder.Grid(rows, cols))
			if err != nil {
				return fmt.Errorf("build grid: %w", err)
			}
			return c.runGraph(cmd, g, &flags)
		},
	}
	cmd.Flags().IntVar(&rows, "rows", 3, "Grid rows")
	cmd.Flags().IntVar(&cols, "cols", 3, "Grid columns")
	flags.register(cmd)
	return cmd
}

func (c *CLI) newDepTreeCommand() *cobra.Command {
	var flags runFlags
	var tokens int

	cmd := &cobra.Command{
		Use:   "deptree",
		Short: "Run BP on a projective dependency tree factor with random link scores",
		Example: `  ermabp deptree --tokens 4
  ermabp deptree --tokens 3 --grad --algebra logsign`,
		RunE: func(cmd *cobra.Command, args []string) error {
			bopts, err := flags.builderOptions()
			if err != nil {
				return err
			}
			g, err := builder.BuildGraph(bopts, builder.DepTree(tokens))
			if err != nil {
				return fmt.Errorf("build deptree: %w", err)
			}
			trees, err := deptree.CountTrees(tokens)
			if err != nil {
				return err
			}
			slog.Debug("Dependency tree graph", "tokens", tokens, "trees", trees, "links", g.NumVars())
			return c.runGraph(cmd, g, &flags)
		},
	}
	cmd.Flags().IntVar(&tokens, "tokens", 3, "Sentence length")
	flags.register(cmd)
	return cmd
}

func (c *CLI) newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the default BP configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := erma.DefaultConfig().Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func loadOptions(path, algebra string) ([]erma.Option, error) {
	cfg := erma.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = erma.LoadConfigFile(path); err != nil {
			return nil, err
		}
	}
	if algebra != "" {
		cfg.Algebra = algebra
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	return append(opts, erma.WithLogger(slog.Default())), nil
}

func (c *CLI) runGraph(cmd *cobra.Command, g *core.FactorGraph, flags *runFlags) error {
	opts, err := loadOptions(flags.configPath, flags.algebra)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	bp, err := erma.New(g, opts...)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	if err := bp.Forward(cmd.Context()); err != nil {
		return fmt.Errorf("forward: %w", err)
	}
	slog.Info("Forward complete", "run", bp.RunID(), "state", bp.State(), "iterations", bp.Iterations())

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run\t%s\n", bp.RunID())
	fmt.Fprintf(out, "state\t%s after %d iterations (%d/%d edges converged)\n",
		bp.State(), bp.Iterations(), bp.NumConverged(), g.NumEdges())
	if err := printBeliefs(out, g, bp); err != nil {
		return err
	}
	logZ, err := bp.LogPartition()
	if err != nil {
		return fmt.Errorf("partition: %w", err)
	}
	fmt.Fprintf(out, "logZ\t%.6f\n", logZ)

	if !flags.grad {
		return nil
	}
	return printGradient(cmd, out, bp)
}

func printBeliefs(out io.Writer, g *core.FactorGraph, bp *erma.BP) error {
	beliefs, err := bp.VarBeliefs()
	if err != nil {
		return fmt.Errorf("beliefs: %w", err)
	}
	for id, bel := range beliefs {
		fmt.Fprintf(out, "%s\t%s\n", g.Var(id).Name(), formatReals(bel.Reals()))
	}
	return nil
}

// printGradient seeds d loss / d b_v(last state) = 1 for every variable.
func printGradient(cmd *cobra.Command, out io.Writer, bp *erma.BP) error {
	adj, err := bp.OutputAdj()
	if err != nil {
		return err
	}
	one := bp.Algebra().One()
	for _, t := range adj.Vars {
		t.SetValue(t.Len()-1, one)
	}
	if err := bp.Backward(cmd.Context()); err != nil {
		return fmt.Errorf("backward: %w", err)
	}
	pots, err := bp.PotentialsAdj()
	if err != nil {
		return err
	}
	for id, p := range pots {
		if p == nil {
			continue
		}
		fmt.Fprintf(out, "d/dpsi[%d]\t%s\n", id, formatReals(p.Reals()))
	}
	return nil
}

func formatReals(xs []float64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		if math.Abs(x) < 5e-7 {
			x = 0
		}
		parts[i] = fmt.Sprintf("%.6f", x)
	}
	return strings.Join(parts, " ")
}
