package erma_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ermabp/builder"
	"github.com/katalvlaran/ermabp/erma"
	"github.com/katalvlaran/ermabp/semiring"
)

func TestLoadConfig(t *testing.T) {
	cfg, err := erma.LoadConfig(strings.NewReader(`
schedule: random
update_order: Sequential
max_iterations: 7
algebra: logsign
normalize_messages: false
convergence_threshold: 0.001
keep_tape: false
seed: 42
`))
	require.NoError(t, err)
	require.Equal(t, erma.Random, cfg.Schedule)
	require.Equal(t, erma.Sequential, cfg.UpdateOrder)
	require.Equal(t, 7, cfg.MaxIterations)
	require.Equal(t, "logsign", cfg.Algebra)
	require.False(t, cfg.NormalizeMessages)
	require.Equal(t, 0.001, cfg.ConvergenceThreshold)
	require.False(t, cfg.KeepTape)
	require.Equal(t, int64(42), cfg.Seed)

	opts, err := cfg.Options()
	require.NoError(t, err)
	g, err := builder.BuildGraph(nil, builder.Chain(2))
	require.NoError(t, err)
	b, err := erma.New(g, opts...)
	require.NoError(t, err)
	got := b.Options()
	require.Equal(t, erma.Random, got.Schedule)
	require.Equal(t, erma.Sequential, got.UpdateOrder)
	require.Equal(t, semiring.Algebra(semiring.LogSign{}), got.Algebra)
	require.Equal(t, int64(42), got.Seed)
}

func TestLoadConfigDefaultsAndPartial(t *testing.T) {
	cfg, err := erma.LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, erma.DefaultConfig(), cfg)

	cfg, err = erma.LoadConfig(strings.NewReader("max_iterations: 3\n"))
	require.NoError(t, err)
	require.Equal(t, 3, cfg.MaxIterations)
	require.Equal(t, erma.Parallel, cfg.UpdateOrder)
	require.Equal(t, "log", cfg.Algebra)
}

func TestLoadConfigErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want error
	}{
		{"unknown key", "iterations: 3\n", nil},
		{"bad schedule", "schedule: zigzag\n", erma.ErrUnsupportedSchedule},
		{"bad order", "update_order: sideways\n", erma.ErrUnsupportedSchedule},
		{"bad algebra", "algebra: tropical\n", semiring.ErrUnknownAlgebra},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := erma.LoadConfig(strings.NewReader(tc.doc))
			require.Error(t, err)
			if tc.want != nil {
				require.ErrorIs(t, err, tc.want)
			}
		})
	}
}

func TestConfigRoundTripThroughFile(t *testing.T) {
	cfg := erma.DefaultConfig()
	cfg.Schedule = erma.Random
	cfg.Algebra = "real"
	cfg.MaxIterations = 12
	data, err := cfg.Marshal()
	require.NoError(t, err)
	require.Contains(t, string(data), "schedule: random")
	require.Contains(t, string(data), "update_order: parallel")

	path := filepath.Join(t.TempDir(), "bp.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	back, err := erma.LoadConfigFile(path)
	require.NoError(t, err)
	require.Equal(t, cfg, back)

	_, err = erma.LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestEnumText(t *testing.T) {
	var s erma.ScheduleType
	require.NoError(t, s.UnmarshalText([]byte("Tree-Like")))
	require.Equal(t, erma.TreeLike, s)
	require.Equal(t, "tree_like", erma.TreeLike.String())
	require.Equal(t, "ScheduleType(7)", erma.ScheduleType(7).String())

	var u erma.UpdateOrder
	require.NoError(t, u.UnmarshalText([]byte("PARALLEL")))
	require.Equal(t, erma.Parallel, u)
	require.Equal(t, "iteration_limit_reached", erma.IterationLimitReached.String())
}
