package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/oomph-ac/motion/player"
	"github.com/oomph-ac/motion/world"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestInitThenRun(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "world.toml")
	profile := filepath.Join(dir, "stats.toml")
	out := filepath.Join(dir, "telemetry.yaml")
	ctx := context.Background()

	require.NoError(t, command().Run(ctx, []string{"motionsim", "--config", conf, "init", "--stats", profile}))
	loaded, err := world.LoadConfig(conf)
	require.NoError(t, err)
	require.Equal(t, world.DefaultConfig(), loaded)
	require.Error(t, command().Run(ctx, []string{"motionsim", "--config", conf, "init", "--stats", profile}))

	require.NoError(t, command().Run(ctx, []string{
		"motionsim", "--config", conf, "--log-level", "error",
		"run", "--level", "../../world/testdata/level.yaml", "--stats", profile,
		"--frames", "30", "--players", "2", "--out", out,
	}))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var report map[string][]player.Snapshot
	require.NoError(t, yaml.Unmarshal(data, &report))
	require.Len(t, report, 2)
	require.Len(t, report["player-1"], 30)
}

func TestRunNeedsFrames(t *testing.T) {
	err := command().Run(context.Background(), []string{
		"motionsim", "--log-level", "error", "run", "--level", "../../world/testdata/level.yaml",
	})
	require.ErrorContains(t, err, "nothing to run")
}
