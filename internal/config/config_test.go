package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
name = "Testhollow"
seed = 7

[simulation]
behavior_throttle = 2
autosave_ticks = 0

[logging]
level = "debug"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Testhollow", cfg.Server.Name)
	assert.Equal(t, int64(7), cfg.Server.Seed)
	assert.Equal(t, 2, cfg.Simulation.BehaviorThrottle)
	assert.Zero(t, cfg.Simulation.AutosaveTicks)

	// Untouched sections keep the built-in values.
	assert.Equal(t, 1.0, cfg.Simulation.Speed)
	assert.Equal(t, 256, cfg.Pathfinder.CacheSize)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.NotZero(t, cfg.Server.StartTime)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestDefaultIsComplete(t *testing.T) {
	cfg := Default()
	assert.NotEmpty(t, cfg.Server.Name)
	assert.Positive(t, cfg.Simulation.BehaviorThrottle)
	assert.Positive(t, cfg.Pathfinder.CacheSize)
	assert.Positive(t, cfg.Simulation.InitialCitizens)
}
