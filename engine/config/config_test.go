package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/steering-demo/engine/core"
	"github.com/1siamBot/steering-demo/engine/geom"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10.0, cfg.Params().ArrivalRadius)
	assert.Equal(t, 200.0, cfg.Params().SlowingRadius)
	assert.Equal(t, 150.0, cfg.Params().AvoidRadius)
	assert.Equal(t, 50.0, cfg.Arena.Padding)
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
arena:
  width: 800
steering:
  speed: 42
bodies:
  character: {width: 10, height: 20}
keys:
  reset: KeyR
seed: 99
log:
  level: debug
`))
	require.NoError(t, err)
	assert.Equal(t, 800.0, cfg.Arena.Width)
	assert.Equal(t, 720.0, cfg.Arena.Height)
	assert.Equal(t, 42.0, cfg.Params().Speed)
	assert.Equal(t, 10.0, cfg.Params().ArrivalRadius)
	assert.Equal(t, geom.V2(10, 20), cfg.Sizes()[core.KindCharacter])
	assert.Equal(t, "KeyR", cfg.Keys.Reset)
	assert.Equal(t, "Digit1", cfg.Keys.Seek)
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("steering:\n  sped: 3\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Arena.Padding = 400
	cfg.Loop.Clock = "sundial"
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "padding")
	assert.Contains(t, err.Error(), "sundial")
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(t.TempDir(), "demo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("loop:\n  clock: wall\n  tps: 30\n"), 0o644))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "wall", cfg.Loop.Clock)
	assert.Equal(t, 30, cfg.Loop.TPS)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
