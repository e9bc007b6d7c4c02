package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := Default()
	assert.Equal(t, 0, s.DebugLevel)
	assert.Equal(t, 64, s.MaxRecursion)
}

func TestFromEnvOverridesDebugLevel(t *testing.T) {
	t.Setenv("DEBUG", "3")
	s := FromEnv(Default())
	assert.Equal(t, 3, s.DebugLevel)
}

func TestFromEnvIgnoresUnparsableDebug(t *testing.T) {
	t.Setenv("DEBUG", "not-a-number")
	s := FromEnv(Default())
	assert.Equal(t, 0, s.DebugLevel)
}

func TestLoadFileMissingIsNotAnError(t *testing.T) {
	s, err := LoadFile(Default(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestLoadFileOverlaysSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corvid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("debugLevel: 2\nmaxRecursion: 128\n"), 0o644))

	s, err := LoadFile(Default(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, s.DebugLevel)
	assert.Equal(t, 128, s.MaxRecursion)
}
