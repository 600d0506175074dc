package config

import (
	"os"
	"path/filepath"
	"testing"

	"torrentmeta/bencode"

	"github.com/stretchr/testify/assert"
)

func TestReadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte("mode: lenient\nmax_depth: 16\nworkers: 2\n"), 0644)
	assert.NoError(t, err)

	cfg, err := ReadConfigFromFile(path)
	if assert.NoError(t, err) {
		assert.Equal(t, "lenient", cfg.Mode)
		assert.Equal(t, 16, cfg.MaxDepth)
		assert.Equal(t, 2, cfg.Workers)
		// Unset fields keep defaults.
		assert.Equal(t, 256, cfg.QueueSize)
	}
}

func TestReadConfigFromFile_Missing(t *testing.T) {
	_, err := ReadConfigFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDecodeOptions(t *testing.T) {
	cfg := Default()
	assert.Equal(t, bencode.ModeStrict, cfg.DecodeOptions().Mode)

	cfg.Mode = "lenient"
	cfg.MaxDepth = 8
	opts := cfg.DecodeOptions()
	assert.Equal(t, bencode.ModeLenient, opts.Mode)
	assert.Equal(t, 8, opts.MaxDepth)
}
