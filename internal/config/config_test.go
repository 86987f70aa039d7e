package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "forgelight.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[window]
width = 1280
title = "fire"

[camera]
distances = [4, 8, 12]
fov = 45
projection = "orthographic"

[animation]
piece_speed = 2.0

[log]
level = "debug"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, "fire", cfg.Window.Title)
	assert.Equal(t, []float32{4, 8, 12}, cfg.Camera.Distances)
	assert.Equal(t, float32(45), cfg.Camera.FOV)
	assert.Equal(t, ProjectionOrthographic, cfg.Camera.Projection)
	assert.Equal(t, float32(100), cfg.Camera.Far)
	assert.Equal(t, float32(2), cfg.Animation.PieceSpeed)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "[window]\nfullscreen = true\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsMalformed(t *testing.T) {
	path := writeConfig(t, "[window\nwidth = ")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoadClampsValues(t *testing.T) {
	path := writeConfig(t, `
[window]
width = 10
height = -5
fps_limit = 5000

[camera]
distances = [0.01, 20]
min_distance = -1
near = 0
far = -3
ortho_size = 0
fov = 200
projection = "isometric"

[animation]
piece_speed = -1
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.Window.Width)
	assert.Equal(t, 64, cfg.Window.Height)
	assert.Equal(t, 1000, cfg.Window.FPSLimit)
	assert.Equal(t, float32(0.1), cfg.Camera.MinDistance)
	assert.Equal(t, []float32{0.1, 20}, cfg.Camera.Distances)
	assert.Equal(t, float32(1), cfg.Camera.Near)
	assert.Equal(t, float32(100), cfg.Camera.Far)
	assert.Equal(t, float32(2), cfg.Camera.OrthoSize)
	assert.Equal(t, float32(30), cfg.Camera.FOV)
	assert.Equal(t, ProjectionPerspective, cfg.Camera.Projection)
	assert.Equal(t, float32(0.5), cfg.Animation.PieceSpeed)
}

func TestLoadEmptyDistancesFallBack(t *testing.T) {
	path := writeConfig(t, "[camera]\ndistances = []\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []float32{10, 15}, cfg.Camera.Distances)
}

func TestPaths(t *testing.T) {
	cfg := Default()
	assert.Equal(t, filepath.Join("assets", "models", "stone.glb"), cfg.Path(cfg.Assets.Stone))
	assert.Equal(t, filepath.Join("assets", "shaders", "lit.vert"), cfg.ShaderPath("lit.vert"))
	assert.Equal(t, "/abs/sky.png", cfg.Path("/abs/sky.png"))
	assert.InDelta(t, 800.0/600.0, cfg.AspectRatio(), 1e-6)
}

func TestSampleConfigMatchesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "forgelight.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
