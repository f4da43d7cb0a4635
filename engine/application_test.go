package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pointfield.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultApplicationConfigIsValid(t *testing.T) {
	config := DefaultApplicationConfig()
	require.NoError(t, config.Validate())

	backend := config.BackendConfig(640, 480)
	assert.Equal(t, uint32(640), backend.Width)
	assert.Equal(t, uint32(480), backend.Height)
	assert.Equal(t, config.Renderer.PointSize, backend.PointSize)
	assert.True(t, backend.DepthTest)
}

func TestLoadApplicationConfigOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
[application]
name = "bounce"
start_width = 800

[renderer]
clear_colour = [0.1, 0.2, 0.3, 1.0]
cull_face = false

[simulation]
tick_rate = 120.0
`)
	config, err := LoadApplicationConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "bounce", config.Application.Name)
	assert.Equal(t, uint32(800), config.Application.StartWidth)
	assert.Equal(t, uint32(720), config.Application.StartHeight)
	assert.Equal(t, [4]float32{0.1, 0.2, 0.3, 1.0}, config.Renderer.ClearColour)
	assert.False(t, config.Renderer.CullFace)
	assert.True(t, config.Renderer.DepthTest)
	assert.Equal(t, 120.0, config.Simulation.TickRate)
	assert.Equal(t, uint32(256), config.Simulation.EntityCount)
}

func TestLoadApplicationConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown key", body: "[application]\ncolour = 1\n"},
		{name: "unknown section", body: "[camera]\nfov = 90\n"},
		{name: "zero width", body: "[application]\nstart_width = 0\n"},
		{name: "zero tick rate", body: "[simulation]\ntick_rate = 0.0\n"},
		{name: "negative point size", body: "[renderer]\npoint_size = -1.0\n"},
		{name: "unknown backend", body: "[renderer]\nbackend = \"glide\"\n"},
		{name: "not toml", body: "this is = = not toml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadApplicationConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}

	_, err := LoadApplicationConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestFindAssetsDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "assets"), 0o755))
	nested := filepath.Join(root, "cmd", "tool")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	dir, err := FindAssetsDir(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "assets"), dir)

	dir, err = FindAssetsDir(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "assets"), dir)

	_, err = FindAssetsDir(t.TempDir())
	assert.ErrorIs(t, err, ErrAssetsNotFound)

	config := DefaultApplicationConfig()
	config.Assets.Path = "/opt/assets"
	dir, err = config.ResolveAssetsDir(root)
	require.NoError(t, err)
	assert.Equal(t, "/opt/assets", dir)
}
