package engine

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/pointfield/engine/renderer"
	"github.com/spaghettifunk/pointfield/engine/renderer/metadata"
)

var ErrAssetsNotFound = errors.New("assets directory not found")

type ApplicationConfig struct {
	Application WindowConfig     `toml:"application"`
	Assets      AssetsConfig     `toml:"assets"`
	Renderer    RendererConfig   `toml:"renderer"`
	Simulation  SimulationConfig `toml:"simulation"`
}

type WindowConfig struct {
	// The application name used in windowing, if applicable.
	Name string `toml:"name"`
	// Window starting position x axis, if applicable.
	StartPosX uint32 `toml:"start_pos_x"`
	// Window starting position y axis, if applicable.
	StartPosY uint32 `toml:"start_pos_y"`
	// Window starting width, if applicable.
	StartWidth uint32 `toml:"start_width"`
	// Window starting height, if applicable.
	StartHeight uint32 `toml:"start_height"`
	LogLevel    string `toml:"log_level"`
}

type AssetsConfig struct {
	// Empty means look for an assets directory next to the working directory.
	Path string `toml:"path"`
	// Reload shaders when their sources change.
	Watch bool `toml:"watch"`
	FlipY bool `toml:"flip_y"`
}

type RendererConfig struct {
	// One of the renderer.RendererType names.
	Backend     string     `toml:"backend"`
	ClearColour [4]float32 `toml:"clear_colour"`
	PointSize   float32    `toml:"point_size"`
	DepthTest   bool       `toml:"depth_test"`
	CullFace    bool       `toml:"cull_face"`
}

type SimulationConfig struct {
	EntityCount uint32 `toml:"entity_count"`
	// Simulation steps per second.
	TickRate float64 `toml:"tick_rate"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Application: WindowConfig{
			Name:        "Pointfield",
			StartPosX:   100,
			StartPosY:   100,
			StartWidth:  1280,
			StartHeight: 720,
			LogLevel:    "info",
		},
		Assets: AssetsConfig{
			Watch: true,
		},
		Renderer: RendererConfig{
			Backend:     "opengl",
			ClearColour: [4]float32{0, 0, 0, 1},
			PointSize:   5,
			DepthTest:   true,
			CullFace:    true,
		},
		Simulation: SimulationConfig{
			EntityCount: 256,
			TickRate:    60,
		},
	}
}

// LoadApplicationConfig overlays the TOML file at path on the defaults.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	config := DefaultApplicationConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(config); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("invalid config %s: %s", path, strict.String())
		}
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, config.Validate()
}

func (c *ApplicationConfig) Validate() error {
	if c.Application.StartWidth == 0 || c.Application.StartHeight == 0 {
		return fmt.Errorf("window size %dx%d must not be zero", c.Application.StartWidth, c.Application.StartHeight)
	}
	if c.Simulation.TickRate <= 0 {
		return fmt.Errorf("tick rate must be positive, got %v", c.Simulation.TickRate)
	}
	if _, err := renderer.ParseRendererType(c.Renderer.Backend); err != nil {
		return err
	}
	if c.Renderer.PointSize <= 0 {
		return fmt.Errorf("point size must be positive, got %v", c.Renderer.PointSize)
	}
	return nil
}

// BackendConfig is the pipeline state the renderer backend starts with.
func (c *ApplicationConfig) BackendConfig(width, height uint32) metadata.BackendConfig {
	return metadata.BackendConfig{
		Width:       width,
		Height:      height,
		ClearColour: c.Renderer.ClearColour,
		PointSize:   c.Renderer.PointSize,
		DepthTest:   c.Renderer.DepthTest,
		CullFace:    c.Renderer.CullFace,
	}
}

// ResolveAssetsDir returns the configured assets path, or searches from wd
// when none is configured.
func (c *ApplicationConfig) ResolveAssetsDir(wd string) (string, error) {
	if c.Assets.Path != "" {
		return c.Assets.Path, nil
	}
	return FindAssetsDir(wd)
}

// FindAssetsDir looks for an assets directory in wd and up to two parents.
func FindAssetsDir(wd string) (string, error) {
	for _, candidate := range []string{
		filepath.Join(wd, "assets"),
		filepath.Join(wd, "..", "assets"),
		filepath.Join(wd, "..", "..", "assets"),
	} {
		if s, err := os.Stat(candidate); err == nil && s.IsDir() {
			return filepath.Clean(candidate), nil
		}
	}
	return "", fmt.Errorf("%w from %s", ErrAssetsNotFound, wd)
}
