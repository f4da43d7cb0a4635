package systems

import (
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spaghettifunk/pointfield/engine/core"
	"github.com/spaghettifunk/pointfield/engine/renderer"
	"github.com/spaghettifunk/pointfield/engine/renderer/metadata"
)

const TextureDir = "textures"

// AssetSource is the view of the asset directory the systems load from.
type AssetSource interface {
	ImageSource
	FS() fs.FS
	Assets(resourceType metadata.ResourceType) []string
}

type SystemManagerConfig struct {
	Shaders  metadata.ShaderSet
	Renderer RendererSystemConfig
	// Flip images vertically on load.
	FlipY bool
}

type SystemManager struct {
	config  *SystemManagerConfig
	backend renderer.Backend
	assets  AssetSource

	RendererSystem *RendererSystem
	// Every non-fatal load problem, in the order it was found.
	Diagnostics []error
}

/**
 * @brief Loads every shader and texture and assembles the renderer system.
 * A broken texture or a stray shader file is a diagnostic; a missing
 * program is fatal.
 */
func NewSystemManager(config *SystemManagerConfig, backend renderer.Backend, assets AssetSource) (*SystemManager, error) {
	if config.Shaders == nil {
		config.Shaders = metadata.BuiltinShaders
	}
	sm := &SystemManager{
		config:  config,
		backend: backend,
		assets:  assets,
	}

	layout, err := metadata.DefaultLayout()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	programs, diagnostics := LoadShaders(backend, assets.FS(), config.Shaders)
	sm.diagnose(diagnostics)
	for _, p := range programs {
		core.LogInfo("shader %s loaded with %d uniforms", p.Name(), len(p.Metadata().RequiredUniforms))
	}

	ss, err := NewShaderSystem(backend, config.Shaders, programs)
	if err != nil {
		for _, p := range programs {
			p.Destroy()
		}
		return nil, err
	}

	rs, err := NewRendererSystem(&config.Renderer, backend, layout, ss)
	if err != nil {
		_ = ss.Shutdown()
		return nil, err
	}
	sm.RendererSystem = rs

	images, diagnostics := LoadImages(assets, TextureDir, sm.texturePaths(), &metadata.ImageResourceParams{FlipY: config.FlipY})
	sm.diagnose(diagnostics)
	sm.diagnose(LoadTextures(rs, images))
	core.LogInfo("%d textures loaded", len(rs.TextureMetadata()))

	return sm, nil
}

func (sm *SystemManager) diagnose(diagnostics []error) {
	for _, d := range diagnostics {
		core.LogError(d.Error())
	}
	sm.Diagnostics = append(sm.Diagnostics, diagnostics...)
}

func (sm *SystemManager) texturePaths() []string {
	var paths []string
	for _, p := range sm.assets.Assets(metadata.ResourceTypeImage) {
		if strings.HasPrefix(p, TextureDir+"/") {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}

// ReloadShader rebuilds one program from the current sources.
func (sm *SystemManager) ReloadShader(id metadata.ShaderIdentifier) error {
	if err := sm.RendererSystem.Shaders().Reload(sm.assets.FS(), id); err != nil {
		core.LogError("shader reload failed, keeping the previous program: %s", err)
		return err
	}
	core.LogInfo("shader %d reloaded", id)
	return nil
}

// OnAssetChanged reloads the program owning assetPath, if any. It reports
// whether a program was reloaded.
func (sm *SystemManager) OnAssetChanged(assetPath string) bool {
	d, ok := sm.config.Shaders.Owner(path.Clean(assetPath))
	if !ok {
		return false
	}
	return sm.ReloadShader(d.ID) == nil
}

func (sm *SystemManager) OnResize(width, height uint32) {
	sm.RendererSystem.UpdateScreenDimensions(metadata.Dimensions{Width: width, Height: height})
}

func (sm *SystemManager) Shutdown() error {
	if sm.RendererSystem == nil {
		return nil
	}
	return sm.RendererSystem.Shutdown()
}
