package engine

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spaghettifunk/pointfield/engine/assets"
	"github.com/spaghettifunk/pointfield/engine/containers"
	"github.com/spaghettifunk/pointfield/engine/core"
	"github.com/spaghettifunk/pointfield/engine/platform"
	"github.com/spaghettifunk/pointfield/engine/renderer"
	"github.com/spaghettifunk/pointfield/engine/renderer/metadata"
	"github.com/spaghettifunk/pointfield/engine/renderer/opengl"
	"github.com/spaghettifunk/pointfield/engine/renderer/views"
	"github.com/spaghettifunk/pointfield/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

const maxTextureCount = 64

// Idle wait when the simulation has not published anything new.
const idleFrameWait = time.Millisecond

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	config        *ApplicationConfig
	isRunning     atomic.Bool
	isSuspended   bool
	events        *core.EventSystem
	platform      *platform.Platform
	backend       renderer.Backend
	assetManager  *assets.AssetManager
	systemManager *systems.SystemManager
	worldView     *views.WorldView
	snapshots     *containers.Mailbox[[]metadata.Entity]
	clock         *core.Clock
	metrics       *core.FrameMetrics
	width         uint32
	height        uint32

	stopSimulation context.CancelFunc
	simulationDone sync.WaitGroup
}

func New(g *Game) (*Engine, error) {
	if g.ApplicationConfig == nil {
		g.ApplicationConfig = DefaultApplicationConfig()
	}
	config := g.ApplicationConfig
	if err := config.Validate(); err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	if err := core.SetLogLevel(config.Application.LogLevel); err != nil {
		core.LogWarn("unknown log level %q, keeping %s", config.Application.LogLevel, core.GetLogLevel())
	}

	events := core.NewEventSystem()
	p, err := platform.New(events)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	factory := renderer.BackendFactory{}
	opengl.Register(factory)
	backendType, err := renderer.ParseRendererType(config.Renderer.Backend)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	backend, err := factory.New(backendType)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		config:       config,
		events:       events,
		platform:     p,
		backend:      backend,
		assetManager: assets.NewAssetManager(),
		snapshots:    containers.NewMailbox[[]metadata.Entity](),
		clock:        core.NewClock(),
		metrics:      core.NewFrameMetrics(),
		width:        config.Application.StartWidth,
		height:       config.Application.StartHeight,
	}, nil
}

// Initialize opens the window and loads every resource. It must run on the
// main goroutine, which then has to call Run.
func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	// register some events
	e.events.Register(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	e.events.Register(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)
	e.events.Register(core.EVENT_CODE_KEY_RELEASED, e, e.onKey)
	e.events.Register(core.EVENT_CODE_RESIZED, e, e.onResized)

	app := e.config.Application
	if err := e.platform.Startup(app.Name, app.StartPosX, app.StartPosY, app.StartWidth, app.StartHeight); err != nil {
		return err
	}
	// the framebuffer can differ from the window size on high density displays
	e.width, e.height = e.platform.FramebufferSize()

	if err := e.backend.Initialize(e.config.BackendConfig(e.width, e.height)); err != nil {
		return err
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	assetsDir, err := e.config.ResolveAssetsDir(wd)
	if err != nil {
		core.LogError(err.Error())
		return err
	}
	if err := e.assetManager.Initialize(assetsDir, e.config.Assets.Watch); err != nil {
		core.LogError(err.Error())
		return err
	}

	sm, err := systems.NewSystemManager(&systems.SystemManagerConfig{
		Shaders: metadata.BuiltinShaders,
		Renderer: systems.RendererSystemConfig{
			Screen: metadata.Dimensions{Width: e.width, Height: e.height},
			Geometry: systems.GeometrySystemConfig{
				MaxSlotCount: systems.DefaultSlotCount,
				Usage:        metadata.BufferUsageDynamic,
			},
			Textures: systems.TextureSystemConfig{MaxTextureCount: maxTextureCount},
		},
		FlipY: e.config.Assets.FlipY,
	}, e.backend, e.assetManager)
	if err != nil {
		core.LogError(err.Error())
		return err
	}
	e.systemManager = sm
	e.gameInstance.SystemManager = sm

	viewConfig := views.DefaultWorldViewConfig()
	viewConfig.PointSize = e.config.Renderer.PointSize
	e.worldView = views.NewWorldView(viewConfig, sm.RendererSystem)

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			return err
		}
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	return nil
}

// Run drives the frame loop until a quit is requested, then tears
// everything down. Rendering only happens on the calling goroutine.
func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return core.ErrEngineNotInitialized
	}
	e.currentStage = EngineStageRunning
	e.isRunning.Store(true)

	ctx, cancel := context.WithCancel(context.Background())
	e.stopSimulation = cancel
	simulation := NewSimulation(e.config.Simulation.TickRate, e.gameInstance.FnUpdate, e.snapshots, func(err error) {
		e.isRunning.Store(false)
	})
	e.simulationDone.Add(1)
	go func() {
		defer e.simulationDone.Done()
		simulation.Run(ctx)
	}()

	e.clock.Start()
	var runErr error
	for e.isRunning.Load() {
		e.platform.PumpMessages()
		if e.platform.ShouldClose() {
			e.isRunning.Store(false)
			break
		}
		e.drainAssetEvents()

		if e.isSuspended {
			time.Sleep(idleFrameWait)
			continue
		}

		entities, ok := e.snapshots.TryTake()
		if !ok {
			time.Sleep(idleFrameWait)
			continue
		}

		frameStart := e.platform.GetAbsoluteTime()
		if err := e.worldView.RenderFrame(entities); err != nil {
			core.LogError("render frame failed, shutting down: %s", err)
			runErr = err
			e.isRunning.Store(false)
			break
		}
		e.platform.SwapBuffers()

		if e.metrics.Update(e.platform.GetAbsoluteTime() - frameStart) {
			fps, frameTime := e.metrics.Frame()
			core.LogDebug("%.0f fps, %.3f ms/frame", fps, frameTime)
		}
	}
	e.clock.Stop()

	return errors.Join(runErr, e.teardown())
}

// Shutdown asks the frame loop to stop. It is safe to call from any goroutine.
func (e *Engine) Shutdown() error {
	e.isRunning.Store(false)
	return nil
}

func (e *Engine) drainAssetEvents() {
	for {
		select {
		case path := <-e.assetManager.Events():
			e.systemManager.OnAssetChanged(path)
		default:
			return
		}
	}
}

func (e *Engine) teardown() error {
	e.currentStage = EngineStageShuttingDown
	if e.stopSimulation != nil {
		e.stopSimulation()
	}
	e.simulationDone.Wait()

	var errs []error
	if e.gameInstance.FnShutdown != nil {
		errs = append(errs, e.gameInstance.FnShutdown())
	}
	errs = append(errs,
		e.worldView.OnDestroy(),
		e.systemManager.Shutdown(),
		e.backend.Shutdown(),
		e.assetManager.Shutdown(),
		e.events.Shutdown(),
		e.platform.Shutdown(),
	)
	e.currentStage = EngineStageUninitialized
	return errors.Join(errs...)
}

func (e *Engine) onEvent(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	switch code {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down")
		e.isRunning.Store(false)
		return true
	}
	return false
}

func (e *Engine) onKey(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	if code == core.EVENT_CODE_KEY_PRESSED && data.Data.U16[0] == core.KEY_ESCAPE {
		e.events.Fire(core.EVENT_CODE_APPLICATION_QUIT, nil, core.EventContext{})
		return true
	}
	return false
}

func (e *Engine) onResized(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	width, height := data.Data.U32[0], data.Data.U32[1]
	if width == e.width && height == e.height {
		return false
	}
	e.width, e.height = width, height

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("window minimized, suspending application")
		e.isSuspended = true
		return true
	}
	if e.isSuspended {
		core.LogInfo("window restored, resuming application")
		e.isSuspended = false
	}
	e.worldView.OnResize(width, height)
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(width, height); err != nil {
			core.LogError(err.Error())
		}
	}
	return false
}
