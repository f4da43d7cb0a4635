package platform

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/pointfield/engine/core"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

type Platform struct {
	Window    *glfw.Window
	events    *core.EventSystem
	startTime float64
}

// New creates a platform that reports window input through events.
func New(events *core.EventSystem) (*Platform, error) {
	return &Platform{
		Window: nil,
		events: events,
	}, nil
}

// Startup opens the window and makes its OpenGL 4.3 core context current
// on the calling thread.
func (p *Platform) Startup(applicationName string, x uint32, y uint32, width uint32, height uint32) error {
	if err := glfw.Init(); err != nil {
		core.LogFatal("failed to initialize glfw: %s", err)
		return err
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(int(width), int(height), applicationName, nil, nil)
	if err != nil {
		core.LogFatal("failed to create window: %s", err)
		glfw.Terminate()
		return err
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)
	p.Window = window

	p.Window.SetKeyCallback(p.keyCallback)
	p.Window.SetFramebufferSizeCallback(p.framebufferSizeCallback)
	p.Window.SetCloseCallback(p.closeCallback)
	p.Window.SetPos(int(x), int(y))
	p.Window.Show()

	p.startTime = glfw.GetTime()

	return nil
}

// FramebufferSize is the drawable size in pixels.
func (p *Platform) FramebufferSize() (uint32, uint32) {
	w, h := p.Window.GetFramebufferSize()
	return uint32(w), uint32(h)
}

func (p *Platform) Shutdown() error {
	if p.Window != nil {
		p.Window.Destroy()
		p.Window = nil
	}
	glfw.Terminate()
	return nil
}

// PumpMessages processes pending window events and fires their callbacks.
func (p *Platform) PumpMessages() {
	glfw.PollEvents()
}

func (p *Platform) SwapBuffers() {
	p.Window.SwapBuffers()
}

func (p *Platform) ShouldClose() bool {
	return p.Window.ShouldClose()
}

// GetAbsoluteTime returns seconds since Startup.
func (p *Platform) GetAbsoluteTime() float64 {
	return glfw.GetTime() - p.startTime
}

func (p *Platform) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyUnknown {
		return
	}
	context := core.EventContext{}
	context.Data.U16[0] = uint16(key)

	switch action {
	case glfw.Press:
		p.events.Fire(core.EVENT_CODE_KEY_PRESSED, p, context)
	case glfw.Release:
		p.events.Fire(core.EVENT_CODE_KEY_RELEASED, p, context)
	}
}

func (p *Platform) framebufferSizeCallback(w *glfw.Window, width, height int) {
	context := core.EventContext{}
	context.Data.U32[0] = uint32(width)
	context.Data.U32[1] = uint32(height)
	p.events.Fire(core.EVENT_CODE_RESIZED, p, context)
}

func (p *Platform) closeCallback(w *glfw.Window) {
	p.events.Fire(core.EVENT_CODE_APPLICATION_QUIT, p, core.EventContext{})
}
