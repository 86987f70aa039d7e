// Package app runs the window, the frame loop and the shared camera controls
// around a Variant.
package app

import (
	"path/filepath"
	"time"

	"forgelight/internal/config"
	"forgelight/internal/graphics"
	renderer "forgelight/internal/graphics/renderer"
	"forgelight/internal/input"
	"forgelight/internal/logging"
	"forgelight/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// CameraBinding is the uniform buffer binding point of the camera block
const CameraBinding = 0

// cameraSink receives camera matrices, usually a graphics.CameraBlock
type cameraSink interface {
	SetView(view mgl32.Mat4)
	SetProjection(proj mgl32.Mat4)
}

type App struct {
	window       *glfw.Window
	inputManager *input.InputManager

	ctx      *Context
	variant  Variant
	renderer *renderer.Renderer
	camera   *graphics.CameraBlock
	watcher  *graphics.Watcher

	fpsLimiter *FPSLimiter
	start      time.Time
	lastTime   time.Time
}

// New sets up the variant's scene and passes on window. The GL context of
// window must be current.
func New(window *glfw.Window, im *input.InputManager, cfg *config.Config, v Variant) (*App, error) {
	ctx := NewContext(cfg)
	ctx.SetFramebufferSize(window.GetFramebufferSize())

	passes, err := v.Setup(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "setup %s", v.Name())
	}

	r, err := renderer.NewRenderer(ctx.Profile, passes...)
	if err != nil {
		v.Dispose()
		return nil, err
	}

	a := &App{
		window:       window,
		inputManager: im,
		ctx:          ctx,
		variant:      v,
		renderer:     r,
		camera:       graphics.NewCameraBlock(CameraBinding),
		fpsLimiter:   NewFPSLimiter(cfg.Window.FPSLimit),
	}
	a.camera.Attach(r.Programs()...)
	pushCamera(a.camera, ctx, Command{ViewChanged: true, ProjectionChanged: true})
	r.UpdateViewport(window.GetFramebufferSize())

	a.watchShaders()

	im.SetCallbacks(window)
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		a.resize(width, height)
	})

	logging.Info("scene ready", "variant", v.Name(), "nodes", ctx.Root.Len(), "cameras", ctx.Cameras.Len())
	return a, nil
}

// Context exposes the shared state
func (a *App) Context() *Context { return a.ctx }

func (a *App) Run() {
	a.start = time.Now()
	a.lastTime = a.start
	for !a.window.ShouldClose() {
		a.tick()
	}
}

func (a *App) tick() {
	a.ctx.Profile.Reset()
	startTick := time.Now()
	dt := startTick.Sub(a.lastTime).Seconds()
	a.lastTime = startTick
	a.ctx.Time = startTick.Sub(a.start).Seconds()

	glfw.PollEvents()

	cmd := HandleControls(a.ctx, a.inputManager)
	if cmd.Quit {
		a.window.SetShouldClose(true)
	}
	if cmd.Reload {
		a.reloadShaders(nil)
	}
	if a.watcher != nil {
		if changed := a.watcher.Pending(); len(changed) > 0 {
			a.reloadShaders(changed)
		}
	}

	func() {
		defer a.ctx.Profile.Track("app.Update")()
		a.variant.Update(a.ctx, a.inputManager, dt)
		a.ctx.Root.UpdateAnimation(float32(dt))
	}()

	pushCamera(a.camera, a.ctx, cmd)

	a.renderer.Render(renderer.RenderContext{
		Root:      a.ctx.Root,
		View:      a.ctx.View(),
		Proj:      a.ctx.Projection(),
		CameraPos: a.ctx.CameraPos(),
		Light:     a.ctx.Light,
		Time:      a.ctx.Time,
		DT:        dt,
	})

	a.window.SwapBuffers()

	if d := time.Since(startTick); d > profiling.SlowFrame {
		logging.Debug("slow frame", "took", d, "top", a.ctx.Profile.TopN(5))
	}

	a.inputManager.PostUpdate()
	a.fpsLimiter.Wait()
}

// pushCamera uploads whichever matrices cmd reports as changed
func pushCamera(sink cameraSink, ctx *Context, cmd Command) {
	if cmd.ViewChanged {
		sink.SetView(ctx.View())
	}
	if cmd.ProjectionChanged {
		sink.SetProjection(ctx.Projection())
	}
}

func (a *App) resize(width, height int) {
	if !a.ctx.SetFramebufferSize(width, height) {
		return
	}
	a.renderer.UpdateViewport(width, height)
	a.camera.SetProjection(a.ctx.Projection())
}

func (a *App) watchShaders() {
	w, err := graphics.NewWatcher()
	if err != nil {
		logging.Warn("shader hot reload disabled", "err", err)
		return
	}
	for _, p := range a.renderer.Programs() {
		if err := w.Watch(p.Sources()...); err != nil {
			logging.Warn("shader hot reload disabled", "err", err)
			w.Close()
			return
		}
	}
	a.watcher = w
}

// reloadShaders rebuilds the programs using changed files, or all of them
// when changed is nil
func (a *App) reloadShaders(changed []string) {
	programs := a.renderer.Programs()
	if changed == nil {
		for _, p := range programs {
			changed = append(changed, p.Sources()...)
		}
		changed = absPaths(changed)
	}
	graphics.ReloadChanged(changed, programs...)
}

// Dispose releases everything in reverse order of creation
func (a *App) Dispose() {
	if a.watcher != nil {
		a.watcher.Close()
	}
	a.camera.Dispose()
	a.renderer.Dispose()
	a.variant.Dispose()
}

func absPaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if abs, err := filepath.Abs(p); err == nil {
			out = append(out, abs)
		}
	}
	return out
}
