package app

import (
	"testing"
	"time"

	"forgelight/internal/config"
	"forgelight/internal/input"
	"forgelight/pkg/camera"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContext(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.FOV = 45
	ctx := NewContext(cfg)

	require.Equal(t, 2, ctx.Cameras.Len())
	assert.Equal(t, float32(10), ctx.Cameras.At(0).Distance())
	assert.Equal(t, float32(15), ctx.Cameras.At(1).Distance())
	assert.Equal(t, float32(45), ctx.Camera().FOV)
	assert.Equal(t, 1, ctx.Root.Len())
	assert.InDelta(t, 800.0/600.0, ctx.Aspect, 1e-6)
	eye := ctx.CameraPos()
	assert.InDeltaSlice(t, []float32{0, 0, 10}, eye[:], 1e-5)
}

func TestNewCameraClampsToMinDistance(t *testing.T) {
	c := config.Default().Camera
	c.MinDistance = 3
	cam := NewCamera(c, 1)
	assert.Equal(t, float32(3), cam.Distance())
}

func TestNewCameraStartsInConfiguredProjection(t *testing.T) {
	c := config.Default().Camera
	assert.Equal(t, camera.Perspective, NewCamera(c, 10).Projection())

	c.Projection = config.ProjectionOrthographic
	assert.Equal(t, camera.Orthographic, NewCamera(c, 10).Projection())
}

func TestContextWithoutCameras(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.Distances = nil
	ctx := NewContext(cfg)
	assert.Equal(t, mgl32.Ident4(), ctx.View())
	assert.Equal(t, mgl32.Ident4(), ctx.Projection())
	assert.Equal(t, mgl32.Vec3{}, ctx.CameraPos())

	cmd := HandleControls(ctx, input.NewInputManager())
	assert.Equal(t, Command{}, cmd)
}

func TestSetFramebufferSize(t *testing.T) {
	ctx := NewContext(config.Default())
	assert.True(t, ctx.SetFramebufferSize(1000, 500))
	assert.Equal(t, float32(2), ctx.Aspect)
	assert.False(t, ctx.SetFramebufferSize(1000, 0))
	assert.Equal(t, float32(2), ctx.Aspect)
}

func TestControlsSwitchCamera(t *testing.T) {
	ctx := NewContext(config.Default())
	im := input.NewInputManager()

	im.HandleKeyEvent(glfw.KeyC, glfw.Press)
	cmd := HandleControls(ctx, im)
	assert.True(t, cmd.ViewChanged)
	assert.True(t, cmd.ProjectionChanged)
	assert.Equal(t, 1, ctx.Cameras.ActiveIndex())

	// holding C does not switch again
	im.PostUpdate()
	HandleControls(ctx, im)
	assert.Equal(t, 1, ctx.Cameras.ActiveIndex())

	im.HandleKeyEvent(glfw.KeyC, glfw.Release)
	im.PostUpdate()
	im.HandleKeyEvent(glfw.KeyC, glfw.Press)
	HandleControls(ctx, im)
	assert.Equal(t, 0, ctx.Cameras.ActiveIndex())
}

func TestControlsOrbitNeedsRightButton(t *testing.T) {
	ctx := NewContext(config.Default())
	im := input.NewInputManager()

	im.HandleCursorPos(100, 100)
	im.HandleCursorPos(280, 100)
	cmd := HandleControls(ctx, im)
	assert.False(t, cmd.ViewChanged)
	assert.Equal(t, mgl32.QuatIdent(), ctx.Camera().Orientation())

	im.PostUpdate()
	im.HandleMouseButtonEvent(glfw.MouseButtonRight, glfw.Press)
	im.HandleCursorPos(460, 100)
	cmd = HandleControls(ctx, im)
	assert.True(t, cmd.ViewChanged)

	// 180 px at 0.5 deg/px is a -90 degree yaw: the eye swings to -X
	eye := ctx.CameraPos()
	assert.InDeltaSlice(t, []float32{-10, 0, 0}, eye[:], 1e-4)
}

func TestControlsZoom(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.ZoomStep = 2
	ctx := NewContext(cfg)
	im := input.NewInputManager()

	im.HandleScroll(0, 1)
	cmd := HandleControls(ctx, im)
	assert.True(t, cmd.ViewChanged)
	assert.Equal(t, float32(8), ctx.Camera().Distance())

	im.PostUpdate()
	im.HandleScroll(0, 100)
	HandleControls(ctx, im)
	assert.Equal(t, cfg.Camera.MinDistance, ctx.Camera().Distance())
}

func TestControlsToggleProjectionOnlyActive(t *testing.T) {
	ctx := NewContext(config.Default())
	im := input.NewInputManager()

	im.HandleKeyEvent(glfw.KeyP, glfw.Press)
	cmd := HandleControls(ctx, im)
	assert.True(t, cmd.ProjectionChanged)
	assert.False(t, cmd.ViewChanged)
	assert.Equal(t, camera.Orthographic, ctx.Cameras.At(0).Projection())
	assert.Equal(t, camera.Perspective, ctx.Cameras.At(1).Projection())
}

func TestControlsQuitAndReload(t *testing.T) {
	ctx := NewContext(config.Default())
	im := input.NewInputManager()

	im.HandleKeyEvent(glfw.KeyEscape, glfw.Press)
	im.HandleKeyEvent(glfw.KeyR, glfw.Press)
	cmd := HandleControls(ctx, im)
	assert.True(t, cmd.Quit)
	assert.True(t, cmd.Reload)
}

type recordingSink struct {
	views, projections []mgl32.Mat4
}

func (s *recordingSink) SetView(m mgl32.Mat4)       { s.views = append(s.views, m) }
func (s *recordingSink) SetProjection(m mgl32.Mat4) { s.projections = append(s.projections, m) }

func TestPushCameraOnlyChangedMatrices(t *testing.T) {
	ctx := NewContext(config.Default())
	sink := &recordingSink{}

	pushCamera(sink, ctx, Command{})
	assert.Empty(t, sink.views)
	assert.Empty(t, sink.projections)

	im := input.NewInputManager()
	im.HandleScroll(0, 1)
	pushCamera(sink, ctx, HandleControls(ctx, im))
	require.Len(t, sink.views, 1)
	assert.Empty(t, sink.projections)
	assert.Equal(t, ctx.View(), sink.views[0])

	im.PostUpdate()
	im.HandleKeyEvent(glfw.KeyP, glfw.Press)
	pushCamera(sink, ctx, HandleControls(ctx, im))
	assert.Len(t, sink.views, 1)
	require.Len(t, sink.projections, 1)
	assert.Equal(t, ctx.Projection(), sink.projections[0])
}

func TestFPSLimiter(t *testing.T) {
	assert.Equal(t, time.Duration(0), NewFPSLimiter(0).Frame())
	assert.Equal(t, 10*time.Millisecond, NewFPSLimiter(100).Frame())

	f := NewFPSLimiter(200)
	start := time.Now()
	for i := 0; i < 5; i++ {
		f.Wait()
	}
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	unlimited := NewFPSLimiter(0)
	start = time.Now()
	unlimited.Wait()
	assert.Less(t, time.Since(start), 5*time.Millisecond)
}
