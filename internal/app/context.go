package app

import (
	"forgelight/internal/config"
	"forgelight/internal/graphics"
	"forgelight/internal/profiling"
	"forgelight/pkg/camera"
	"forgelight/pkg/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// Context is the state shared between the frame loop and a variant
type Context struct {
	Config  *config.Config
	Cameras *camera.Registry
	Root    *scene.Node
	Light   graphics.Light
	Profile *profiling.Frame

	// Time is seconds since the loop started
	Time float64
	// Aspect is the framebuffer width over height
	Aspect float32
}

// NewContext builds one camera per configured distance, all orbiting the
// origin, and an empty scene root
func NewContext(cfg *config.Config) *Context {
	reg := camera.NewRegistry()
	for _, d := range cfg.Camera.Distances {
		reg.Add(NewCamera(cfg.Camera, d))
	}
	return &Context{
		Config:  cfg,
		Cameras: reg,
		Root:    scene.NewNode("root"),
		Light: graphics.Light{
			Color:     mgl32.Vec3{1, 1, 1},
			Intensity: 1,
		},
		Profile: profiling.NewFrame(),
		Aspect:  cfg.AspectRatio(),
	}
}

// NewCamera creates an orbital camera with the configured lens
func NewCamera(c config.Camera, distance float32) *camera.Orbital {
	cam := camera.NewOrbital(mgl32.Vec3{}, distance)
	cam.FOV = c.FOV
	cam.NearPlane = c.Near
	cam.FarPlane = c.Far
	cam.OrthoSize = c.OrthoSize
	cam.MinDistance = c.MinDistance
	cam.Zoom(0)
	if c.Projection == config.ProjectionOrthographic {
		cam.SetProjection(camera.Orthographic)
	}
	return cam
}

// Camera returns the active camera
func (c *Context) Camera() *camera.Orbital {
	return c.Cameras.Active()
}

// View returns the active camera's view matrix
func (c *Context) View() mgl32.Mat4 {
	if cam := c.Camera(); cam != nil {
		return cam.ViewMatrix()
	}
	return mgl32.Ident4()
}

// Projection returns the active camera's projection for the current aspect
func (c *Context) Projection() mgl32.Mat4 {
	if cam := c.Camera(); cam != nil {
		return cam.ProjectionMatrix(c.Aspect)
	}
	return mgl32.Ident4()
}

// CameraPos returns the active camera's eye position
func (c *Context) CameraPos() mgl32.Vec3 {
	if cam := c.Camera(); cam != nil {
		return cam.Position()
	}
	return mgl32.Vec3{}
}

// SetFramebufferSize updates the aspect ratio. Zero heights are ignored
// so a minimized window keeps its last projection.
func (c *Context) SetFramebufferSize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	c.Aspect = float32(width) / float32(height)
	return true
}
