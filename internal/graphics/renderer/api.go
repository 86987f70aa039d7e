package renderer

import (
	"forgelight/internal/graphics"
	"forgelight/pkg/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderContext provides shared per-frame state for all renderables
type RenderContext struct {
	Root      *scene.Node
	View      mgl32.Mat4
	Proj      mgl32.Mat4
	CameraPos mgl32.Vec3
	Light     graphics.Light
	Time      float64
	DT        float64
}

// Renderable defines the lifecycle of a render pass
type Renderable interface {
	Init() error
	Render(ctx RenderContext)
	Dispose()
	SetViewport(width, height int)
}

// ProgramOwner is implemented by passes whose programs take part in camera
// block binding and shader hot reload
type ProgramOwner interface {
	Programs() []*graphics.Program
}
