package scenegraph

import (
	"forgelight/internal/graphics"
	renderer "forgelight/internal/graphics/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

// Uniforms shared by every lit program
const (
	UniformLightPos   = "lightPos"
	UniformLightColor = "lightColor"
	UniformViewPos    = "viewPos"
	UniformTime       = "time"
)

// Tuning changes the light one program sees. Intensity replaces the light's
// intensity when positive; MinFlicker raises the flicker floor.
type Tuning struct {
	Intensity  float32
	MinFlicker float32
}

// Apply returns l as seen through t
func (t Tuning) Apply(l graphics.Light) graphics.Light {
	if t.Intensity > 0 {
		l.Intensity = t.Intensity
	}
	if l.Flicker != 0 && l.Flicker < t.MinFlicker {
		l.Flicker = t.MinFlicker
	}
	return l
}

// SceneGraph draws the transform tree of the render context. Programs are
// owned by the pass; meshes belong to the scene.
type SceneGraph struct {
	programs []*graphics.Program
	tuning   map[*graphics.Program]Tuning
}

// NewSceneGraph creates a pass that feeds the light to programs before
// drawing the tree
func NewSceneGraph(programs ...*graphics.Program) *SceneGraph {
	return &SceneGraph{
		programs: programs,
		tuning:   make(map[*graphics.Program]Tuning),
	}
}

// Tune changes the light seen by one program
func (g *SceneGraph) Tune(p *graphics.Program, t Tuning) {
	g.tuning[p] = t
}

func (g *SceneGraph) Name() string { return "scenegraph" }

func (g *SceneGraph) Init() error { return nil }

// Render pushes the frame's light and eye position to every program, then
// draws the tree from the root
func (g *SceneGraph) Render(ctx renderer.RenderContext) {
	for _, p := range g.programs {
		light := g.tuning[p].Apply(ctx.Light)
		p.Bind()
		p.SetVector3(UniformLightPos, light.Position)
		p.SetVector3(UniformLightColor, light.Radiance())
		p.SetVector3(UniformViewPos, ctx.CameraPos)
		p.SetFloat(UniformTime, float32(ctx.Time))
		p.Unbind()
	}

	if ctx.Root != nil {
		ctx.Root.Draw(mgl32.Ident4())
	}
}

func (g *SceneGraph) SetViewport(width, height int) {}

func (g *SceneGraph) Programs() []*graphics.Program { return g.programs }

// Dispose deletes the programs
func (g *SceneGraph) Dispose() {
	for _, p := range g.programs {
		p.Dispose()
	}
	g.programs = nil
}
