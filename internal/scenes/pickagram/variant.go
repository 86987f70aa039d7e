package pickagram

import (
	"forgelight/internal/app"
	"forgelight/internal/graphics"
	"forgelight/internal/graphics/renderables/scenegraph"
	renderer "forgelight/internal/graphics/renderer"
	"forgelight/internal/input"
	"forgelight/pkg/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// Variant is the puzzle demo
type Variant struct {
	mesh   *graphics.Mesh
	pieces []*scene.Node
}

// New creates the puzzle variant
func New() *Variant {
	return &Variant{}
}

func (v *Variant) Name() string { return "pickagram" }

// Pieces returns the piece nodes in key order
func (v *Variant) Pieces() []*scene.Node { return v.pieces }

// Setup loads the pieces model and returns the scene pass
func (v *Variant) Setup(ctx *app.Context) ([]renderer.Renderable, error) {
	cfg := ctx.Config

	mesh, _, err := graphics.LoadMesh(cfg.Path(cfg.Assets.Pieces))
	if err != nil {
		return nil, err
	}
	v.mesh = mesh

	lit, err := graphics.NewProgram(cfg.ShaderPath("blinnphong.vert"), cfg.ShaderPath("blinnphong.frag"))
	if err != nil {
		v.Dispose()
		return nil, err
	}

	v.pieces, err = Assemble(ctx.Root, mesh, mesh.SubmeshCount(), lit, cfg.Animation.PieceSpeed)
	if err != nil {
		lit.Dispose()
		v.Dispose()
		return nil, err
	}

	ctx.Light = graphics.Light{
		Position:  mgl32.Vec3{0, 3, 5},
		Color:     mgl32.Vec3{1, 1, 1},
		Intensity: 1,
	}

	return []renderer.Renderable{scenegraph.NewSceneGraph(lit)}, nil
}

// Update turns key presses into animation commands
func (v *Variant) Update(ctx *app.Context, im *input.InputManager, dt float64) {
	HandleKeys(v.pieces, im)
}

// HandleKeys maps the arrow keys to all pieces and the number keys to
// single pieces
func HandleKeys(pieces []*scene.Node, im *input.InputManager) {
	switch {
	case im.JustPressed(input.ActionAnimateStop):
		CommandAll(pieces, scene.Stopped)
	case im.JustPressed(input.ActionAnimateForward):
		CommandAll(pieces, scene.ToTarget)
	case im.JustPressed(input.ActionAnimateBackward):
		CommandAll(pieces, scene.ToStart)
	}

	for i, a := range input.PieceActions {
		if i < len(pieces) && im.JustPressed(a) {
			Toggle(pieces[i])
		}
	}
}

func (v *Variant) Dispose() {
	if v.mesh != nil {
		v.mesh.Dispose()
		v.mesh = nil
	}
}
