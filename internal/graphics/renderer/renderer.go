package renderer

import (
	"forgelight/internal/graphics"
	"forgelight/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"
)

// ClearColor is the background behind the skybox
var ClearColor = [4]float32{0.02, 0.02, 0.05, 1.0}

// Renderer orchestrates rendering via renderable passes, in order
type Renderer struct {
	renderables []Renderable
	profile     *profiling.Frame
}

// NewRenderer configures GL state and initializes every pass. If any pass
// fails, every pass is disposed.
func NewRenderer(profile *profiling.Frame, rs ...Renderable) (*Renderer, error) {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	if err := initPasses(rs); err != nil {
		return nil, err
	}
	return &Renderer{renderables: rs, profile: profile}, nil
}

// initPasses runs Init in order. Passes own resources from construction
// onwards, so a failure disposes all of them in reverse, not only the ones
// already initialized.
func initPasses(rs []Renderable) error {
	for i, r := range rs {
		if err := r.Init(); err != nil {
			for j := len(rs) - 1; j >= 0; j-- {
				rs[j].Dispose()
			}
			return errors.Wrapf(err, "init pass %d (%T)", i, r)
		}
	}
	return nil
}

// Programs collects the shader programs of every pass
func (r *Renderer) Programs() []*graphics.Program {
	var out []*graphics.Program
	for _, rd := range r.renderables {
		if po, ok := rd.(ProgramOwner); ok {
			out = append(out, po.Programs()...)
		}
	}
	return out
}

// Render clears the frame and runs every pass
func (r *Renderer) Render(ctx RenderContext) {
	gl.ClearColor(ClearColor[0], ClearColor[1], ClearColor[2], ClearColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	for _, renderable := range r.renderables {
		stop := r.profile.Track(passName(renderable))
		renderable.Render(ctx)
		stop()
	}
}

// UpdateViewport resizes the GL viewport and notifies every pass
func (r *Renderer) UpdateViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	for _, renderable := range r.renderables {
		renderable.SetViewport(width, height)
	}
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
	r.renderables = nil
}

type named interface {
	Name() string
}

func passName(r Renderable) string {
	if n, ok := r.(named); ok {
		return "renderer." + n.Name()
	}
	return "renderer.pass"
}
