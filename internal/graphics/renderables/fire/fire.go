package fire

import (
	"path/filepath"

	"forgelight/internal/graphics"
	renderer "forgelight/internal/graphics/renderer"
	"forgelight/internal/particles"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Shader file names inside the shader directory
const (
	VertShader = "fire.vert"
	GeomShader = "fire.geom"
	FragShader = "fire.frag"
)

const floatsPerParticle = 4

// Fire advances a particle simulation and draws it as additive billboards
type Fire struct {
	shaderDir string
	sim       *particles.Fire

	program *graphics.Program
	vao     uint32
	vbo     uint32
}

// NewFire creates a fire pass over sim
func NewFire(shaderDir string, sim *particles.Fire) *Fire {
	return &Fire{shaderDir: shaderDir, sim: sim}
}

func (f *Fire) Name() string { return "fire" }

// Init compiles the program and allocates the streaming vertex buffer
func (f *Fire) Init() error {
	var err error
	f.program, err = graphics.NewProgramWithGeometry(
		filepath.Join(f.shaderDir, VertShader),
		filepath.Join(f.shaderDir, GeomShader),
		filepath.Join(f.shaderDir, FragShader),
	)
	if err != nil {
		return err
	}

	data := f.sim.Vertices()
	stride := int32(floatsPerParticle * 4)

	gl.GenVertexArrays(1, &f.vao)
	gl.BindVertexArray(f.vao)

	gl.GenBuffers(1, &f.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, f.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.DYNAMIC_DRAW)

	// position
	gl.EnableVertexAttribArray(graphics.AttribPosition)
	gl.VertexAttribPointerWithOffset(graphics.AttribPosition, 3, gl.FLOAT, false, stride, 0)
	// life
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 1, gl.FLOAT, false, stride, 3*4)

	gl.BindVertexArray(0)
	return nil
}

// Render steps the simulation and draws every particle
func (f *Fire) Render(ctx renderer.RenderContext) {
	if f.sim.Len() == 0 {
		return
	}
	f.sim.Update(float32(ctx.DT))

	data := f.sim.Vertices()
	gl.BindBuffer(gl.ARRAY_BUFFER, f.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*4, gl.Ptr(data))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	f.program.Bind()
	f.program.SetFloat("time", float32(ctx.Time))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	gl.DepthMask(false)

	gl.BindVertexArray(f.vao)
	gl.DrawArrays(gl.POINTS, 0, int32(f.sim.Len()))
	gl.BindVertexArray(0)

	gl.DepthMask(true)
	gl.Disable(gl.BLEND)

	f.program.Unbind()
}

func (f *Fire) SetViewport(width, height int) {}

func (f *Fire) Programs() []*graphics.Program {
	return []*graphics.Program{f.program}
}

// Dispose cleans up OpenGL resources
func (f *Fire) Dispose() {
	if f.vao != 0 {
		gl.DeleteVertexArrays(1, &f.vao)
		f.vao = 0
	}
	if f.vbo != 0 {
		gl.DeleteBuffers(1, &f.vbo)
		f.vbo = 0
	}
	if f.program != nil {
		f.program.Dispose()
	}
}
