package graphics

import (
	"os"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// Vertex attribute locations shared by every program and mesh
const (
	AttribPosition uint32 = 0
	AttribNormal   uint32 = 1
	AttribTexcoord uint32 = 2
	AttribTangent  uint32 = 3
)

var attribNames = map[uint32]string{
	AttribPosition: "aPos",
	AttribNormal:   "aNormal",
	AttribTexcoord: "aTexCoord",
	AttribTangent:  "aTangent",
}

// Program is an OpenGL shader program built from source files.
// It implements scene.Material.
type Program struct {
	ID uint32

	vertexPath   string
	fragmentPath string
	geometryPath string

	uniforms map[string]int32
	blocks   map[string]uint32
}

// NewProgram compiles and links a vertex and fragment shader pair
func NewProgram(vertexPath, fragmentPath string) (*Program, error) {
	return NewProgramWithGeometry(vertexPath, "", fragmentPath)
}

// NewProgramWithGeometry also attaches a geometry stage when geometryPath is set
func NewProgramWithGeometry(vertexPath, geometryPath, fragmentPath string) (*Program, error) {
	p := &Program{
		vertexPath:   vertexPath,
		fragmentPath: fragmentPath,
		geometryPath: geometryPath,
		uniforms:     make(map[string]int32),
		blocks:       make(map[string]uint32),
	}
	id, err := p.build()
	if err != nil {
		return nil, err
	}
	p.ID = id
	return p, nil
}

// Sources lists the shader files the program was built from
func (p *Program) Sources() []string {
	out := []string{p.vertexPath, p.fragmentPath}
	if p.geometryPath != "" {
		out = append(out, p.geometryPath)
	}
	return out
}

// Reload rebuilds the program from its source files. On failure the
// previous program stays in use and the error is returned.
func (p *Program) Reload() error {
	id, err := p.build()
	if err != nil {
		return err
	}
	gl.DeleteProgram(p.ID)
	p.ID = id
	clear(p.uniforms)
	for name, binding := range p.blocks {
		p.bindBlock(name, binding)
	}
	return nil
}

// Bind activates the program
func (p *Program) Bind() {
	gl.UseProgram(p.ID)
}

// Unbind deactivates any program
func (p *Program) Unbind() {
	gl.UseProgram(0)
}

// BindUniformBlock attaches a named uniform block to a binding point.
// Programs without the block ignore the call.
func (p *Program) BindUniformBlock(name string, binding uint32) {
	p.blocks[name] = binding
	p.bindBlock(name, binding)
}

func (p *Program) bindBlock(name string, binding uint32) {
	idx := gl.GetUniformBlockIndex(p.ID, gl.Str(name+"\x00"))
	if idx == gl.INVALID_INDEX {
		return
	}
	gl.UniformBlockBinding(p.ID, idx, binding)
}

func (p *Program) location(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.ID, gl.Str(name+"\x00"))
	p.uniforms[name] = loc
	return loc
}

// SetInt sets an integer uniform
func (p *Program) SetInt(name string, value int32) {
	gl.Uniform1i(p.location(name), value)
}

// SetFloat sets a float uniform
func (p *Program) SetFloat(name string, value float32) {
	gl.Uniform1f(p.location(name), value)
}

// SetVector3 sets a vec3 uniform
func (p *Program) SetVector3(name string, v mgl32.Vec3) {
	gl.Uniform3f(p.location(name), v[0], v[1], v[2])
}

// SetMatrix4 sets a mat4 uniform
func (p *Program) SetMatrix4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.location(name), 1, false, &m[0])
}

// Dispose deletes the GL program
func (p *Program) Dispose() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

func (p *Program) build() (uint32, error) {
	stages := []struct {
		path string
		kind uint32
	}{
		{p.vertexPath, gl.VERTEX_SHADER},
		{p.geometryPath, gl.GEOMETRY_SHADER},
		{p.fragmentPath, gl.FRAGMENT_SHADER},
	}

	var shaders []uint32
	defer func() {
		for _, s := range shaders {
			gl.DeleteShader(s)
		}
	}()

	for _, st := range stages {
		if st.path == "" {
			continue
		}
		src, err := os.ReadFile(st.path)
		if err != nil {
			return 0, errors.Wrapf(err, "read shader %q", st.path)
		}
		s, err := compileShader(string(src), st.kind)
		if err != nil {
			return 0, errors.Wrapf(err, "compile shader %q", st.path)
		}
		shaders = append(shaders, s)
	}

	program := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	for loc, name := range attribNames {
		gl.BindAttribLocation(program, loc, gl.Str(name+"\x00"))
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, errors.Errorf("link program %s: %s", strings.Join(p.Sources(), ", "), strings.TrimRight(log, "\x00"))
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, errors.New(strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}
