package skybox

import (
	"path/filepath"

	"forgelight/internal/graphics"
	renderer "forgelight/internal/graphics/renderer"
	"forgelight/pkg/model"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Shader file names inside the shader directory
const (
	VertShader = "skybox.vert"
	FragShader = "skybox.frag"
)

// Skybox draws a cube map behind the scene
type Skybox struct {
	shaderDir string
	imagePath string

	program *graphics.Program
	cube    *graphics.Mesh
	texture uint32
}

// NewSkybox creates a skybox pass for a cross layout image
func NewSkybox(shaderDir, imagePath string) *Skybox {
	return &Skybox{shaderDir: shaderDir, imagePath: imagePath}
}

func (s *Skybox) Name() string { return "skybox" }

// Init compiles the program and uploads the cube and its texture
func (s *Skybox) Init() error {
	var err error
	s.program, err = graphics.NewProgram(
		filepath.Join(s.shaderDir, VertShader),
		filepath.Join(s.shaderDir, FragShader),
	)
	if err != nil {
		return err
	}

	s.texture, err = graphics.LoadCubemap(s.imagePath)
	if err != nil {
		s.program.Dispose()
		return err
	}

	s.cube = graphics.NewMesh(model.Cube(1))
	return nil
}

// Render draws the cube at infinite depth with the camera translation removed
// by the vertex stage
func (s *Skybox) Render(ctx renderer.RenderContext) {
	gl.DepthFunc(gl.LEQUAL)
	gl.Disable(gl.CULL_FACE)

	s.program.Bind()
	s.program.SetInt("skybox", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, s.texture)

	s.cube.DrawAll()

	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	s.program.Unbind()

	gl.Enable(gl.CULL_FACE)
	gl.DepthFunc(gl.LESS)
}

func (s *Skybox) SetViewport(width, height int) {}

func (s *Skybox) Programs() []*graphics.Program {
	return []*graphics.Program{s.program}
}

// Dispose cleans up OpenGL resources
func (s *Skybox) Dispose() {
	if s.cube != nil {
		s.cube.Dispose()
	}
	if s.texture != 0 {
		gl.DeleteTextures(1, &s.texture)
		s.texture = 0
	}
	if s.program != nil {
		s.program.Dispose()
	}
}
