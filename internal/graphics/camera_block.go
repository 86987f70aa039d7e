package graphics

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraBlockName is the uniform block name programs declare for the camera
const CameraBlockName = "Camera"

const mat4Size = 16 * 4

// CameraBlock is a std140 uniform buffer holding the view matrix followed by
// the projection matrix.
type CameraBlock struct {
	ubo     uint32
	binding uint32
}

// NewCameraBlock allocates the buffer and attaches it to binding
func NewCameraBlock(binding uint32) *CameraBlock {
	c := &CameraBlock{binding: binding}
	gl.GenBuffers(1, &c.ubo)
	gl.BindBuffer(gl.UNIFORM_BUFFER, c.ubo)
	gl.BufferData(gl.UNIFORM_BUFFER, 2*mat4Size, nil, gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	gl.BindBufferBase(gl.UNIFORM_BUFFER, binding, c.ubo)
	return c
}

// Attach binds the camera block of every given program to this buffer
func (c *CameraBlock) Attach(programs ...*Program) {
	for _, p := range programs {
		p.BindUniformBlock(CameraBlockName, c.binding)
	}
}

// SetView uploads the view matrix
func (c *CameraBlock) SetView(view mgl32.Mat4) {
	c.write(0, view)
}

// SetProjection uploads the projection matrix
func (c *CameraBlock) SetProjection(proj mgl32.Mat4) {
	c.write(mat4Size, proj)
}

func (c *CameraBlock) write(offset int, m mgl32.Mat4) {
	gl.BindBuffer(gl.UNIFORM_BUFFER, c.ubo)
	gl.BufferSubData(gl.UNIFORM_BUFFER, offset, mat4Size, gl.Ptr(&m[0]))
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
}

// Dispose deletes the buffer
func (c *CameraBlock) Dispose() {
	gl.DeleteBuffers(1, &c.ubo)
}
