package graphics

import (
	"forgelight/pkg/model"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// vertexLayout describes which attributes a mesh interleaves, in
// attribute location order.
type vertexLayout struct {
	normals   bool
	texcoords bool
	tangents  bool
}

func layoutFor(m *model.Model) vertexLayout {
	return vertexLayout{
		normals:   m.HasNormals(),
		texcoords: m.HasTexcoords(),
		tangents:  m.HasTangents(),
	}
}

// floats returns the number of floats per vertex
func (l vertexLayout) floats() int {
	n := 3
	if l.normals {
		n += 3
	}
	if l.texcoords {
		n += 2
	}
	if l.tangents {
		n += 4
	}
	return n
}

// interleave packs a submesh's attributes into one vertex buffer
func interleave(sm *model.Submesh, l vertexLayout) []float32 {
	out := make([]float32, 0, len(sm.Positions)*l.floats())
	for i, p := range sm.Positions {
		out = append(out, p[:]...)
		if l.normals {
			out = append(out, sm.Normals[i][:]...)
		}
		if l.texcoords {
			out = append(out, sm.Texcoords[i][:]...)
		}
		if l.tangents {
			out = append(out, sm.Tangents[i][:]...)
		}
	}
	return out
}

type submeshBuffers struct {
	vao, vbo, ebo uint32
	count         int32
}

// Mesh is a model uploaded to the GPU, one vertex array per submesh.
// It implements scene.Renderable.
type Mesh struct {
	layout    vertexLayout
	submeshes []submeshBuffers
}

// NewMesh uploads every submesh of m. Attributes are enabled only when
// every submesh provides them.
func NewMesh(m *model.Model) *Mesh {
	mesh := &Mesh{layout: layoutFor(m)}
	for i := range m.Submeshes {
		mesh.submeshes = append(mesh.submeshes, mesh.upload(&m.Submeshes[i]))
	}
	return mesh
}

// LoadMesh reads a glTF file, fills in missing normals and uploads it
func LoadMesh(path string) (*Mesh, *model.Model, error) {
	m, err := model.Load(path)
	if err != nil {
		return nil, nil, err
	}
	m.GenerateNormals()
	return NewMesh(m), m, nil
}

func (m *Mesh) upload(sm *model.Submesh) submeshBuffers {
	var b submeshBuffers
	data := interleave(sm, m.layout)
	stride := int32(m.layout.floats() * 4)

	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.GenBuffers(1, &b.ebo)

	gl.BindVertexArray(b.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(sm.Indices)*4, gl.Ptr(sm.Indices), gl.STATIC_DRAW)

	offset := 0
	attrib := func(loc uint32, size int) {
		gl.VertexAttribPointerWithOffset(loc, int32(size), gl.FLOAT, false, stride, uintptr(offset*4))
		gl.EnableVertexAttribArray(loc)
		offset += size
	}
	attrib(AttribPosition, 3)
	if m.layout.normals {
		attrib(AttribNormal, 3)
	}
	if m.layout.texcoords {
		attrib(AttribTexcoord, 2)
	}
	if m.layout.tangents {
		attrib(AttribTangent, 4)
	}

	gl.BindVertexArray(0)

	b.count = int32(len(sm.Indices))
	return b
}

// SubmeshCount returns the number of submeshes
func (m *Mesh) SubmeshCount() int { return len(m.submeshes) }

func (m *Mesh) HasNormals() bool   { return m.layout.normals }
func (m *Mesh) HasTexcoords() bool { return m.layout.texcoords }
func (m *Mesh) HasTangents() bool  { return m.layout.tangents }

// DrawAll draws every submesh in order
func (m *Mesh) DrawAll() {
	for i := range m.submeshes {
		m.DrawSubmesh(i)
	}
}

// DrawSubmesh draws one submesh. Out of range indices draw nothing.
func (m *Mesh) DrawSubmesh(index int) {
	if index < 0 || index >= len(m.submeshes) {
		return
	}
	b := m.submeshes[index]
	gl.BindVertexArray(b.vao)
	gl.DrawElements(gl.TRIANGLES, b.count, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// Dispose releases the GPU buffers
func (m *Mesh) Dispose() {
	for _, b := range m.submeshes {
		gl.DeleteVertexArrays(1, &b.vao)
		gl.DeleteBuffers(1, &b.vbo)
		gl.DeleteBuffers(1, &b.ebo)
	}
	m.submeshes = nil
}
