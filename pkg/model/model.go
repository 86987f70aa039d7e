// Package model holds CPU-side triangle meshes and imports them from glTF.
package model

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

var (
	ErrEmpty             = errors.New("model: no triangle primitives")
	ErrNoPositions       = errors.New("model: primitive has no POSITION attribute")
	ErrUnsupportedMode   = errors.New("model: only triangle primitives are supported")
	ErrAttributeMismatch = errors.New("model: attribute count differs from position count")
)

// Submesh is one indexed triangle list. Optional attributes are either empty
// or have one entry per position.
type Submesh struct {
	Name      string
	Positions [][3]float32
	Normals   [][3]float32
	Texcoords [][2]float32
	Tangents  [][4]float32
	Indices   []uint32
}

// Model is an ordered list of submeshes. Submesh order follows the source
// file so callers can address parts by index.
type Model struct {
	Submeshes []Submesh
}

// Load reads a .gltf or .glb file.
func Load(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open model %q", path)
	}
	m, err := FromDocument(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "load model %q", path)
	}
	return m, nil
}

// FromDocument converts every triangle primitive of every mesh in doc into a
// submesh, in mesh then primitive order.
func FromDocument(doc *gltf.Document) (*Model, error) {
	m := &Model{}
	for mi, mesh := range doc.Meshes {
		for pi, prim := range mesh.Primitives {
			sm, err := readPrimitive(doc, prim)
			if err != nil {
				return nil, errors.Wrapf(err, "mesh %d (%s) primitive %d", mi, mesh.Name, pi)
			}
			sm.Name = mesh.Name
			m.Submeshes = append(m.Submeshes, sm)
		}
	}
	if len(m.Submeshes) == 0 {
		return nil, ErrEmpty
	}
	return m, nil
}

func readPrimitive(doc *gltf.Document, prim *gltf.Primitive) (Submesh, error) {
	var sm Submesh
	if prim.Mode != gltf.PrimitiveTriangles {
		return sm, ErrUnsupportedMode
	}

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return sm, ErrNoPositions
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return sm, errors.Wrap(err, "read positions")
	}
	sm.Positions = positions

	if idx, ok := prim.Attributes["NORMAL"]; ok {
		if sm.Normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return sm, errors.Wrap(err, "read normals")
		}
	}
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		if sm.Texcoords, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return sm, errors.Wrap(err, "read texture coordinates")
		}
	}
	if idx, ok := prim.Attributes["TANGENT"]; ok {
		if sm.Tangents, err = modeler.ReadTangent(doc, doc.Accessors[idx], nil); err != nil {
			return sm, errors.Wrap(err, "read tangents")
		}
	}

	if prim.Indices != nil {
		if sm.Indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil); err != nil {
			return sm, errors.Wrap(err, "read indices")
		}
	} else {
		sm.Indices = make([]uint32, len(sm.Positions))
		for i := range sm.Indices {
			sm.Indices[i] = uint32(i)
		}
	}

	if err := sm.validate(); err != nil {
		return sm, err
	}
	return sm, nil
}

func (s *Submesh) validate() error {
	n := len(s.Positions)
	if (len(s.Normals) != 0 && len(s.Normals) != n) ||
		(len(s.Texcoords) != 0 && len(s.Texcoords) != n) ||
		(len(s.Tangents) != 0 && len(s.Tangents) != n) {
		return ErrAttributeMismatch
	}
	for _, i := range s.Indices {
		if int(i) >= n {
			return errors.Errorf("model: index %d out of range (%d vertices)", i, n)
		}
	}
	return nil
}

// HasNormals reports whether every submesh carries normals.
func (m *Model) HasNormals() bool {
	return m.all(func(s *Submesh) bool { return len(s.Normals) > 0 })
}

// HasTexcoords reports whether every submesh carries texture coordinates.
func (m *Model) HasTexcoords() bool {
	return m.all(func(s *Submesh) bool { return len(s.Texcoords) > 0 })
}

// HasTangents reports whether every submesh carries tangents.
func (m *Model) HasTangents() bool {
	return m.all(func(s *Submesh) bool { return len(s.Tangents) > 0 })
}

func (m *Model) all(pred func(s *Submesh) bool) bool {
	if len(m.Submeshes) == 0 {
		return false
	}
	for i := range m.Submeshes {
		if !pred(&m.Submeshes[i]) {
			return false
		}
	}
	return true
}

// GenerateNormals fills in smooth, area weighted vertex normals for every
// submesh that has none.
func (m *Model) GenerateNormals() {
	for i := range m.Submeshes {
		s := &m.Submeshes[i]
		if len(s.Normals) == 0 {
			s.Normals = smoothNormals(s.Positions, s.Indices)
		}
	}
}

func smoothNormals(positions [][3]float32, indices []uint32) [][3]float32 {
	acc := make([]mgl32.Vec3, len(positions))
	for t := 0; t+2 < len(indices); t += 3 {
		i0, i1, i2 := indices[t], indices[t+1], indices[t+2]
		p0 := mgl32.Vec3(positions[i0])
		p1 := mgl32.Vec3(positions[i1])
		p2 := mgl32.Vec3(positions[i2])
		// unnormalised cross product weights by triangle area
		face := p1.Sub(p0).Cross(p2.Sub(p0))
		acc[i0] = acc[i0].Add(face)
		acc[i1] = acc[i1].Add(face)
		acc[i2] = acc[i2].Add(face)
	}

	out := make([][3]float32, len(positions))
	for i, n := range acc {
		if n.Len() > 0 {
			out[i] = n.Normalize()
		} else {
			out[i] = [3]float32{0, 1, 0}
		}
	}
	return out
}
