package model

// cubeFaces lists, per face, the outward normal and the four corners in
// counter-clockwise order seen from outside.
var cubeFaces = [6]struct {
	normal  [3]float32
	corners [4][3]float32
}{
	{[3]float32{0, 0, 1}, [4][3]float32{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}},
	{[3]float32{0, 0, -1}, [4][3]float32{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}}},
	{[3]float32{1, 0, 0}, [4][3]float32{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}}},
	{[3]float32{-1, 0, 0}, [4][3]float32{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}}},
	{[3]float32{0, 1, 0}, [4][3]float32{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}}},
	{[3]float32{0, -1, 0}, [4][3]float32{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}},
}

// Cube returns a single-submesh cube spanning [-half, half] on every axis
// with flat normals and per-face texture coordinates.
func Cube(half float32) *Model {
	sm := Submesh{Name: "cube"}
	uvs := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for _, f := range cubeFaces {
		base := uint32(len(sm.Positions))
		for i, c := range f.corners {
			sm.Positions = append(sm.Positions, [3]float32{c[0] * half, c[1] * half, c[2] * half})
			sm.Normals = append(sm.Normals, f.normal)
			sm.Texcoords = append(sm.Texcoords, uvs[i])
		}
		sm.Indices = append(sm.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return &Model{Submeshes: []Submesh{sm}}
}
