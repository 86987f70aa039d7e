// Package campfire builds the campfire scene: a sword resting by a fire ring
// of stones on open ground under a night sky.
package campfire

import (
	"math"
	"math/rand/v2"

	"forgelight/pkg/scene"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// Scene layout
const (
	SwordScale    = 0.05
	SwordTiltDeg  = -12
	MarkerScale   = 0.05
	StoneCount    = 12
	StoneRadius   = 1.2
	StoneY        = -0.4
	StoneScaleMin = 0.18
	StoneScaleVar = 0.05
	EmberScale    = 0.06
	TerrainScale  = 10
)

var (
	LightPos     = mgl32.Vec3{0, 0.8, 0}
	LightColor   = mgl32.Vec3{1, 0.6, 0.3}
	FireCenter   = mgl32.Vec3{0, -0.3, 0}
	TerrainPos   = mgl32.Vec3{0, -0.8, -3}
	EmberOffsets = []mgl32.Vec3{
		{0.58, 0.2, -0.3},
		{-0.4, 0.2, -0.5},
		{-0.2, 0.3, 0.5},
		{0.5, 0.2, 0.3},
	}
)

// Surfaces per part. The sword's first submesh is the blade; every other
// submesh uses the handle surface.
var (
	BladeSurface   = scene.Surface{Color: mgl32.Vec3{0.4, 0.1, 0.1}, Ambient: 0.08, Specular: 0.8, Shininess: 4}
	HandleSurface  = scene.Surface{Color: mgl32.Vec3{0.6, 0.1, 0.2}, Ambient: 0.15, Specular: 0.1, Shininess: 8}
	MarkerSurface  = scene.Surface{Color: mgl32.Vec3{1, 1, 1}, Ambient: 1, Specular: 0, Shininess: 1}
	AshSurface     = scene.Surface{Color: mgl32.Vec3{1, 1, 1}, Ambient: 0.9, Specular: 0.5, Shininess: 1}
	StoneSurface   = scene.Surface{Color: mgl32.Vec3{1, 1, 1}, Ambient: 0.12, Specular: 0.25, Shininess: 16}
	EmberSurface   = scene.Surface{Color: mgl32.Vec3{1, 1, 1}, Ambient: 0.18, Specular: 0.03, Shininess: 1}
	TerrainSurface = scene.Surface{Color: mgl32.Vec3{1, 1, 1}, Ambient: 0.25, Specular: 0.05, Shininess: 8}
)

// Parts are the meshes and materials the scene is made of
type Parts struct {
	Sword          scene.Renderable
	SwordSubmeshes int
	Marker         scene.Renderable
	Ash            scene.Renderable
	Stone          scene.Renderable
	Terrain        scene.Renderable

	Lit    scene.Material
	AshMat scene.Material
	Stones scene.Material
	Embers scene.Material
}

// Assemble adds the campfire nodes under root in draw order: sword parts,
// light marker, ash, stone ring, embers, terrain. rng jitters stone size
// and heading.
func Assemble(root *scene.Node, p Parts, rng *rand.Rand) error {
	if p.SwordSubmeshes < 1 {
		return errors.New("campfire: sword has no submeshes")
	}

	add := func(name string, mesh scene.Renderable, mat scene.Material, local mgl32.Mat4, s scene.Surface) (*scene.Node, error) {
		n := scene.NewNode(name)
		n.Mesh = mesh
		n.Material = mat
		n.Local = local
		n.Surface = s
		return n, root.AddChild(n)
	}

	swordLocal := mgl32.Scale3D(SwordScale, SwordScale, SwordScale).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(SwordTiltDeg)))
	for i := 0; i < p.SwordSubmeshes; i++ {
		name, s := "sword.handle", HandleSurface
		if i == 0 {
			name, s = "sword.blade", BladeSurface
		}
		n, err := add(name, p.Sword, p.Lit, swordLocal, s)
		if err != nil {
			return err
		}
		n.Submesh = i
	}

	if _, err := add("light", p.Marker, p.Lit, mgl32.Translate3D(LightPos[0], LightPos[1], LightPos[2]).
		Mul4(mgl32.Scale3D(MarkerScale, MarkerScale, MarkerScale)), MarkerSurface); err != nil {
		return err
	}

	if _, err := add("ash", p.Ash, p.AshMat, mgl32.Ident4(), AshSurface); err != nil {
		return err
	}

	for _, local := range StoneRing(rng) {
		if _, err := add("stone", p.Stone, p.Stones, local, StoneSurface); err != nil {
			return err
		}
	}

	for _, off := range EmberOffsets {
		pos := FireCenter.Add(off)
		local := mgl32.Translate3D(pos[0], pos[1], pos[2]).Mul4(mgl32.Scale3D(EmberScale, EmberScale, EmberScale))
		if _, err := add("ember", p.Stone, p.Embers, local, EmberSurface); err != nil {
			return err
		}
	}

	_, err := add("terrain", p.Terrain, p.Stones, mgl32.Translate3D(TerrainPos[0], TerrainPos[1], TerrainPos[2]).
		Mul4(mgl32.Scale3D(TerrainScale, TerrainScale, TerrainScale)), TerrainSurface)
	return err
}

// StoneRing returns the local transforms of the stones evenly spaced around
// the fire, each with a random size and heading
func StoneRing(rng *rand.Rand) []mgl32.Mat4 {
	out := make([]mgl32.Mat4, StoneCount)
	for i := range out {
		angle := 2 * math.Pi * float64(i) / StoneCount
		x := float32(math.Cos(angle)) * StoneRadius
		z := float32(math.Sin(angle)) * StoneRadius

		scale := float32(StoneScaleMin + StoneScaleVar*rng.Float64())
		yaw := float32(rng.Float64() * 360)

		out[i] = mgl32.Translate3D(x, StoneY, z).
			Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(yaw))).
			Mul4(mgl32.Scale3D(scale, scale, scale))
	}
	return out
}
