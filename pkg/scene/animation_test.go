package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-5

func assertMatClose(t *testing.T, expected, actual mgl32.Mat4) {
	t.Helper()
	assert.InDeltaSlice(t, expected[:], actual[:], 1e-4, "expected\n%v\ngot\n%v", expected, actual)
}

func assertVecClose(t *testing.T, expected, actual mgl32.Vec3, delta float64) {
	t.Helper()
	assert.InDeltaSlice(t, expected[:], actual[:], delta, "expected %v got %v", expected, actual)
}

func TestAnimationHalfway(t *testing.T) {
	n := NewNode("piece")
	n.SetAnimationTargets(mgl32.Ident4(), mgl32.Translate3D(2, 0, 0), 0, 1)
	n.CommandAnimation(ToTarget)

	n.UpdateAnimation(0.5)

	a := n.Animation()
	assert.InDelta(t, 0.5, a.Progress, tolerance)
	assert.Equal(t, ToTarget, a.Direction)
	assertMatClose(t, mgl32.Translate3D(1, 0, 0), n.Local)
}

func TestAnimationAutoStop(t *testing.T) {
	n := NewNode("piece")
	n.SetAnimationTargets(mgl32.Ident4(), mgl32.Translate3D(0, 3, 0), 0.75, 1)
	n.CommandAnimation(ToTarget)

	n.UpdateAnimation(1)
	assert.Equal(t, float32(1), n.Animation().Progress)
	assert.Equal(t, Stopped, n.Animation().Direction)
	assertMatClose(t, mgl32.Translate3D(0, 3, 0), n.Local)

	n.UpdateAnimation(1)
	assert.Equal(t, float32(1), n.Animation().Progress)
	assert.Equal(t, Stopped, n.Animation().Direction)

	n.CommandAnimation(ToStart)
	n.UpdateAnimation(10)
	assert.Equal(t, float32(0), n.Animation().Progress)
	assert.Equal(t, Stopped, n.Animation().Direction)
	assertMatClose(t, mgl32.Ident4(), n.Local)
}

func TestAnimationProgressStaysInRange(t *testing.T) {
	starts := []float32{-3, 0, 0.2, 0.5, 0.99, 1, 7}
	deltas := []float32{0, 0.001, 0.1, 0.5, 1, 2, 1000}
	dirs := []Direction{ToStart, Stopped, ToTarget}

	for _, p := range starts {
		for _, dt := range deltas {
			for _, d := range dirs {
				n := NewNode("n")
				n.SetAnimationTargets(mgl32.Ident4(), mgl32.Translate3D(1, 1, 1), p, 0.8)
				n.CommandAnimation(d)
				n.UpdateAnimation(dt)

				got := n.Animation().Progress
				assert.GreaterOrEqual(t, got, float32(0))
				assert.LessOrEqual(t, got, float32(1))
			}
		}
	}
}

func TestCommandAnimationClampsAndStops(t *testing.T) {
	n := NewNode("n")
	n.SetAnimationTargets(mgl32.Ident4(), mgl32.Translate3D(4, 0, 0), 0, 1)

	n.CommandAnimation(Direction(5))
	assert.Equal(t, ToTarget, n.Animation().Direction)
	n.CommandAnimation(Direction(-9))
	assert.Equal(t, ToStart, n.Animation().Direction)

	n.CommandAnimation(ToTarget)
	n.UpdateAnimation(0.25)
	n.CommandAnimation(Stopped)
	n.UpdateAnimation(0.25)

	assert.InDelta(t, 0.25, n.Animation().Progress, tolerance)
	assertMatClose(t, mgl32.Translate3D(1, 0, 0), n.Local)
}

func TestIdleNodeKeepsStaticPlacement(t *testing.T) {
	n := NewNode("static")
	n.Local = mgl32.Translate3D(3, 2, 1).Mul4(mgl32.Scale3D(0.2, 0.2, 0.2))
	before := n.Local

	n.UpdateAnimation(1)

	assert.Equal(t, before, n.Local)
}

func TestUpdatePropagatesToDescendants(t *testing.T) {
	root := NewNode("root")
	child := NewNode("child")
	grandchild := NewNode("grandchild")
	require.NoError(t, root.AddChild(child))
	require.NoError(t, child.AddChild(grandchild))

	child.SetAnimationTargets(mgl32.Ident4(), mgl32.Translate3D(1, 0, 0), 0, 1)
	grandchild.SetAnimationTargets(mgl32.Ident4(), mgl32.Translate3D(0, 1, 0), 1, 2)
	child.CommandAnimation(ToTarget)
	grandchild.CommandAnimation(ToStart)

	root.UpdateAnimation(0.25)

	assert.InDelta(t, 0.25, child.Animation().Progress, tolerance)
	assert.InDelta(t, 0.5, grandchild.Animation().Progress, tolerance)
	assert.Equal(t, Stopped, root.Animation().Direction)
}

func TestSetAnimationTargetsSyncsLocal(t *testing.T) {
	n := NewNode("n")
	n.SetAnimationTargets(mgl32.Ident4(), mgl32.Translate3D(0, 0, 8), 2, 1)

	assert.Equal(t, float32(1), n.Animation().Progress)
	assertMatClose(t, mgl32.Translate3D(0, 0, 8), n.Local)
}

func TestInterpolateEndpoints(t *testing.T) {
	a := mgl32.Translate3D(1, 2, 3).Mul4(mgl32.HomogRotate3D(0.7, mgl32.Vec3{1, 1, 0}.Normalize()))
	b := mgl32.Translate3D(-2, 0, 5).Mul4(mgl32.HomogRotate3D(2.9, mgl32.Vec3{0, 1, 1}.Normalize()))

	assertMatClose(t, a, Interpolate(a, b, 0))
	assertMatClose(t, b, Interpolate(a, b, 1))
}

func TestInterpolateStripsScale(t *testing.T) {
	a := mgl32.Translate3D(1, 0, 0).Mul4(mgl32.Scale3D(3, 3, 3))
	b := mgl32.Translate3D(3, 0, 0).Mul4(mgl32.HomogRotate3DY(math.Pi / 2)).Mul4(mgl32.Scale3D(0.5, 0.5, 0.5))

	assertMatClose(t, mgl32.Translate3D(1, 0, 0), Interpolate(a, b, 0))
	assertMatClose(t, mgl32.Translate3D(3, 0, 0).Mul4(mgl32.HomogRotate3DY(math.Pi/2)), Interpolate(a, b, 1))

	mid := Interpolate(a, b, 0.5)
	_, _, scale := Decompose(mid)
	assertVecClose(t, mgl32.Vec3{1, 1, 1}, scale, tolerance)
}

func TestInterpolateMidpointRotation(t *testing.T) {
	b := mgl32.HomogRotate3DZ(math.Pi / 2)

	mid := Interpolate(mgl32.Ident4(), b, 0.5)

	assertMatClose(t, mgl32.HomogRotate3DZ(math.Pi/4), mid)
}

func TestInterpolateTakesShortestArc(t *testing.T) {
	// 350 degrees about Y is 10 degrees the other way round.
	b := mgl32.HomogRotate3DY(mgl32.DegToRad(350))

	for _, step := range []float32{0.1, 0.25, 0.5, 0.75, 0.9} {
		_, rot, _ := Decompose(Interpolate(mgl32.Ident4(), b, step))
		angle := 2 * math.Acos(math.Min(1, math.Abs(float64(rot.W))))
		assert.LessOrEqual(t, angle, float64(mgl32.DegToRad(10))+tolerance, "step %v", step)
	}

	mid := Interpolate(mgl32.Ident4(), b, 0.5)
	assertMatClose(t, mgl32.HomogRotate3DY(mgl32.DegToRad(-5)), mid)
}

func TestDecomposeRigid(t *testing.T) {
	rot := mgl32.QuatRotate(1.2, mgl32.Vec3{0.3, -1, 0.5}.Normalize())
	m := mgl32.Translate3D(4, 5, 6).Mul4(rot.Mat4()).Mul4(mgl32.Scale3D(2, 3, 4))

	tr, q, scale := Decompose(m)

	assertVecClose(t, mgl32.Vec3{4, 5, 6}, tr, tolerance)
	assertVecClose(t, mgl32.Vec3{2, 3, 4}, scale, 1e-4)
	assertMatClose(t, rot.Mat4(), q.Mat4())
}

func TestDecomposeReflection(t *testing.T) {
	_, q, scale := Decompose(mgl32.Scale3D(-1, 1, 1))

	assertVecClose(t, mgl32.Vec3{-1, -1, -1}, scale, tolerance)
	assert.InDelta(t, 1, q.Len(), tolerance)
	// rotation times the negative scale gives the mirror back
	assertMatClose(t, mgl32.Scale3D(-1, 1, 1), q.Mat4().Mul4(mgl32.Scale3D(-1, -1, -1)))
}

func BenchmarkInterpolate(b *testing.B) {
	x := mgl32.Translate3D(1, 2, 3).Mul4(mgl32.HomogRotate3DX(0.4))
	y := mgl32.Translate3D(-1, 0, 2).Mul4(mgl32.HomogRotate3DY(2.1))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Interpolate(x, y, float32(i%100)/100)
	}
}
