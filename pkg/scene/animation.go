package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultAnimationSpeed is the progress a node covers per second when no
// speed is given.
const DefaultAnimationSpeed = 0.5

// Direction tells a node's animation which keyframe to move towards.
type Direction int

const (
	ToStart  Direction = -1
	Stopped  Direction = 0
	ToTarget Direction = 1
)

func (d Direction) String() string {
	switch d {
	case ToStart:
		return "to-start"
	case ToTarget:
		return "to-target"
	default:
		return "stopped"
	}
}

// Animation is the keyframe state of a single node. Start and Target are
// local transforms; Progress 0 is Start and 1 is Target.
type Animation struct {
	Start     mgl32.Mat4
	Target    mgl32.Mat4
	Progress  float32
	Direction Direction
	// Speed is in progress units per second.
	Speed float32
}

func newAnimation() Animation {
	return Animation{
		Start:  mgl32.Ident4(),
		Target: mgl32.Ident4(),
		Speed:  DefaultAnimationSpeed,
	}
}

// Animation returns a copy of the node's animation state.
func (n *Node) Animation() Animation {
	return n.anim
}

// SetAnimationTargets installs new keyframes and moves Local to the pose at
// progress. The current direction is kept.
func (n *Node) SetAnimationTargets(start, target mgl32.Mat4, progress, speed float32) {
	n.anim.Start = start
	n.anim.Target = target
	n.anim.Progress = mgl32.Clamp(progress, 0, 1)
	n.anim.Speed = speed
	n.Local = Interpolate(start, target, n.anim.Progress)
}

// CommandAnimation sets the direction of travel. Values outside [-1, 1] are
// clamped. Stopping leaves progress where it is.
func (n *Node) CommandAnimation(d Direction) {
	switch {
	case d > ToTarget:
		d = ToTarget
	case d < ToStart:
		d = ToStart
	}
	n.anim.Direction = d
}

// UpdateAnimation advances this node and every descendant by dt seconds.
// A moving node stops on its own once it reaches either keyframe.
func (n *Node) UpdateAnimation(dt float32) {
	a := &n.anim
	if a.Direction != Stopped {
		a.Progress = mgl32.Clamp(a.Progress+float32(a.Direction)*a.Speed*dt, 0, 1)
		n.Local = Interpolate(a.Start, a.Target, a.Progress)
		if a.Progress <= 0 || a.Progress >= 1 {
			a.Direction = Stopped
		}
	}

	for _, c := range n.children {
		c.UpdateAnimation(dt)
	}
}

// Interpolate blends two rigid transforms: translation linearly, rotation
// along the shortest arc. Scale and shear in a or b are dropped, so the
// result is always Translate * Rotate.
func Interpolate(a, b mgl32.Mat4, t float32) mgl32.Mat4 {
	ta, ra, _ := Decompose(a)
	tb, rb, _ := Decompose(b)

	tr := ta.Add(tb.Sub(ta).Mul(t))
	rot := slerpShortest(ra, rb, t)

	return mgl32.Translate3D(tr.X(), tr.Y(), tr.Z()).Mul4(rot.Mat4())
}

// Decompose splits an affine transform into translation, rotation and
// per-axis scale. A reflected basis is reported as negative scale. Columns of
// zero length are treated as the matching unit axis.
func Decompose(m mgl32.Mat4) (translation mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) {
	translation = m.Col(3).Vec3()

	axes := [3]mgl32.Vec3{m.Col(0).Vec3(), m.Col(1).Vec3(), m.Col(2).Vec3()}
	units := [3]mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	for i, axis := range axes {
		l := axis.Len()
		scale[i] = l
		if l < mgl32.Epsilon {
			axes[i] = units[i]
			scale[i] = 0
			continue
		}
		axes[i] = axis.Mul(1 / l)
	}

	if axes[0].Dot(axes[1].Cross(axes[2])) < 0 {
		for i := range axes {
			axes[i] = axes[i].Mul(-1)
		}
		scale = scale.Mul(-1)
	}

	rotation = mgl32.Mat4ToQuat(mgl32.Mat3FromCols(axes[0], axes[1], axes[2]).Mat4()).Normalize()
	return translation, rotation, scale
}

func slerpShortest(a, b mgl32.Quat, t float32) mgl32.Quat {
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl32.QuatSlerp(a, b, t)
}
