// Package camera provides an orbital camera that circles a fixed look-at
// point, and a registry that tracks which of several cameras is active.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Projection selects how an Orbital camera maps view space to clip space.
type Projection int

const (
	Perspective Projection = iota
	Orthographic
)

func (p Projection) String() string {
	if p == Orthographic {
		return "orthographic"
	}
	return "perspective"
}

// DefaultMinDistance keeps the camera from collapsing into its center.
const DefaultMinDistance = 0.1

// Orbital sits on a sphere of radius Distance around Center, placed by an
// accumulated orientation.
type Orbital struct {
	Center mgl32.Vec3

	// FOV is the vertical field of view in degrees.
	FOV       float32
	NearPlane float32
	FarPlane  float32
	// OrthoSize is the half height of the orthographic view volume.
	OrthoSize float32
	// MinDistance is the floor applied by Zoom.
	MinDistance float32

	distance    float32
	orientation mgl32.Quat
	projection  Projection
}

// NewOrbital returns a perspective camera looking at center from distance
// along +Z.
func NewOrbital(center mgl32.Vec3, distance float32) *Orbital {
	c := &Orbital{
		Center:      center,
		FOV:         30,
		NearPlane:   1,
		FarPlane:    100,
		OrthoSize:   2,
		MinDistance: DefaultMinDistance,
		orientation: mgl32.QuatIdent(),
		projection:  Perspective,
	}
	c.distance = c.clampDistance(distance)
	return c
}

// Distance returns the current orbit radius.
func (c *Orbital) Distance() float32 {
	return c.distance
}

// Orientation returns the accumulated rotation.
func (c *Orbital) Orientation() mgl32.Quat {
	return c.orientation
}

// Projection returns the current projection mode.
func (c *Orbital) Projection() Projection {
	return c.projection
}

// SetProjection switches to the given mode.
func (c *Orbital) SetProjection(p Projection) {
	c.projection = p
}

// Rotate applies yaw about the world up axis and pitch about the camera's own
// right axis. Yaw is applied outside the current orientation and pitch
// inside it, so repeated pitching never introduces roll.
func (c *Orbital) Rotate(yawDeg, pitchDeg float32) {
	yaw := mgl32.QuatRotate(mgl32.DegToRad(yawDeg), mgl32.Vec3{0, 1, 0})
	pitch := mgl32.QuatRotate(mgl32.DegToRad(pitchDeg), mgl32.Vec3{1, 0, 0})
	c.orientation = yaw.Mul(c.orientation).Mul(pitch).Normalize()
}

// Zoom moves the camera along its view ray. The distance never drops below
// MinDistance.
func (c *Orbital) Zoom(delta float32) {
	c.distance = c.clampDistance(c.distance + delta)
}

// ToggleProjection flips between perspective and orthographic.
func (c *Orbital) ToggleProjection() {
	if c.projection == Perspective {
		c.projection = Orthographic
	} else {
		c.projection = Perspective
	}
}

// Position returns the eye point in world space.
func (c *Orbital) Position() mgl32.Vec3 {
	return c.Center.Add(c.orientation.Rotate(mgl32.Vec3{0, 0, c.distance}))
}

// Up returns the camera's rotated up vector.
func (c *Orbital) Up() mgl32.Vec3 {
	return c.orientation.Rotate(mgl32.Vec3{0, 1, 0}).Normalize()
}

// ViewMatrix looks from Position towards Center using the camera's own up
// vector, so orbiting over a pole does not flip the image.
func (c *Orbital) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Center, c.Up())
}

// ProjectionMatrix returns the projection for the given viewport aspect ratio.
func (c *Orbital) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if c.projection == Orthographic {
		s := c.OrthoSize
		return mgl32.Ortho(-s*aspect, s*aspect, -s, s, c.NearPlane, c.FarPlane)
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.NearPlane, c.FarPlane)
}

func (c *Orbital) clampDistance(d float32) float32 {
	floor := c.MinDistance
	if floor <= 0 {
		floor = DefaultMinDistance
	}
	if d < floor {
		return floor
	}
	return d
}
