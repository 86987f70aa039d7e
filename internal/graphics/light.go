package graphics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Light is a single point light. Flicker is the current brightness
// multiplier; zero means steady.
type Light struct {
	Position  mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
	Flicker   float32
}

// Radiance returns the colour scaled by intensity and flicker
func (l Light) Radiance() mgl32.Vec3 {
	f := l.Flicker
	if f == 0 {
		f = 1
	}
	return l.Color.Mul(l.Intensity * f)
}

// Flicker returns the fire brightness multiplier at time t seconds
func Flicker(t float64) float32 {
	f := 0.85 + 0.15*math.Sin(5*t)
	return mgl32.Clamp(float32(f), 0.8, 1.2)
}
