// Package particles simulates the campfire flame on the CPU.
package particles

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// Fire defaults
const (
	DefaultCount  = 5000
	DefaultRadius = 0.5

	lifeRate = 0.6
	jitter   = 0.3
)

// DefaultCenter is where the flame sits above the ash bed
var DefaultCenter = mgl32.Vec3{0, -0.3, 0}

// Particle is one flame sprite. Life runs from 0 (born) to 1 (dead).
type Particle struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Life     float32
}

// Fire is a fixed-size pool of particles rising from a disc
type Fire struct {
	Center mgl32.Vec3
	Radius float32

	particles []Particle
	vertices  []float32
	rng       *rand.Rand
}

// NewFire spawns count particles in a disc of radius around center.
// Particles near the middle start faster and further along their life.
func NewFire(center mgl32.Vec3, radius float32, count int, seed uint64) *Fire {
	f := &Fire{
		Center:    center,
		Radius:    radius,
		particles: make([]Particle, count),
		vertices:  make([]float32, count*4),
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	for i := range f.particles {
		p := &f.particles[i]
		cf := f.spawn(p)
		p.Velocity[1] = mix(1.5, 3.5, cf)
		p.Life = mix(0.3, 1.0, cf)
	}
	f.pack()
	return f
}

// Len returns the number of particles
func (f *Fire) Len() int { return len(f.particles) }

// Particles returns the live particle slice. Callers must not resize it.
func (f *Fire) Particles() []Particle { return f.particles }

// Update ages every particle by dt seconds, respawning the dead ones, and
// moves them along their velocity.
func (f *Fire) Update(dt float32) {
	for i := range f.particles {
		p := &f.particles[i]
		p.Life += dt * lifeRate
		if p.Life >= 1 {
			cf := f.spawn(p)
			p.Velocity[1] = mix(0.5, 2.0, cf)
			p.Life = mix(0.6, 0.3, cf)
		}
		p.Position = p.Position.Add(p.Velocity.Mul(dt))
	}
	f.pack()
}

// Vertices returns the packed [x, y, z, life] buffer for upload
func (f *Fire) Vertices() []float32 { return f.vertices }

// spawn places p on the disc with lateral jitter and returns its centre
// factor: 1 in the middle, 0 on the rim.
func (f *Fire) spawn(p *Particle) float32 {
	offset := f.randomInDisc()
	r := mgl32.Vec2{offset[0], offset[2]}.Len()
	cf := float32(1)
	if f.Radius > 0 {
		cf = 1 - mgl32.Clamp(r/f.Radius, 0, 1)
	}

	p.Position = f.Center.Add(offset)
	p.Velocity = mgl32.Vec3{
		(f.rng.Float32() - 0.5) * jitter * (1 - cf),
		0,
		(f.rng.Float32() - 0.5) * jitter * (1 - cf),
	}
	return cf
}

// randomInDisc samples the disc uniformly by area
func (f *Fire) randomInDisc() mgl32.Vec3 {
	angle := f.rng.Float64() * 2 * math.Pi
	r := float32(math.Sqrt(f.rng.Float64())) * f.Radius
	return mgl32.Vec3{float32(math.Cos(angle)) * r, 0, float32(math.Sin(angle)) * r}
}

func (f *Fire) pack() {
	for i, p := range f.particles {
		v := f.vertices[i*4 : i*4+4]
		v[0], v[1], v[2], v[3] = p.Position[0], p.Position[1], p.Position[2], p.Life
	}
}

func mix(a, b, t float32) float32 {
	return a + (b-a)*t
}
