package camera

import (
	"errors"
)

var (
	ErrNoCamera    = errors.New("camera: registry is empty")
	ErrCameraIndex = errors.New("camera: index out of range")
)

// Registry holds an ordered set of cameras and the index of the active one.
type Registry struct {
	cameras []*Orbital
	active  int
}

// NewRegistry returns a registry whose first camera is active.
func NewRegistry(cams ...*Orbital) *Registry {
	r := &Registry{}
	for _, c := range cams {
		r.Add(c)
	}
	return r
}

// Add appends a camera and returns its index. Nil cameras are ignored and
// reported as -1.
func (r *Registry) Add(c *Orbital) int {
	if c == nil {
		return -1
	}
	r.cameras = append(r.cameras, c)
	return len(r.cameras) - 1
}

// Len returns the number of registered cameras.
func (r *Registry) Len() int {
	return len(r.cameras)
}

// At returns the camera at index i, or nil.
func (r *Registry) At(i int) *Orbital {
	if i < 0 || i >= len(r.cameras) {
		return nil
	}
	return r.cameras[i]
}

// Active returns the active camera, or nil when the registry is empty.
func (r *Registry) Active() *Orbital {
	return r.At(r.active)
}

// ActiveIndex returns the index of the active camera.
func (r *Registry) ActiveIndex() int {
	return r.active
}

// Select makes camera i active.
func (r *Registry) Select(i int) error {
	if len(r.cameras) == 0 {
		return ErrNoCamera
	}
	if i < 0 || i >= len(r.cameras) {
		return ErrCameraIndex
	}
	r.active = i
	return nil
}

// Next activates the following camera, wrapping around, and returns it.
func (r *Registry) Next() *Orbital {
	if len(r.cameras) == 0 {
		return nil
	}
	r.active = (r.active + 1) % len(r.cameras)
	return r.cameras[r.active]
}
