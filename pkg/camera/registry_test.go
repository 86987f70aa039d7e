package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestRegistryCycles(t *testing.T) {
	near := NewOrbital(mgl32.Vec3{}, 10)
	far := NewOrbital(mgl32.Vec3{}, 15)
	r := NewRegistry(near, far)

	assert.Equal(t, 2, r.Len())
	assert.Same(t, near, r.Active())
	assert.Same(t, far, r.Next())
	assert.Equal(t, 1, r.ActiveIndex())
	assert.Same(t, near, r.Next())
	assert.Same(t, near, r.Active())
}

func TestRegistryCamerasAreIndependent(t *testing.T) {
	r := NewRegistry(NewOrbital(mgl32.Vec3{}, 10), NewOrbital(mgl32.Vec3{}, 15))

	r.Active().Rotate(45, 10)
	r.Active().ToggleProjection()
	other := r.Next()

	assert.Equal(t, mgl32.QuatIdent(), other.Orientation())
	assert.Equal(t, Perspective, other.Projection())
	assert.Equal(t, Orthographic, r.At(0).Projection())
}

func TestRegistrySelect(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Active())
	assert.Nil(t, r.Next())
	assert.ErrorIs(t, r.Select(0), ErrNoCamera)

	assert.Equal(t, -1, r.Add(nil))
	assert.Equal(t, 0, r.Add(NewOrbital(mgl32.Vec3{}, 1)))
	assert.Equal(t, 1, r.Add(NewOrbital(mgl32.Vec3{}, 2)))
	assert.Equal(t, 2, r.Add(NewOrbital(mgl32.Vec3{}, 3)))

	assert.NoError(t, r.Select(2))
	assert.Equal(t, float32(3), r.Active().Distance())
	assert.ErrorIs(t, r.Select(3), ErrCameraIndex)
	assert.ErrorIs(t, r.Select(-1), ErrCameraIndex)
	assert.Equal(t, 2, r.ActiveIndex())
	assert.Nil(t, r.At(9))
}
