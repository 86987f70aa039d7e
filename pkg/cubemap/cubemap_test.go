package cubemap

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// crossImage paints every grid cell a colour derived from its position so
// that faces can be told apart after the split.
func crossImage(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size*4, size*3))
	for y := 0; y < size*3; y++ {
		for x := 0; x < size*4; x++ {
			img.Set(x, y, cellColor(x/size, y/size))
		}
	}
	return img
}

func cellColor(col, row int) color.RGBA {
	return color.RGBA{R: uint8(col * 60), G: uint8(row * 100), B: 7, A: 255}
}

func TestSplit(t *testing.T) {
	faces, err := Split(crossImage(8))
	require.NoError(t, err)

	expected := map[int][2]int{
		PositiveX: {2, 1},
		NegativeX: {0, 1},
		PositiveY: {1, 0},
		NegativeY: {1, 2},
		PositiveZ: {1, 1},
		NegativeZ: {3, 1},
	}
	for face, cell := range expected {
		f := faces[face]
		require.NotNil(t, f)
		assert.Equal(t, image.Rect(0, 0, 8, 8), f.Bounds())
		assert.Equal(t, cellColor(cell[0], cell[1]), f.RGBAAt(0, 0), "face %d", face)
		assert.Equal(t, cellColor(cell[0], cell[1]), f.RGBAAt(7, 7), "face %d", face)
	}
}

func TestSplitHonoursBoundsOrigin(t *testing.T) {
	img := crossImage(4)
	sub := image.NewRGBA(image.Rect(10, 20, 26, 32))
	for y := 0; y < 12; y++ {
		for x := 0; x < 16; x++ {
			sub.Set(10+x, 20+y, img.At(x, y))
		}
	}

	faces, err := Split(sub)
	require.NoError(t, err)
	assert.Equal(t, cellColor(3, 1), faces[NegativeZ].RGBAAt(2, 2))
}

func TestSplitRejectsBadLayout(t *testing.T) {
	for _, r := range []image.Rectangle{
		image.Rect(0, 0, 0, 0),
		image.Rect(0, 0, 16, 16),
		image.Rect(0, 0, 17, 12),
		image.Rect(0, 0, 16, 13),
	} {
		_, err := Split(image.NewRGBA(r))
		assert.ErrorIs(t, err, ErrLayout, "bounds %v", r)
	}
}

func TestResize(t *testing.T) {
	faces, err := Split(crossImage(8))
	require.NoError(t, err)

	same := Resize(faces, 8)
	assert.Same(t, faces[PositiveX], same[PositiveX])

	small := Resize(faces, 4)
	for _, f := range small {
		assert.Equal(t, image.Rect(0, 0, 4, 4), f.Bounds())
	}
	// uniform faces stay uniform after filtering, give or take rounding
	want, got := cellColor(2, 1), small[PositiveX].RGBAAt(1, 1)
	assert.InDelta(t, want.R, got.R, 1)
	assert.InDelta(t, want.G, got.G, 1)
	assert.InDelta(t, want.B, got.B, 1)
}
