// Package cubemap cuts a skybox laid out as a horizontal cross into the six
// faces of a cube map.
//
// The cross is four faces wide and three faces tall:
//
//	    +Y
//	-X  +Z  +X  -Z
//	    -Y
package cubemap

import (
	"image"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// ErrLayout is returned for images that are not a 4x3 grid of square faces.
var ErrLayout = errors.New("cubemap: image is not a 4x3 cross of square faces")

// Face indexes follow the GL cube map target order starting at +X.
const (
	PositiveX = iota
	NegativeX
	PositiveY
	NegativeY
	PositiveZ
	NegativeZ
)

// cells holds the grid column and row of every face in the cross.
var cells = [6]image.Point{
	PositiveX: {2, 1},
	NegativeX: {0, 1},
	PositiveY: {1, 0},
	NegativeY: {1, 2},
	PositiveZ: {1, 1},
	NegativeZ: {3, 1},
}

// Split extracts the six faces of a cross image.
func Split(img image.Image) ([6]*image.RGBA, error) {
	var faces [6]*image.RGBA

	b := img.Bounds()
	size := b.Dx() / 4
	if size == 0 || b.Dx() != size*4 || b.Dy() != size*3 {
		return faces, errors.Wrapf(ErrLayout, "got %dx%d", b.Dx(), b.Dy())
	}

	for i, cell := range cells {
		src := image.Rect(cell.X*size, cell.Y*size, (cell.X+1)*size, (cell.Y+1)*size).Add(b.Min)
		face := image.NewRGBA(image.Rect(0, 0, size, size))
		draw.Copy(face, image.Point{}, img, src, draw.Src, nil)
		faces[i] = face
	}
	return faces, nil
}

// Resize scales every face to size x size. Faces already at that size are
// returned unchanged.
func Resize(faces [6]*image.RGBA, size int) [6]*image.RGBA {
	var out [6]*image.RGBA
	for i, f := range faces {
		if f.Bounds().Dx() == size && f.Bounds().Dy() == size {
			out[i] = f
			continue
		}
		dst := image.NewRGBA(image.Rect(0, 0, size, size))
		draw.CatmullRom.Scale(dst, dst.Bounds(), f, f.Bounds(), draw.Src, nil)
		out[i] = dst
	}
	return out
}
