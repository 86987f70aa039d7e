package graphics

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"forgelight/pkg/cubemap"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"
)

// DecodeImage reads and decodes a PNG or JPEG file
func DecodeImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open image %q", path)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, errors.Wrapf(err, "decode image %q", path)
	}
	return img, nil
}

// LoadCubemap reads a horizontal cross image and uploads it as a cube map
// texture.
func LoadCubemap(path string) (uint32, error) {
	img, err := DecodeImage(path)
	if err != nil {
		return 0, err
	}
	faces, err := cubemap.Split(img)
	if err != nil {
		return 0, errors.Wrapf(err, "skybox %q", path)
	}

	var maxSize int32
	gl.GetIntegerv(gl.MAX_CUBE_MAP_TEXTURE_SIZE, &maxSize)
	return UploadCubemap(fitFaces(faces, int(maxSize))), nil
}

// fitFaces scales faces down to limit when they are larger. A limit of zero
// or less leaves them alone.
func fitFaces(faces [6]*image.RGBA, limit int) [6]*image.RGBA {
	if limit <= 0 || faces[0] == nil || faces[0].Bounds().Dx() <= limit {
		return faces
	}
	return cubemap.Resize(faces, limit)
}

// UploadCubemap creates a cube map texture from faces in +X,-X,+Y,-Y,+Z,-Z order
func UploadCubemap(faces [6]*image.RGBA) uint32 {
	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, texture)

	for i, f := range faces {
		size := f.Rect.Size()
		gl.TexImage2D(
			gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i),
			0,
			gl.RGBA,
			int32(size.X),
			int32(size.Y),
			0,
			gl.RGBA,
			gl.UNSIGNED_BYTE,
			gl.Ptr(f.Pix),
		)
	}

	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)

	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return texture
}
