package renderer

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.3-core/gl"
)

// FeedbackPair owns the two floating-point feedback textures. Which one is
// read and which is written on a given dispatch is decided by the driver's
// role labels; the pair itself is just storage. Allocated once, never
// resized.
type FeedbackPair struct {
	textureID [2]uint32
	width     int
	height    int
}

// NewFeedbackPair allocates both textures with repeat addressing and
// linear filtering, the sampling mode the pingPong kernel uses for the
// previous state. Allocation failure is unrecoverable: the effect cannot
// run without both textures.
func NewFeedbackPair(width, height int) (*FeedbackPair, error) {
	fp := &FeedbackPair{
		width:  width,
		height: height,
	}

	for i := 0; i < 2; i++ {
		var texture uint32
		gl.GenTextures(1, &texture)
		gl.BindTexture(gl.TEXTURE_2D, texture)
		// float format so offsets accumulate without quantizing
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA32F, int32(width), int32(height), 0, gl.RGBA, gl.FLOAT, nil)

		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)

		if errno := gl.GetError(); errno != gl.NO_ERROR {
			return nil, fmt.Errorf("failed to allocate feedback texture %d (gl error 0x%x)", i, errno)
		}

		fp.textureID[i] = texture
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return fp, nil
}

// TextureID returns the GL name of texture i (0 or 1).
func (fp *FeedbackPair) TextureID(i int) uint32 {
	return fp.textureID[i]
}

func (fp *FeedbackPair) Size() (int, int) {
	return fp.width, fp.height
}

func (fp *FeedbackPair) Destroy() {
	gl.DeleteTextures(2, &fp.textureID[0])
}
