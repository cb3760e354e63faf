package inputs

import (
	"fmt"
	"image"
	"image/draw"
	"log"
	"os"

	"github.com/go-gl/gl/v4.3-core/gl"

	// decoders for the common asset formats
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ImageChannel is the static source texture the render stage warps. It is
// immutable after creation.
type ImageChannel struct {
	textureID  uint32
	resolution [2]float32
}

// NewImageChannel uploads the image as an RGBA8 texture with repeat
// addressing and linear filtering, the sampling mode the render pass
// expects for the warped lookup.
func NewImageChannel(img image.Image) (*ImageChannel, error) {
	if img == nil {
		return nil, fmt.Errorf("source image is nil")
	}

	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)

	// GL texture coordinates grow upward; image rows grow downward
	rgba = vflip(rgba)

	width := int32(rgba.Rect.Size().X)
	height := int32(rgba.Rect.Size().Y)

	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA8,
		width,
		height,
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(rgba.Pix),
	)

	gl.BindTexture(gl.TEXTURE_2D, 0)

	return &ImageChannel{
		textureID:  textureID,
		resolution: [2]float32{float32(width), float32(height)},
	}, nil
}

func (c *ImageChannel) GetTextureID() uint32 {
	return c.textureID
}

func (c *ImageChannel) ChannelRes() [2]float32 {
	return c.resolution
}

func (c *ImageChannel) Destroy() {
	gl.DeleteTextures(1, &c.textureID)
}

// vflip vertically flips the provided RGBA image.
func vflip(src *image.RGBA) *image.RGBA {
	bounds := src.Bounds()
	flipped := image.NewRGBA(bounds)
	height := bounds.Dy()

	// faster than calling At/Set for each pixel
	rowSize := bounds.Dx() * 4
	for y := 0; y < height; y++ {
		srcRow := src.Pix[((height-1)-y)*src.Stride:]
		dstRow := flipped.Pix[y*flipped.Stride:]
		copy(dstRow, srcRow[:rowSize])
	}
	return flipped
}

// LoadSourceImage decodes the asset at path and, when it exceeds maxDim on
// either axis, resamples it down. An empty path yields the built-in plate
// so the binary runs without any bundled asset.
func LoadSourceImage(path string, maxDim int) (image.Image, error) {
	if path == "" {
		log.Printf("No source image given, using the built-in plate")
		return TestPlate(maxDim), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode source image %s: %w", path, err)
	}
	log.Printf("Loaded source image %s (%s, %dx%d)", path, format, img.Bounds().Dx(), img.Bounds().Dy())

	if img.Bounds().Dx() > maxDim || img.Bounds().Dy() > maxDim {
		img = Resample(img, maxDim)
		log.Printf("Resampled source image to %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
	return img, nil
}
