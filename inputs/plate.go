package inputs

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
)

// Resample scales img so its longer axis equals maxDim, preserving aspect.
func Resample(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w >= h {
		h = h * maxDim / w
		w = maxDim
	} else {
		w = w * maxDim / h
		h = maxDim
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// TestPlate generates the fallback source image: a color gradient with a
// grid overlay, which makes the flow distortion easy to see.
func TestPlate(size int) image.Image {
	if size < 1 {
		size = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	const cells = 16
	cell := size / cells
	if cell < 1 {
		cell = 1
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			fx := float64(x) / float64(size)
			fy := float64(y) / float64(size)

			r := uint8(255 * fx)
			g := uint8(255 * fy)
			b := uint8(255 * (0.5 + 0.5*math.Sin(2*math.Pi*(fx+fy))))

			if x%cell == 0 || y%cell == 0 {
				r, g, b = 230, 230, 230
			}
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}
