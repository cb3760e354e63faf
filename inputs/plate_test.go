package inputs

import (
	"image"
	"testing"
)

func TestVFlip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 2; x++ {
			src.Pix[y*src.Stride+x*4] = uint8(y*10 + x)
		}
	}

	flipped := vflip(src)
	for y := 0; y < 3; y++ {
		for x := 0; x < 2; x++ {
			got := flipped.Pix[y*flipped.Stride+x*4]
			want := uint8((2-y)*10 + x)
			if got != want {
				t.Errorf("pixel (%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestResamplePreservesAspect(t *testing.T) {
	tests := []struct {
		w, h, maxDim int
		wantW, wantH int
	}{
		{4000, 2000, 1024, 1024, 512},
		{2000, 4000, 1024, 512, 1024},
		{300, 300, 100, 100, 100},
	}
	for _, tc := range tests {
		src := image.NewRGBA(image.Rect(0, 0, tc.w, tc.h))
		got := Resample(src, tc.maxDim)
		if got.Bounds().Dx() != tc.wantW || got.Bounds().Dy() != tc.wantH {
			t.Errorf("Resample(%dx%d, %d) = %dx%d, want %dx%d",
				tc.w, tc.h, tc.maxDim, got.Bounds().Dx(), got.Bounds().Dy(), tc.wantW, tc.wantH)
		}
	}
}

func TestTestPlateDimensions(t *testing.T) {
	img := TestPlate(256)
	if img.Bounds().Dx() != 256 || img.Bounds().Dy() != 256 {
		t.Errorf("plate bounds = %v, want 256x256", img.Bounds())
	}
}

func TestLoadSourceImageFallback(t *testing.T) {
	img, err := LoadSourceImage("", 128)
	if err != nil {
		t.Fatalf("fallback load failed: %v", err)
	}
	if img.Bounds().Dx() != 128 {
		t.Errorf("fallback plate width = %d, want 128", img.Bounds().Dx())
	}

	if _, err := LoadSourceImage("no/such/file.png", 128); err == nil {
		t.Error("expected an error for a missing asset")
	}
}
