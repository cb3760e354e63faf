package options

// Options collects every command line switch. Fields are pointers so the
// flag package can own the storage directly.
type Options struct {
	Width     *int
	Height    *int
	SimSize   *int    // feedback texture resolution (square), fixed for the lifetime of the process
	ImageFile *string // source image asset; empty selects the built-in test plate
	TimeMode  *bool   // time-driven noise coordinate instead of the static z=0 plane

	NoiseScale  *float64 // initial noise scale, adjustable from the UI
	OffsetScale *float64 // initial offset/time scale, adjustable from the UI

	// Recording options
	Record     *bool
	Duration   *float64
	FPS        *int
	OutputFile *string
	Codec      *string
	FFMPEGPath *string
	NumPBOs    *int
}
