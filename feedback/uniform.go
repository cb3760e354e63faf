package feedback

// UniformBlock is the parameter record copied by value to the GPU on every
// pingPong dispatch. Its byte layout must match the std140 block declared
// by the compute kernel exactly: four contiguous 32-bit floats, field
// offsets 0, 4 and 8, total size 16, no padding.
type UniformBlock struct {
	NoiseScale  float32
	NoiseOffset float32 // offset step scale, or the accumulated timer in time-driven mode
	Resolution  [2]float32
}

// UniformBlockSize is the byte size of the GPU-side declaration.
const UniformBlockSize = 16
