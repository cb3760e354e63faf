package feedback

import (
	"testing"
	"unsafe"
)

// The block is copied verbatim across the host/device boundary, so its
// layout must match the std140 declaration: field offsets 0, 4 and 8 in a
// 16 byte record with no padding.
func TestUniformBlockLayout(t *testing.T) {
	var u UniformBlock

	if size := unsafe.Sizeof(u); size != UniformBlockSize {
		t.Errorf("sizeof(UniformBlock) = %d, want %d", size, UniformBlockSize)
	}
	if off := unsafe.Offsetof(u.NoiseScale); off != 0 {
		t.Errorf("offset of NoiseScale = %d, want 0", off)
	}
	if off := unsafe.Offsetof(u.NoiseOffset); off != 4 {
		t.Errorf("offset of NoiseOffset = %d, want 4", off)
	}
	if off := unsafe.Offsetof(u.Resolution); off != 8 {
		t.Errorf("offset of Resolution = %d, want 8", off)
	}
}
