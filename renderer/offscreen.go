package renderer

import (
	"fmt"
	"log"

	gl "github.com/go-gl/gl/v4.3-core/gl"

	"github.com/richinsley/curlflow/encoder"
)

// OffscreenRenderer is the record-mode output target: an FBO plus a ring
// of pixel-pack buffers so readback of frame N overlaps the GPU's work on
// frame N+1.
type OffscreenRenderer struct {
	fbo       uint32
	textureID uint32
	width     int
	height    int

	pbos     []uint32
	pboIndex int
}

func NewOffscreenRenderer(width, height, numPBOs int) (*OffscreenRenderer, error) {
	if numPBOs < 2 {
		return nil, fmt.Errorf("number of PBOs must be at least 2")
	}

	or := &OffscreenRenderer{
		width:  width,
		height: height,
		pbos:   make([]uint32, numPBOs),
	}

	gl.GenFramebuffers(1, &or.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, or.fbo)
	gl.GenTextures(1, &or.textureID)
	gl.BindTexture(gl.TEXTURE_2D, or.textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, or.textureID, 0)

	if gl.CheckFramebufferStatus(gl.FRAMEBUFFER) != gl.FRAMEBUFFER_COMPLETE {
		return nil, fmt.Errorf("offscreen fbo is not complete")
	}

	bufferSize := width * height * 4
	gl.GenBuffers(int32(len(or.pbos)), &or.pbos[0])
	for i := 0; i < len(or.pbos); i++ {
		gl.BindBuffer(gl.PIXEL_PACK_BUFFER, or.pbos[i])
		gl.BufferData(gl.PIXEL_PACK_BUFFER, bufferSize, nil, gl.STREAM_READ)
	}

	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return or, nil
}

// Bind makes the FBO the active render destination (feedback.Target).
func (or *OffscreenRenderer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, or.fbo)
}

func (or *OffscreenRenderer) Size() (int, int) {
	return or.width, or.height
}

// ReadFrameAsync kicks off a readback of the current frame into one PBO
// and returns the pixels of the oldest pending readback. The first few
// returned frames lag by the ring depth, which an encoder never notices.
func (or *OffscreenRenderer) ReadFrameAsync() ([]byte, error) {
	bufferSize := or.width * or.height * 4

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, or.fbo)
	gl.ReadBuffer(gl.COLOR_ATTACHMENT0)
	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, or.pbos[or.pboIndex])
	gl.ReadPixels(0, 0, int32(or.width), int32(or.height), gl.RGBA, gl.UNSIGNED_BYTE, nil)

	nextIndex := (or.pboIndex + 1) % len(or.pbos)
	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, or.pbos[nextIndex])
	ptr := gl.MapBufferRange(gl.PIXEL_PACK_BUFFER, 0, bufferSize, gl.MAP_READ_BIT)
	if ptr == nil {
		gl.BindBuffer(gl.PIXEL_PACK_BUFFER, 0)
		return nil, fmt.Errorf("failed to map readback buffer")
	}

	pixels := make([]byte, bufferSize)
	copy(pixels, (*[1 << 30]byte)(ptr)[:bufferSize:bufferSize])
	gl.UnmapBuffer(gl.PIXEL_PACK_BUFFER)

	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, 0)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	or.pboIndex = nextIndex

	return pixels, nil
}

func (or *OffscreenRenderer) Destroy() {
	gl.DeleteFramebuffers(1, &or.fbo)
	gl.DeleteTextures(1, &or.textureID)
	gl.DeleteBuffers(int32(len(or.pbos)), &or.pbos[0])
}

// RunOffscreen drives the effect at a fixed timestep with no window and
// encodes every frame. The hidden-window context still exists, so the same
// pipelines serve both modes.
func (r *Renderer) RunOffscreen() error {
	or, err := NewOffscreenRenderer(*r.opts.Width, *r.opts.Height, *r.opts.NumPBOs)
	if err != nil {
		return fmt.Errorf("failed to create offscreen renderer: %w", err)
	}
	defer or.Destroy()

	enc, err := encoder.New(r.opts)
	if err != nil {
		return fmt.Errorf("failed to create encoder: %w", err)
	}
	go enc.Run()

	totalFrames := int(*r.opts.Duration * float64(*r.opts.FPS))
	dt := 1.0 / float64(*r.opts.FPS)
	log.Printf("Recording %d frames at %d fps", totalFrames, *r.opts.FPS)

	for i := 0; i < totalFrames; i++ {
		r.driver.Frame(or, dt)

		pixels, err := or.ReadFrameAsync()
		if err != nil {
			enc.Close()
			return err
		}
		enc.Send(&encoder.Frame{Pixels: pixels, PTS: int64(i)})
	}

	return enc.Close()
}
