package feedback

import "sync"

// Params is the control block shared between the UI and the frame driver.
// The UI (or a key callback) mutates it through the setters; the driver
// takes a snapshot once per frame. All methods are safe to call from any
// goroutine, which makes the single-writer contract explicit rather than
// relying on UI callbacks happening to run on the driving thread.
type Params struct {
	mu          sync.Mutex
	noiseScale  float32
	offsetScale float32
	reset       bool
}

func NewParams(noiseScale, offsetScale float32) *Params {
	return &Params{
		noiseScale:  noiseScale,
		offsetScale: offsetScale,
	}
}

func (p *Params) SetNoiseScale(v float32) {
	p.mu.Lock()
	p.noiseScale = v
	p.mu.Unlock()
}

func (p *Params) NoiseScale() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.noiseScale
}

func (p *Params) SetOffsetScale(v float32) {
	p.mu.Lock()
	p.offsetScale = v
	p.mu.Unlock()
}

func (p *Params) OffsetScale() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.offsetScale
}

// RequestReset arms the reset flag. The driver consumes it on the next
// frame; setting it again before then has no additional effect.
func (p *Params) RequestReset() {
	p.mu.Lock()
	p.reset = true
	p.mu.Unlock()
}

// Snapshot returns the current slider values as a consistent pair.
func (p *Params) Snapshot() (noiseScale, offsetScale float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.noiseScale, p.offsetScale
}

// TakeReset reports whether a reset was requested and clears the flag, so
// each request triggers at most one reset dispatch.
func (p *Params) TakeReset() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	armed := p.reset
	p.reset = false
	return armed
}
