package feedback

// Target is one frame's output surface. For the interactive loop it is the
// window's default framebuffer; record mode substitutes an offscreen FBO.
type Target interface {
	// Bind makes the surface the active render destination.
	Bind()
	// Size returns the drawable dimensions in pixels. The render stage
	// normalizes coordinates by these, not by the simulation resolution.
	Size() (int, int)
}

// Stages is the set of GPU pipelines the driver sequences each frame.
// Implementations issue work on the calling thread in call order; the
// driver relies on that ordering for write-then-read visibility between
// dispatches and encodes no other synchronization.
type Stages interface {
	// PingPong advances the feedback state by one step, sampling the
	// texture labelled read and writing the texture labelled write.
	PingPong(u UniformBlock, read, write int)
	// Reset zeroes both feedback textures.
	Reset()
	// Render warps the source image by the feedback texture labelled read
	// and writes the result to the target.
	Render(t Target, read int)
}

// stepsPerFrame is how many feedback steps run per displayed frame. Two
// steps advance the effect at a visually pleasing rate; this is a fixed
// policy constant, not derived from anything.
const stepsPerFrame = 2

// Driver owns the per-frame sequence: pingPong twice with a role swap
// after each dispatch, an optional reset, then a render when a target is
// available.
type Driver struct {
	stages Stages
	params *Params
	roles  Roles

	simWidth  int
	simHeight int

	// time-driven variant: the uniform's second field carries an
	// accumulated timer instead of the offset step scale.
	timeMode bool
	timer    float64
}

func NewDriver(stages Stages, params *Params, simWidth, simHeight int, timeMode bool) *Driver {
	return &Driver{
		stages:    stages,
		params:    params,
		roles:     NewRoles(),
		simWidth:  simWidth,
		simHeight: simHeight,
		timeMode:  timeMode,
	}
}

// Roles returns the current read/write labelling.
func (d *Driver) Roles() Roles {
	return d.roles
}

// Timer returns the accumulated noise time. Always zero outside time mode.
func (d *Driver) Timer() float64 {
	return d.timer
}

// Frame advances the simulation by one display frame. A nil target skips
// the render stage but the feedback state still evolves, so the effect
// keeps simulating while the window is minimised or no drawable exists.
func (d *Driver) Frame(target Target, dt float64) {
	noiseScale, offsetScale := d.params.Snapshot()

	u := UniformBlock{
		NoiseScale: noiseScale,
		Resolution: [2]float32{float32(d.simWidth), float32(d.simHeight)},
	}
	if d.timeMode {
		d.timer += dt * float64(offsetScale)
		u.NoiseOffset = float32(d.timer)
	} else {
		u.NoiseOffset = offsetScale
	}

	for i := 0; i < stepsPerFrame; i++ {
		d.stages.PingPong(u, d.roles.Read(), d.roles.Write())
		d.roles.Swap()
	}

	if d.params.TakeReset() {
		d.stages.Reset()
	}

	if target != nil {
		d.stages.Render(target, d.roles.Read())
	}
}
