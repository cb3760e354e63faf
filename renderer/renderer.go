package renderer

import (
	"fmt"
	"log"
	"unsafe"

	gl "github.com/go-gl/gl/v4.3-core/gl"
	glfw "github.com/go-gl/glfw/v3.3/glfw"

	"github.com/richinsley/curlflow/feedback"
	"github.com/richinsley/curlflow/glfwcontext"
	"github.com/richinsley/curlflow/graphics"
	"github.com/richinsley/curlflow/inputs"
	"github.com/richinsley/curlflow/options"
	"github.com/richinsley/curlflow/shader"
	"github.com/richinsley/curlflow/ui"
)

// Renderer owns every GL resource of the effect and implements
// feedback.Stages for the frame driver. All methods must be called on the
// thread that owns the GL context.
type Renderer struct {
	context graphics.Context
	opts    *options.Options

	params *feedback.Params
	driver *feedback.Driver

	quadVAO uint32
	quadVBO uint32

	pair   *FeedbackPair
	source *inputs.ImageChannel

	pingPongProgram uint32
	resetProgram    uint32
	renderProgram   uint32
	ubo             uint32

	feedbackLoc int32
	imageLoc    int32

	groupsX int
	groupsY int

	controls     *ui.UI
	showControls bool

	recordMode bool
}

// screenTarget is the window's default framebuffer for one frame.
type screenTarget struct {
	width  int
	height int
}

func (t *screenTarget) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

func (t *screenTarget) Size() (int, int) {
	return t.width, t.height
}

// NewRenderer builds the GL context and every pipeline of the effect. Any
// failure here is a fatal startup error for the caller; there are no
// per-frame error paths once this returns.
func NewRenderer(opts *options.Options, ctx graphics.Context) (*Renderer, error) {
	r := &Renderer{
		opts:         opts,
		context:      ctx,
		recordMode:   *opts.Record,
		showControls: true,
	}

	r.context.MakeCurrent()

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Printf("OpenGL %s on %s", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))

	simSize := *opts.SimSize
	var err error
	r.pair, err = NewFeedbackPair(simSize, simSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create feedback textures: %w", err)
	}

	// work-group shape comes from the device, group counts from the
	// texture size, recomputed here at pipeline-build time
	var maxInvocations, maxX, maxY int32
	gl.GetIntegerv(gl.MAX_COMPUTE_WORK_GROUP_INVOCATIONS, &maxInvocations)
	gl.GetIntegeri_v(gl.MAX_COMPUTE_WORK_GROUP_SIZE, 0, &maxX)
	gl.GetIntegeri_v(gl.MAX_COMPUTE_WORK_GROUP_SIZE, 1, &maxY)
	localX, localY := workGroupSize(int(maxInvocations), int(maxX), int(maxY))
	r.groupsX = groupCount(simSize, localX)
	r.groupsY = groupCount(simSize, localY)
	log.Printf("Compute work groups: %dx%d of %dx%d invocations", r.groupsX, r.groupsY, localX, localY)

	r.pingPongProgram, err = newComputeProgram(shader.GetPingPongComputeShader(localX, localY, *opts.TimeMode))
	if err != nil {
		return nil, fmt.Errorf("failed to create pingPong pipeline: %w", err)
	}
	r.resetProgram, err = newComputeProgram(shader.GetResetComputeShader(localX, localY))
	if err != nil {
		return nil, fmt.Errorf("failed to create reset pipeline: %w", err)
	}
	r.renderProgram, err = newProgram(shader.GenerateVertexShader(), shader.GetRenderFragmentShader())
	if err != nil {
		return nil, fmt.Errorf("failed to create render pipeline: %w", err)
	}

	gl.UseProgram(r.renderProgram)
	r.feedbackLoc = gl.GetUniformLocation(r.renderProgram, gl.Str("u_feedback\x00"))
	r.imageLoc = gl.GetUniformLocation(r.renderProgram, gl.Str("u_image\x00"))
	gl.UseProgram(0)

	// uniform block, bound once; contents are replaced per dispatch
	gl.GenBuffers(1, &r.ubo)
	gl.BindBuffer(gl.UNIFORM_BUFFER, r.ubo)
	gl.BufferData(gl.UNIFORM_BUFFER, feedback.UniformBlockSize, nil, gl.DYNAMIC_DRAW)
	gl.BindBufferBase(gl.UNIFORM_BUFFER, 0, r.ubo)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)

	r.initQuad()

	r.params = feedback.NewParams(float32(*opts.NoiseScale), float32(*opts.OffsetScale))
	r.driver = feedback.NewDriver(r, r.params, simSize, simSize, *opts.TimeMode)

	return r, nil
}

var quadVertices = []float32{
	-1.0, 1.0, -1.0, -1.0, 1.0, -1.0,
	-1.0, 1.0, 1.0, -1.0, 1.0, 1.0,
}

func (r *Renderer) initQuad() {
	gl.GenVertexArrays(1, &r.quadVAO)
	gl.GenBuffers(1, &r.quadVBO)
	gl.BindVertexArray(r.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// InitScene loads the source image and wires the interactive controls.
func (r *Renderer) InitScene() error {
	img, err := inputs.LoadSourceImage(*r.opts.ImageFile, *r.opts.SimSize)
	if err != nil {
		return err
	}
	r.source, err = inputs.NewImageChannel(img)
	if err != nil {
		return fmt.Errorf("failed to create source texture: %w", err)
	}

	if r.recordMode {
		return nil
	}

	// interactive controls only make sense on a real window
	gctx, ok := r.context.(*glfwcontext.Context)
	if !ok {
		return nil
	}

	r.controls, err = ui.New(gctx.Window(), r.params, *r.opts.TimeMode)
	if err != nil {
		return fmt.Errorf("failed to create controls: %w", err)
	}

	gctx.RegisterKeyCallback(glfw.KeyR, r.params.RequestReset)
	gctx.RegisterKeyCallback(glfw.KeyT, func() {
		r.showControls = !r.showControls
	})

	return nil
}

// PingPong advances the feedback state by one step. Part of feedback.Stages.
func (r *Renderer) PingPong(u feedback.UniformBlock, read, write int) {
	gl.UseProgram(r.pingPongProgram)

	// verbatim copy of the block; layout is checked against the GLSL
	// declaration by the feedback package's layout test
	gl.BindBuffer(gl.UNIFORM_BUFFER, r.ubo)
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, feedback.UniformBlockSize, unsafe.Pointer(&u))
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.pair.TextureID(read))
	gl.BindImageTexture(0, r.pair.TextureID(write), 0, false, 0, gl.WRITE_ONLY, gl.RGBA32F)

	gl.DispatchCompute(uint32(r.groupsX), uint32(r.groupsY), 1)
	// image writes must be visible to the next dispatch's texture fetches
	gl.MemoryBarrier(gl.SHADER_IMAGE_ACCESS_BARRIER_BIT | gl.TEXTURE_FETCH_BARRIER_BIT)
}

// Reset zeroes both feedback textures. Part of feedback.Stages.
func (r *Renderer) Reset() {
	gl.UseProgram(r.resetProgram)
	gl.BindImageTexture(0, r.pair.TextureID(0), 0, false, 0, gl.WRITE_ONLY, gl.RGBA32F)
	gl.BindImageTexture(1, r.pair.TextureID(1), 0, false, 0, gl.WRITE_ONLY, gl.RGBA32F)
	gl.DispatchCompute(uint32(r.groupsX), uint32(r.groupsY), 1)
	gl.MemoryBarrier(gl.SHADER_IMAGE_ACCESS_BARRIER_BIT | gl.TEXTURE_FETCH_BARRIER_BIT)
}

// Render warps the source image by the feedback offsets and writes the
// result to the target. Part of feedback.Stages.
func (r *Renderer) Render(t feedback.Target, read int) {
	t.Bind()
	w, h := t.Size()
	gl.Viewport(0, 0, int32(w), int32(h))

	gl.UseProgram(r.renderProgram)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.pair.TextureID(read))
	gl.Uniform1i(r.feedbackLoc, 0)
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, r.source.GetTextureID())
	gl.Uniform1i(r.imageLoc, 1)

	gl.BindVertexArray(r.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)

	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Run is the interactive loop: simulate, render when a drawable exists,
// overlay the controls, present. The simulation keeps advancing while the
// window is minimised.
func (r *Renderer) Run() {
	last := r.context.Time()

	for !r.context.ShouldClose() {
		now := r.context.Time()
		dt := now - last
		last = now

		var target feedback.Target
		fbWidth, fbHeight := r.context.GetFramebufferSize()
		if fbWidth > 0 && fbHeight > 0 {
			target = &screenTarget{width: fbWidth, height: fbHeight}
		}

		r.driver.Frame(target, dt)

		if target != nil && r.controls != nil && r.showControls {
			r.controls.Frame(float32(dt), fbWidth, fbHeight)
		}

		r.context.EndFrame()
	}
}

func (r *Renderer) Shutdown() {
	if r.controls != nil {
		r.controls.Destroy()
	}
	if r.source != nil {
		r.source.Destroy()
	}
	if r.pair != nil {
		r.pair.Destroy()
	}
	gl.DeleteProgram(r.pingPongProgram)
	gl.DeleteProgram(r.resetProgram)
	gl.DeleteProgram(r.renderProgram)
	gl.DeleteBuffers(1, &r.ubo)
	gl.DeleteBuffers(1, &r.quadVBO)
	gl.DeleteVertexArrays(1, &r.quadVAO)
	r.context.Shutdown()
}
