package ui

import (
	"fmt"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/inkyblackness/imgui-go/v4"

	"github.com/richinsley/curlflow/feedback"
)

// UI owns the imgui context and the controls window that exposes the three
// external mutation points: noise scale, offset/time scale and reset. The
// sliders write straight into the shared Params store; the driver picks
// the values up on its next frame.
type UI struct {
	imctx  *imgui.Context
	io     imgui.IO
	rnd    *glRenderer
	window *glfw.Window
	params *feedback.Params

	timeMode    bool
	noiseScale  float32
	offsetScale float32
}

func New(window *glfw.Window, params *feedback.Params, timeMode bool) (*UI, error) {
	u := &UI{
		imctx:    imgui.CreateContext(nil),
		window:   window,
		params:   params,
		timeMode: timeMode,
	}
	u.io = imgui.CurrentIO()
	u.io.SetDisplaySize(imgui.Vec2{X: 1, Y: 1})

	// seed the widget state from the shared store
	u.noiseScale = params.NoiseScale()
	u.offsetScale = params.OffsetScale()

	var err error
	u.rnd, err = newGLRenderer(u.io)
	if err != nil {
		u.imctx.Destroy()
		return nil, fmt.Errorf("failed to create controls renderer: %w", err)
	}

	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		u.io.AddMouseWheelDelta(float32(xoff), float32(yoff))
	})

	return u, nil
}

// Frame feeds the input state to imgui, rebuilds the controls window and
// draws it over the current framebuffer contents.
func (u *UI) Frame(dt float32, fbWidth, fbHeight int) {
	winWidth, winHeight := u.window.GetSize()
	if winWidth <= 0 || winHeight <= 0 {
		return
	}

	u.io.SetDisplaySize(imgui.Vec2{X: float32(winWidth), Y: float32(winHeight)})
	if dt <= 0 {
		dt = 1.0 / 60.0
	}
	u.io.SetDeltaTime(dt)

	x, y := u.window.GetCursorPos()
	u.io.SetMousePosition(imgui.Vec2{X: float32(x), Y: float32(y)})
	for i, button := range []glfw.MouseButton{glfw.MouseButton1, glfw.MouseButton2, glfw.MouseButton3} {
		u.io.SetMouseButtonDown(i, u.window.GetMouseButton(button) == glfw.Press)
	}

	imgui.NewFrame()
	u.drawControls()
	imgui.Render()

	u.rnd.render(imgui.RenderedDrawData(), float32(winWidth), float32(winHeight), float32(fbWidth), float32(fbHeight))
}

func (u *UI) drawControls() {
	imgui.SetNextWindowPosV(imgui.Vec2{X: 10, Y: 10}, imgui.ConditionFirstUseEver, imgui.Vec2{})
	imgui.SetNextWindowSizeV(imgui.Vec2{X: 280, Y: 0}, imgui.ConditionFirstUseEver)

	imgui.Begin("controls")

	if imgui.SliderFloatV("noise scale", &u.noiseScale, 0.1, 32.0, "%.2f", 1.0) {
		u.params.SetNoiseScale(u.noiseScale)
	}

	if u.timeMode {
		if imgui.SliderFloatV("time scale", &u.offsetScale, 0.0, 4.0, "%.2f", 1.0) {
			u.params.SetOffsetScale(u.offsetScale)
		}
	} else {
		if imgui.SliderFloatV("offset scale", &u.offsetScale, 0.0, 0.01, "%.4f", 1.0) {
			u.params.SetOffsetScale(u.offsetScale)
		}
	}

	if imgui.Button("Reset") {
		u.params.RequestReset()
	}

	imgui.End()
}

func (u *UI) Destroy() {
	u.rnd.destroy()
	u.imctx.Destroy()
}
