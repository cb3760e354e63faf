package graphics

// Context defines the interface the render loop needs from a window system.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	// EndFrame presents the frame and pumps window events.
	EndFrame()
	// GetFramebufferSize returns the drawable size in pixels. Either
	// dimension may be zero while the window is minimised.
	GetFramebufferSize() (int, int)
	Time() float64
}
