package feedback

import "testing"

type stageCall struct {
	op    string
	u     UniformBlock
	read  int
	write int
}

// recordingStages captures the dispatch sequence instead of touching a GPU.
type recordingStages struct {
	calls []stageCall
}

func (s *recordingStages) PingPong(u UniformBlock, read, write int) {
	s.calls = append(s.calls, stageCall{op: "pingpong", u: u, read: read, write: write})
}

func (s *recordingStages) Reset() {
	s.calls = append(s.calls, stageCall{op: "reset"})
}

func (s *recordingStages) Render(t Target, read int) {
	s.calls = append(s.calls, stageCall{op: "render", read: read})
}

type fakeTarget struct {
	width  int
	height int
}

func (t *fakeTarget) Bind() {}

func (t *fakeTarget) Size() (int, int) {
	return t.width, t.height
}

func (s *recordingStages) ops() []string {
	ops := make([]string, len(s.calls))
	for i, c := range s.calls {
		ops[i] = c.op
	}
	return ops
}

func equalOps(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFrameSequence(t *testing.T) {
	stages := &recordingStages{}
	d := NewDriver(stages, NewParams(4.0, 0.002), 1024, 1024, false)

	d.Frame(&fakeTarget{800, 600}, 1.0/60.0)

	want := []string{"pingpong", "pingpong", "render"}
	if !equalOps(stages.ops(), want) {
		t.Fatalf("frame sequence = %v, want %v", stages.ops(), want)
	}

	// first step reads the initial texture and writes its partner; the
	// second step runs against the swapped labels
	if stages.calls[0].read != 0 || stages.calls[0].write != 1 {
		t.Errorf("first step bound read=%d write=%d, want 0/1", stages.calls[0].read, stages.calls[0].write)
	}
	if stages.calls[1].read != 1 || stages.calls[1].write != 0 {
		t.Errorf("second step bound read=%d write=%d, want 1/0", stages.calls[1].read, stages.calls[1].write)
	}

	// after an even number of swaps the render samples the original texture
	if stages.calls[2].read != 0 {
		t.Errorf("render sampled texture %d, want 0", stages.calls[2].read)
	}
}

func TestRoleSwapInvariant(t *testing.T) {
	stages := &recordingStages{}
	d := NewDriver(stages, NewParams(4.0, 0.002), 512, 512, false)

	for frame := 0; frame < 5; frame++ {
		d.Frame(nil, 1.0/60.0)
	}

	// every dispatch must see the complement of its predecessor's labels
	for i := 1; i < len(stages.calls); i++ {
		prev, cur := stages.calls[i-1], stages.calls[i]
		if cur.read != prev.write || cur.write != prev.read {
			t.Fatalf("dispatch %d bound read=%d write=%d after read=%d write=%d", i, cur.read, cur.write, prev.read, prev.write)
		}
	}

	// an even number of swaps restores the initial labelling
	if d.Roles() != NewRoles() {
		t.Errorf("roles after %d swaps = %v, want %v", len(stages.calls), d.Roles(), NewRoles())
	}
}

func TestResetEdgeTrigger(t *testing.T) {
	stages := &recordingStages{}
	params := NewParams(4.0, 0.002)
	d := NewDriver(stages, params, 512, 512, false)

	// arming the flag twice still yields a single reset dispatch
	params.RequestReset()
	params.RequestReset()
	d.Frame(&fakeTarget{512, 512}, 1.0/60.0)

	want := []string{"pingpong", "pingpong", "reset", "render"}
	if !equalOps(stages.ops(), want) {
		t.Fatalf("frame sequence = %v, want %v", stages.ops(), want)
	}

	// the flag self-clears: the next frame must not reset again
	stages.calls = nil
	d.Frame(&fakeTarget{512, 512}, 1.0/60.0)
	for _, c := range stages.calls {
		if c.op == "reset" {
			t.Fatal("reset dispatched without a new request")
		}
	}

	// re-arming on a later frame triggers exactly one more
	stages.calls = nil
	params.RequestReset()
	d.Frame(&fakeTarget{512, 512}, 1.0/60.0)
	resets := 0
	for _, c := range stages.calls {
		if c.op == "reset" {
			resets++
		}
	}
	if resets != 1 {
		t.Errorf("got %d reset dispatches, want 1", resets)
	}
}

func TestSkipRenderKeepsSimulating(t *testing.T) {
	stages := &recordingStages{}
	d := NewDriver(stages, NewParams(4.0, 0.002), 1024, 1024, false)

	for frame := 0; frame < 3; frame++ {
		d.Frame(nil, 1.0/60.0)
	}

	steps := 0
	for _, c := range stages.calls {
		switch c.op {
		case "pingpong":
			steps++
		default:
			t.Fatalf("unexpected %q dispatch with no target", c.op)
		}
	}
	if steps != 6 {
		t.Errorf("got %d feedback steps over 3 renderless frames, want 6", steps)
	}
	if d.Roles() != NewRoles() {
		t.Errorf("roles = %v after 6 swaps, want %v", d.Roles(), NewRoles())
	}
}

func TestUniformPassThrough(t *testing.T) {
	stages := &recordingStages{}
	params := NewParams(4.0, 0.002)
	d := NewDriver(stages, params, 1024, 768, false)

	params.SetNoiseScale(5.0)
	d.Frame(&fakeTarget{800, 600}, 1.0/60.0)

	for _, c := range stages.calls {
		if c.op != "pingpong" {
			continue
		}
		if c.u.NoiseScale != 5.0 {
			t.Errorf("dispatch bound noiseScale %v, want exactly 5.0", c.u.NoiseScale)
		}
		// the compute stage normalizes by the simulation resolution,
		// never by the display target's
		if c.u.Resolution != [2]float32{1024, 768} {
			t.Errorf("dispatch bound resolution %v, want [1024 768]", c.u.Resolution)
		}
	}
}

func TestStaticModeOffset(t *testing.T) {
	stages := &recordingStages{}
	d := NewDriver(stages, NewParams(4.0, 0.004), 512, 512, false)

	d.Frame(nil, 1.0)
	d.Frame(nil, 1.0)

	for _, c := range stages.calls {
		if c.u.NoiseOffset != 0.004 {
			t.Errorf("noiseOffset = %v, want the slider value 0.004", c.u.NoiseOffset)
		}
	}
	if d.Timer() != 0 {
		t.Errorf("timer advanced to %v in static mode", d.Timer())
	}
}

func TestTimeModeTimer(t *testing.T) {
	stages := &recordingStages{}
	d := NewDriver(stages, NewParams(4.0, 2.0), 512, 512, true)

	d.Frame(nil, 0.5)
	if got := stages.calls[len(stages.calls)-1].u.NoiseOffset; got != 1.0 {
		t.Errorf("noiseOffset after 0.5s at scale 2 = %v, want 1.0", got)
	}

	d.Frame(nil, 0.25)
	if got := stages.calls[len(stages.calls)-1].u.NoiseOffset; got != 1.5 {
		t.Errorf("noiseOffset after a further 0.25s = %v, want 1.5", got)
	}
}
