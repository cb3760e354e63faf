package feedback

import (
	"sync"
	"testing"
)

func TestParamsTakeResetConsumes(t *testing.T) {
	p := NewParams(1.0, 0.01)

	if p.TakeReset() {
		t.Error("reset armed before any request")
	}

	p.RequestReset()
	if !p.TakeReset() {
		t.Error("reset not observed after request")
	}
	if p.TakeReset() {
		t.Error("reset observed twice for a single request")
	}
}

func TestParamsConcurrentWriter(t *testing.T) {
	p := NewParams(1.0, 0.01)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			p.SetNoiseScale(float32(i))
			p.SetOffsetScale(float32(i) / 100)
			p.RequestReset()
		}
	}()

	for i := 0; i < 1000; i++ {
		p.Snapshot()
		p.TakeReset()
	}
	wg.Wait()

	p.SetNoiseScale(7)
	ns, _ := p.Snapshot()
	if ns != 7 {
		t.Errorf("noiseScale = %v, want 7", ns)
	}
}
