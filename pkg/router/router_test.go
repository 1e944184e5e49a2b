package router

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestAcquireClosed(t *testing.T) {
	s := NewRendererStats()

	first, ok := s.Acquire()

	if !ok {
		t.Fatal("expected closed circuit to admit")
	}

	second, ok := s.Acquire()

	if !ok {
		t.Fatal("expected closed circuit to admit concurrent renders")
	}

	if _, _, _, _, inflight := s.Metrics(); inflight != 2 {
		t.Errorf("expected 2 inflight renders, got %d", inflight)
	}

	first()
	second()

	if _, _, _, _, inflight := s.Metrics(); inflight != 0 {
		t.Errorf("expected no inflight renders, got %d", inflight)
	}
}

func TestAcquireHalfOpenSingleProbe(t *testing.T) {
	s := NewRendererStats()
	s.SetHalfOpen()

	release, ok := s.Acquire()

	if !ok {
		t.Fatal("expected half-open circuit to admit a probe")
	}

	if _, ok := s.Acquire(); ok {
		t.Error("expected second probe to be rejected")
	}

	if s.IsAvailable(DefaultRecoveryTimeout) {
		t.Error("expected half-open circuit with a probe to be unavailable")
	}

	release()

	if !s.IsAvailable(DefaultRecoveryTimeout) {
		t.Error("expected half-open circuit to be available after the probe")
	}

	if _, ok := s.Acquire(); !ok {
		t.Error("expected a new probe after release")
	}
}

func TestAcquireHalfOpenConcurrent(t *testing.T) {
	s := NewRendererStats()
	s.SetHalfOpen()

	var admitted atomic.Int64
	var wg sync.WaitGroup

	start := make(chan struct{})

	for i := 0; i < 50; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			<-start

			if _, ok := s.Acquire(); ok {
				admitted.Add(1)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := admitted.Load(); got != 1 {
		t.Errorf("expected exactly 1 probe, got %d", got)
	}
}

func TestReleaseOfClosedRenderKeepsProbe(t *testing.T) {
	s := NewRendererStats()

	release, _ := s.Acquire()

	s.SetHalfOpen()

	if _, ok := s.Acquire(); !ok {
		t.Fatal("expected half-open circuit to admit a probe")
	}

	release()

	if _, ok := s.Acquire(); ok {
		t.Error("expected the running probe to still block a second probe")
	}
}

func TestCircuitOpensAndRecovers(t *testing.T) {
	s := NewRendererStats()

	for i := 0; i < DefaultFailureThreshold; i++ {
		s.RecordFailure(DefaultFailureThreshold)
	}

	if state, _, _, _, _ := s.Metrics(); state != CircuitOpen {
		t.Fatalf("expected open circuit, got %v", state)
	}

	if s.IsAvailable(DefaultRecoveryTimeout) {
		t.Error("expected open circuit to be unavailable")
	}

	if !s.IsAvailable(0) {
		t.Error("expected open circuit to turn half-open after the recovery timeout")
	}

	s.RecordSuccess(0, 0)

	if state, _, _, _, _ := s.Metrics(); state != CircuitClosed {
		t.Errorf("expected closed circuit after success, got %v", state)
	}
}
