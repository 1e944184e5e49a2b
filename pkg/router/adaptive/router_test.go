package adaptive

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/adrianliechti/plantuml/pkg/renderer"
	"github.com/adrianliechti/plantuml/pkg/router"
)

type mockRenderer struct {
	delay time.Duration
	err   error
	calls atomic.Int64
}

func (m *mockRenderer) Render(ctx context.Context, code string, format renderer.Format, options *renderer.RenderOptions) (*renderer.Rendering, error) {
	m.calls.Add(1)

	if m.delay > 0 {
		time.Sleep(m.delay)
	}

	if m.err != nil {
		return nil, m.err
	}

	return &renderer.Rendering{Format: format}, nil
}

func render(r *Renderer) error {
	_, err := r.Render(context.Background(), "@startuml\n@enduml", renderer.FormatSVG, nil)
	return err
}

func TestNewRenderer(t *testing.T) {
	if _, err := NewRenderer(); err == nil {
		t.Error("expected error for empty renderers")
	}
}

func TestRecordsLatency(t *testing.T) {
	mock := &mockRenderer{delay: 5 * time.Millisecond}

	r, _ := NewRenderer(mock)

	if err := render(r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, latency, requests, failures, inflight := r.stats[0].Metrics()

	if latency < 5*time.Millisecond {
		t.Errorf("expected latency of at least 5ms, got %v", latency)
	}

	if requests != 1 || failures != 0 {
		t.Errorf("expected 1 request and 0 failures, got %d/%d", requests, failures)
	}

	if inflight != 0 {
		t.Errorf("expected no inflight renders, got %d", inflight)
	}
}

func TestPrefersFastRenderer(t *testing.T) {
	slow := &mockRenderer{delay: 20 * time.Millisecond}
	fast := &mockRenderer{}

	r, _ := NewRenderer(slow, fast)

	r.stats[0].RecordSuccess(200*time.Millisecond, 0)
	r.stats[1].RecordSuccess(2*time.Millisecond, 0)

	for i := 0; i < 50; i++ {
		render(r)
	}

	if fast.calls.Load() <= slow.calls.Load() {
		t.Errorf("expected fast renderer to be preferred, got fast=%d slow=%d", fast.calls.Load(), slow.calls.Load())
	}
}

func TestSkipsFailingRenderer(t *testing.T) {
	failing := &mockRenderer{err: errors.New("engine down")}
	healthy := &mockRenderer{}

	r, _ := NewRenderer(failing, healthy)

	for i := 0; i < router.DefaultFailureThreshold; i++ {
		r.stats[0].RecordFailure(router.DefaultFailureThreshold)
	}

	for i := 0; i < 20; i++ {
		if err := render(r); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if failing.calls.Load() != 0 {
		t.Errorf("expected open circuit to be skipped, got %d calls", failing.calls.Load())
	}
}

func TestWeightedSelect(t *testing.T) {
	if got := weightedSelect([]int{3}, []float64{0}); got != 3 {
		t.Errorf("expected single candidate, got %d", got)
	}

	if got := weightedSelect([]int{1, 2}, []float64{0, 1}); got != 2 {
		t.Errorf("expected weighted candidate, got %d", got)
	}
}
