package adaptive

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/adrianliechti/plantuml/pkg/renderer"
	"github.com/adrianliechti/plantuml/pkg/router"
)

var _ renderer.Provider = (*Renderer)(nil)

const (
	defaultLatencyAlpha = 0.3
)

// Renderer prefers fast, reliable and idle backends using weighted random
// selection, with the same circuit breaker as the round-robin renderer.
type Renderer struct {
	renderers []renderer.Provider
	stats     []*router.RendererStats

	failureThreshold int
	recoveryTimeout  time.Duration
	latencyAlpha     float64
}

func NewRenderer(renderers ...renderer.Provider) (*Renderer, error) {
	if len(renderers) == 0 {
		return nil, errors.New("at least one renderer is required")
	}

	stats := make([]*router.RendererStats, len(renderers))

	for i := range stats {
		stats[i] = router.NewRendererStats()
	}

	return &Renderer{
		renderers: renderers,
		stats:     stats,

		failureThreshold: router.DefaultFailureThreshold,
		recoveryTimeout:  router.DefaultRecoveryTimeout,
		latencyAlpha:     defaultLatencyAlpha,
	}, nil
}

func (r *Renderer) Render(ctx context.Context, code string, format renderer.Format, options *renderer.RenderOptions) (*renderer.Rendering, error) {
	index, release, err := r.acquire()

	if err != nil {
		return nil, err
	}

	defer release()

	stats := r.stats[index]

	start := time.Now()

	result, err := r.renderers[index].Render(ctx, code, format, options)

	if err != nil {
		stats.RecordFailure(r.failureThreshold)
		return nil, err
	}

	stats.RecordSuccess(time.Since(start), r.latencyAlpha)

	return result, nil
}

// selectRenderer scores every available backend by latency, error rate
// and current load; higher is better.
// acquire selects a renderer and admits the render, selecting again when
// another render already probes the chosen half-open renderer.
func (r *Renderer) acquire() (int, func(), error) {
	for range r.renderers {
		index := r.selectRenderer()

		if release, ok := r.stats[index].Acquire(); ok {
			return index, release, nil
		}
	}

	return -1, nil, router.ErrUnavailable
}

func (r *Renderer) selectRenderer() int {
	candidates := make([]int, 0, len(r.renderers))
	scores := make([]float64, 0, len(r.renderers))

	for i, s := range r.stats {
		if !s.IsAvailable(r.recoveryTimeout) {
			continue
		}

		state, avgLatency, totalRequests, totalFailures, inflight := s.Metrics()

		latency := float64(avgLatency.Milliseconds())

		if latency < 1 {
			latency = 1
		}

		var errorRate float64

		if totalRequests > 0 {
			errorRate = float64(totalFailures) / float64(totalRequests)
		}

		score := 1.0 / (1.0 + float64(inflight)) / (latency * (1 + errorRate*10))

		if state == router.CircuitHalfOpen {
			score *= 0.1
		}

		candidates = append(candidates, i)
		scores = append(scores, score)
	}

	if len(candidates) == 0 {
		return router.Fallback(r.stats)
	}

	return weightedSelect(candidates, scores)
}

func weightedSelect(candidates []int, scores []float64) int {
	if len(candidates) == 1 {
		return candidates[0]
	}

	var total float64

	for _, score := range scores {
		total += score
	}

	if total <= 0 {
		return candidates[rand.Intn(len(candidates))]
	}

	point := rand.Float64() * total

	var cumulative float64

	for i, score := range scores {
		cumulative += score

		if point <= cumulative {
			return candidates[i]
		}
	}

	return candidates[len(candidates)-1]
}
