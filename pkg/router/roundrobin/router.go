package roundrobin

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/adrianliechti/plantuml/pkg/renderer"
	"github.com/adrianliechti/plantuml/pkg/router"
)

var _ renderer.Provider = (*Renderer)(nil)

// Renderer spreads renders randomly over the healthy backends. Backends
// that keep failing are skipped until their circuit recovers.
type Renderer struct {
	renderers []renderer.Provider
	stats     []*router.RendererStats

	failureThreshold int
	recoveryTimeout  time.Duration
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
	}, nil
}

func (r *Renderer) Render(ctx context.Context, code string, format renderer.Format, options *renderer.RenderOptions) (*renderer.Rendering, error) {
	index, release, err := r.acquire()

	if err != nil {
		return nil, err
	}

	defer release()

	stats := r.stats[index]

	result, err := r.renderers[index].Render(ctx, code, format, options)

	if err != nil {
		stats.RecordFailure(r.failureThreshold)
		return nil, err
	}

	stats.RecordSuccess(0, 0)

	return result, nil
}

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

	for i, s := range r.stats {
		if s.IsAvailable(r.recoveryTimeout) {
			candidates = append(candidates, i)
		}
	}

	if len(candidates) == 0 {
		return router.Fallback(r.stats)
	}

	return candidates[rand.Intn(len(candidates))]
}
