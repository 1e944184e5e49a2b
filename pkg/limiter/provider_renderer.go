package limiter

import (
	"context"

	"github.com/adrianliechti/plantuml/pkg/renderer"

	"golang.org/x/time/rate"
)

type Renderer interface {
	Limiter
	renderer.Provider
}

type limitedRenderer struct {
	limiter  *rate.Limiter
	provider renderer.Provider
}

func NewRenderer(l *rate.Limiter, p renderer.Provider) Renderer {
	return &limitedRenderer{
		limiter:  l,
		provider: p,
	}
}

func (p *limitedRenderer) limiterSetup() {
}

func (p *limitedRenderer) Render(ctx context.Context, code string, format renderer.Format, options *renderer.RenderOptions) (*renderer.Rendering, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	return p.provider.Render(ctx, code, format, options)
}
