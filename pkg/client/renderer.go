package client

import (
	"context"
	"errors"

	"github.com/adrianliechti/plantuml/pkg/renderer"
)

var _ renderer.Provider = (*Renderer)(nil)

// Renderer exposes a remote server as a renderer.Provider.
type Renderer struct {
	client *Client
}

func NewRenderer(url string, opts ...RequestOption) *Renderer {
	return &Renderer{
		client: New(url, opts...),
	}
}

func (r *Renderer) Render(ctx context.Context, code string, format renderer.Format, options *renderer.RenderOptions) (*renderer.Rendering, error) {
	image, err := r.client.Diagrams.Image(ctx, string(format), code)

	if err != nil {
		return nil, &renderer.RenderError{Message: err.Error(), Err: err}
	}

	contentType := image.ContentType

	if contentType == "" {
		contentType = format.ContentType()
	}

	return &renderer.Rendering{
		Format: format,

		Content:     image.Content,
		ContentType: contentType,
	}, nil
}

func (r *Renderer) Formats(ctx context.Context) ([]string, error) {
	return r.client.Formats.List(ctx)
}

func (r *Renderer) Health(ctx context.Context) error {
	result, err := r.client.Health.Check(ctx)

	if err != nil {
		return err
	}

	if !result.Success {
		return errors.New(result.Message)
	}

	return nil
}
