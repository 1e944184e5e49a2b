package renderer

import (
	"context"
	"encoding/base64"
	"errors"
)

type Provider interface {
	Render(ctx context.Context, code string, format Format, options *RenderOptions) (*Rendering, error)
}

var (
	ErrEmptyInput = errors.New("PlantUML code is required")
)

type RenderOptions struct {
}

type Rendering struct {
	Format Format

	Content     []byte
	ContentType string
}

func RenderBase64(ctx context.Context, p Provider, code string, format Format, options *RenderOptions) (string, error) {
	result, err := p.Render(ctx, code, format, options)

	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(result.Content), nil
}

// RenderError is returned when the engine itself fails. Error returns the
// engine's message as is.
type RenderError struct {
	Message string

	Err error
}

func (e *RenderError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	if e.Err != nil {
		return e.Err.Error()
	}

	return "rendering failed"
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
