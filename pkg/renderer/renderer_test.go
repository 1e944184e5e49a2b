package renderer_test

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/adrianliechti/plantuml/pkg/renderer"

	"github.com/stretchr/testify/require"
)

type staticRenderer struct {
	content []byte
	err     error
}

func (r *staticRenderer) Render(ctx context.Context, code string, format renderer.Format, options *renderer.RenderOptions) (*renderer.Rendering, error) {
	if r.err != nil {
		return nil, r.err
	}

	return &renderer.Rendering{
		Format: format,

		Content:     r.content,
		ContentType: format.ContentType(),
	}, nil
}

func TestRenderBase64(t *testing.T) {
	content := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0xFF, 0xFE}

	p := &staticRenderer{content: content}

	data, err := renderer.RenderBase64(context.Background(), p, "@startuml\nA -> B\n@enduml", renderer.FormatPNG, nil)
	require.NoError(t, err)

	require.Equal(t, base64.StdEncoding.EncodeToString(content), data)
	require.NotContains(t, data, "\n")

	decoded, err := base64.StdEncoding.DecodeString(data)
	require.NoError(t, err)
	require.Equal(t, content, decoded)
}

func TestRenderBase64Error(t *testing.T) {
	p := &staticRenderer{err: &renderer.RenderError{Message: "dot not found"}}

	_, err := renderer.RenderBase64(context.Background(), p, "A -> B", renderer.FormatSVG, nil)

	var renderErr *renderer.RenderError
	require.True(t, errors.As(err, &renderErr))
	require.Equal(t, "dot not found", err.Error())
}

func TestRenderErrorMessage(t *testing.T) {
	cause := errors.New("broken pipe")

	err := &renderer.RenderError{Err: cause}

	require.Equal(t, "broken pipe", err.Error())
	require.ErrorIs(t, err, cause)
}
