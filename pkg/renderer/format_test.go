package renderer_test

import (
	"errors"
	"testing"

	"github.com/adrianliechti/plantuml/pkg/renderer"

	"github.com/stretchr/testify/require"
)

func TestResolveFormatDefault(t *testing.T) {
	format, err := renderer.ResolveFormat(nil)

	require.NoError(t, err)
	require.Equal(t, renderer.FormatPNG, format)
}

func TestParseFormatCaseInsensitive(t *testing.T) {
	for _, val := range []string{"PNG", "png", "PnG"} {
		format, err := renderer.ParseFormat(val)

		require.NoError(t, err, val)
		require.Equal(t, renderer.FormatPNG, format, val)
	}

	for _, f := range renderer.SupportedFormats {
		format, err := renderer.ParseFormat(string(f))

		require.NoError(t, err)
		require.Equal(t, f, format)
	}
}

func TestParseFormatUnsupported(t *testing.T) {
	for _, val := range []string{"bogus", "", "jpg", " png"} {
		_, err := renderer.ParseFormat(val)

		require.Error(t, err, val)
		require.True(t, errors.Is(err, renderer.ErrInvalidFormat))

		var formatErr *renderer.FormatError
		require.True(t, errors.As(err, &formatErr))
		require.Equal(t, val, formatErr.Value)
	}

	_, err := renderer.ParseFormat("bogus")
	require.EqualError(t, err, "Unsupported format: bogus. Supported formats: png, svg, pdf, eps")
}

func TestContentType(t *testing.T) {
	expected := map[renderer.Format]string{
		renderer.FormatPNG: "image/png",
		renderer.FormatSVG: "image/svg+xml",
		renderer.FormatPDF: "application/pdf",
		renderer.FormatEPS: "application/postscript",
	}

	for format, contentType := range expected {
		require.Equal(t, contentType, renderer.ContentType(format))
		require.Equal(t, contentType, format.ContentType())
	}

	require.Equal(t, "image/png", renderer.ContentType(renderer.Format("gif")))
}

func TestFormatNames(t *testing.T) {
	require.Equal(t, []string{"png", "svg", "pdf", "eps"}, renderer.FormatNames())
}
