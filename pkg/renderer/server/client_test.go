package server_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/adrianliechti/plantuml/pkg/renderer"
	"github.com/adrianliechti/plantuml/pkg/renderer/server"

	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func TestRender(t *testing.T) {
	code := "@startuml\nAlice -> Bob: Hello\n@enduml"

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/plantuml/"), "/")
		require.Len(t, parts, 2)
		require.Equal(t, "png", parts[0])

		source, err := server.Decode(parts[1])
		require.NoError(t, err)
		require.Equal(t, code, source)

		w.Header().Set("Content-Type", "image/png")
		w.Write(pngMagic)
	}))

	defer ts.Close()

	c, err := server.New(ts.URL+"/plantuml/", server.WithToken("secret"))
	require.NoError(t, err)

	result, err := c.Render(context.Background(), code, renderer.FormatPNG, nil)
	require.NoError(t, err)

	require.Equal(t, pngMagic, result.Content)
	require.Equal(t, "image/png", result.ContentType)
}

func TestRenderDiagramError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("X-PlantUML-Diagram-Error", "Syntax Error?")
		w.WriteHeader(http.StatusBadRequest)
		w.Write(pngMagic)
	}))

	defer ts.Close()

	c, err := server.New(ts.URL)
	require.NoError(t, err)

	result, err := c.Render(context.Background(), "nonsense", renderer.FormatPNG, nil)
	require.NoError(t, err)

	require.Equal(t, pngMagic, result.Content)
	require.Equal(t, "image/png", result.ContentType)
}

func TestRenderBadRequest(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PlantUML-Diagram-Error", "Syntax Error?")
		http.Error(w, "bad request", http.StatusBadRequest)
	}))

	defer ts.Close()

	c, err := server.New(ts.URL)
	require.NoError(t, err)

	_, err = c.Render(context.Background(), "nonsense", renderer.FormatPNG, nil)

	var renderErr *renderer.RenderError
	require.True(t, errors.As(err, &renderErr))
	require.Equal(t, "Syntax Error?", err.Error())
}

func TestRenderTextError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "format not supported", http.StatusNotFound)
	}))

	defer ts.Close()

	c, err := server.New(ts.URL)
	require.NoError(t, err)

	_, err = c.Render(context.Background(), "A -> B", renderer.FormatEPS, nil)
	require.EqualError(t, err, "format not supported")
}

func TestRenderRetries(t *testing.T) {
	var calls atomic.Int32

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}

		w.Write([]byte("<svg/>"))
	}))

	defer ts.Close()

	c, err := server.New(ts.URL, server.WithRetries(2), server.WithRetryWait(time.Millisecond, 5*time.Millisecond))
	require.NoError(t, err)

	result, err := c.Render(context.Background(), "A -> B", renderer.FormatSVG, nil)
	require.NoError(t, err)

	require.Equal(t, "<svg/>", string(result.Content))
	require.Equal(t, int32(3), calls.Load())
}

func TestRenderNoRetriesByDefault(t *testing.T) {
	var calls atomic.Int32

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	defer ts.Close()

	c, err := server.New(ts.URL)
	require.NoError(t, err)

	_, err = c.Render(context.Background(), "A -> B", renderer.FormatSVG, nil)
	require.EqualError(t, err, "Service Unavailable")
	require.Equal(t, int32(1), calls.Load())
}

func TestNewInvalidURL(t *testing.T) {
	_, err := server.New("")
	require.Error(t, err)
}
