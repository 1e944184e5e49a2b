package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/adrianliechti/plantuml/pkg/renderer"

	"github.com/hashicorp/go-retryablehttp"
)

var _ renderer.Provider = (*Client)(nil)

// Client renders diagrams through a remote PlantUML server.
type Client struct {
	client *retryablehttp.Client

	url   string
	token string
}

func New(url string, options ...Option) (*Client, error) {
	if url == "" {
		return nil, errors.New("invalid url")
	}

	client := retryablehttp.NewClient()
	client.RetryMax = 0
	client.Logger = nil

	c := &Client{
		client: client,

		url: strings.TrimRight(url, "/"),
	}

	for _, option := range options {
		option(c)
	}

	// engine answers invalid diagrams with an error image, keep the response
	c.client.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return c, nil
}

func (c *Client) Render(ctx context.Context, code string, format renderer.Format, options *renderer.RenderOptions) (*renderer.Rendering, error) {
	if options == nil {
		options = new(renderer.RenderOptions)
	}

	encoded, err := Encode(code)

	if err != nil {
		return nil, &renderer.RenderError{Err: err}
	}

	u, _ := url.JoinPath(c.url, string(format), encoded)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)

	if err != nil {
		return nil, &renderer.RenderError{Err: err}
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, &renderer.RenderError{Err: err}
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && !isDiagramError(resp) {
		return nil, convertError(resp)
	}

	data, err := io.ReadAll(resp.Body)

	if err != nil {
		return nil, &renderer.RenderError{Err: err}
	}

	return &renderer.Rendering{
		Format: format,

		Content:     data,
		ContentType: format.ContentType(),
	}, nil
}

func convertError(resp *http.Response) error {
	message := resp.Header.Get("X-PlantUML-Diagram-Error")

	if message == "" && !isImage(resp.Header.Get("Content-Type")) {
		data, _ := io.ReadAll(resp.Body)
		message = strings.TrimSpace(string(data))
	}

	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	return &renderer.RenderError{
		Message: message,
	}
}

// isDiagramError reports whether the engine answered an invalid diagram
// with its error image, which is regular output.
func isDiagramError(resp *http.Response) bool {
	return resp.StatusCode == http.StatusBadRequest && isImage(resp.Header.Get("Content-Type"))
}

func isImage(contentType string) bool {
	return strings.HasPrefix(contentType, "image/") || strings.HasPrefix(contentType, "application/pdf") || strings.HasPrefix(contentType, "application/postscript")
}
