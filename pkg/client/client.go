package client

import (
	"errors"
	"io"
	"net/http"
	"strings"
)

const basePath = "/api/plantuml"

type Client struct {
	Diagrams DiagramService
	Formats  FormatService
	Health   HealthService
}

func New(url string, opts ...RequestOption) *Client {
	opts = append(opts, WithURL(url))

	return &Client{
		Diagrams: NewDiagramService(opts...),
		Formats:  NewFormatService(opts...),
		Health:   NewHealthService(opts...),
	}
}

type RequestConfig struct {
	URL   string
	Token string

	Client *http.Client
}

type RequestOption func(*RequestConfig)

func WithURL(url string) RequestOption {
	return func(c *RequestConfig) {
		c.URL = strings.TrimRight(url, "/")
	}
}

func WithToken(token string) RequestOption {
	return func(c *RequestConfig) {
		c.Token = token
	}
}

func WithClient(client *http.Client) RequestOption {
	return func(c *RequestConfig) {
		c.Client = client
	}
}

func newRequestConfig(opts ...RequestOption) *RequestConfig {
	c := &RequestConfig{
		Client: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *RequestConfig) newRequest(r *http.Request) *http.Request {
	if c.Token != "" {
		r.Header.Set("Authorization", "Bearer "+c.Token)
	}

	return r
}

func convertError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	if len(data) == 0 {
		return errors.New(resp.Status)
	}

	return errors.New(strings.TrimSpace(string(data)))
}

func Ptr[T any](v T) *T {
	return &v
}
