package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/adrianliechti/plantuml/server/api"
)

type DiagramRequest = api.Request
type DiagramResponse = api.Response

type Image struct {
	Name string

	Content     []byte
	ContentType string
}

type DiagramService struct {
	Options []RequestOption
}

func NewDiagramService(opts ...RequestOption) DiagramService {
	return DiagramService{
		Options: opts,
	}
}

// Generate renders through the JSON envelope endpoint. A failed envelope is
// returned as an error carrying its message.
func (r *DiagramService) Generate(ctx context.Context, input DiagramRequest, opts ...RequestOption) (*DiagramResponse, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	var body bytes.Buffer

	if err := json.NewEncoder(&body).Encode(input); err != nil {
		return nil, err
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.URL+basePath+"/generate", &body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(c.newRequest(req))

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	var result DiagramResponse

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, errors.New(resp.Status)
		}

		return nil, err
	}

	if resp.StatusCode != http.StatusOK || !result.Success {
		return nil, errors.New(result.Message)
	}

	return &result, nil
}

// Image renders through the direct endpoint and returns the raw bytes.
func (r *DiagramService) Image(ctx context.Context, format, code string, opts ...RequestOption) (*Image, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	var body bytes.Buffer

	if err := json.NewEncoder(&body).Encode(DiagramRequest{Code: code}); err != nil {
		return nil, err
	}

	u := c.URL + basePath + "/image/" + url.PathEscape(format)

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, u, &body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(c.newRequest(req))

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, convertError(resp)
	}

	data, err := io.ReadAll(resp.Body)

	if err != nil {
		return nil, err
	}

	name := "diagram." + format

	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		name = params["filename"]
	}

	return &Image{
		Name: name,

		Content:     data,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}
