package client

import (
	"context"
	"encoding/json"
	"net/http"
)

type FormatService struct {
	Options []RequestOption
}

func NewFormatService(opts ...RequestOption) FormatService {
	return FormatService{
		Options: opts,
	}
}

func (r *FormatService) List(ctx context.Context, opts ...RequestOption) ([]string, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, c.URL+basePath+"/formats", nil)

	resp, err := c.Client.Do(c.newRequest(req))

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, convertError(resp)
	}

	var formats []string

	if err := json.NewDecoder(resp.Body).Decode(&formats); err != nil {
		return nil, err
	}

	return formats, nil
}
