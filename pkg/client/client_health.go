package client

import (
	"context"
	"encoding/json"
	"net/http"
)

type HealthService struct {
	Options []RequestOption
}

func NewHealthService(opts ...RequestOption) HealthService {
	return HealthService{
		Options: opts,
	}
}

func (r *HealthService) Check(ctx context.Context, opts ...RequestOption) (*DiagramResponse, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, c.URL+basePath+"/health", nil)

	resp, err := c.Client.Do(c.newRequest(req))

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, convertError(resp)
	}

	var result DiagramResponse

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}
