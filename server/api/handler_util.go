package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/adrianliechti/plantuml/pkg/renderer"
)

// readRequest decodes the JSON body. An empty body is an empty request.
func readRequest(r *http.Request) (*Request, error) {
	var req Request

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.New("Invalid request body: " + err.Error())
	}

	if strings.TrimSpace(req.Code) == "" {
		return nil, renderer.ErrEmptyInput
	}

	return &req, nil
}
