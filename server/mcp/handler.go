package mcp

import (
	"context"
	"net/http"

	"github.com/adrianliechti/plantuml/config"
	"github.com/adrianliechti/plantuml/pkg/auth"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	*config.Config

	handler http.Handler
}

func New(cfg *config.Config) (*Handler, error) {
	h := &Handler{
		Config: cfg,
	}

	s, err := cfg.MCP()

	if err != nil {
		return h, nil
	}

	handler, err := s.Handler(context.Background())

	if err != nil {
		return nil, err
	}

	h.handler = handler

	return h, nil
}

func (h *Handler) Attach(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(h.Authorizers...))

		r.Handle("/mcp", http.HandlerFunc(h.handleMCP))
	})
}

func (h *Handler) handleMCP(w http.ResponseWriter, r *http.Request) {
	if h.handler == nil {
		http.Error(w, "MCP not configured", http.StatusNotFound)
		return
	}

	h.handler.ServeHTTP(w, r)
}
