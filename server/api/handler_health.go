package api

import (
	"net/http"

	"github.com/adrianliechti/plantuml/pkg/renderer"
)

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusOK, Response{
		Success: true,
		Message: messageHealthy,
	})
}

func (h *Handler) handleFormats(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusOK, renderer.FormatNames())
}
