package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/adrianliechti/plantuml/pkg/renderer"

	"github.com/go-chi/chi/v5"
)

// handleImage renders to raw bytes. The format path segment always wins
// over a format field in the body.
func (h *Handler) handleImage(w http.ResponseWriter, r *http.Request) {
	formatStr := chi.URLParam(r, "format")

	req, err := readRequest(r)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	format, err := renderer.ParseFormat(formatStr)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	p, err := h.Renderer("")

	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	ctx := context.WithoutCancel(r.Context())

	result, err := p.Render(ctx, req.Code, format, nil)

	if err != nil {
		slog.ErrorContext(ctx, "failed to generate image", "format", format, "error", err)

		writeError(w, http.StatusInternalServerError, errors.New(messageFailed+err.Error()))
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType(format))
	w.Header().Set("Content-Disposition", `attachment; filename="diagram.`+strings.ToLower(formatStr)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Content)))

	w.WriteHeader(http.StatusOK)
	w.Write(result.Content)
}
