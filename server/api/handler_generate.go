package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/adrianliechti/plantuml/pkg/renderer"
)

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req, err := readRequest(r)

	if err != nil {
		writeJson(w, http.StatusBadRequest, Response{
			Success: false,
			Message: err.Error(),
		})

		return
	}

	format, err := renderer.ResolveFormat(req.Format)

	if err != nil {
		writeJson(w, http.StatusBadRequest, Response{
			Success: false,
			Message: err.Error(),
		})

		return
	}

	p, err := h.Renderer("")

	if err != nil {
		writeJson(w, http.StatusInternalServerError, Response{
			Success: false,
			Message: messageFailed + err.Error(),
		})

		return
	}

	// a render is not aborted when the caller goes away
	ctx := context.WithoutCancel(r.Context())

	data, err := renderer.RenderBase64(ctx, p, req.Code, format, nil)

	if err != nil {
		slog.ErrorContext(ctx, "failed to generate image", "format", format, "error", err)

		writeJson(w, http.StatusInternalServerError, Response{
			Success: false,
			Message: messageFailed + err.Error(),
		})

		return
	}

	writeJson(w, http.StatusOK, Response{
		Success: true,
		Message: messageGenerated,

		Format:     string(format),
		Base64Data: data,
	})
}
