package api

import (
	"encoding/json"
	"net/http"

	"github.com/adrianliechti/plantuml/config"
	"github.com/adrianliechti/plantuml/pkg/auth"

	"github.com/go-chi/chi/v5"
)

const (
	messageHealthy   = "PlantUML server is running"
	messageGenerated = "Image generated successfully"
	messageFailed    = "Error generating image: "
)

type Handler struct {
	*config.Config
}

func New(cfg *config.Config) (*Handler, error) {
	h := &Handler{
		Config: cfg,
	}

	return h, nil
}

func (h *Handler) Attach(r chi.Router) {
	r.Route("/api/plantuml", func(r chi.Router) {
		r.Get("/health", h.handleHealth)
		r.Get("/formats", h.handleFormats)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(h.Authorizers...))

			r.Post("/generate", h.handleGenerate)
			r.Post("/image/{format}", h.handleImage)
		})
	})
}

func writeJson(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	text := http.StatusText(code)

	if err != nil {
		text = err.Error()
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)

	w.Write([]byte(text))
}
