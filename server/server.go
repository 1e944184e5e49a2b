package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/adrianliechti/plantuml/config"
	"github.com/adrianliechti/plantuml/server/api"
	"github.com/adrianliechti/plantuml/server/mcp"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Server struct {
	*config.Config
	http.Handler

	api *api.Handler
	mcp *mcp.Handler
}

func New(cfg *config.Config) (*Server, error) {
	api, err := api.New(cfg)

	if err != nil {
		return nil, err
	}

	mcp, err := mcp.New(cfg)

	if err != nil {
		return nil, err
	}

	mux := chi.NewMux()

	s := &Server{
		Config:  cfg,
		Handler: mux,

		api: api,
		mcp: mcp,
	}

	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(middleware.Recoverer)

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	mux.Use(func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, "plantuml",
			otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	})

	s.api.Attach(mux)
	s.mcp.Attach(mux)

	return s, nil
}

// ListenAndServe serves until ctx is done and then drains in-flight
// requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.Address,
		Handler: s,

		ReadHeaderTimeout: 10 * time.Second,
	}

	result := make(chan error, 1)

	go func() {
		slog.Info("server listening", "address", s.Address)
		result <- srv.ListenAndServe()
	}()

	select {
	case err := <-result:
		return err

	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-result; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
