package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/adrianliechti/plantuml/config"
	"github.com/adrianliechti/plantuml/pkg/otel"
	"github.com/adrianliechti/plantuml/server"
)

var version = "dev"

func main() {
	configFlag := flag.String("config", "config.yaml", "config file")

	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	if err := otel.Setup(ctx, os.Stderr, "plantuml", version); err != nil {
		panic(err)
	}

	cfg, err := config.Parse(*configFlag)

	if err != nil {
		panic(err)
	}

	s, err := server.New(cfg)

	if err != nil {
		panic(err)
	}

	if err := s.ListenAndServe(ctx); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
