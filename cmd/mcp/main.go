package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/adrianliechti/plantuml/pkg/client"
	"github.com/adrianliechti/plantuml/pkg/mcp"
	"github.com/adrianliechti/plantuml/pkg/otel"
	"github.com/adrianliechti/plantuml/pkg/tool/plantuml"
)

const name = "plantuml-mcp-server"

var version = "0.3.2"

func main() {
	serverURL := os.Getenv("PLANTUML_SERVER_URL")

	if serverURL == "" {
		serverURL = "http://localhost:9090"
	}

	var showVersion bool

	flag.StringVar(&serverURL, "server-url", serverURL, "PlantUML server url")
	flag.StringVar(&serverURL, "s", serverURL, "PlantUML server url (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&showVersion, "v", false, "print version (shorthand)")

	flag.Parse()

	if showVersion {
		fmt.Println(version)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	// stdout carries the protocol
	if err := otel.Setup(ctx, os.Stderr, name, version); err != nil {
		panic(err)
	}

	renderer := client.NewRenderer(serverURL)

	tools, err := plantuml.New(renderer,
		plantuml.WithServerURL(serverURL),
		plantuml.WithFileSave(true),
	)

	if err != nil {
		panic(err)
	}

	s, err := mcp.New(name, version, otel.NewTool(name, tools))

	if err != nil {
		panic(err)
	}

	slog.Info("mcp server started", "server_url", serverURL)

	if err := s.RunStdio(ctx); err != nil && ctx.Err() == nil {
		slog.Error("mcp server failed", "error", err)
		os.Exit(1)
	}
}
