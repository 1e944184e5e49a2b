package config

import (
	"errors"

	"github.com/adrianliechti/plantuml/pkg/mcp"
	"github.com/adrianliechti/plantuml/pkg/otel"
	"github.com/adrianliechti/plantuml/pkg/tool/plantuml"
)

type mcpConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	Renderer string `yaml:"renderer"`
}

func (cfg *Config) MCP() (*mcp.Server, error) {
	if cfg.mcp == nil {
		return nil, errors.New("mcp not configured")
	}

	return cfg.mcp, nil
}

func (cfg *Config) registerMCP(f *configFile) error {
	if f.MCP == nil {
		return nil
	}

	config := *f.MCP

	if config.Name == "" {
		config.Name = "plantuml-mcp-server"
	}

	if config.Version == "" {
		config.Version = "1.0.0"
	}

	r, err := cfg.Renderer(config.Renderer)

	if err != nil {
		return err
	}

	tools, err := plantuml.New(r)

	if err != nil {
		return err
	}

	s, err := mcp.New(config.Name, config.Version, otel.NewTool(config.Name, tools))

	if err != nil {
		return err
	}

	cfg.mcp = s

	return nil
}
