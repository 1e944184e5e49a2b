package config

import (
	"bytes"
	"errors"
	"io/fs"
	"os"

	"github.com/adrianliechti/plantuml/pkg/auth"
	"github.com/adrianliechti/plantuml/pkg/mcp"
	"github.com/adrianliechti/plantuml/pkg/renderer"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Address string

	Authorizers []auth.Provider

	renderer map[string]renderer.Provider

	mcp *mcp.Server
}

// Parse reads the config file at path. A missing file yields the
// environment based defaults.
func Parse(path string) (*Config, error) {
	file, err := parseFile(path)

	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}

		file = &configFile{}
	}

	c := &Config{
		Address: ":9090",
	}

	if file.Address != "" {
		c.Address = file.Address
	}

	if err := c.registerAuthorizer(file); err != nil {
		return nil, err
	}

	if err := c.registerRenderers(file); err != nil {
		return nil, err
	}

	if err := c.registerMCP(file); err != nil {
		return nil, err
	}

	return c, nil
}

type configFile struct {
	Address string `yaml:"address"`

	Authorizers []authorizerConfig `yaml:"authorizers"`

	Renderers yaml.Node `yaml:"renderers"`

	MCP *mcpConfig `yaml:"mcp"`
}

func parseFile(path string) (*configFile, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	var config configFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func createLimiter(limit *int) *rate.Limiter {
	if limit == nil {
		return nil
	}

	return rate.NewLimiter(rate.Limit(*limit), *limit)
}
