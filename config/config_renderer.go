package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/adrianliechti/plantuml/pkg/limiter"
	"github.com/adrianliechti/plantuml/pkg/otel"
	"github.com/adrianliechti/plantuml/pkg/renderer"
	"github.com/adrianliechti/plantuml/pkg/renderer/plantuml"
	"github.com/adrianliechti/plantuml/pkg/renderer/server"
	"github.com/adrianliechti/plantuml/pkg/router/adaptive"
	"github.com/adrianliechti/plantuml/pkg/router/roundrobin"
)

func (cfg *Config) RegisterRenderer(id string, p renderer.Provider) {
	if cfg.renderer == nil {
		cfg.renderer = make(map[string]renderer.Provider)
	}

	if _, ok := cfg.renderer[""]; !ok {
		cfg.renderer[""] = p
	}

	cfg.renderer[id] = p
}

func (cfg *Config) Renderer(id string) (renderer.Provider, error) {
	if cfg.renderer != nil {
		if p, ok := cfg.renderer[id]; ok {
			return p, nil
		}
	}

	return nil, errors.New("renderer not found: " + id)
}

type rendererConfig struct {
	Type string `yaml:"type"`

	URL   string `yaml:"url"`
	Token string `yaml:"token"`

	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`

	Java string `yaml:"java"`
	Jar  string `yaml:"jar"`

	Dot     string `yaml:"dot"`
	Fonts   string `yaml:"fonts"`
	Charset string `yaml:"charset"`
	Include string `yaml:"include"`

	Timeout time.Duration `yaml:"timeout"`
	Retries int           `yaml:"retries"`

	Limit *int `yaml:"limit"`

	Renderers []string `yaml:"renderers"`
}

func (cfg *Config) registerRenderers(f *configFile) error {
	var configs map[string]rendererConfig

	if err := f.Renderers.Decode(&configs); err != nil {
		return err
	}

	for _, node := range f.Renderers.Content {
		id := node.Value

		config, ok := configs[node.Value]

		if !ok {
			continue
		}

		if err := cfg.registerRenderer(id, config); err != nil {
			return err
		}
	}

	if len(cfg.renderer) == 0 {
		return cfg.registerRenderer("plantuml", envRendererConfig())
	}

	return nil
}

func (cfg *Config) registerRenderer(id string, config rendererConfig) error {
	r, err := cfg.createRenderer(config)

	if err != nil {
		return err
	}

	if _, ok := r.(limiter.Renderer); !ok {
		r = limiter.NewRenderer(createLimiter(config.Limit), r)
	}

	if _, ok := r.(otel.Renderer); !ok {
		r = otel.NewRenderer(strings.ToLower(config.Type), id, r)
	}

	cfg.RegisterRenderer(id, r)

	return nil
}

func envRendererConfig() rendererConfig {
	config := rendererConfig{
		Type: "plantuml",

		Command: os.Getenv("PLANTUML_COMMAND"),
		Jar:     os.Getenv("PLANTUML_JAR"),

		Dot:     os.Getenv("PLANTUML_GRAPHVIZ_DOT"),
		Fonts:   os.Getenv("PLANTUML_FONT_PATH"),
		Charset: os.Getenv("PLANTUML_CHARSET"),
		Include: os.Getenv("PLANTUML_INCLUDE_PATH"),
	}

	if url := os.Getenv("PLANTUML_URL"); url != "" {
		config.Type = "server"
		config.URL = url
	}

	return config
}

func (c *Config) createRenderer(cfg rendererConfig) (renderer.Provider, error) {
	switch strings.ToLower(cfg.Type) {
	case "plantuml", "":
		return plantumlRenderer(cfg)

	case "server", "plantuml-server":
		return serverRenderer(cfg)

	case "roundrobin", "adaptive":
		return c.routerRenderer(cfg)

	default:
		return nil, errors.New("invalid renderer type: " + cfg.Type)
	}
}

func plantumlRenderer(cfg rendererConfig) (renderer.Provider, error) {
	var options []plantuml.Option

	if cfg.Command != "" {
		options = append(options, plantuml.WithCommand(cfg.Command, cfg.Args...))
	}

	if cfg.Java != "" {
		options = append(options, plantuml.WithJava(cfg.Java))
	}

	if cfg.Jar != "" {
		options = append(options, plantuml.WithJar(cfg.Jar))
	}

	if cfg.Dot != "" {
		options = append(options, plantuml.WithGraphvizDot(cfg.Dot))
	}

	if cfg.Fonts != "" {
		options = append(options, plantuml.WithFontPath(cfg.Fonts))
	}

	if cfg.Charset != "" {
		options = append(options, plantuml.WithCharset(cfg.Charset))
	}

	if cfg.Include != "" {
		options = append(options, plantuml.WithIncludePath(cfg.Include))
	}

	if cfg.Timeout > 0 {
		options = append(options, plantuml.WithTimeout(cfg.Timeout))
	}

	return plantuml.New(options...)
}

func serverRenderer(cfg rendererConfig) (renderer.Provider, error) {
	var options []server.Option

	if cfg.Token != "" {
		options = append(options, server.WithToken(cfg.Token))
	}

	if cfg.Retries > 0 {
		options = append(options, server.WithRetries(cfg.Retries))
	}

	return server.New(cfg.URL, options...)
}

func (c *Config) routerRenderer(cfg rendererConfig) (renderer.Provider, error) {
	var renderers []renderer.Provider

	for _, id := range cfg.Renderers {
		if id == "" {
			return nil, errors.New("invalid renderer reference")
		}

		r, err := c.Renderer(id)

		if err != nil {
			return nil, err
		}

		renderers = append(renderers, r)
	}

	if strings.ToLower(cfg.Type) == "adaptive" {
		return adaptive.NewRenderer(renderers...)
	}

	return roundrobin.NewRenderer(renderers...)
}
