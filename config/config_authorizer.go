package config

import (
	"context"
	"errors"
	"strings"

	"github.com/adrianliechti/plantuml/pkg/auth"
	"github.com/adrianliechti/plantuml/pkg/auth/oidc"
	"github.com/adrianliechti/plantuml/pkg/auth/static"
)

type authorizerConfig struct {
	Type string `yaml:"type"`

	Token  string   `yaml:"token"`
	Tokens []string `yaml:"tokens"`

	Issuer   string `yaml:"issuer"`
	Audience string `yaml:"audience"`
}

func (c *Config) registerAuthorizer(f *configFile) error {
	for _, a := range f.Authorizers {
		authorizer, err := createAuthorizer(a)

		if err != nil {
			return err
		}

		c.Authorizers = append(c.Authorizers, authorizer)
	}

	return nil
}

func createAuthorizer(cfg authorizerConfig) (auth.Provider, error) {
	switch strings.ToLower(cfg.Type) {
	case "static":
		return static.New(append(cfg.Tokens, cfg.Token)...)

	case "oidc":
		return oidc.New(context.Background(), cfg.Issuer, cfg.Audience)

	default:
		return nil, errors.New("invalid authorizer type: " + cfg.Type)
	}
}
