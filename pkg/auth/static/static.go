package static

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/adrianliechti/plantuml/pkg/auth"
)

var _ auth.Provider = (*Provider)(nil)

type Provider struct {
	tokens []string
}

func New(tokens ...string) (*Provider, error) {
	p := &Provider{}

	for _, t := range tokens {
		if t != "" {
			p.tokens = append(p.tokens, t)
		}
	}

	return p, nil
}

func (p *Provider) Authenticate(ctx context.Context, r *http.Request) (context.Context, error) {
	if len(p.tokens) == 0 {
		return ctx, nil
	}

	token, err := auth.BearerToken(r)

	if err != nil {
		return ctx, err
	}

	for _, t := range p.tokens {
		if subtle.ConstantTimeCompare([]byte(token), []byte(t)) == 1 {
			return context.WithValue(ctx, auth.UserContextKey, "static"), nil
		}
	}

	return ctx, errors.New("invalid token")
}
