package oidc

import (
	"context"
	"net/http"

	"github.com/adrianliechti/plantuml/pkg/auth"

	"github.com/coreos/go-oidc/v3/oidc"
)

var _ auth.Provider = (*Provider)(nil)

type Provider struct {
	verifier *oidc.IDTokenVerifier
}

func New(ctx context.Context, issuer, audience string) (*Provider, error) {
	provider, err := oidc.NewProvider(ctx, issuer)

	if err != nil {
		return nil, err
	}

	cfg := &oidc.Config{
		ClientID: audience,

		SkipClientIDCheck: audience == "",
	}

	return &Provider{
		verifier: provider.Verifier(cfg),
	}, nil
}

func (p *Provider) Authenticate(ctx context.Context, r *http.Request) (context.Context, error) {
	token, err := auth.BearerToken(r)

	if err != nil {
		return ctx, err
	}

	idtoken, err := p.verifier.Verify(ctx, token)

	if err != nil {
		return ctx, err
	}

	var claims struct {
		Subject string `json:"sub"`
		Email   string `json:"email"`
	}

	if err := idtoken.Claims(&claims); err != nil {
		return ctx, err
	}

	if claims.Subject != "" {
		ctx = context.WithValue(ctx, auth.UserContextKey, claims.Subject)
	}

	if claims.Email != "" {
		ctx = context.WithValue(ctx, auth.EmailContextKey, claims.Email)
	}

	return ctx, nil
}
