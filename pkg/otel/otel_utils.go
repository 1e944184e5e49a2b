package otel

import (
	"context"

	"github.com/adrianliechti/plantuml/pkg/auth"

	"go.opentelemetry.io/otel/attribute"
)

func EndUserAttrs(ctx context.Context) []attribute.KeyValue {
	var attrs []attribute.KeyValue

	if user, ok := ctx.Value(auth.UserContextKey).(string); ok && user != "" {
		attrs = append(attrs, attribute.String("enduser.id", user))
	}

	if email, ok := ctx.Value(auth.EmailContextKey).(string); ok && email != "" {
		attrs = append(attrs, attribute.String("enduser.email", email))
	}

	return attrs
}
