package auth

import (
	"anonymity-service/domain"
	"context"
)

type contextKey string

const principalKey contextKey = "principal"

// WithPrincipal injects the authenticated caller into ctx.
func WithPrincipal(ctx context.Context, principal domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// PrincipalFromContext returns the caller injected by the auth interceptor.
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey).(domain.Principal)
	return p, ok && p != ""
}
