package server

import (
	"context"

	"luxe/internal/models"
	"luxe/internal/store"
)

const (
	authTypeBearer  = "bearer"
	authTypeSession = "session"
	authTypeToken   = "admin_token"
)

type authContextKey struct{}

type authPrincipal struct {
	AuthType string
	Kind     string
	User     *models.User
	Admin    *store.AdminUser
}

func (p authPrincipal) isAdmin() bool {
	return p.Kind == store.SessionKindAdmin
}

func contextWithAuthPrincipal(ctx context.Context, principal authPrincipal) context.Context {
	return context.WithValue(ctx, authContextKey{}, principal)
}

func authPrincipalFromContext(ctx context.Context) (authPrincipal, bool) {
	if ctx == nil {
		return authPrincipal{}, false
	}
	principal, ok := ctx.Value(authContextKey{}).(authPrincipal)
	return principal, ok
}
