package httpx

import (
	"context"

	domainauth "github.com/milestone2github/callyn-backend/internal/domain/auth"
)

type sessionKey struct{}

// SetSessionInContext attaches the verified bearer session to ctx. A nil session leaves ctx as is.
func SetSessionInContext(ctx context.Context, session *domainauth.Session) context.Context {
	if session == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSessionFromContext returns the session RequireAuth stored, or nil on unprotected routes.
func GetSessionFromContext(ctx context.Context) *domainauth.Session {
	s, _ := ctx.Value(sessionKey{}).(*domainauth.Session)
	return s
}
