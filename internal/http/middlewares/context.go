package middlewares

import (
	"context"

	"github.com/dropDatabas3/hancock/internal/authz"
)

type contextKey int

const (
	requestIDKey contextKey = iota
	securityContextKey
)

func setRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

// GetRequestID returns the request id injected by WithRequestID, or "".
func GetRequestID(ctx context.Context) string {
	rid, _ := ctx.Value(requestIDKey).(string)
	return rid
}

func setSecurityContext(ctx context.Context, sc authz.SecurityContext) context.Context {
	return context.WithValue(ctx, securityContextKey, sc)
}

// GetSecurityContext returns the security context injected by BearerAuth.
// ok is false on requests that did not pass the auth middleware.
func GetSecurityContext(ctx context.Context) (authz.SecurityContext, bool) {
	sc, ok := ctx.Value(securityContextKey).(authz.SecurityContext)
	return sc, ok
}
