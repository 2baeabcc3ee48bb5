package middlewares

import (
	"net/http"
	"strings"
	"time"

	"github.com/dropDatabas3/hancock/internal/authz"
	"github.com/dropDatabas3/hancock/internal/http/problem"
	"github.com/dropDatabas3/hancock/internal/observability/logger"
)

// BearerAuth requires a valid bearer access token. The codec only vouches
// for authenticity, so expiry is enforced here against the wall clock. On
// success the security context is placed on the request context.
//
// Failures are logged but answer with a bare 401: the reason a token was
// rejected is never disclosed to the caller.
func BearerAuth(tokens *authz.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.From(r.Context())

			raw, ok := bearerToken(r)
			if !ok {
				log.Warn("missing or malformed authorization header")
				problem.Render(w, problem.Unauthorized())
				return
			}

			sc, err := tokens.ValidateAccessToken(authz.AccessToken(raw))
			if err != nil {
				log.Warn("access token rejected", logger.Err(err))
				problem.Render(w, problem.Unauthorized())
				return
			}

			if !time.Now().Before(sc.Expires) {
				log.Warn("access token expired", logger.ContextID(sc.ID))
				problem.Render(w, problem.Unauthorized())
				return
			}

			ctx := setSecurityContext(r.Context(), sc)
			if user, ok := sc.Principal.(authz.User); ok {
				ctx = logger.ToContext(ctx, logger.From(ctx).With(logger.UserID(user.UserID)))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
