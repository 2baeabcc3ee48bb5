package middlewares

import (
	"net/http"

	"github.com/dropDatabas3/hancock/internal/http/problem"
	"github.com/dropDatabas3/hancock/internal/observability/logger"
)

// WithRecover turns handler panics into a 500 problem response instead of
// tearing down the connection.
func WithRecover() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.From(r.Context()).Error("handler panicked",
						logger.String("panic", panicString(rec)),
						logger.Path(r.URL.Path),
					)
					problem.Render(w, problem.Internal())
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func panicString(rec any) string {
	switch v := rec.(type) {
	case error:
		return v.Error()
	case string:
		return v
	default:
		return "unknown panic"
	}
}
