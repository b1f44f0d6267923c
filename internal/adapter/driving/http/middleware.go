package httphandler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jcarver/soloblog/internal/auth"
)

// statusWriter wraps http.ResponseWriter to capture the response status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

// WriteHeader captures the status code and delegates to the embedded writer.
func (sw *statusWriter) WriteHeader(status int) {
	sw.status = status
	sw.ResponseWriter.WriteHeader(status)
}

// loggingMiddleware logs each HTTP request with method, path, status, and duration.
func loggingMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}

// recoveryMiddleware recovers from panics in HTTP handlers, logs the error,
// and returns a 500 response.
func recoveryMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				logger.Error("panic recovered",
					"panic", v,
					"path", r.URL.Path,
				)
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// identityMiddleware resolves the session cookie into an identity on the
// request context. It never blocks a request: a missing or invalid token just
// means the request proceeds unauthenticated, and an invalid token is
// additionally cleared from the browser. Route handlers that mutate state
// must be wrapped in requireIdentity; page handlers render an anonymous view.
func identityMiddleware(authn *auth.Authenticator, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, clearCookie := authn.Verify(auth.ReadSessionCookie(r))
		if clearCookie {
			auth.ClearSessionCookie(w)
		}
		if identity != nil {
			r = r.WithContext(auth.ContextWithIdentity(r.Context(), identity))
		}

		next.ServeHTTP(w, r)
	})
}

// requireIdentity is the hard gate applied to mutation routes: no resolved
// identity means 401 and the wrapped handler never runs, so no store mutation
// can happen unauthenticated.
func requireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.IdentityFromContext(r.Context()) == nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// methodOverrideMiddleware rewrites POST into PUT or DELETE when the request
// carries a _method query parameter, so plain HTML forms can drive those
// routes. The override is read from the query string only: reading it from
// the body would consume multipart uploads before the handler parses them.
func methodOverrideMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			switch r.URL.Query().Get("_method") {
			case http.MethodPut:
				r.Method = http.MethodPut
			case http.MethodDelete:
				r.Method = http.MethodDelete
			}
		}

		next.ServeHTTP(w, r)
	})
}
