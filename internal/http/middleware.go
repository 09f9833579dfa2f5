package http

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/crispy-paddle/internal/auth"
)

// Middleware defines the standard signature for an HTTP middleware.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middlewares into a single handler.
// The middlewares are applied in the order they are passed.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// contextKey is a custom type to avoid key collisions in context.
type contextKey string

const identityKey contextKey = "identity"

// paramsMiddleware logs incoming requests and handles the 'verbose' query
// parameter for request-scoped debug logging.
func paramsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Info("incoming request", "method", r.Method, "url", r.URL.String())
		if r.URL.Query().Get("verbose") == "true" {
			originalLevel := log.GetLevel()
			log.SetLevel(log.DebugLevel)
			defer log.SetLevel(originalLevel)
		}
		next.ServeHTTP(w, r)
	})
}

// identityMiddleware extracts the caller identity from the Authorization
// header and stores it in the request context. Requests without a usable
// identity are rejected.
func identityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := auth.ParseIdentity(r.Header.Get("Authorization"))
		if err != nil {
			log.Warn("rejected request without identity", "url", r.URL.Path, "error", err)
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		ctx := context.WithValue(r.Context(), identityKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminOnly allows the request through only when the caller's email is on
// the admin allow-list. Must run after identityMiddleware.
func (s *Server) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decision := s.Authorizer.Authorize(identityFromContext(r))
		if !decision.IsAdmin {
			log.Warn("rejected non-admin request", "url", r.URL.Path, "principal", decision.Principal)
			respondError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// identityFromContext is a helper to safely retrieve the caller identity
// from the request context.
func identityFromContext(r *http.Request) *auth.Identity {
	id, ok := r.Context().Value(identityKey).(*auth.Identity)
	if !ok {
		return nil
	}
	return id
}
