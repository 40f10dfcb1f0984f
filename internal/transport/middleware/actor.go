package middleware

import (
	"net/http"

	"github.com/medikeep/cabinet-backend/pkg/ctxutil"
)

// Actor returns middleware that lifts the chat actor ID from the
// X-Actor-Id header into the context. Requests without the header stay
// anonymous; handlers that need an actor reject those themselves.
func Actor() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id := r.Header.Get("X-Actor-Id"); id != "" {
				r = r.WithContext(ctxutil.WithActorID(r.Context(), id))
			}
			next.ServeHTTP(w, r)
		})
	}
}
