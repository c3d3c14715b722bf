package transport

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"catalog/pkg/domain/service"
)

type contextKey string

const claimsKey contextKey = "claims"

func logMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.WithFields(log.Fields{
			"method":     r.Method,
			"url":        r.URL,
			"remoteAddr": r.RemoteAddr,
			"userAgent":  r.UserAgent(),
		}).Info("got a new request")
		h.ServeHTTP(w, r)
	})
}

// authMiddleware requires a valid bearer token on every route except
// login, registration and the public catalog reads. Verified claims are
// stashed in the request context for requireAdmin.
func authMiddleware(tokens *service.Tokens) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r) {
				next.ServeHTTP(w, r)
				return
			}

			raw := bearerToken(r)
			if raw == "" {
				writeMessage(w, http.StatusUnauthorized, "authorization token is missing")
				return
			}
			claims, err := tokens.Verify(raw)
			if err != nil {
				writeMessage(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
		})
	}
}

func isPublicPath(r *http.Request) bool {
	path := r.URL.Path
	if r.Method == http.MethodGet &&
		(strings.HasPrefix(path, "/api/v1/products") || strings.HasPrefix(path, "/api/v1/categories")) {
		return true
	}
	return path == "/api/v1/users/login" || path == "/api/v1/users/register"
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(claimsKey).(*service.Claims)
		if !ok || !claims.IsAdmin {
			writeMessage(w, http.StatusForbidden, "admin access required")
			return
		}
		next(w, r)
	}
}
