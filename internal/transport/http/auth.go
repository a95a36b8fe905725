package http

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// RequireAdmin validates a bearer token on every request and rejects
// tokens whose role claim is not "admin". An empty secret disables the
// check entirely for local development.
func RequireAdmin(secret string, next http.Handler) http.Handler {
	if secret == "" {
		return next
	}
	key := []byte(secret)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing bearer token")
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			return key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "invalid token")
			return
		}
		if role, _ := claims["role"].(string); role != "admin" {
			writeError(w, http.StatusForbidden, codeForbidden, "admin role required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
