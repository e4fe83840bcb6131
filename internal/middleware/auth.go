package middleware

import (
	"net/http"
	"strings"

	"foodcourt-be/internal/user"
	"foodcourt-be/internal/utils"
)

// AuthMiddleware resolves the Bearer token into the request context. A
// missing or non-Bearer header passes through as anonymous; a present but
// invalid token is rejected.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := user.ParseJWT(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Mobile)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
