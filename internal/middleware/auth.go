package middleware

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const adminEmailKey contextKey = "admin_email"

// AdminTokenCookie is the cookie carrying the back-office JWT
const AdminTokenCookie = "admin_token"

// TokenVerifier validates an admin token and returns the admin email
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// RequireAdmin rejects requests lacking a valid admin token. The token
// is read from the admin cookie or an Authorization bearer header.
func RequireAdmin(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			email, err := verifier.VerifyToken(token)
			if err != nil {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), adminEmailKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdminFromContext returns the authenticated admin email, or ""
func GetAdminFromContext(ctx context.Context) string {
	email, _ := ctx.Value(adminEmailKey).(string)
	return email
}

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(AdminTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	return ""
}
