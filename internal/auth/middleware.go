package auth

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the authenticated caller as supplied by the session token:
// the subject id, the email address and the metadata flags the application
// relies on for routing decisions.
type Identity struct {
	ID         int
	Email      string
	HasProfile bool
	IsAdmin    bool
}

type contextKey struct{}

var identityKey contextKey

// FromContext returns the identity attached by the middleware, or nil when
// the request was anonymous.
func FromContext(ctx context.Context) *Identity {
	identity, _ := ctx.Value(identityKey).(*Identity)
	return identity
}

// Middleware parses an optional Bearer token and attaches the identity to
// the request context. Invalid tokens are treated as anonymous; endpoints
// that need a caller use RequireAuth/RequireAdmin.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identity := parseIdentity(r); identity != nil {
			r = r.WithContext(context.WithValue(r.Context(), identityKey, identity))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if FromContext(r.Context()) == nil {
			http.Error(w, "You must be logged in to access this route", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects callers without the admin flag. An ADMIN_USER_ID env
// override also grants admin to that one identity.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := FromContext(r.Context())
		if identity == nil {
			http.Error(w, "You must be logged in to access this route", http.StatusUnauthorized)
			return
		}
		if !identity.IsAdmin && !isConfiguredAdmin(identity.ID) {
			http.Error(w, "Admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func parseIdentity(r *http.Request) *Identity {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}

	sub, _ := claims["sub"].(string)
	id, err := strconv.Atoi(sub)
	if err != nil {
		return nil
	}

	identity := &Identity{ID: id}
	identity.Email, _ = claims["email"].(string)
	identity.HasProfile, _ = claims["has_profile"].(bool)
	identity.IsAdmin, _ = claims["is_admin"].(bool)
	return identity
}

func isConfiguredAdmin(id int) bool {
	configured := os.Getenv("ADMIN_USER_ID")
	if configured == "" {
		return false
	}
	adminID, err := strconv.Atoi(configured)
	return err == nil && adminID == id
}
