package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	guuid "github.com/google/uuid"
	"github.com/golang-jwt/jwt/v4"
	"github.com/klyra-app/ephemera-go/internal/api_context"
	"github.com/klyra-app/ephemera-go/internal/db"
	"github.com/klyra-app/ephemera-go/internal/handler/api"
)

// WithAuth validates a short-lived Bearer JWT and stashes the actor's ID in
// the request context. Every route sits behind it: the use cases decide what
// an actor may do, but who the actor is comes from here.
//
// With no secret configured the middleware degrades to a dev passthrough
// that trusts the X-Actor-ID header.
func WithAuth(jwtSecret string) func(http.Handler) http.Handler {
	if jwtSecret == "" {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				raw := r.Header.Get("X-Actor-ID")
				if raw == "" {
					api.WriteError(w, http.StatusUnauthorized, "missing actor", nil)
					return
				}
				actorID, err := guuid.Parse(raw)
				if err != nil {
					api.WriteError(w, http.StatusUnauthorized, "invalid actor", nil)
					return
				}
				ctx := context.WithValue(r.Context(), api_context.AuthUserIDKey, db.UUID(actorID))
				next.ServeHTTP(w, r.WithContext(ctx))
			})
		}
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				api.WriteError(w, http.StatusUnauthorized, "missing bearer token", nil)
				return
			}

			raw := strings.TrimPrefix(auth, "Bearer ")
			claims := jwt.MapClaims{}
			tok, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
				if t.Method != jwt.SigningMethodHS256 {
					return nil, fmt.Errorf("unexpected signing method")
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tok.Valid {
				api.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
				return
			}

			if !claims.VerifyExpiresAt(time.Now().Unix(), true) {
				api.WriteError(w, http.StatusUnauthorized, "token expired", nil)
				return
			}

			sub, _ := claims["sub"].(string)
			if sub == "" {
				api.WriteError(w, http.StatusUnauthorized, "missing sub", nil)
				return
			}
			actorID, err := guuid.Parse(sub)
			if err != nil {
				api.WriteError(w, http.StatusUnauthorized, "invalid sub", nil)
				return
			}

			ctx := context.WithValue(r.Context(), api_context.AuthUserIDKey, db.UUID(actorID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
