package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/klyra-app/ephemera-go/internal/api_context"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func callAuth(secret string, mutate func(*http.Request)) (*httptest.ResponseRecorder, bool, string) {
	nextCalled := false
	var gotActor string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		if id, ok := api_context.AuthUserIDFromContext(r.Context()); ok {
			gotActor = id.String()
		}
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest("POST", "/any", nil)
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()
	WithAuth(secret)(next).ServeHTTP(rec, req)
	return rec, nextCalled, gotActor
}

func TestWithAuth_Passthrough(t *testing.T) {
	actor := uuid.NewString()

	t.Run("trusts X-Actor-ID", func(t *testing.T) {
		rec, nextCalled, gotActor := callAuth("", func(r *http.Request) {
			r.Header.Set("X-Actor-ID", actor)
		})
		if rec.Code != http.StatusNoContent || !nextCalled {
			t.Fatalf("status = %d, nextCalled = %v", rec.Code, nextCalled)
		}
		if gotActor != actor {
			t.Errorf("actor = %q; want %q", gotActor, actor)
		}
	})

	t.Run("missing header still rejected", func(t *testing.T) {
		rec, nextCalled, _ := callAuth("", nil)
		if rec.Code != http.StatusUnauthorized || nextCalled {
			t.Fatalf("status = %d, nextCalled = %v", rec.Code, nextCalled)
		}
	})

	t.Run("garbage header rejected", func(t *testing.T) {
		rec, _, _ := callAuth("", func(r *http.Request) {
			r.Header.Set("X-Actor-ID", "not-a-uuid")
		})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusUnauthorized)
		}
	})
}

func TestWithAuth_JWT(t *testing.T) {
	actor := uuid.NewString()

	t.Run("valid token", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub": actor,
			"exp": time.Now().Add(time.Minute).Unix(),
		})
		rec, nextCalled, gotActor := callAuth(testSecret, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token)
		})
		if rec.Code != http.StatusNoContent || !nextCalled {
			t.Fatalf("status = %d, nextCalled = %v", rec.Code, nextCalled)
		}
		if gotActor != actor {
			t.Errorf("actor = %q; want %q", gotActor, actor)
		}
	})

	t.Run("missing bearer", func(t *testing.T) {
		rec, nextCalled, _ := callAuth(testSecret, nil)
		if rec.Code != http.StatusUnauthorized || nextCalled {
			t.Fatalf("status = %d, nextCalled = %v", rec.Code, nextCalled)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signToken(t, "other-secret", jwt.MapClaims{
			"sub": actor,
			"exp": time.Now().Add(time.Minute).Unix(),
		})
		rec, _, _ := callAuth(testSecret, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token)
		})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub": actor,
			"exp": time.Now().Add(-time.Minute).Unix(),
		})
		rec, _, _ := callAuth(testSecret, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token)
		})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("sub is not a uuid", func(t *testing.T) {
		token := signToken(t, testSecret, jwt.MapClaims{
			"sub": "alice",
			"exp": time.Now().Add(time.Minute).Unix(),
		})
		rec, _, _ := callAuth(testSecret, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token)
		})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusUnauthorized)
		}
	})
}
