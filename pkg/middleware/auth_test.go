package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okResolver(id *Identity) IdentityResolver {
	return func(ctx context.Context, token string) (*Identity, error) {
		return id, nil
	}
}

func failResolver(err error) IdentityResolver {
	return func(ctx context.Context, token string) (*Identity, error) {
		return nil, err
	}
}

func protected(t *testing.T, resolve IdentityResolver) (http.Handler, *bool, **Identity) {
	t.Helper()
	var called bool
	var seen *Identity
	h := Auth(resolve)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		seen = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
	return h, &called, &seen
}

func TestAuth_MissingHeader(t *testing.T) {
	h, called, _ := protected(t, okResolver(&Identity{UserID: "u1"}))

	req := httptest.NewRequest(http.MethodPost, "/books", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, *called, "handler must not run without a token")
}

func TestAuth_NonBearerScheme(t *testing.T) {
	h, called, _ := protected(t, okResolver(&Identity{UserID: "u1"}))

	req := httptest.NewRequest(http.MethodPost, "/books", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, *called)
}

func TestAuth_ResolverRejects(t *testing.T) {
	h, called, _ := protected(t, failResolver(errors.New("expired")))

	req := httptest.NewRequest(http.MethodPost, "/books", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, *called, "fail closed: resolver error must deny")
}

func TestAuth_Success_AttachesIdentity(t *testing.T) {
	want := &Identity{UserID: "u-7", Username: "alice"}
	h, called, seen := protected(t, okResolver(want))

	req := httptest.NewRequest(http.MethodPost, "/books", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, *called)
	assert.Equal(t, want, *seen)
}

func TestAuth_BearerCaseInsensitive(t *testing.T) {
	h, called, _ := protected(t, okResolver(&Identity{UserID: "u1"}))

	req := httptest.NewRequest(http.MethodPost, "/books", nil)
	req.Header.Set("Authorization", "bearer valid-token")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, *called)
}

func TestIdentityFromContext_Absent(t *testing.T) {
	assert.Nil(t, IdentityFromContext(context.Background()))
}
