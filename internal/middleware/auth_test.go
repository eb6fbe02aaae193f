package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/payteams/internal/domain"
	"github.com/aidar/payteams/internal/service"
)

type stubValidator map[string]*service.Claims

func (v stubValidator) ValidateToken(token string) (*service.Claims, error) {
	claims, ok := v[token]
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

func sessionEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := SessionFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("X-User", s.UserID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestGate(t *testing.T) {
	validator := stubValidator{"good": {UserID: "u1", Email: "u1@example.com"}}
	handler := Gate(validator, DefaultRoutes)(sessionEcho())

	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
		wantUser   string
	}{
		{name: "public route without token", path: "/health", wantStatus: http.StatusNoContent},
		{name: "login is public", path: "/auth/login", wantStatus: http.StatusNoContent},
		{name: "me requires token", path: "/auth/me", wantStatus: http.StatusUnauthorized},
		{name: "missing header", path: "/projects", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", path: "/projects", header: "Basic good", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", path: "/projects", header: "Bearer bad", wantStatus: http.StatusUnauthorized},
		{name: "valid token", path: "/projects/p1/ledger", header: "Bearer good", wantStatus: http.StatusOK, wantUser: "u1"},
		{name: "unknown path requires token", path: "/admin", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantUser, rec.Header().Get("X-User"))
			if tt.wantStatus == http.StatusUnauthorized {
				var body map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, false, body["success"])
				assert.NotEmpty(t, body["error"])
			}
		})
	}
}

func TestAccessFor(t *testing.T) {
	rules := []RouteRule{
		{Pattern: "/open", Access: Public},
		{Pattern: "/docs/*", Access: Public},
		{Pattern: "/docs/private", Access: Authenticated},
	}

	assert.Equal(t, Public, AccessFor(rules, "/open"))
	assert.Equal(t, Authenticated, AccessFor(rules, "/open/more"), "exact patterns do not match sub-paths")
	assert.Equal(t, Public, AccessFor(rules, "/docs"))
	assert.Equal(t, Public, AccessFor(rules, "/docs/a/b"))
	assert.Equal(t, Public, AccessFor(rules, "/docs/private"), "first match wins")
	assert.Equal(t, Authenticated, AccessFor(rules, "/docsextra"))
	assert.Equal(t, Authenticated, AccessFor(nil, "/anything"))
}

func TestSessionFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := SessionFromContext(req.Context())
	assert.False(t, ok)

	ctx := WithSession(req.Context(), Session{UserID: "u9", Email: "u9@example.com"})
	s, ok := SessionFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "u9", s.UserID)
}
