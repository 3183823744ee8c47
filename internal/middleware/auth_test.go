// CatalogHQ | 2026
// auth_test.go

package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cataloghq/catalog-api/internal/core"
)

type stubVerifier struct {
	userID string
	err    error
}

func (s stubVerifier) VerifyToken(_ context.Context, _ string) (string, error) {
	return s.userID, s.err
}

type stubResolver struct {
	roles []string
	err   error
}

func (s stubResolver) RolesForUser(_ context.Context, _ string) ([]string, error) {
	return s.roles, s.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		core.OK(w, "OK", map[string]any{
			"user_id": GetUserID(r.Context()),
			"roles":   GetStaffRoles(r.Context()),
		})
	})
}

func doRequest(t *testing.T, handler http.Handler, token string) (*httptest.ResponseRecorder, core.Envelope) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var env core.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestAuthenticator(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		verifier   stubVerifier
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "missing token",
			token:      "",
			verifier:   stubVerifier{userID: "u1"},
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Unauthenticated",
		},
		{
			name:       "invalid token",
			token:      "bogus",
			verifier:   stubVerifier{err: core.ErrUnauthorized},
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Unauthenticated",
		},
		{
			name:       "valid token",
			token:      "good",
			verifier:   stubVerifier{userID: "u1"},
			wantStatus: http.StatusOK,
			wantMsg:    "OK",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Authenticator(tt.verifier)(okHandler())

			rec, env := doRequest(t, handler, tt.token)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, env.Message)
			assert.Equal(t, tt.wantStatus == http.StatusOK, env.Success)
		})
	}
}

func TestRequireStaff(t *testing.T) {
	tests := []struct {
		name       string
		resolver   stubResolver
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "not staff",
			resolver:   stubResolver{err: core.ErrNotFound},
			wantStatus: http.StatusForbidden,
			wantMsg:    "Forbidden - staff only",
		},
		{
			name:       "staff",
			resolver:   stubResolver{roles: []string{"editor"}},
			wantStatus: http.StatusOK,
			wantMsg:    "OK",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Authenticator(stubVerifier{userID: "u1"})(
				RequireStaff(tt.resolver)(okHandler()),
			)

			rec, env := doRequest(t, handler, "good")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, env.Message)
		})
	}
}

func TestRequireStaff_Unauthenticated(t *testing.T) {
	// Staff check without a preceding Authenticator never sees a user ID.
	handler := RequireStaff(stubResolver{roles: []string{"editor"}})(okHandler())

	rec, env := doRequest(t, handler, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthenticated", env.Message)
}

func TestRequireStaffRole(t *testing.T) {
	tests := []struct {
		name       string
		roles      []string
		required   string
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "missing role",
			roles:      []string{"editor"},
			required:   "admin",
			wantStatus: http.StatusForbidden,
			wantMsg:    "Forbidden - missing role",
		},
		{
			name:       "has role",
			roles:      []string{"editor", "admin"},
			required:   "admin",
			wantStatus: http.StatusOK,
			wantMsg:    "OK",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Authenticator(stubVerifier{userID: "u1"})(
				RequireStaff(stubResolver{roles: tt.roles})(
					RequireStaffRole(tt.required)(okHandler()),
				),
			)

			rec, env := doRequest(t, handler, "good")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, env.Message)
		})
	}
}

func TestRequireStaffRole_AttachesRoles(t *testing.T) {
	handler := Authenticator(stubVerifier{userID: "u42"})(
		RequireStaff(stubResolver{roles: []string{"editor"}})(okHandler()),
	)

	rec, env := doRequest(t, handler, "good")
	require.Equal(t, http.StatusOK, rec.Code)

	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "u42", data["user_id"])
	assert.Equal(t, []any{"editor"}, data["roles"])
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "empty", header: "", want: ""},
		{name: "bearer", header: "Bearer abc123", want: "abc123"},
		{name: "lowercase scheme", header: "bearer abc123", want: "abc123"},
		{name: "wrong scheme", header: "Basic abc123", want: ""},
		{name: "no token", header: "Bearer", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			assert.Equal(t, tt.want, ExtractToken(req))
		})
	}
}
