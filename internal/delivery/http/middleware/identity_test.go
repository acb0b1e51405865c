package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/domain"
)

// fakeTokenVerifier implements domain.TokenVerifier for tests.
type fakeTokenVerifier struct {
	userID string
	err    error
}

func (f *fakeTokenVerifier) Verify(_ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.userID, nil
}

func TestIdentity(t *testing.T) {
	tests := []struct {
		name          string
		authHeader    string
		verifier      domain.TokenVerifier
		wantStatus    int
		wantBodyCode  string
		nextCalled    bool
		wantContextID string
	}{
		{
			name:          "no header acts as session user",
			verifier:      &fakeTokenVerifier{userID: "alice"},
			wantStatus:    http.StatusOK,
			nextCalled:    true,
			wantContextID: "user123",
		},
		{
			name:          "no verifier ignores header",
			authHeader:    "Bearer anything",
			wantStatus:    http.StatusOK,
			nextCalled:    true,
			wantContextID: "user123",
		},
		{
			name:          "valid token overrides session user",
			authHeader:    "Bearer valid-token",
			verifier:      &fakeTokenVerifier{userID: "alice"},
			wantStatus:    http.StatusOK,
			nextCalled:    true,
			wantContextID: "alice",
		},
		{
			name:         "invalid format",
			authHeader:   "Basic abc",
			verifier:     &fakeTokenVerifier{userID: "alice"},
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:         "empty token",
			authHeader:   "Bearer ",
			verifier:     &fakeTokenVerifier{userID: "alice"},
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:         "rejected token",
			authHeader:   "Bearer expired",
			verifier:     &fakeTokenVerifier{err: errors.New("expired")},
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			var gotID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				gotID, _ = UserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()
			Identity(tt.verifier, domain.DefaultSessionUserID, next).ServeHTTP(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.nextCalled, called)
			assert.Equal(t, tt.wantContextID, gotID)
			if tt.wantBodyCode != "" {
				var resp helpers.APIResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				require.NotNil(t, resp.Error)
				assert.Equal(t, tt.wantBodyCode, resp.Error.Code)
			}
		})
	}
}
