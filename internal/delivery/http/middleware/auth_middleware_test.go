package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"his-backend/internal/domain/entity"
	"his-backend/internal/usecase"

	"github.com/google/uuid"
)

type fakeAuthenticator struct {
	auth *entity.AuthContext
	err  error

	gotToken string
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, accessToken string) (*entity.AuthContext, error) {
	f.gotToken = accessToken
	return f.auth, f.err
}

func TestAuthenticatePassesContextDownstream(t *testing.T) {
	want := &entity.AuthContext{
		UserID:    uuid.New(),
		Role:      entity.RoleDoctor,
		ProfileID: uuid.New(),
	}
	fake := &fakeAuthenticator{auth: want}

	var got *entity.AuthContext
	handler := NewAuthMiddleware(fake).Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetAuthContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/visits", nil)
	req.Header.Set("Authorization", "Bearer some-access-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if fake.gotToken != "some-access-token" {
		t.Errorf("token passed to authenticator = %q", fake.gotToken)
	}
	if got == nil || got.UserID != want.UserID || got.Role != want.Role || got.ProfileID != want.ProfileID {
		t.Errorf("downstream auth context = %+v, want %+v", got, want)
	}
}

func TestAuthenticateRejectsBadHeaders(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no bearer prefix", "some-access-token"},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"extra parts", "Bearer a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAuthenticator{auth: &entity.AuthContext{}}
			called := false
			handler := NewAuthMiddleware(fake).Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
			if called {
				t.Error("next handler should not run")
			}
		})
	}
}

func TestAuthenticateMapsUsecaseErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid token", usecase.ErrInvalidToken, http.StatusUnauthorized},
		{"revoked session", usecase.ErrSessionNotFound, http.StatusUnauthorized},
		{"unusable account", usecase.ErrUserInvalid, http.StatusUnauthorized},
		{"storage failure", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAuthenticator{err: tt.err}
			handler := NewAuthMiddleware(fake).Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("next handler should not run")
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer whatever")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestGetAuthContextMissing(t *testing.T) {
	if _, ok := GetAuthContext(context.Background()); ok {
		t.Error("GetAuthContext on a bare context should report absence")
	}
}
