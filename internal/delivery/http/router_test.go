package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"his-backend/internal/delivery/dto"
	"his-backend/internal/delivery/http/handler"
	"his-backend/internal/delivery/http/middleware"
	"his-backend/internal/domain/entity"
	"his-backend/internal/usecase"
	"his-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type fakeAuthenticator struct {
	auth *entity.AuthContext
	err  error
}

func (f *fakeAuthenticator) Authenticate(context.Context, string) (*entity.AuthContext, error) {
	return f.auth, f.err
}

// fakeAuthUsecase records Logout calls; the other operations are never
// reached by the routes under test.
type fakeAuthUsecase struct {
	loggedOut []string
}

func (f *fakeAuthUsecase) Register(context.Context, *dto.RegisterPatientRequest) (*dto.UserResponse, error) {
	return nil, nil
}

func (f *fakeAuthUsecase) Login(context.Context, *dto.LoginRequest, string, string) (*dto.TokenResponse, error) {
	return nil, nil
}

func (f *fakeAuthUsecase) RefreshToken(context.Context, *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	return nil, nil
}

func (f *fakeAuthUsecase) Logout(_ context.Context, refreshToken string) error {
	f.loggedOut = append(f.loggedOut, refreshToken)
	return nil
}

func (f *fakeAuthUsecase) GetCurrentUser(context.Context, *entity.AuthContext) (*dto.UserResponse, error) {
	return nil, nil
}

func (f *fakeAuthUsecase) Authenticate(context.Context, string) (*entity.AuthContext, error) {
	return nil, nil
}

type fakeVisitUsecase struct {
	deleted []uuid.UUID
}

func (f *fakeVisitUsecase) Create(context.Context, *entity.AuthContext, *dto.CreateVisitRequest) (*dto.VisitResponse, error) {
	return &dto.VisitResponse{}, nil
}

func (f *fakeVisitUsecase) GetByID(context.Context, *entity.AuthContext, uuid.UUID) (*dto.VisitResponse, error) {
	return &dto.VisitResponse{}, nil
}

func (f *fakeVisitUsecase) List(context.Context, *entity.AuthContext, string, int, int) ([]dto.VisitResponse, int64, error) {
	return nil, 0, nil
}

func (f *fakeVisitUsecase) Update(context.Context, *entity.AuthContext, uuid.UUID, *dto.UpdateVisitRequest) (*dto.VisitResponse, error) {
	return &dto.VisitResponse{}, nil
}

func (f *fakeVisitUsecase) Delete(_ context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func buildRouter(authenticator middleware.Authenticator, authUC usecase.AuthUsecase, visitUC usecase.VisitUsecase) http.Handler {
	v := validator.NewValidator()
	log := logrus.New()
	log.SetOutput(io.Discard)

	// Never dialed by the routes under test.
	redisClient := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})

	r := NewRouter(
		handler.NewAuthHandler(authUC, v),
		handler.NewUserHandler(nil, v),
		handler.NewProfileHandler(nil, v),
		handler.NewVisitHandler(visitUC, v),
		handler.NewPrescriptionHandler(nil, v),
		handler.NewLabHandler(nil, v),
		handler.NewInvoiceHandler(nil, v),
		handler.NewReferralHandler(nil, v),
		handler.NewWearableHandler(nil, v),
		middleware.NewAuthMiddleware(authenticator),
		middleware.NewCORSMiddleware(),
		middleware.NewRateLimitMiddleware(redisClient, log, 100, time.Minute),
	)
	return r.Setup()
}

// Logout must stay reachable without a valid access token: the refresh token
// in the body is the credential, and a client whose access token has expired
// still needs to revoke its session.
func TestLogoutDoesNotRequireAccessToken(t *testing.T) {
	authUC := &fakeAuthUsecase{}
	router := buildRouter(
		&fakeAuthenticator{err: usecase.ErrInvalidToken},
		authUC,
		&fakeVisitUsecase{},
	)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", strings.NewReader(`{"refresh_token":"some-refresh-token"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if len(authUC.loggedOut) != 1 || authUC.loggedOut[0] != "some-refresh-token" {
		t.Errorf("logged out tokens = %v, want the body token", authUC.loggedOut)
	}
}

func TestVisitDeleteRoleGate(t *testing.T) {
	registration := entity.DepartmentRegistration
	pharmacy := entity.DepartmentPharmacy

	tests := []struct {
		name       string
		auth       *entity.AuthContext
		wantStatus int
	}{
		{"admin", &entity.AuthContext{UserID: uuid.New(), Role: entity.RoleAdmin, ProfileID: uuid.New()}, http.StatusOK},
		{"registration staff", &entity.AuthContext{UserID: uuid.New(), Role: entity.RoleStaff, ProfileID: uuid.New(), Department: &registration}, http.StatusOK},
		{"pharmacy staff", &entity.AuthContext{UserID: uuid.New(), Role: entity.RoleStaff, ProfileID: uuid.New(), Department: &pharmacy}, http.StatusForbidden},
		{"doctor", &entity.AuthContext{UserID: uuid.New(), Role: entity.RoleDoctor, ProfileID: uuid.New()}, http.StatusForbidden},
		{"patient", &entity.AuthContext{UserID: uuid.New(), Role: entity.RolePatient, ProfileID: uuid.New()}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visitUC := &fakeVisitUsecase{}
			router := buildRouter(&fakeAuthenticator{auth: tt.auth}, &fakeAuthUsecase{}, visitUC)

			req := httptest.NewRequest(http.MethodDelete, "/api/v1/visits/"+uuid.New().String(), nil)
			req.Header.Set("Authorization", "Bearer token")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d; body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus == http.StatusOK && len(visitUC.deleted) != 1 {
				t.Errorf("deleted = %v, want one id", visitUC.deleted)
			}
			if tt.wantStatus != http.StatusOK && len(visitUC.deleted) != 0 {
				t.Errorf("deleted = %v, want none", visitUC.deleted)
			}
		})
	}
}

func TestVisitUpdateRoleGate(t *testing.T) {
	registration := entity.DepartmentRegistration

	tests := []struct {
		name       string
		auth       *entity.AuthContext
		wantStatus int
	}{
		{"admin", &entity.AuthContext{UserID: uuid.New(), Role: entity.RoleAdmin, ProfileID: uuid.New()}, http.StatusOK},
		{"doctor", &entity.AuthContext{UserID: uuid.New(), Role: entity.RoleDoctor, ProfileID: uuid.New()}, http.StatusOK},
		{"staff", &entity.AuthContext{UserID: uuid.New(), Role: entity.RoleStaff, ProfileID: uuid.New(), Department: &registration}, http.StatusForbidden},
		{"patient", &entity.AuthContext{UserID: uuid.New(), Role: entity.RolePatient, ProfileID: uuid.New()}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := buildRouter(&fakeAuthenticator{auth: tt.auth}, &fakeAuthUsecase{}, &fakeVisitUsecase{})

			req := httptest.NewRequest(http.MethodPatch, "/api/v1/visits/"+uuid.New().String(), strings.NewReader(`{"visit_status":"examining"}`))
			req.Header.Set("Authorization", "Bearer token")
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d; body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}
