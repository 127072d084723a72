package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"his-backend/internal/domain/entity"
	"his-backend/internal/policy"

	"github.com/google/uuid"
)

func requestWithAuth(role entity.Role, dept *entity.Department) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	auth := &entity.AuthContext{
		UserID:     uuid.New(),
		Role:       role,
		ProfileID:  uuid.New(),
		Department: dept,
	}
	return req.WithContext(context.WithValue(req.Context(), authContextKey, auth))
}

func TestRequire(t *testing.T) {
	pharmacy := entity.DepartmentPharmacy
	registration := entity.DepartmentRegistration
	check := policy.PermissionCheck([]entity.Role{entity.RoleAdmin, entity.RoleStaff}, entity.DepartmentPharmacy)

	tests := []struct {
		name       string
		req        *http.Request
		wantStatus int
	}{
		{"no auth context", httptest.NewRequest(http.MethodGet, "/", nil), http.StatusUnauthorized},
		{"admin allowed", requestWithAuth(entity.RoleAdmin, nil), http.StatusOK},
		{"pharmacy staff allowed", requestWithAuth(entity.RoleStaff, &pharmacy), http.StatusOK},
		{"wrong department", requestWithAuth(entity.RoleStaff, &registration), http.StatusForbidden},
		{"wrong role", requestWithAuth(entity.RolePatient, nil), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Require(check)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, tt.req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
