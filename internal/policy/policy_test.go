package policy

import (
	"errors"
	"testing"

	"his-backend/internal/domain/entity"

	"github.com/google/uuid"
)

func authCtx(role entity.Role, dept *entity.Department) entity.AuthContext {
	return entity.AuthContext{
		UserID:     uuid.New(),
		Role:       role,
		ProfileID:  uuid.New(),
		Department: dept,
	}
}

func deptPtr(d entity.Department) *entity.Department {
	return &d
}

func TestRoleCheck(t *testing.T) {
	tests := []struct {
		name    string
		allowed []entity.Role
		ctx     entity.AuthContext
		wantOK  bool
	}{
		{"admin allowed", []entity.Role{entity.RoleAdmin}, authCtx(entity.RoleAdmin, nil), true},
		{"one of several", []entity.Role{entity.RoleAdmin, entity.RoleDoctor}, authCtx(entity.RoleDoctor, nil), true},
		{"patient rejected", []entity.Role{entity.RoleAdmin}, authCtx(entity.RolePatient, nil), false},
		{"empty allow list rejects all", nil, authCtx(entity.RoleAdmin, nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RoleCheck(tt.allowed...)(tt.ctx)
			if (err == nil) != tt.wantOK {
				t.Errorf("RoleCheck error = %v, wantOK %v", err, tt.wantOK)
			}
			if err != nil && !errors.Is(err, ErrForbidden) {
				t.Errorf("error %v should wrap ErrForbidden", err)
			}
		})
	}
}

func TestDepartmentCheck(t *testing.T) {
	check := DepartmentCheck([]entity.Department{entity.DepartmentPharmacy}, entity.RoleDoctor)

	tests := []struct {
		name   string
		ctx    entity.AuthContext
		wantOK bool
	}{
		{"pharmacy staff allowed", authCtx(entity.RoleStaff, deptPtr(entity.DepartmentPharmacy)), true},
		{"registration staff rejected", authCtx(entity.RoleStaff, deptPtr(entity.DepartmentRegistration)), false},
		{"staff without department rejected", authCtx(entity.RoleStaff, nil), false},
		{"bypass role skips department gate", authCtx(entity.RoleDoctor, nil), true},
		{"admin not in bypass list rejected", authCtx(entity.RoleAdmin, nil), false},
		{"patient rejected", authCtx(entity.RolePatient, nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := check(tt.ctx)
			if (err == nil) != tt.wantOK {
				t.Errorf("DepartmentCheck error = %v, wantOK %v", err, tt.wantOK)
			}
		})
	}
}

func TestPermissionCheck(t *testing.T) {
	check := PermissionCheck([]entity.Role{entity.RoleAdmin, entity.RoleStaff}, entity.DepartmentPharmacy)

	tests := []struct {
		name   string
		ctx    entity.AuthContext
		wantOK bool
	}{
		{"admin exempt from department gate", authCtx(entity.RoleAdmin, nil), true},
		{"pharmacy staff allowed", authCtx(entity.RoleStaff, deptPtr(entity.DepartmentPharmacy)), true},
		{"registration staff rejected", authCtx(entity.RoleStaff, deptPtr(entity.DepartmentRegistration)), false},
		{"staff without department rejected", authCtx(entity.RoleStaff, nil), false},
		{"doctor not in role list rejected", authCtx(entity.RoleDoctor, nil), false},
		{"patient rejected", authCtx(entity.RolePatient, nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := check(tt.ctx)
			if (err == nil) != tt.wantOK {
				t.Errorf("PermissionCheck error = %v, wantOK %v", err, tt.wantOK)
			}
		})
	}
}

func TestPermissionCheckNoDepartments(t *testing.T) {
	check := PermissionCheck([]entity.Role{entity.RoleStaff})

	if err := check(authCtx(entity.RoleStaff, nil)); err != nil {
		t.Errorf("staff with no department gate should pass, got %v", err)
	}
	if err := check(authCtx(entity.RoleStaff, deptPtr(entity.DepartmentCashier))); err != nil {
		t.Errorf("any staff department should pass, got %v", err)
	}
}

func TestAll(t *testing.T) {
	pass := Check(func(entity.AuthContext) error { return nil })
	fail := Check(func(entity.AuthContext) error { return ErrForbidden })

	if err := All(pass, pass)(authCtx(entity.RoleAdmin, nil)); err != nil {
		t.Errorf("All(pass, pass) = %v, want nil", err)
	}
	if err := All(pass, fail)(authCtx(entity.RoleAdmin, nil)); !errors.Is(err, ErrForbidden) {
		t.Errorf("All(pass, fail) = %v, want ErrForbidden", err)
	}
	if err := All()(authCtx(entity.RolePatient, nil)); err != nil {
		t.Errorf("All() = %v, want nil", err)
	}
}
