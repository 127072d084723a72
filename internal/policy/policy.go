package policy

import (
	"errors"
	"fmt"

	"his-backend/internal/domain/entity"
)

// ErrForbidden is wrapped by every failing check so the request boundary can
// map any policy failure to a 403 without inspecting messages.
var ErrForbidden = errors.New("forbidden")

// Check is a pure predicate over a resolved AuthContext. Checks never perform
// lookups and have no side effects, so conjunction order is irrelevant.
type Check func(ctx entity.AuthContext) error

// RoleCheck passes iff the context role is one of allowed.
func RoleCheck(allowed ...entity.Role) Check {
	return func(ctx entity.AuthContext) error {
		for _, role := range allowed {
			if ctx.Role == role {
				return nil
			}
		}
		return fmt.Errorf("%w: role %q is not authorized", ErrForbidden, ctx.Role)
	}
}

// DepartmentCheck passes any bypass role unconditionally; otherwise the
// caller must be staff in one of the allowed departments. Every other role is
// rejected outright.
func DepartmentCheck(allowed []entity.Department, bypassRoles ...entity.Role) Check {
	return func(ctx entity.AuthContext) error {
		for _, role := range bypassRoles {
			if ctx.Role == role {
				return nil
			}
		}
		if ctx.Role != entity.RoleStaff {
			return fmt.Errorf("%w: role %q is not authorized, staff department required", ErrForbidden, ctx.Role)
		}
		if ctx.Department != nil {
			for _, dept := range allowed {
				if *ctx.Department == dept {
					return nil
				}
			}
		}
		return fmt.Errorf("%w: department is not authorized", ErrForbidden)
	}
}

// PermissionCheck combines role and department gating: the role must be in
// allowedRoles, and staff must additionally match allowedDepartments when any
// are given. Non-staff roles, admin included, are exempt from the department
// gate.
func PermissionCheck(allowedRoles []entity.Role, allowedDepartments ...entity.Department) Check {
	return func(ctx entity.AuthContext) error {
		roleAllowed := false
		for _, role := range allowedRoles {
			if ctx.Role == role {
				roleAllowed = true
				break
			}
		}
		if !roleAllowed {
			return fmt.Errorf("%w: role %q is not authorized", ErrForbidden, ctx.Role)
		}

		if ctx.Role != entity.RoleStaff || len(allowedDepartments) == 0 {
			return nil
		}

		if ctx.Department != nil {
			for _, dept := range allowedDepartments {
				if *ctx.Department == dept {
					return nil
				}
			}
		}
		return fmt.Errorf("%w: department is not authorized", ErrForbidden)
	}
}

// All composes checks by conjunction.
func All(checks ...Check) Check {
	return func(ctx entity.AuthContext) error {
		for _, check := range checks {
			if err := check(ctx); err != nil {
				return err
			}
		}
		return nil
	}
}
