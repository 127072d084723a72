package entity

import "github.com/google/uuid"

// AuthContext is the request-scoped identity derived from a verified access
// token. ProfileID is the role-specific profile id (doctor/staff/patient row),
// or the user id itself for admins; Department is set for staff only.
type AuthContext struct {
	UserID     uuid.UUID
	Role       Role
	ProfileID  uuid.UUID
	Department *Department
}

// ProfileRef is the resolver's answer for (user id, role): which profile row
// domain records reference, and the department when the role is staff.
type ProfileRef struct {
	ProfileID  uuid.UUID
	Department *Department
}
