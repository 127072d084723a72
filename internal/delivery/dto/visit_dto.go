package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateVisitRequest identifies the patient and doctor by their user ids;
// translation to profile ids happens server side.
type CreateVisitRequest struct {
	PatientUserID  uuid.UUID `json:"patient_user_id" validate:"required,uuid"`
	DoctorUserID   uuid.UUID `json:"doctor_user_id" validate:"required,uuid"`
	VisitDatetime  string    `json:"visit_datetime" validate:"required"` // RFC 3339
	VisitType      string    `json:"visit_type" validate:"required,oneof=general follow_up referral emergency"`
	ChiefComplaint string    `json:"chief_complaint" validate:"omitempty"`
}

// UpdateVisitRequest is a partial update. Doctors may only set visit_status
// on their own visits; admins may set any field. A reassigned doctor is
// identified by user id, like in CreateVisitRequest.
type UpdateVisitRequest struct {
	VisitStatus    string     `json:"visit_status" validate:"omitempty,oneof=registered examining completed canceled"`
	VisitType      string     `json:"visit_type" validate:"omitempty,oneof=general follow_up referral emergency"`
	ChiefComplaint *string    `json:"chief_complaint"`
	VisitDatetime  string     `json:"visit_datetime" validate:"omitempty"` // RFC 3339
	DoctorUserID   *uuid.UUID `json:"doctor_user_id" validate:"omitempty"`
}

type VisitResponse struct {
	ID                  uuid.UUID `json:"id"`
	PatientID           uuid.UUID `json:"patient_id"`
	DoctorID            uuid.UUID `json:"doctor_id"`
	RegistrationStaffID uuid.UUID `json:"registration_staff_id"`
	VisitDatetime       time.Time `json:"visit_datetime"`
	VisitType           string    `json:"visit_type"`
	ChiefComplaint      string    `json:"chief_complaint,omitempty"`
	VisitStatus         string    `json:"visit_status"`
	PatientName         string    `json:"patient_name,omitempty"`
	DoctorName          string    `json:"doctor_name,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
