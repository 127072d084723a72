package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateReferralRequest struct {
	VisitID            uuid.UUID `json:"visit_id" validate:"required,uuid"`
	ReferredToFacility string    `json:"referred_to_facility" validate:"required,max=150"`
	Specialty          string    `json:"specialty" validate:"omitempty,max=100"`
	Reason             string    `json:"reason" validate:"required"`
	Diagnosis          string    `json:"diagnosis" validate:"omitempty"`
	Notes              string    `json:"notes" validate:"omitempty"`
}

type UpdateReferralStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=completed canceled"`
	Notes  string `json:"notes" validate:"omitempty"`
}

type ReferralResponse struct {
	ID                 uuid.UUID  `json:"id"`
	VisitID            uuid.UUID  `json:"visit_id"`
	PatientID          uuid.UUID  `json:"patient_id"`
	ReferringDoctorID  *uuid.UUID `json:"referring_doctor_id,omitempty"`
	ReferredToFacility string     `json:"referred_to_facility"`
	Specialty          string     `json:"specialty,omitempty"`
	Reason             string     `json:"reason"`
	Diagnosis          string     `json:"diagnosis,omitempty"`
	Status             string     `json:"status"`
	Notes              string     `json:"notes,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
