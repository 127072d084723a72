package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateLabOrderRequest struct {
	VisitID  uuid.UUID `json:"visit_id" validate:"required,uuid"`
	TestName string    `json:"test_name" validate:"required,max=150"`
	Notes    string    `json:"notes" validate:"omitempty"`
}

// UpdateLabOrderRequest advances the order and optionally records results.
// Result fields are only meaningful when completing.
type UpdateLabOrderRequest struct {
	Status         string `json:"status" validate:"required,oneof=in_progress completed canceled"`
	ResultValue    string `json:"result_value" validate:"omitempty,max=100"`
	ResultUnit     string `json:"result_unit" validate:"omitempty,max=20"`
	Interpretation string `json:"interpretation" validate:"omitempty"`
}

type LabOrderResponse struct {
	ID             uuid.UUID  `json:"id"`
	VisitID        uuid.UUID  `json:"visit_id"`
	DoctorID       uuid.UUID  `json:"doctor_id"`
	LabStaffID     *uuid.UUID `json:"lab_staff_id,omitempty"`
	TestName       string     `json:"test_name"`
	Status         string     `json:"status"`
	Notes          string     `json:"notes,omitempty"`
	ResultValue    string     `json:"result_value,omitempty"`
	ResultUnit     string     `json:"result_unit,omitempty"`
	Interpretation string     `json:"interpretation,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
