package dto

import (
	"time"

	"github.com/google/uuid"
)

type PrescriptionItemRequest struct {
	MedicineName string `json:"medicine_name" validate:"required,max=150"`
	Quantity     int    `json:"quantity" validate:"required,min=1"`
	Dosage       string `json:"dosage" validate:"omitempty,max=50"`
	Frequency    string `json:"frequency" validate:"omitempty,max=50"`
	Duration     string `json:"duration" validate:"omitempty,max=30"`
	Instructions string `json:"instructions" validate:"omitempty"`
}

type CreatePrescriptionRequest struct {
	VisitID uuid.UUID                 `json:"visit_id" validate:"required,uuid"`
	Notes   string                    `json:"notes" validate:"omitempty"`
	Items   []PrescriptionItemRequest `json:"items" validate:"required,min=1,dive"`
}

type UpdatePrescriptionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=processing completed canceled"`
}

type PrescriptionItemResponse struct {
	ID           uuid.UUID `json:"id"`
	MedicineName string    `json:"medicine_name"`
	Quantity     int       `json:"quantity"`
	Dosage       string    `json:"dosage,omitempty"`
	Frequency    string    `json:"frequency,omitempty"`
	Duration     string    `json:"duration,omitempty"`
	Instructions string    `json:"instructions,omitempty"`
}

type PrescriptionResponse struct {
	ID              uuid.UUID                  `json:"id"`
	VisitID         uuid.UUID                  `json:"visit_id"`
	DoctorID        uuid.UUID                  `json:"doctor_id"`
	PharmacyStaffID *uuid.UUID                 `json:"pharmacy_staff_id,omitempty"`
	Status          string                     `json:"status"`
	Notes           string                     `json:"notes,omitempty"`
	Items           []PrescriptionItemResponse `json:"items,omitempty"`
	CreatedAt       time.Time                  `json:"created_at"`
	UpdatedAt       time.Time                  `json:"updated_at"`
}
