package entity

import (
	"time"

	"github.com/google/uuid"
)

type PrescriptionStatus string

const (
	PrescriptionStatusPending    PrescriptionStatus = "pending"
	PrescriptionStatusProcessing PrescriptionStatus = "processing"
	PrescriptionStatusCompleted  PrescriptionStatus = "completed"
	PrescriptionStatusCanceled   PrescriptionStatus = "canceled"
)

// Prescription is written by the visit's doctor and processed by Pharmacy staff.
type Prescription struct {
	ID              uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	VisitID         uuid.UUID          `gorm:"type:uuid;uniqueIndex;not null" json:"visit_id"`
	DoctorID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PharmacyStaffID *uuid.UUID         `gorm:"type:uuid" json:"pharmacy_staff_id,omitempty"`
	Status          PrescriptionStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Notes           string             `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time          `gorm:"autoUpdateTime" json:"updated_at"`

	Visit *Visit             `gorm:"foreignKey:VisitID" json:"visit,omitempty"`
	Items []PrescriptionItem `gorm:"foreignKey:PrescriptionID" json:"items,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

type PrescriptionItem struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PrescriptionID uuid.UUID `gorm:"type:uuid;not null;index" json:"prescription_id"`
	MedicineName   string    `gorm:"type:varchar(150);not null" json:"medicine_name"`
	Quantity       int       `gorm:"not null" json:"quantity"`
	Dosage         string    `gorm:"type:varchar(50)" json:"dosage,omitempty"`
	Frequency      string    `gorm:"type:varchar(50)" json:"frequency,omitempty"`
	Duration       string    `gorm:"type:varchar(30)" json:"duration,omitempty"`
	Instructions   string    `gorm:"type:text" json:"instructions,omitempty"`
}

func (PrescriptionItem) TableName() string {
	return "prescription_items"
}
