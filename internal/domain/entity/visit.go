package entity

import (
	"time"

	"github.com/google/uuid"
)

type VisitType string

const (
	VisitTypeGeneral   VisitType = "general"
	VisitTypeFollowUp  VisitType = "follow_up"
	VisitTypeReferral  VisitType = "referral"
	VisitTypeEmergency VisitType = "emergency"
)

type VisitStatus string

const (
	VisitStatusRegistered VisitStatus = "registered"
	VisitStatusExamining  VisitStatus = "examining"
	VisitStatusCompleted  VisitStatus = "completed"
	VisitStatusCanceled   VisitStatus = "canceled"
)

// Visit references profile ids (patients.id, doctors.id, staff.id), not user ids.
type Visit struct {
	ID                  uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID           uuid.UUID   `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID            uuid.UUID   `gorm:"type:uuid;not null;index" json:"doctor_id"`
	RegistrationStaffID uuid.UUID   `gorm:"type:uuid;not null" json:"registration_staff_id"`
	VisitDatetime       time.Time   `gorm:"not null" json:"visit_datetime"`
	VisitType           VisitType   `gorm:"type:varchar(20);not null;default:'general'" json:"visit_type"`
	ChiefComplaint      string      `gorm:"type:text" json:"chief_complaint,omitempty"`
	VisitStatus         VisitStatus `gorm:"type:varchar(20);not null;default:'registered';index" json:"visit_status"`
	CreatedAt           time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time   `gorm:"autoUpdateTime" json:"updated_at"`

	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Visit) TableName() string {
	return "visits"
}
