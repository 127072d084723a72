package entity

import (
	"time"

	"github.com/google/uuid"
)

type ReferralStatus string

const (
	ReferralStatusPending   ReferralStatus = "pending"
	ReferralStatusCompleted ReferralStatus = "completed"
	ReferralStatusCanceled  ReferralStatus = "canceled"
)

// Referral sends a patient to an external facility, written by the visit's doctor.
type Referral struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	VisitID            uuid.UUID      `gorm:"type:uuid;not null;index" json:"visit_id"`
	PatientID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"patient_id"`
	ReferringDoctorID  *uuid.UUID     `gorm:"type:uuid" json:"referring_doctor_id,omitempty"`
	ReferredToFacility string         `gorm:"type:varchar(150);not null" json:"referred_to_facility"`
	Specialty          string         `gorm:"type:varchar(100)" json:"specialty,omitempty"`
	Reason             string         `gorm:"type:text;not null" json:"reason"`
	Diagnosis          string         `gorm:"type:text" json:"diagnosis,omitempty"`
	Status             ReferralStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Notes              string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	Visit *Visit `gorm:"foreignKey:VisitID" json:"visit,omitempty"`
}

func (Referral) TableName() string {
	return "referrals"
}
