package entity

import (
	"time"

	"github.com/google/uuid"
)

// WearableDevice belongs to a patient profile (patients.id, not the user id).
type WearableDevice struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID        uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	DeviceIdentifier string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"device_identifier"`
	DeviceName       string    `gorm:"type:varchar(100)" json:"device_name,omitempty"`
	DeviceType       string    `gorm:"type:varchar(50)" json:"device_type,omitempty"`
	IsActive         *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Measurements []WearableMeasurement `gorm:"foreignKey:DeviceID" json:"measurements,omitempty"`
}

func (WearableDevice) TableName() string {
	return "wearable_devices"
}

type WearableMeasurement struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DeviceID        uuid.UUID `gorm:"type:uuid;not null;index" json:"device_id"`
	RecordedAt      time.Time `gorm:"not null;index" json:"recorded_at"`
	HeartRate       *int      `json:"heart_rate,omitempty"`
	SystolicBP      *int      `gorm:"column:systolic_bp" json:"systolic_bp,omitempty"`
	DiastolicBP     *int      `gorm:"column:diastolic_bp" json:"diastolic_bp,omitempty"`
	BodyTemperature *float64  `gorm:"type:numeric(4,1)" json:"body_temperature,omitempty"`
	Steps           *int      `json:"steps,omitempty"`
	SpO2            *int      `gorm:"column:spo2" json:"spo2,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (WearableMeasurement) TableName() string {
	return "wearable_measurements"
}
