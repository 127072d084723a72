package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterDeviceRequest struct {
	DeviceIdentifier string `json:"device_identifier" validate:"required,max=100"`
	DeviceName       string `json:"device_name" validate:"omitempty,max=100"`
	DeviceType       string `json:"device_type" validate:"omitempty,max=50"`
}

type UpdateDeviceRequest struct {
	DeviceName string `json:"device_name" validate:"omitempty,max=100"`
	DeviceType string `json:"device_type" validate:"omitempty,max=50"`
	IsActive   *bool  `json:"is_active" validate:"omitempty"`
}

// IngestMeasurementRequest is pushed by a device authenticated with the
// patient's device API key, not a bearer token.
type IngestMeasurementRequest struct {
	DeviceIdentifier string   `json:"device_identifier" validate:"required,max=100"`
	RecordedAt       string   `json:"recorded_at" validate:"required"` // RFC 3339
	HeartRate        *int     `json:"heart_rate" validate:"omitempty,min=0,max=300"`
	SystolicBP       *int     `json:"systolic_bp" validate:"omitempty,min=0,max=400"`
	DiastolicBP      *int     `json:"diastolic_bp" validate:"omitempty,min=0,max=300"`
	BodyTemperature  *float64 `json:"body_temperature" validate:"omitempty,min=20,max=45"`
	Steps            *int     `json:"steps" validate:"omitempty,min=0"`
	SpO2             *int     `json:"spo2" validate:"omitempty,min=0,max=100"`
}

type DeviceResponse struct {
	ID               uuid.UUID `json:"id"`
	PatientID        uuid.UUID `json:"patient_id"`
	DeviceIdentifier string    `json:"device_identifier"`
	DeviceName       string    `json:"device_name,omitempty"`
	DeviceType       string    `json:"device_type,omitempty"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type MeasurementResponse struct {
	ID              uuid.UUID `json:"id"`
	DeviceID        uuid.UUID `json:"device_id"`
	RecordedAt      time.Time `json:"recorded_at"`
	HeartRate       *int      `json:"heart_rate,omitempty"`
	SystolicBP      *int      `json:"systolic_bp,omitempty"`
	DiastolicBP     *int      `json:"diastolic_bp,omitempty"`
	BodyTemperature *float64  `json:"body_temperature,omitempty"`
	Steps           *int      `json:"steps,omitempty"`
	SpO2            *int      `json:"spo2,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
