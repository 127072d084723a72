package dto

import "github.com/google/uuid"

type DoctorProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	Specialty string    `json:"specialty,omitempty"`
	SIPNumber string    `json:"sip_number,omitempty"`
	STRNumber string    `json:"str_number,omitempty"`
}

type StaffProfileResponse struct {
	ID         uuid.UUID `json:"id"`
	Department string    `json:"department"`
}

type PatientProfileResponse struct {
	ID                    uuid.UUID `json:"id"`
	NIK                   string    `json:"nik"`
	DateOfBirth           string    `json:"date_of_birth"`
	Gender                string    `json:"gender"`
	BloodType             string    `json:"blood_type,omitempty"`
	BPJSNumber            string    `json:"bpjs_number,omitempty"`
	Address               string    `json:"address,omitempty"`
	EmergencyContactName  string    `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string    `json:"emergency_contact_phone,omitempty"`
	HasDeviceAPIKey       bool      `json:"has_device_api_key"`
}

// UpdateProfileRequest carries the fields any role may change about itself.
// Role-specific fields are ignored for roles they do not apply to.
type UpdateProfileRequest struct {
	FullName    string `json:"full_name" validate:"omitempty,min=2"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=10,max=20"`

	// Doctor fields
	Specialty string `json:"specialty" validate:"omitempty,max=100"`
	SIPNumber string `json:"sip_number" validate:"omitempty,max=50"`

	// Patient fields
	BloodType             string `json:"blood_type" validate:"omitempty,max=3"`
	Address               string `json:"address" validate:"omitempty"`
	EmergencyContactName  string `json:"emergency_contact_name" validate:"omitempty,max=100"`
	EmergencyContactPhone string `json:"emergency_contact_phone" validate:"omitempty,max=20"`
}

type DeviceAPIKeyResponse struct {
	DeviceAPIKey uuid.UUID `json:"device_api_key"`
}

type PhotoUploadResponse struct {
	PhotoURL string `json:"photo_url"`
}
