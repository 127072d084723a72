package entity

import (
	"time"

	"github.com/google/uuid"
)

// Patient is the patient-specific profile record. DeviceAPIKey authenticates
// wearable devices pushing measurements without a bearer token.
type Patient struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID                uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	NIK                   string     `gorm:"type:char(16);uniqueIndex;not null" json:"nik"`
	DeviceAPIKey          *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"device_api_key,omitempty"`
	DateOfBirth           time.Time  `gorm:"type:date;not null" json:"date_of_birth"`
	Gender                string     `gorm:"type:char(1);not null" json:"gender"`
	BloodType             string     `gorm:"type:varchar(3)" json:"blood_type,omitempty"`
	BPJSNumber            string     `gorm:"column:bpjs_number;type:varchar(20)" json:"bpjs_number,omitempty"`
	Address               string     `gorm:"type:text" json:"address,omitempty"`
	EmergencyContactName  string     `gorm:"type:varchar(100)" json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string     `gorm:"type:varchar(20)" json:"emergency_contact_phone,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}
