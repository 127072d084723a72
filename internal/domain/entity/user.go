package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the centralized authentication record. Role-specific data lives in
// the Doctor/Staff/Patient profile tables keyed by UserID.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Username     string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	FullName     string    `gorm:"type:varchar(150);not null" json:"full_name"`
	Email        string    `gorm:"type:varchar(100);uniqueIndex" json:"email,omitempty"`
	PhoneNumber  string    `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	PhotoURL     string    `gorm:"type:text" json:"photo_url,omitempty"`
	Role         Role      `gorm:"type:varchar(20);not null;index" json:"role"`
	IsActive     *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	DoctorProfile  *Doctor  `gorm:"foreignKey:UserID" json:"doctor_profile,omitempty"`
	StaffProfile   *Staff   `gorm:"foreignKey:UserID" json:"staff_profile,omitempty"`
	PatientProfile *Patient `gorm:"foreignKey:UserID" json:"patient_profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) Active() bool {
	return u.IsActive != nil && *u.IsActive
}
