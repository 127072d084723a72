package repository

import (
	"his-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileRepository covers all three role-scoped profile collections. Lookups
// return nil when no row exists.
type ProfileRepository interface {
	CreateDoctor(db *gorm.DB, doctor *entity.Doctor) error
	CreateStaff(db *gorm.DB, staff *entity.Staff) error
	CreatePatient(db *gorm.DB, patient *entity.Patient) error

	FindDoctorByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Doctor, error)
	FindStaffByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Staff, error)
	FindPatientByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Patient, error)
	FindPatientByDeviceAPIKey(db *gorm.DB, key uuid.UUID) (*entity.Patient, error)

	UpdateDoctor(db *gorm.DB, doctor *entity.Doctor) error
	UpdateStaff(db *gorm.DB, staff *entity.Staff) error
	UpdatePatient(db *gorm.DB, patient *entity.Patient) error
}
