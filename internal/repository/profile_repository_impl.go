package repository

import (
	"errors"

	"his-backend/internal/domain/entity"
	domainRepo "his-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type profileRepository struct{}

func NewProfileRepository() domainRepo.ProfileRepository {
	return &profileRepository{}
}

func (r *profileRepository) CreateDoctor(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Create(doctor).Error
}

func (r *profileRepository) CreateStaff(db *gorm.DB, staff *entity.Staff) error {
	return db.Create(staff).Error
}

func (r *profileRepository) CreatePatient(db *gorm.DB, patient *entity.Patient) error {
	return db.Create(patient).Error
}

func (r *profileRepository) FindDoctorByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Where("user_id = ?", userID).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *profileRepository) FindStaffByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Staff, error) {
	var staff entity.Staff
	err := db.Where("user_id = ?", userID).First(&staff).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &staff, nil
}

func (r *profileRepository) FindPatientByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("user_id = ?", userID).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *profileRepository) FindPatientByDeviceAPIKey(db *gorm.DB, key uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("device_api_key = ?", key).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *profileRepository) UpdateDoctor(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Save(doctor).Error
}

func (r *profileRepository) UpdateStaff(db *gorm.DB, staff *entity.Staff) error {
	return db.Save(staff).Error
}

func (r *profileRepository) UpdatePatient(db *gorm.DB, patient *entity.Patient) error {
	return db.Save(patient).Error
}
