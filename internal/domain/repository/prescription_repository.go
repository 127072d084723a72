package repository

import (
	"his-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PrescriptionFilter struct {
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
	Status    *entity.PrescriptionStatus
	Page      int
	Limit     int
}

type PrescriptionRepository interface {
	Create(db *gorm.DB, prescription *entity.Prescription) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Prescription, error)
	FindByVisitID(db *gorm.DB, visitID uuid.UUID) (*entity.Prescription, error)
	FindAll(db *gorm.DB, filter PrescriptionFilter) ([]entity.Prescription, int64, error)
	Update(db *gorm.DB, prescription *entity.Prescription) error
}
