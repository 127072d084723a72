package repository

import (
	"his-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VisitFilter narrows listings; nil fields are ignored. PatientID/DoctorID
// carry profile ids, set by the use case after ownership resolution.
type VisitFilter struct {
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
	Status    *entity.VisitStatus
	Page      int
	Limit     int
}

type VisitRepository interface {
	Create(db *gorm.DB, visit *entity.Visit) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Visit, error)
	FindAll(db *gorm.DB, filter VisitFilter) ([]entity.Visit, int64, error)
	Update(db *gorm.DB, visit *entity.Visit) error
	Delete(db *gorm.DB, id uuid.UUID) error
}
