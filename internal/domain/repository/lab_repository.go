package repository

import (
	"his-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LabOrderFilter struct {
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
	Status    *entity.LabOrderStatus
	Page      int
	Limit     int
}

type LabOrderRepository interface {
	Create(db *gorm.DB, order *entity.LabOrder) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.LabOrder, error)
	FindAll(db *gorm.DB, filter LabOrderFilter) ([]entity.LabOrder, int64, error)
	Update(db *gorm.DB, order *entity.LabOrder) error
}
