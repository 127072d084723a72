package repository

import (
	"errors"

	"his-backend/internal/domain/entity"
	domainRepo "his-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type labOrderRepository struct{}

func NewLabOrderRepository() domainRepo.LabOrderRepository {
	return &labOrderRepository{}
}

func (r *labOrderRepository) Create(db *gorm.DB, order *entity.LabOrder) error {
	return db.Create(order).Error
}

func (r *labOrderRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.LabOrder, error) {
	var order entity.LabOrder
	err := db.Preload("Visit").Where("id = ?", id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *labOrderRepository) FindAll(db *gorm.DB, filter domainRepo.LabOrderFilter) ([]entity.LabOrder, int64, error) {
	query := db.Model(&entity.LabOrder{})
	if filter.DoctorID != nil {
		query = query.Where("doctor_id = ?", *filter.DoctorID)
	}
	if filter.PatientID != nil {
		query = query.Joins("JOIN visits ON visits.id = lab_orders.visit_id").
			Where("visits.patient_id = ?", *filter.PatientID)
	}
	if filter.Status != nil {
		query = query.Where("lab_orders.status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []entity.LabOrder
	err := query.
		Order("lab_orders.created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *labOrderRepository) Update(db *gorm.DB, order *entity.LabOrder) error {
	return db.Save(order).Error
}
