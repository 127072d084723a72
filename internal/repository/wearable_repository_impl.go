package repository

import (
	"errors"

	"his-backend/internal/domain/entity"
	domainRepo "his-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type wearableRepository struct{}

func NewWearableRepository() domainRepo.WearableRepository {
	return &wearableRepository{}
}

func (r *wearableRepository) CreateDevice(db *gorm.DB, device *entity.WearableDevice) error {
	return db.Create(device).Error
}

func (r *wearableRepository) FindDeviceByID(db *gorm.DB, id uuid.UUID) (*entity.WearableDevice, error) {
	var device entity.WearableDevice
	err := db.Where("id = ?", id).First(&device).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &device, nil
}

func (r *wearableRepository) FindDeviceByIdentifier(db *gorm.DB, identifier string) (*entity.WearableDevice, error) {
	var device entity.WearableDevice
	err := db.Where("device_identifier = ?", identifier).First(&device).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &device, nil
}

func (r *wearableRepository) FindDevicesByPatientID(db *gorm.DB, patientID uuid.UUID, page, limit int) ([]entity.WearableDevice, int64, error) {
	query := db.Model(&entity.WearableDevice{}).Where("patient_id = ?", patientID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var devices []entity.WearableDevice
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&devices).Error
	if err != nil {
		return nil, 0, err
	}
	return devices, total, nil
}

func (r *wearableRepository) UpdateDevice(db *gorm.DB, device *entity.WearableDevice) error {
	return db.Save(device).Error
}

func (r *wearableRepository) DeleteDevice(db *gorm.DB, id uuid.UUID) error {
	return db.Where("id = ?", id).Delete(&entity.WearableDevice{}).Error
}

func (r *wearableRepository) CreateMeasurement(db *gorm.DB, m *entity.WearableMeasurement) error {
	return db.Create(m).Error
}

func (r *wearableRepository) FindMeasurements(db *gorm.DB, deviceID uuid.UUID, filter domainRepo.MeasurementFilter) ([]entity.WearableMeasurement, int64, error) {
	query := db.Model(&entity.WearableMeasurement{}).Where("device_id = ?", deviceID)
	if filter.From != nil {
		query = query.Where("recorded_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("recorded_at <= ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var measurements []entity.WearableMeasurement
	err := query.
		Order("recorded_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&measurements).Error
	if err != nil {
		return nil, 0, err
	}
	return measurements, total, nil
}
