package repository

import (
	"time"

	"his-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MeasurementFilter struct {
	From  *time.Time
	To    *time.Time
	Page  int
	Limit int
}

type WearableRepository interface {
	CreateDevice(db *gorm.DB, device *entity.WearableDevice) error
	FindDeviceByID(db *gorm.DB, id uuid.UUID) (*entity.WearableDevice, error)
	FindDeviceByIdentifier(db *gorm.DB, identifier string) (*entity.WearableDevice, error)
	FindDevicesByPatientID(db *gorm.DB, patientID uuid.UUID, page, limit int) ([]entity.WearableDevice, int64, error)
	UpdateDevice(db *gorm.DB, device *entity.WearableDevice) error
	DeleteDevice(db *gorm.DB, id uuid.UUID) error

	CreateMeasurement(db *gorm.DB, m *entity.WearableMeasurement) error
	FindMeasurements(db *gorm.DB, deviceID uuid.UUID, filter MeasurementFilter) ([]entity.WearableMeasurement, int64, error)
}
