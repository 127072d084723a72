package usecase

import (
	"context"
	"errors"
	"time"

	"his-backend/internal/converter"
	"his-backend/internal/delivery/dto"
	"his-backend/internal/domain/entity"
	"his-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDeviceNotFound      = errors.New("device not found")
	ErrDeviceAccessDenied  = errors.New("device does not belong to you")
	ErrDeviceExists        = errors.New("device identifier already registered")
	ErrDeviceInactive      = errors.New("device is deactivated")
	ErrInvalidDeviceKey    = errors.New("invalid device API key")
	ErrInvalidRecordedTime = errors.New("invalid recorded_at, use RFC 3339")
)

type WearableUsecase interface {
	RegisterDevice(ctx context.Context, auth *entity.AuthContext, req *dto.RegisterDeviceRequest) (*dto.DeviceResponse, error)
	ListDevices(ctx context.Context, auth *entity.AuthContext, page, limit int) ([]dto.DeviceResponse, int64, error)
	UpdateDevice(ctx context.Context, auth *entity.AuthContext, id uuid.UUID, req *dto.UpdateDeviceRequest) (*dto.DeviceResponse, error)
	DeleteDevice(ctx context.Context, auth *entity.AuthContext, id uuid.UUID) error
	ListMeasurements(ctx context.Context, auth *entity.AuthContext, deviceID uuid.UUID, from, to string, page, limit int) ([]dto.MeasurementResponse, int64, error)
	Ingest(ctx context.Context, deviceKey string, req *dto.IngestMeasurementRequest) (*dto.MeasurementResponse, error)
}

type wearableUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	wearableRepo repository.WearableRepository
	profileRepo  repository.ProfileRepository
}

func NewWearableUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	wearableRepo repository.WearableRepository,
	profileRepo repository.ProfileRepository,
) WearableUsecase {
	return &wearableUsecase{
		db:           db,
		log:          log,
		wearableRepo: wearableRepo,
		profileRepo:  profileRepo,
	}
}

func (u *wearableUsecase) RegisterDevice(ctx context.Context, auth *entity.AuthContext, req *dto.RegisterDeviceRequest) (*dto.DeviceResponse, error) {
	device := &entity.WearableDevice{
		PatientID:        auth.ProfileID,
		DeviceIdentifier: req.DeviceIdentifier,
		DeviceName:       req.DeviceName,
		DeviceType:       req.DeviceType,
	}

	if err := u.wearableRepo.CreateDevice(u.db.WithContext(ctx), device); err != nil {
		if isDuplicateKeyError(err, "device_identifier") {
			return nil, ErrDeviceExists
		}
		u.log.Warnf("Failed to register device: %+v", err)
		return nil, err
	}

	return converter.DeviceToResponse(device), nil
}

func (u *wearableUsecase) ListDevices(ctx context.Context, auth *entity.AuthContext, page, limit int) ([]dto.DeviceResponse, int64, error) {
	devices, total, err := u.wearableRepo.FindDevicesByPatientID(u.db.WithContext(ctx), auth.ProfileID, page, limit)
	if err != nil {
		u.log.Warnf("Failed to list devices: %+v", err)
		return nil, 0, err
	}
	return converter.DevicesToResponses(devices), total, nil
}

func (u *wearableUsecase) UpdateDevice(ctx context.Context, auth *entity.AuthContext, id uuid.UUID, req *dto.UpdateDeviceRequest) (*dto.DeviceResponse, error) {
	db := u.db.WithContext(ctx)

	device, err := u.ownedDevice(db, auth, id)
	if err != nil {
		return nil, err
	}

	if req.DeviceName != "" {
		device.DeviceName = req.DeviceName
	}
	if req.DeviceType != "" {
		device.DeviceType = req.DeviceType
	}
	if req.IsActive != nil {
		device.IsActive = req.IsActive
	}

	if err := u.wearableRepo.UpdateDevice(db, device); err != nil {
		u.log.Warnf("Failed to update device: %+v", err)
		return nil, err
	}

	return converter.DeviceToResponse(device), nil
}

func (u *wearableUsecase) DeleteDevice(ctx context.Context, auth *entity.AuthContext, id uuid.UUID) error {
	db := u.db.WithContext(ctx)

	if _, err := u.ownedDevice(db, auth, id); err != nil {
		return err
	}

	return u.wearableRepo.DeleteDevice(db, id)
}

func (u *wearableUsecase) ListMeasurements(ctx context.Context, auth *entity.AuthContext, deviceID uuid.UUID, from, to string, page, limit int) ([]dto.MeasurementResponse, int64, error) {
	db := u.db.WithContext(ctx)

	if _, err := u.ownedDevice(db, auth, deviceID); err != nil {
		return nil, 0, err
	}

	filter := repository.MeasurementFilter{Page: page, Limit: limit}
	if from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return nil, 0, ErrInvalidRecordedTime
		}
		filter.From = &t
	}
	if to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return nil, 0, ErrInvalidRecordedTime
		}
		filter.To = &t
	}

	measurements, total, err := u.wearableRepo.FindMeasurements(db, deviceID, filter)
	if err != nil {
		u.log.Warnf("Failed to list measurements: %+v", err)
		return nil, 0, err
	}
	return converter.MeasurementsToResponses(measurements), total, nil
}

// Ingest accepts a measurement pushed by a device. The device authenticates
// with the owning patient's API key, not a bearer token, and the named device
// must belong to that same patient.
func (u *wearableUsecase) Ingest(ctx context.Context, deviceKey string, req *dto.IngestMeasurementRequest) (*dto.MeasurementResponse, error) {
	key, err := uuid.Parse(deviceKey)
	if err != nil {
		return nil, ErrInvalidDeviceKey
	}

	recordedAt, err := time.Parse(time.RFC3339, req.RecordedAt)
	if err != nil {
		return nil, ErrInvalidRecordedTime
	}

	db := u.db.WithContext(ctx)

	patient, err := u.profileRepo.FindPatientByDeviceAPIKey(db, key)
	if err != nil {
		u.log.Warnf("Failed to find patient by device key: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrInvalidDeviceKey
	}

	device, err := u.wearableRepo.FindDeviceByIdentifier(db, req.DeviceIdentifier)
	if err != nil {
		u.log.Warnf("Failed to find device: %+v", err)
		return nil, err
	}
	if device == nil || device.PatientID != patient.ID {
		return nil, ErrDeviceNotFound
	}
	if device.IsActive != nil && !*device.IsActive {
		return nil, ErrDeviceInactive
	}

	m := &entity.WearableMeasurement{
		DeviceID:        device.ID,
		RecordedAt:      recordedAt,
		HeartRate:       req.HeartRate,
		SystolicBP:      req.SystolicBP,
		DiastolicBP:     req.DiastolicBP,
		BodyTemperature: req.BodyTemperature,
		Steps:           req.Steps,
		SpO2:            req.SpO2,
	}

	if err := u.wearableRepo.CreateMeasurement(db, m); err != nil {
		u.log.Warnf("Failed to store measurement: %+v", err)
		return nil, err
	}

	return converter.MeasurementToResponse(m), nil
}

func (u *wearableUsecase) ownedDevice(db *gorm.DB, auth *entity.AuthContext, id uuid.UUID) (*entity.WearableDevice, error) {
	device, err := u.wearableRepo.FindDeviceByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find device: %+v", err)
		return nil, err
	}
	if device == nil {
		return nil, ErrDeviceNotFound
	}
	if auth.Role == entity.RolePatient && device.PatientID != auth.ProfileID {
		return nil, ErrDeviceAccessDenied
	}
	return device, nil
}
