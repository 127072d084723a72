package converter

import (
	"his-backend/internal/delivery/dto"
	"his-backend/internal/domain/entity"
)

// DeviceToResponse converts a WearableDevice entity to DeviceResponse DTO
func DeviceToResponse(device *entity.WearableDevice) *dto.DeviceResponse {
	if device == nil {
		return nil
	}

	active := device.IsActive != nil && *device.IsActive
	return &dto.DeviceResponse{
		ID:               device.ID,
		PatientID:        device.PatientID,
		DeviceIdentifier: device.DeviceIdentifier,
		DeviceName:       device.DeviceName,
		DeviceType:       device.DeviceType,
		IsActive:         active,
		CreatedAt:        device.CreatedAt,
		UpdatedAt:        device.UpdatedAt,
	}
}

// DevicesToResponses converts a slice of WearableDevice entities to slice of DeviceResponse DTOs
func DevicesToResponses(devices []entity.WearableDevice) []dto.DeviceResponse {
	responses := make([]dto.DeviceResponse, len(devices))
	for i := range devices {
		responses[i] = *DeviceToResponse(&devices[i])
	}
	return responses
}

// MeasurementToResponse converts a WearableMeasurement entity to MeasurementResponse DTO
func MeasurementToResponse(m *entity.WearableMeasurement) *dto.MeasurementResponse {
	if m == nil {
		return nil
	}

	return &dto.MeasurementResponse{
		ID:              m.ID,
		DeviceID:        m.DeviceID,
		RecordedAt:      m.RecordedAt,
		HeartRate:       m.HeartRate,
		SystolicBP:      m.SystolicBP,
		DiastolicBP:     m.DiastolicBP,
		BodyTemperature: m.BodyTemperature,
		Steps:           m.Steps,
		SpO2:            m.SpO2,
		CreatedAt:       m.CreatedAt,
	}
}

// MeasurementsToResponses converts a slice of WearableMeasurement entities to slice of MeasurementResponse DTOs
func MeasurementsToResponses(measurements []entity.WearableMeasurement) []dto.MeasurementResponse {
	responses := make([]dto.MeasurementResponse, len(measurements))
	for i := range measurements {
		responses[i] = *MeasurementToResponse(&measurements[i])
	}
	return responses
}
