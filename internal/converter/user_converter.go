package converter

import (
	"his-backend/internal/delivery/dto"
	"his-backend/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:             user.ID,
		Username:       user.Username,
		FullName:       user.FullName,
		Email:          user.Email,
		PhoneNumber:    user.PhoneNumber,
		PhotoURL:       user.PhotoURL,
		Role:           string(user.Role),
		IsActive:       user.Active(),
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
		DoctorProfile:  DoctorToResponse(user.DoctorProfile),
		StaffProfile:   StaffToResponse(user.StaffProfile),
		PatientProfile: PatientToResponse(user.PatientProfile),
	}
}

// DoctorToResponse converts a Doctor entity to DoctorProfileResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorProfileResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorProfileResponse{
		ID:        doctor.ID,
		Specialty: doctor.Specialty,
		SIPNumber: doctor.SIPNumber,
		STRNumber: doctor.STRNumber,
	}
}

// StaffToResponse converts a Staff entity to StaffProfileResponse DTO
func StaffToResponse(staff *entity.Staff) *dto.StaffProfileResponse {
	if staff == nil {
		return nil
	}

	return &dto.StaffProfileResponse{
		ID:         staff.ID,
		Department: string(staff.Department),
	}
}

// PatientToResponse converts a Patient entity to PatientProfileResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientProfileResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientProfileResponse{
		ID:                    patient.ID,
		NIK:                   patient.NIK,
		DateOfBirth:           patient.DateOfBirth.Format("2006-01-02"),
		Gender:                patient.Gender,
		BloodType:             patient.BloodType,
		BPJSNumber:            patient.BPJSNumber,
		Address:               patient.Address,
		EmergencyContactName:  patient.EmergencyContactName,
		EmergencyContactPhone: patient.EmergencyContactPhone,
		HasDeviceAPIKey:       patient.DeviceAPIKey != nil,
	}
}
