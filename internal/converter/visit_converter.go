package converter

import (
	"his-backend/internal/delivery/dto"
	"his-backend/internal/domain/entity"
)

// VisitToResponse converts a Visit entity to VisitResponse DTO
func VisitToResponse(visit *entity.Visit) *dto.VisitResponse {
	if visit == nil {
		return nil
	}

	response := &dto.VisitResponse{
		ID:                  visit.ID,
		PatientID:           visit.PatientID,
		DoctorID:            visit.DoctorID,
		RegistrationStaffID: visit.RegistrationStaffID,
		VisitDatetime:       visit.VisitDatetime,
		VisitType:           string(visit.VisitType),
		ChiefComplaint:      visit.ChiefComplaint,
		VisitStatus:         string(visit.VisitStatus),
		CreatedAt:           visit.CreatedAt,
		UpdatedAt:           visit.UpdatedAt,
	}

	if visit.Patient != nil && visit.Patient.User != nil {
		response.PatientName = visit.Patient.User.FullName
	}
	if visit.Doctor != nil && visit.Doctor.User != nil {
		response.DoctorName = visit.Doctor.User.FullName
	}

	return response
}

// VisitsToResponses converts a slice of Visit entities to slice of VisitResponse DTOs
func VisitsToResponses(visits []entity.Visit) []dto.VisitResponse {
	responses := make([]dto.VisitResponse, len(visits))
	for i := range visits {
		responses[i] = *VisitToResponse(&visits[i])
	}
	return responses
}
