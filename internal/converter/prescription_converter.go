package converter

import (
	"his-backend/internal/delivery/dto"
	"his-backend/internal/domain/entity"
)

// PrescriptionToResponse converts a Prescription entity to PrescriptionResponse DTO
func PrescriptionToResponse(p *entity.Prescription) *dto.PrescriptionResponse {
	if p == nil {
		return nil
	}

	items := make([]dto.PrescriptionItemResponse, len(p.Items))
	for i, item := range p.Items {
		items[i] = dto.PrescriptionItemResponse{
			ID:           item.ID,
			MedicineName: item.MedicineName,
			Quantity:     item.Quantity,
			Dosage:       item.Dosage,
			Frequency:    item.Frequency,
			Duration:     item.Duration,
			Instructions: item.Instructions,
		}
	}

	return &dto.PrescriptionResponse{
		ID:              p.ID,
		VisitID:         p.VisitID,
		DoctorID:        p.DoctorID,
		PharmacyStaffID: p.PharmacyStaffID,
		Status:          string(p.Status),
		Notes:           p.Notes,
		Items:           items,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// PrescriptionsToResponses converts a slice of Prescription entities to slice of PrescriptionResponse DTOs
func PrescriptionsToResponses(prescriptions []entity.Prescription) []dto.PrescriptionResponse {
	responses := make([]dto.PrescriptionResponse, len(prescriptions))
	for i := range prescriptions {
		responses[i] = *PrescriptionToResponse(&prescriptions[i])
	}
	return responses
}
