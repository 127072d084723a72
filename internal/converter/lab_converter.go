package converter

import (
	"his-backend/internal/delivery/dto"
	"his-backend/internal/domain/entity"
)

// LabOrderToResponse converts a LabOrder entity to LabOrderResponse DTO
func LabOrderToResponse(order *entity.LabOrder) *dto.LabOrderResponse {
	if order == nil {
		return nil
	}

	return &dto.LabOrderResponse{
		ID:             order.ID,
		VisitID:        order.VisitID,
		DoctorID:       order.DoctorID,
		LabStaffID:     order.LabStaffID,
		TestName:       order.TestName,
		Status:         string(order.Status),
		Notes:          order.Notes,
		ResultValue:    order.ResultValue,
		ResultUnit:     order.ResultUnit,
		Interpretation: order.Interpretation,
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
}

// LabOrdersToResponses converts a slice of LabOrder entities to slice of LabOrderResponse DTOs
func LabOrdersToResponses(orders []entity.LabOrder) []dto.LabOrderResponse {
	responses := make([]dto.LabOrderResponse, len(orders))
	for i := range orders {
		responses[i] = *LabOrderToResponse(&orders[i])
	}
	return responses
}
