package converter

import (
	"his-backend/internal/delivery/dto"
	"his-backend/internal/domain/entity"
)

// InvoiceToResponse converts an Invoice entity to InvoiceResponse DTO
func InvoiceToResponse(invoice *entity.Invoice) *dto.InvoiceResponse {
	if invoice == nil {
		return nil
	}

	items := make([]dto.InvoiceItemResponse, len(invoice.Items))
	for i, item := range invoice.Items {
		items[i] = dto.InvoiceItemResponse{
			ID:          item.ID,
			ItemType:    string(item.ItemType),
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		}
	}

	return &dto.InvoiceResponse{
		ID:            invoice.ID,
		VisitID:       invoice.VisitID,
		CashierID:     invoice.CashierID,
		TotalAmount:   invoice.TotalAmount,
		AmountPaid:    invoice.AmountPaid,
		PaymentStatus: string(invoice.PaymentStatus),
		PaymentMethod: string(invoice.PaymentMethod),
		Notes:         invoice.Notes,
		Items:         items,
		CreatedAt:     invoice.CreatedAt,
		UpdatedAt:     invoice.UpdatedAt,
	}
}

// InvoicesToResponses converts a slice of Invoice entities to slice of InvoiceResponse DTOs
func InvoicesToResponses(invoices []entity.Invoice) []dto.InvoiceResponse {
	responses := make([]dto.InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = *InvoiceToResponse(&invoices[i])
	}
	return responses
}
