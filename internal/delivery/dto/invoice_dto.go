package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InvoiceItemRequest struct {
	ItemType    string          `json:"item_type" validate:"required,oneof=consultation medicine lab other"`
	Description string          `json:"description" validate:"required,max=200"`
	Quantity    int             `json:"quantity" validate:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"required"`
}

type CreateInvoiceRequest struct {
	VisitID uuid.UUID            `json:"visit_id" validate:"required,uuid"`
	Notes   string               `json:"notes" validate:"omitempty"`
	Items   []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
}

type PayInvoiceRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=cash debit credit bpjs insurance"`
}

type InvoiceItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ItemType    string          `json:"item_type"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type InvoiceResponse struct {
	ID            uuid.UUID             `json:"id"`
	VisitID       uuid.UUID             `json:"visit_id"`
	CashierID     uuid.UUID             `json:"cashier_id"`
	TotalAmount   decimal.Decimal       `json:"total_amount"`
	AmountPaid    decimal.Decimal       `json:"amount_paid"`
	PaymentStatus string                `json:"payment_status"`
	PaymentMethod string                `json:"payment_method"`
	Notes         string                `json:"notes,omitempty"`
	Items         []InvoiceItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}
