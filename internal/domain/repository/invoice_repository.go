package repository

import (
	"his-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceFilter struct {
	PatientID *uuid.UUID
	Status    *entity.PaymentStatus
	Page      int
	Limit     int
}

type InvoiceRepository interface {
	Create(db *gorm.DB, invoice *entity.Invoice) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Invoice, error)
	FindByVisitID(db *gorm.DB, visitID uuid.UUID) (*entity.Invoice, error)
	FindAll(db *gorm.DB, filter InvoiceFilter) ([]entity.Invoice, int64, error)
	// MarkPaid flips unpaid → paid atomically; 0 rows means the invoice was
	// already paid or canceled.
	MarkPaid(db *gorm.DB, id uuid.UUID, method entity.PaymentMethod) (int64, error)
}
