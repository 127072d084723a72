package repository

import (
	"errors"

	"his-backend/internal/domain/entity"
	domainRepo "his-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type invoiceRepository struct{}

func NewInvoiceRepository() domainRepo.InvoiceRepository {
	return &invoiceRepository{}
}

func (r *invoiceRepository) Create(db *gorm.DB, invoice *entity.Invoice) error {
	return db.Create(invoice).Error
}

func (r *invoiceRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := db.Preload("Items").Preload("Visit").Where("id = ?", id).First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindByVisitID(db *gorm.DB, visitID uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := db.Where("visit_id = ?", visitID).First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindAll(db *gorm.DB, filter domainRepo.InvoiceFilter) ([]entity.Invoice, int64, error) {
	query := db.Model(&entity.Invoice{})
	if filter.PatientID != nil {
		query = query.Joins("JOIN visits ON visits.id = invoices.visit_id").
			Where("visits.patient_id = ?", *filter.PatientID)
	}
	if filter.Status != nil {
		query = query.Where("invoices.payment_status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var invoices []entity.Invoice
	err := query.
		Preload("Items").
		Order("invoices.created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&invoices).Error
	if err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

func (r *invoiceRepository) MarkPaid(db *gorm.DB, id uuid.UUID, method entity.PaymentMethod) (int64, error) {
	result := db.Model(&entity.Invoice{}).
		Where("id = ? AND payment_status = ?", id, entity.PaymentStatusUnpaid).
		Updates(map[string]interface{}{
			"payment_status": entity.PaymentStatusPaid,
			"payment_method": method,
			"amount_paid":    gorm.Expr("total_amount"),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
