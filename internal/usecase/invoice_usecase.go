package usecase

import (
	"context"
	"errors"

	"his-backend/internal/converter"
	"his-backend/internal/delivery/dto"
	"his-backend/internal/domain/entity"
	"his-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvoiceNotFound     = errors.New("invoice not found")
	ErrInvoiceAccessDenied = errors.New("invoice does not belong to you")
	ErrInvoiceExists       = errors.New("visit already has an invoice")
	ErrInvoiceNotPayable   = errors.New("invoice is already paid or canceled")
)

type InvoiceUsecase interface {
	Create(ctx context.Context, auth *entity.AuthContext, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetByID(ctx context.Context, auth *entity.AuthContext, id uuid.UUID) (*dto.InvoiceResponse, error)
	List(ctx context.Context, auth *entity.AuthContext, status string, page, limit int) ([]dto.InvoiceResponse, int64, error)
	Pay(ctx context.Context, id uuid.UUID, req *dto.PayInvoiceRequest) (*dto.InvoiceResponse, error)
}

type invoiceUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	invoiceRepo repository.InvoiceRepository
	visitRepo   repository.VisitRepository
}

func NewInvoiceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	invoiceRepo repository.InvoiceRepository,
	visitRepo repository.VisitRepository,
) InvoiceUsecase {
	return &invoiceUsecase{
		db:          db,
		log:         log,
		invoiceRepo: invoiceRepo,
		visitRepo:   visitRepo,
	}
}

// Create raises an invoice for a visit. Item subtotals and the invoice total
// are computed server side; one invoice per visit.
func (u *invoiceUsecase) Create(ctx context.Context, auth *entity.AuthContext, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	db := u.db.WithContext(ctx)

	visit, err := u.visitRepo.FindByID(db, req.VisitID)
	if err != nil {
		u.log.Warnf("Failed to find visit: %+v", err)
		return nil, err
	}
	if visit == nil {
		return nil, ErrVisitNotFound
	}

	invoice := &entity.Invoice{
		VisitID:       visit.ID,
		CashierID:     auth.ProfileID,
		PaymentStatus: entity.PaymentStatusUnpaid,
		Notes:         req.Notes,
	}

	total := decimal.Zero
	for _, item := range req.Items {
		subtotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(subtotal)
		invoice.Items = append(invoice.Items, entity.InvoiceItem{
			ItemType:    entity.InvoiceItemType(item.ItemType),
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    subtotal,
		})
	}
	invoice.TotalAmount = total

	if err := u.invoiceRepo.Create(db, invoice); err != nil {
		if isDuplicateKeyError(err, "visit_id") {
			return nil, ErrInvoiceExists
		}
		u.log.Warnf("Failed to create invoice: %+v", err)
		return nil, err
	}

	return converter.InvoiceToResponse(invoice), nil
}

func (u *invoiceUsecase) GetByID(ctx context.Context, auth *entity.AuthContext, id uuid.UUID) (*dto.InvoiceResponse, error) {
	invoice, err := u.invoiceRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find invoice: %+v", err)
		return nil, err
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}

	if auth.Role == entity.RolePatient {
		if invoice.Visit == nil || invoice.Visit.PatientID != auth.ProfileID {
			return nil, ErrInvoiceAccessDenied
		}
	}

	return converter.InvoiceToResponse(invoice), nil
}

func (u *invoiceUsecase) List(ctx context.Context, auth *entity.AuthContext, status string, page, limit int) ([]dto.InvoiceResponse, int64, error) {
	filter := repository.InvoiceFilter{
		Page:  page,
		Limit: limit,
	}
	if auth.Role == entity.RolePatient {
		filter.PatientID = &auth.ProfileID
	}
	if status != "" {
		s := entity.PaymentStatus(status)
		filter.Status = &s
	}

	invoices, total, err := u.invoiceRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list invoices: %+v", err)
		return nil, 0, err
	}

	return converter.InvoicesToResponses(invoices), total, nil
}

// Pay settles an unpaid invoice exactly once. The conditional update means
// that of two concurrent payments only one succeeds; the loser sees the
// invoice as not payable.
func (u *invoiceUsecase) Pay(ctx context.Context, id uuid.UUID, req *dto.PayInvoiceRequest) (*dto.InvoiceResponse, error) {
	db := u.db.WithContext(ctx)

	rows, err := u.invoiceRepo.MarkPaid(db, id, entity.PaymentMethod(req.PaymentMethod))
	if err != nil {
		u.log.Warnf("Failed to mark invoice paid: %+v", err)
		return nil, err
	}
	if rows == 0 {
		invoice, err := u.invoiceRepo.FindByID(db, id)
		if err != nil {
			return nil, err
		}
		if invoice == nil {
			return nil, ErrInvoiceNotFound
		}
		return nil, ErrInvoiceNotPayable
	}

	invoice, err := u.invoiceRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to reload invoice: %+v", err)
		return nil, err
	}
	return converter.InvoiceToResponse(invoice), nil
}
