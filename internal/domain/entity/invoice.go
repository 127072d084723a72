package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusCanceled PaymentStatus = "canceled"
)

type PaymentMethod string

const (
	PaymentMethodCash      PaymentMethod = "cash"
	PaymentMethodDebit     PaymentMethod = "debit"
	PaymentMethodCredit    PaymentMethod = "credit"
	PaymentMethodBPJS      PaymentMethod = "bpjs"
	PaymentMethodInsurance PaymentMethod = "insurance"
)

type InvoiceItemType string

const (
	InvoiceItemTypeConsultation InvoiceItemType = "consultation"
	InvoiceItemTypeMedicine     InvoiceItemType = "medicine"
	InvoiceItemTypeLab          InvoiceItemType = "lab"
	InvoiceItemTypeOther        InvoiceItemType = "other"
)

// Invoice is raised per visit by Cashier staff. TotalAmount is the sum of
// item subtotals, computed at creation.
type Invoice struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	VisitID       uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"visit_id"`
	CashierID     uuid.UUID       `gorm:"type:uuid;not null" json:"cashier_id"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"total_amount"`
	AmountPaid    decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"amount_paid"`
	PaymentStatus PaymentStatus   `gorm:"type:varchar(20);not null;default:'unpaid';index" json:"payment_status"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(20);not null;default:'cash'" json:"payment_method"`
	Notes         string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	Visit *Visit        `gorm:"foreignKey:VisitID" json:"visit,omitempty"`
	Items []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

func (Invoice) TableName() string {
	return "invoices"
}

type InvoiceItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ItemType    InvoiceItemType `gorm:"type:varchar(20);not null" json:"item_type"`
	Description string          `gorm:"type:varchar(200);not null" json:"description"`
	Quantity    int             `gorm:"not null;default:1" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"unit_price"`
	Subtotal    decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"subtotal"`
}

func (InvoiceItem) TableName() string {
	return "invoice_items"
}
