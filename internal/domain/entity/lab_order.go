package entity

import (
	"time"

	"github.com/google/uuid"
)

type LabOrderStatus string

const (
	LabOrderStatusPending    LabOrderStatus = "pending"
	LabOrderStatusInProgress LabOrderStatus = "in_progress"
	LabOrderStatusCompleted  LabOrderStatus = "completed"
	LabOrderStatusCanceled   LabOrderStatus = "canceled"
)

// LabOrder is placed by the visit's doctor; Laboratory staff process it and
// record the result fields when completing.
type LabOrder struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	VisitID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"visit_id"`
	DoctorID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"doctor_id"`
	LabStaffID     *uuid.UUID     `gorm:"type:uuid" json:"lab_staff_id,omitempty"`
	TestName       string         `gorm:"type:varchar(150);not null" json:"test_name"`
	Status         LabOrderStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Notes          string         `gorm:"type:text" json:"notes,omitempty"`
	ResultValue    string         `gorm:"type:varchar(100)" json:"result_value,omitempty"`
	ResultUnit     string         `gorm:"type:varchar(20)" json:"result_unit,omitempty"`
	Interpretation string         `gorm:"type:text" json:"interpretation,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	Visit *Visit `gorm:"foreignKey:VisitID" json:"visit,omitempty"`
}

func (LabOrder) TableName() string {
	return "lab_orders"
}
