package repository

import (
	"his-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReferralFilter struct {
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
	Status    *entity.ReferralStatus
	Page      int
	Limit     int
}

type ReferralRepository interface {
	Create(db *gorm.DB, referral *entity.Referral) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Referral, error)
	FindAll(db *gorm.DB, filter ReferralFilter) ([]entity.Referral, int64, error)
	Update(db *gorm.DB, referral *entity.Referral) error
}
