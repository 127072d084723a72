package usecase

import (
	"context"
	"errors"

	"his-backend/internal/converter"
	"his-backend/internal/delivery/dto"
	"his-backend/internal/domain/entity"
	"his-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrReferralNotFound     = errors.New("referral not found")
	ErrReferralAccessDenied = errors.New("referral does not belong to you")
	ErrReferralFinal        = errors.New("referral is already completed or canceled")
)

type ReferralUsecase interface {
	Create(ctx context.Context, auth *entity.AuthContext, req *dto.CreateReferralRequest) (*dto.ReferralResponse, error)
	GetByID(ctx context.Context, auth *entity.AuthContext, id uuid.UUID) (*dto.ReferralResponse, error)
	List(ctx context.Context, auth *entity.AuthContext, status string, page, limit int) ([]dto.ReferralResponse, int64, error)
	UpdateStatus(ctx context.Context, auth *entity.AuthContext, id uuid.UUID, req *dto.UpdateReferralStatusRequest) (*dto.ReferralResponse, error)
}

type referralUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	referralRepo repository.ReferralRepository
	visitRepo    repository.VisitRepository
}

func NewReferralUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	referralRepo repository.ReferralRepository,
	visitRepo repository.VisitRepository,
) ReferralUsecase {
	return &referralUsecase{
		db:           db,
		log:          log,
		referralRepo: referralRepo,
		visitRepo:    visitRepo,
	}
}

// Create writes a referral for one of the calling doctor's own visits.
func (u *referralUsecase) Create(ctx context.Context, auth *entity.AuthContext, req *dto.CreateReferralRequest) (*dto.ReferralResponse, error) {
	db := u.db.WithContext(ctx)

	visit, err := u.visitRepo.FindByID(db, req.VisitID)
	if err != nil {
		u.log.Warnf("Failed to find visit: %+v", err)
		return nil, err
	}
	if visit == nil {
		return nil, ErrVisitNotFound
	}
	if visit.DoctorID != auth.ProfileID {
		return nil, ErrVisitAccessDenied
	}

	doctorID := auth.ProfileID
	referral := &entity.Referral{
		VisitID:            visit.ID,
		PatientID:          visit.PatientID,
		ReferringDoctorID:  &doctorID,
		ReferredToFacility: req.ReferredToFacility,
		Specialty:          req.Specialty,
		Reason:             req.Reason,
		Diagnosis:          req.Diagnosis,
		Status:             entity.ReferralStatusPending,
		Notes:              req.Notes,
	}

	if err := u.referralRepo.Create(db, referral); err != nil {
		u.log.Warnf("Failed to create referral: %+v", err)
		return nil, err
	}

	return converter.ReferralToResponse(referral), nil
}

func (u *referralUsecase) GetByID(ctx context.Context, auth *entity.AuthContext, id uuid.UUID) (*dto.ReferralResponse, error) {
	referral, err := u.referralRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find referral: %+v", err)
		return nil, err
	}
	if referral == nil {
		return nil, ErrReferralNotFound
	}

	if !canSeeReferral(auth, referral) {
		return nil, ErrReferralAccessDenied
	}

	return converter.ReferralToResponse(referral), nil
}

func (u *referralUsecase) List(ctx context.Context, auth *entity.AuthContext, status string, page, limit int) ([]dto.ReferralResponse, int64, error) {
	filter := repository.ReferralFilter{
		Page:  page,
		Limit: limit,
	}
	switch auth.Role {
	case entity.RolePatient:
		filter.PatientID = &auth.ProfileID
	case entity.RoleDoctor:
		filter.DoctorID = &auth.ProfileID
	}
	if status != "" {
		s := entity.ReferralStatus(status)
		filter.Status = &s
	}

	referrals, total, err := u.referralRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list referrals: %+v", err)
		return nil, 0, err
	}

	return converter.ReferralsToResponses(referrals), total, nil
}

// UpdateStatus closes out a referral. Only the referring doctor or an admin
// may do so, and closed referrals stay closed.
func (u *referralUsecase) UpdateStatus(ctx context.Context, auth *entity.AuthContext, id uuid.UUID, req *dto.UpdateReferralStatusRequest) (*dto.ReferralResponse, error) {
	db := u.db.WithContext(ctx)

	referral, err := u.referralRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find referral: %+v", err)
		return nil, err
	}
	if referral == nil {
		return nil, ErrReferralNotFound
	}

	if auth.Role == entity.RoleDoctor {
		if referral.ReferringDoctorID == nil || *referral.ReferringDoctorID != auth.ProfileID {
			return nil, ErrReferralAccessDenied
		}
	}

	if referral.Status != entity.ReferralStatusPending {
		return nil, ErrReferralFinal
	}

	referral.Status = entity.ReferralStatus(req.Status)
	if req.Notes != "" {
		referral.Notes = req.Notes
	}

	if err := u.referralRepo.Update(db, referral); err != nil {
		u.log.Warnf("Failed to update referral: %+v", err)
		return nil, err
	}

	return converter.ReferralToResponse(referral), nil
}

func canSeeReferral(auth *entity.AuthContext, referral *entity.Referral) bool {
	switch auth.Role {
	case entity.RolePatient:
		return referral.PatientID == auth.ProfileID
	case entity.RoleDoctor:
		return referral.ReferringDoctorID != nil && *referral.ReferringDoctorID == auth.ProfileID
	}
	return true
}
