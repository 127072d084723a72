package usecase

import (
	"context"
	"errors"
	"time"

	"his-backend/internal/converter"
	"his-backend/internal/delivery/dto"
	"his-backend/internal/domain/entity"
	"his-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrVisitNotFound       = errors.New("visit not found")
	ErrVisitAccessDenied   = errors.New("visit does not belong to you")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrInvalidVisitTime    = errors.New("invalid visit datetime, use RFC 3339")
	ErrVisitAlreadyClosed  = errors.New("visit is already completed or canceled")
	ErrStaffProfileMissing = errors.New("caller has no registration staff profile")
)

type VisitUsecase interface {
	Create(ctx context.Context, auth *entity.AuthContext, req *dto.CreateVisitRequest) (*dto.VisitResponse, error)
	GetByID(ctx context.Context, auth *entity.AuthContext, id uuid.UUID) (*dto.VisitResponse, error)
	List(ctx context.Context, auth *entity.AuthContext, status string, page, limit int) ([]dto.VisitResponse, int64, error)
	Update(ctx context.Context, auth *entity.AuthContext, id uuid.UUID, req *dto.UpdateVisitRequest) (*dto.VisitResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type visitUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	visitRepo   repository.VisitRepository
	profileRepo repository.ProfileRepository
}

func NewVisitUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	visitRepo repository.VisitRepository,
	profileRepo repository.ProfileRepository,
) VisitUsecase {
	return &visitUsecase{
		db:          db,
		log:         log,
		visitRepo:   visitRepo,
		profileRepo: profileRepo,
	}
}

// Create registers a visit. Request identifies patient and doctor by user id;
// the stored row references their profile ids, and the caller's profile id is
// recorded as the registering staff member.
func (u *visitUsecase) Create(ctx context.Context, auth *entity.AuthContext, req *dto.CreateVisitRequest) (*dto.VisitResponse, error) {
	visitTime, err := time.Parse(time.RFC3339, req.VisitDatetime)
	if err != nil {
		return nil, ErrInvalidVisitTime
	}

	db := u.db.WithContext(ctx)

	patient, err := u.profileRepo.FindPatientByUserID(db, req.PatientUserID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	doctor, err := u.profileRepo.FindDoctorByUserID(db, req.DoctorUserID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	visit := &entity.Visit{
		PatientID:           patient.ID,
		DoctorID:            doctor.ID,
		RegistrationStaffID: auth.ProfileID,
		VisitDatetime:       visitTime,
		VisitType:           entity.VisitType(req.VisitType),
		ChiefComplaint:      req.ChiefComplaint,
		VisitStatus:         entity.VisitStatusRegistered,
	}

	if err := u.visitRepo.Create(db, visit); err != nil {
		// Admins bypass the department gate but have no staff row to
		// reference, so the FK rejects them here.
		if isForeignKeyError(err, "registration_staff") {
			return nil, ErrStaffProfileMissing
		}
		u.log.Warnf("Failed to create visit: %+v", err)
		return nil, err
	}

	return converter.VisitToResponse(visit), nil
}

func (u *visitUsecase) GetByID(ctx context.Context, auth *entity.AuthContext, id uuid.UUID) (*dto.VisitResponse, error) {
	visit, err := u.visitRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find visit: %+v", err)
		return nil, err
	}
	if visit == nil {
		return nil, ErrVisitNotFound
	}

	if !canSeeVisit(auth, visit) {
		return nil, ErrVisitAccessDenied
	}

	return converter.VisitToResponse(visit), nil
}

// List returns visits the caller may see. Patients and doctors are pinned to
// their own records; staff and admins see everything.
func (u *visitUsecase) List(ctx context.Context, auth *entity.AuthContext, status string, page, limit int) ([]dto.VisitResponse, int64, error) {
	filter := repository.VisitFilter{
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
		s := entity.VisitStatus(status)
		filter.Status = &s
	}

	visits, total, err := u.visitRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list visits: %+v", err)
		return nil, 0, err
	}

	return converter.VisitsToResponses(visits), total, nil
}

// Update applies a partial update. Doctors may only move the status of their
// own visits; admins may change any field, including reassigning the doctor.
// Completed and canceled visits accept no further status changes.
func (u *visitUsecase) Update(ctx context.Context, auth *entity.AuthContext, id uuid.UUID, req *dto.UpdateVisitRequest) (*dto.VisitResponse, error) {
	db := u.db.WithContext(ctx)

	visit, err := u.visitRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find visit: %+v", err)
		return nil, err
	}
	if visit == nil {
		return nil, ErrVisitNotFound
	}

	if auth.Role == entity.RoleDoctor {
		if visit.DoctorID != auth.ProfileID {
			return nil, ErrVisitAccessDenied
		}
		if err := applyVisitStatus(visit, req.VisitStatus); err != nil {
			return nil, err
		}
	} else {
		if req.VisitType != "" {
			visit.VisitType = entity.VisitType(req.VisitType)
		}
		if req.ChiefComplaint != nil {
			visit.ChiefComplaint = *req.ChiefComplaint
		}
		if req.VisitDatetime != "" {
			visitTime, err := time.Parse(time.RFC3339, req.VisitDatetime)
			if err != nil {
				return nil, ErrInvalidVisitTime
			}
			visit.VisitDatetime = visitTime
		}
		if req.DoctorUserID != nil {
			doctor, err := u.profileRepo.FindDoctorByUserID(db, *req.DoctorUserID)
			if err != nil {
				u.log.Warnf("Failed to find doctor: %+v", err)
				return nil, err
			}
			if doctor == nil {
				return nil, ErrDoctorNotFound
			}
			visit.DoctorID = doctor.ID
		}
		if err := applyVisitStatus(visit, req.VisitStatus); err != nil {
			return nil, err
		}
	}

	if err := u.visitRepo.Update(db, visit); err != nil {
		u.log.Warnf("Failed to update visit: %+v", err)
		return nil, err
	}

	return converter.VisitToResponse(visit), nil
}

func applyVisitStatus(visit *entity.Visit, status string) error {
	if status == "" {
		return nil
	}
	if visit.VisitStatus == entity.VisitStatusCompleted || visit.VisitStatus == entity.VisitStatusCanceled {
		return ErrVisitAlreadyClosed
	}
	visit.VisitStatus = entity.VisitStatus(status)
	return nil
}

func (u *visitUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	db := u.db.WithContext(ctx)

	visit, err := u.visitRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find visit: %+v", err)
		return err
	}
	if visit == nil {
		return ErrVisitNotFound
	}

	return u.visitRepo.Delete(db, id)
}

func canSeeVisit(auth *entity.AuthContext, visit *entity.Visit) bool {
	switch auth.Role {
	case entity.RolePatient:
		return visit.PatientID == auth.ProfileID
	case entity.RoleDoctor:
		return visit.DoctorID == auth.ProfileID
	}
	return true
}
