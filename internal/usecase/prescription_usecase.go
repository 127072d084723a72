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
	ErrPrescriptionNotFound     = errors.New("prescription not found")
	ErrPrescriptionAccessDenied = errors.New("prescription does not belong to you")
	ErrPrescriptionExists       = errors.New("visit already has a prescription")
	ErrPrescriptionFinal        = errors.New("prescription is already completed or canceled")
)

type PrescriptionUsecase interface {
	Create(ctx context.Context, auth *entity.AuthContext, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error)
	GetByID(ctx context.Context, auth *entity.AuthContext, id uuid.UUID) (*dto.PrescriptionResponse, error)
	List(ctx context.Context, auth *entity.AuthContext, status string, page, limit int) ([]dto.PrescriptionResponse, int64, error)
	UpdateStatus(ctx context.Context, auth *entity.AuthContext, id uuid.UUID, req *dto.UpdatePrescriptionStatusRequest) (*dto.PrescriptionResponse, error)
}

type prescriptionUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	prescriptionRepo repository.PrescriptionRepository
	visitRepo        repository.VisitRepository
}

func NewPrescriptionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	prescriptionRepo repository.PrescriptionRepository,
	visitRepo repository.VisitRepository,
) PrescriptionUsecase {
	return &prescriptionUsecase{
		db:               db,
		log:              log,
		prescriptionRepo: prescriptionRepo,
		visitRepo:        visitRepo,
	}
}

// Create writes a prescription for one of the calling doctor's own visits.
// One prescription per visit.
func (u *prescriptionUsecase) Create(ctx context.Context, auth *entity.AuthContext, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error) {
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

	prescription := &entity.Prescription{
		VisitID:  visit.ID,
		DoctorID: auth.ProfileID,
		Status:   entity.PrescriptionStatusPending,
		Notes:    req.Notes,
	}
	for _, item := range req.Items {
		prescription.Items = append(prescription.Items, entity.PrescriptionItem{
			MedicineName: item.MedicineName,
			Quantity:     item.Quantity,
			Dosage:       item.Dosage,
			Frequency:    item.Frequency,
			Duration:     item.Duration,
			Instructions: item.Instructions,
		})
	}

	if err := u.prescriptionRepo.Create(db, prescription); err != nil {
		if isDuplicateKeyError(err, "visit_id") {
			return nil, ErrPrescriptionExists
		}
		u.log.Warnf("Failed to create prescription: %+v", err)
		return nil, err
	}

	return converter.PrescriptionToResponse(prescription), nil
}

func (u *prescriptionUsecase) GetByID(ctx context.Context, auth *entity.AuthContext, id uuid.UUID) (*dto.PrescriptionResponse, error) {
	prescription, err := u.prescriptionRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find prescription: %+v", err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}

	if !canSeePrescription(auth, prescription) {
		return nil, ErrPrescriptionAccessDenied
	}

	return converter.PrescriptionToResponse(prescription), nil
}

func (u *prescriptionUsecase) List(ctx context.Context, auth *entity.AuthContext, status string, page, limit int) ([]dto.PrescriptionResponse, int64, error) {
	filter := repository.PrescriptionFilter{
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
		s := entity.PrescriptionStatus(status)
		filter.Status = &s
	}

	prescriptions, total, err := u.prescriptionRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list prescriptions: %+v", err)
		return nil, 0, err
	}

	return converter.PrescriptionsToResponses(prescriptions), total, nil
}

// UpdateStatus is the pharmacy workflow: the processing staff member is
// recorded on first touch, and completed or canceled prescriptions stay put.
func (u *prescriptionUsecase) UpdateStatus(ctx context.Context, auth *entity.AuthContext, id uuid.UUID, req *dto.UpdatePrescriptionStatusRequest) (*dto.PrescriptionResponse, error) {
	db := u.db.WithContext(ctx)

	prescription, err := u.prescriptionRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find prescription: %+v", err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}

	if prescription.Status == entity.PrescriptionStatusCompleted || prescription.Status == entity.PrescriptionStatusCanceled {
		return nil, ErrPrescriptionFinal
	}

	prescription.Status = entity.PrescriptionStatus(req.Status)
	if auth.Role == entity.RoleStaff && prescription.PharmacyStaffID == nil {
		staffID := auth.ProfileID
		prescription.PharmacyStaffID = &staffID
	}

	if err := u.prescriptionRepo.Update(db, prescription); err != nil {
		u.log.Warnf("Failed to update prescription: %+v", err)
		return nil, err
	}

	return converter.PrescriptionToResponse(prescription), nil
}

func canSeePrescription(auth *entity.AuthContext, p *entity.Prescription) bool {
	switch auth.Role {
	case entity.RolePatient:
		return p.Visit != nil && p.Visit.PatientID == auth.ProfileID
	case entity.RoleDoctor:
		return p.DoctorID == auth.ProfileID
	}
	return true
}
