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
	ErrLabOrderNotFound     = errors.New("lab order not found")
	ErrLabOrderAccessDenied = errors.New("lab order does not belong to you")
	ErrLabOrderFinal        = errors.New("lab order is already completed or canceled")
)

type LabUsecase interface {
	Create(ctx context.Context, auth *entity.AuthContext, req *dto.CreateLabOrderRequest) (*dto.LabOrderResponse, error)
	GetByID(ctx context.Context, auth *entity.AuthContext, id uuid.UUID) (*dto.LabOrderResponse, error)
	List(ctx context.Context, auth *entity.AuthContext, status string, page, limit int) ([]dto.LabOrderResponse, int64, error)
	Update(ctx context.Context, auth *entity.AuthContext, id uuid.UUID, req *dto.UpdateLabOrderRequest) (*dto.LabOrderResponse, error)
}

type labUsecase struct {
	db        *gorm.DB
	log       *logrus.Logger
	labRepo   repository.LabOrderRepository
	visitRepo repository.VisitRepository
}

func NewLabUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	labRepo repository.LabOrderRepository,
	visitRepo repository.VisitRepository,
) LabUsecase {
	return &labUsecase{
		db:        db,
		log:       log,
		labRepo:   labRepo,
		visitRepo: visitRepo,
	}
}

// Create places a lab order against one of the calling doctor's own visits.
func (u *labUsecase) Create(ctx context.Context, auth *entity.AuthContext, req *dto.CreateLabOrderRequest) (*dto.LabOrderResponse, error) {
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

	order := &entity.LabOrder{
		VisitID:  visit.ID,
		DoctorID: auth.ProfileID,
		TestName: req.TestName,
		Status:   entity.LabOrderStatusPending,
		Notes:    req.Notes,
	}

	if err := u.labRepo.Create(db, order); err != nil {
		u.log.Warnf("Failed to create lab order: %+v", err)
		return nil, err
	}

	return converter.LabOrderToResponse(order), nil
}

func (u *labUsecase) GetByID(ctx context.Context, auth *entity.AuthContext, id uuid.UUID) (*dto.LabOrderResponse, error) {
	order, err := u.labRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find lab order: %+v", err)
		return nil, err
	}
	if order == nil {
		return nil, ErrLabOrderNotFound
	}

	if !canSeeLabOrder(auth, order) {
		return nil, ErrLabOrderAccessDenied
	}

	return converter.LabOrderToResponse(order), nil
}

func (u *labUsecase) List(ctx context.Context, auth *entity.AuthContext, status string, page, limit int) ([]dto.LabOrderResponse, int64, error) {
	filter := repository.LabOrderFilter{
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
		s := entity.LabOrderStatus(status)
		filter.Status = &s
	}

	orders, total, err := u.labRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list lab orders: %+v", err)
		return nil, 0, err
	}

	return converter.LabOrdersToResponses(orders), total, nil
}

// Update is the laboratory workflow. The processing staff member is recorded
// on first touch; result fields land together with completion.
func (u *labUsecase) Update(ctx context.Context, auth *entity.AuthContext, id uuid.UUID, req *dto.UpdateLabOrderRequest) (*dto.LabOrderResponse, error) {
	db := u.db.WithContext(ctx)

	order, err := u.labRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find lab order: %+v", err)
		return nil, err
	}
	if order == nil {
		return nil, ErrLabOrderNotFound
	}

	if order.Status == entity.LabOrderStatusCompleted || order.Status == entity.LabOrderStatusCanceled {
		return nil, ErrLabOrderFinal
	}

	order.Status = entity.LabOrderStatus(req.Status)
	if auth.Role == entity.RoleStaff && order.LabStaffID == nil {
		staffID := auth.ProfileID
		order.LabStaffID = &staffID
	}
	if req.ResultValue != "" {
		order.ResultValue = req.ResultValue
	}
	if req.ResultUnit != "" {
		order.ResultUnit = req.ResultUnit
	}
	if req.Interpretation != "" {
		order.Interpretation = req.Interpretation
	}

	if err := u.labRepo.Update(db, order); err != nil {
		u.log.Warnf("Failed to update lab order: %+v", err)
		return nil, err
	}

	return converter.LabOrderToResponse(order), nil
}

func canSeeLabOrder(auth *entity.AuthContext, order *entity.LabOrder) bool {
	switch auth.Role {
	case entity.RolePatient:
		return order.Visit != nil && order.Visit.PatientID == auth.ProfileID
	case entity.RoleDoctor:
		return order.DoctorID == auth.ProfileID
	}
	return true
}
