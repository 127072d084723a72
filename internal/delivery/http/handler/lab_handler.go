package handler

import (
	"encoding/json"
	"net/http"

	"his-backend/internal/delivery/dto"
	"his-backend/internal/delivery/http/middleware"
	"his-backend/internal/usecase"
	"his-backend/pkg/response"
	"his-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type LabHandler struct {
	labUsecase usecase.LabUsecase
	validator  *validator.CustomValidator
}

func NewLabHandler(labUsecase usecase.LabUsecase, validator *validator.CustomValidator) *LabHandler {
	return &LabHandler{
		labUsecase: labUsecase,
		validator:  validator,
	}
}

func (h *LabHandler) Create(w http.ResponseWriter, r *http.Request) {
	auth, ok := middleware.GetAuthContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req dto.CreateLabOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	order, err := h.labUsecase.Create(r.Context(), auth, &req)
	if err != nil {
		switch err {
		case usecase.ErrVisitNotFound:
			response.NotFound(w, "Visit not found")
		case usecase.ErrVisitAccessDenied:
			response.Forbidden(w, "Visit does not belong to you")
		default:
			response.InternalServerError(w, "Failed to create lab order")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Lab order created successfully", order)
}

func (h *LabHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	auth, ok := middleware.GetAuthContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid lab order ID", nil)
		return
	}

	order, err := h.labUsecase.GetByID(r.Context(), auth, id)
	if err != nil {
		switch err {
		case usecase.ErrLabOrderNotFound:
			response.NotFound(w, "Lab order not found")
		case usecase.ErrLabOrderAccessDenied:
			response.Forbidden(w, "Lab order does not belong to you")
		default:
			response.InternalServerError(w, "Failed to load lab order")
		}
		return
	}

	response.Success(w, http.StatusOK, "Lab order retrieved successfully", order)
}

func (h *LabHandler) List(w http.ResponseWriter, r *http.Request) {
	auth, ok := middleware.GetAuthContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	page, limit := parsePagination(r)
	orders, total, err := h.labUsecase.List(r.Context(), auth, r.URL.Query().Get("status"), page, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list lab orders")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Lab orders retrieved successfully", orders, response.NewMeta(page, limit, total))
}

func (h *LabHandler) Update(w http.ResponseWriter, r *http.Request) {
	auth, ok := middleware.GetAuthContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid lab order ID", nil)
		return
	}

	var req dto.UpdateLabOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	order, err := h.labUsecase.Update(r.Context(), auth, id, &req)
	if err != nil {
		switch err {
		case usecase.ErrLabOrderNotFound:
			response.NotFound(w, "Lab order not found")
		case usecase.ErrLabOrderFinal:
			response.Error(w, http.StatusConflict, "Lab order is already completed or canceled", nil)
		default:
			response.InternalServerError(w, "Failed to update lab order")
		}
		return
	}

	response.Success(w, http.StatusOK, "Lab order updated successfully", order)
}
