package handler

import (
	"encoding/json"
	"net/http"

	"his-backend/internal/delivery/dto"
	"his-backend/internal/usecase"
	"his-backend/pkg/response"
	"his-backend/pkg/validator"
)

// UserHandler serves the admin-only account provisioning endpoints.
type UserHandler struct {
	userCreation usecase.UserCreationUsecase
	validator    *validator.CustomValidator
}

func NewUserHandler(userCreation usecase.UserCreationUsecase, validator *validator.CustomValidator) *UserHandler {
	return &UserHandler{
		userCreation: userCreation,
		validator:    validator,
	}
}

func (h *UserHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDoctorUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.userCreation.CreateDoctor(r.Context(), &req)
	if err != nil {
		h.writeCreationError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Doctor account created successfully", user)
}

func (h *UserHandler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateStaffUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.userCreation.CreateStaff(r.Context(), &req)
	if err != nil {
		h.writeCreationError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Staff account created successfully", user)
}

func (h *UserHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePatientUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.userCreation.CreatePatient(r.Context(), &req)
	if err != nil {
		h.writeCreationError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Patient account created successfully", user)
}

func (h *UserHandler) writeCreationError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrUsernameAlreadyExists:
		response.Error(w, http.StatusConflict, "Username already exists", nil)
	case usecase.ErrEmailAlreadyExists:
		response.Error(w, http.StatusConflict, "Email already exists", nil)
	case usecase.ErrNIKAlreadyExists:
		response.Error(w, http.StatusConflict, "NIK already exists", nil)
	case usecase.ErrInvalidDateFormat:
		response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
	default:
		response.InternalServerError(w, "Failed to create account")
	}
}
