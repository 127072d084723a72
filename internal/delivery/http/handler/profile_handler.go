package handler

import (
	"encoding/json"
	"net/http"

	"his-backend/internal/delivery/dto"
	"his-backend/internal/delivery/http/middleware"
	"his-backend/internal/usecase"
	"his-backend/pkg/response"
	"his-backend/pkg/validator"
)

// profile photos above this size are rejected before touching storage
const maxPhotoSize = 5 << 20

type ProfileHandler struct {
	profileUsecase usecase.ProfileUsecase
	validator      *validator.CustomValidator
}

func NewProfileHandler(profileUsecase usecase.ProfileUsecase, validator *validator.CustomValidator) *ProfileHandler {
	return &ProfileHandler{
		profileUsecase: profileUsecase,
		validator:      validator,
	}
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	auth, ok := middleware.GetAuthContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.profileUsecase.UpdateProfile(r.Context(), auth, &req)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound, usecase.ErrProfileNotFound:
			response.NotFound(w, "Profile not found")
		default:
			response.InternalServerError(w, "Failed to update profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", user)
}

// UploadPhoto accepts a multipart form with a "photo" file field.
func (h *ProfileHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	auth, ok := middleware.GetAuthContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Photo file is required", nil)
		return
	}
	defer file.Close()

	if header.Size > maxPhotoSize {
		response.Error(w, http.StatusBadRequest, "Photo must be 5MB or smaller", nil)
		return
	}

	result, err := h.profileUsecase.UploadPhoto(r.Context(), auth, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		switch err {
		case usecase.ErrUnsupportedPhotoFormat:
			response.Error(w, http.StatusBadRequest, "Photo must be JPEG or PNG", nil)
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to upload photo")
		}
		return
	}

	response.Success(w, http.StatusOK, "Photo uploaded successfully", result)
}

// GenerateDeviceKey mints a new wearable API key for the calling patient.
func (h *ProfileHandler) GenerateDeviceKey(w http.ResponseWriter, r *http.Request) {
	auth, ok := middleware.GetAuthContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	key, err := h.profileUsecase.GenerateDeviceAPIKey(r.Context(), auth)
	if err != nil {
		switch err {
		case usecase.ErrProfileNotFound:
			response.NotFound(w, "Patient profile not found")
		default:
			response.InternalServerError(w, "Failed to generate device API key")
		}
		return
	}

	response.Success(w, http.StatusOK, "Device API key generated successfully", key)
}
