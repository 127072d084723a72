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

type WearableHandler struct {
	wearableUsecase usecase.WearableUsecase
	validator       *validator.CustomValidator
}

func NewWearableHandler(wearableUsecase usecase.WearableUsecase, validator *validator.CustomValidator) *WearableHandler {
	return &WearableHandler{
		wearableUsecase: wearableUsecase,
		validator:       validator,
	}
}

func (h *WearableHandler) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	auth, ok := middleware.GetAuthContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req dto.RegisterDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	device, err := h.wearableUsecase.RegisterDevice(r.Context(), auth, &req)
	if err != nil {
		switch err {
		case usecase.ErrDeviceExists:
			response.Error(w, http.StatusConflict, "Device identifier already registered", nil)
		default:
			response.InternalServerError(w, "Failed to register device")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Device registered successfully", device)
}

func (h *WearableHandler) ListDevices(w http.ResponseWriter, r *http.Request) {
	auth, ok := middleware.GetAuthContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	page, limit := parsePagination(r)
	devices, total, err := h.wearableUsecase.ListDevices(r.Context(), auth, page, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list devices")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Devices retrieved successfully", devices, response.NewMeta(page, limit, total))
}

func (h *WearableHandler) UpdateDevice(w http.ResponseWriter, r *http.Request) {
	auth, ok := middleware.GetAuthContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid device ID", nil)
		return
	}

	var req dto.UpdateDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	device, err := h.wearableUsecase.UpdateDevice(r.Context(), auth, id, &req)
	if err != nil {
		h.writeDeviceError(w, err, "Failed to update device")
		return
	}

	response.Success(w, http.StatusOK, "Device updated successfully", device)
}

func (h *WearableHandler) DeleteDevice(w http.ResponseWriter, r *http.Request) {
	auth, ok := middleware.GetAuthContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid device ID", nil)
		return
	}

	if err := h.wearableUsecase.DeleteDevice(r.Context(), auth, id); err != nil {
		h.writeDeviceError(w, err, "Failed to delete device")
		return
	}

	response.Success(w, http.StatusOK, "Device deleted successfully", nil)
}

func (h *WearableHandler) ListMeasurements(w http.ResponseWriter, r *http.Request) {
	auth, ok := middleware.GetAuthContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid device ID", nil)
		return
	}

	page, limit := parsePagination(r)
	query := r.URL.Query()
	measurements, total, err := h.wearableUsecase.ListMeasurements(r.Context(), auth, id, query.Get("from"), query.Get("to"), page, limit)
	if err != nil {
		switch err {
		case usecase.ErrInvalidRecordedTime:
			response.Error(w, http.StatusBadRequest, "Invalid time range, use RFC 3339", nil)
		default:
			h.writeDeviceError(w, err, "Failed to list measurements")
		}
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Measurements retrieved successfully", measurements, response.NewMeta(page, limit, total))
}

// Ingest is the unauthenticated device push endpoint, keyed by X-Device-Key.
func (h *WearableHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	deviceKey := r.Header.Get("X-Device-Key")
	if deviceKey == "" {
		response.Unauthorized(w, "X-Device-Key header is required")
		return
	}

	var req dto.IngestMeasurementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	measurement, err := h.wearableUsecase.Ingest(r.Context(), deviceKey, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDeviceKey:
			response.Unauthorized(w, "Invalid device API key")
		case usecase.ErrDeviceNotFound:
			response.NotFound(w, "Device not found")
		case usecase.ErrDeviceInactive:
			response.Error(w, http.StatusConflict, "Device is deactivated", nil)
		case usecase.ErrInvalidRecordedTime:
			response.Error(w, http.StatusBadRequest, "Invalid recorded_at, use RFC 3339", nil)
		default:
			response.InternalServerError(w, "Failed to store measurement")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Measurement stored successfully", measurement)
}

func (h *WearableHandler) writeDeviceError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrDeviceNotFound:
		response.NotFound(w, "Device not found")
	case usecase.ErrDeviceAccessDenied:
		response.Forbidden(w, "Device does not belong to you")
	default:
		response.InternalServerError(w, fallback)
	}
}
