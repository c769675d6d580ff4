package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"expobook/internal/dto/request"
	"expobook/internal/usecase"
	"expobook/pkg/utils"
)

type ExhibitionHandler struct {
	service usecase.ExhibitionService
	log     *zap.Logger
}

func NewExhibitionHandler(service usecase.ExhibitionService, log *zap.Logger) *ExhibitionHandler {
	return &ExhibitionHandler{
		service: service,
		log:     log.With(zap.String("handler", "exhibition")),
	}
}

// GetExhibitions handles GET /api/v1/exhibitions (public)
func (h *ExhibitionHandler) GetExhibitions(w http.ResponseWriter, r *http.Request) {
	exhibitions, err := h.service.GetExhibitions(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get exhibitions")
		return
	}

	utils.ResponseList(w, "success", len(exhibitions), exhibitions)
}

// GetExhibitionByID handles GET /api/v1/exhibitions/{id} (public)
func (h *ExhibitionHandler) GetExhibitionByID(w http.ResponseWriter, r *http.Request) {
	exhibitionID := chi.URLParam(r, "id")
	if exhibitionID == "" {
		utils.ResponseBadRequest(w, "Exhibition ID is required", nil)
		return
	}

	exhibition, err := h.service.GetExhibitionByID(r.Context(), exhibitionID)
	if err != nil {
		h.handleServiceError(w, err, "get exhibition by ID")
		return
	}

	utils.ResponseSuccess(w, "success", exhibition)
}

// CreateExhibition handles POST /api/v1/exhibitions (admin only)
func (h *ExhibitionHandler) CreateExhibition(w http.ResponseWriter, r *http.Request) {
	var req request.ExhibitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	exhibition, err := h.service.CreateExhibition(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create exhibition")
		return
	}

	utils.ResponseCreated(w, "success", exhibition)
}

// UpdateExhibition handles PUT /api/v1/exhibitions/{id} (admin only)
func (h *ExhibitionHandler) UpdateExhibition(w http.ResponseWriter, r *http.Request) {
	exhibitionID := chi.URLParam(r, "id")
	if exhibitionID == "" {
		utils.ResponseBadRequest(w, "Exhibition ID is required", nil)
		return
	}

	var req request.ExhibitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	exhibition, err := h.service.UpdateExhibition(r.Context(), exhibitionID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update exhibition")
		return
	}

	utils.ResponseSuccess(w, "success", exhibition)
}

// DeleteExhibition handles DELETE /api/v1/exhibitions/{id} (admin only)
func (h *ExhibitionHandler) DeleteExhibition(w http.ResponseWriter, r *http.Request) {
	exhibitionID := chi.URLParam(r, "id")
	if exhibitionID == "" {
		utils.ResponseBadRequest(w, "Exhibition ID is required", nil)
		return
	}

	if err := h.service.DeleteExhibition(r.Context(), exhibitionID); err != nil {
		h.handleServiceError(w, err, "delete exhibition")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

func (h *ExhibitionHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "invalid"):
		h.log.Warn(operation+" failed - bad input", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
