package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"github.com/sjwoo1999/stockweather-replit-sub000/internal/interfaces"
	"github.com/sjwoo1999/stockweather-replit-sub000/internal/services/alerts"
)

// AlertHandler serves alert CRUD.
type AlertHandler struct {
	service  *alerts.Service
	validate *validator.Validate
	logger   arbor.ILogger
}

func NewAlertHandler(service *alerts.Service, logger arbor.ILogger) *AlertHandler {
	return &AlertHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

// AlertRequest is the body of alert create/update calls.
type AlertRequest struct {
	UserID       string  `json:"user_id" validate:"required"`
	SecurityCode string  `json:"security_code" validate:"required"`
	Kind         string  `json:"kind" validate:"required,oneof=condition_change disclosure price"`
	Threshold    float64 `json:"threshold" validate:"gte=0"`
	Enabled      bool    `json:"enabled"`
}

// AlertsHandler handles the collection route.
// GET /api/alerts?user_id=<id> | POST /api/alerts
func (h *AlertHandler) AlertsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			WriteError(w, http.StatusBadRequest, "user_id is required")
			return
		}
		list, err := h.service.List(r.Context(), userID)
		if err != nil {
			h.logger.Warn().Err(err).Msg("Failed to list alerts")
			WriteError(w, http.StatusInternalServerError, "failed to list alerts")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"count":  len(list),
			"alerts": list,
		})

	case http.MethodPost:
		var req AlertRequest
		if !h.decodeAndValidate(w, r, &req) {
			return
		}
		created, err := h.service.Create(r.Context(), req.UserID, alerts.AlertInput{
			SecurityCode: req.SecurityCode,
			Kind:         req.Kind,
			Threshold:    req.Threshold,
			Enabled:      req.Enabled,
		})
		if err != nil {
			h.logger.Warn().Err(err).Msg("Failed to create alert")
			WriteError(w, http.StatusInternalServerError, "failed to create alert")
			return
		}
		WriteJSON(w, http.StatusCreated, created)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// AlertRoutesHandler handles GET/PUT/DELETE /api/alerts/{id}.
func (h *AlertHandler) AlertRoutesHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/alerts/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		a, err := h.service.Get(r.Context(), id)
		if err != nil {
			h.writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, a)

	case http.MethodPut:
		var req AlertRequest
		if !h.decodeAndValidate(w, r, &req) {
			return
		}
		updated, err := h.service.Update(r.Context(), id, alerts.AlertInput{
			SecurityCode: req.SecurityCode,
			Kind:         req.Kind,
			Threshold:    req.Threshold,
			Enabled:      req.Enabled,
		})
		if err != nil {
			h.writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		if err := h.service.Delete(r.Context(), id); err != nil {
			h.writeServiceError(w, err)
			return
		}
		WriteSuccess(w, "alert deleted")

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *AlertHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func (h *AlertHandler) writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, interfaces.ErrNotFound) {
		WriteError(w, http.StatusNotFound, "alert not found")
		return
	}
	h.logger.Warn().Err(err).Msg("Alert operation failed")
	WriteError(w, http.StatusInternalServerError, "operation failed")
}
