package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"github.com/sjwoo1999/stockweather-replit-sub000/internal/interfaces"
	"github.com/sjwoo1999/stockweather-replit-sub000/internal/services/portfolio"
)

// PortfolioHandler serves portfolio and holding CRUD.
type PortfolioHandler struct {
	service  *portfolio.Service
	validate *validator.Validate
	logger   arbor.ILogger
}

func NewPortfolioHandler(service *portfolio.Service, logger arbor.ILogger) *PortfolioHandler {
	return &PortfolioHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

// CreatePortfolioRequest is the body of POST /api/portfolios.
// All request DTOs are validated using go-playground/validator tags.
type CreatePortfolioRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Name   string `json:"name" validate:"required,max=100"`
}

// UpdatePortfolioRequest is the body of PUT /api/portfolios/{id}.
type UpdatePortfolioRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// HoldingRequest is the body of holding create/update calls.
// ConfidenceLevel is the user's own annotation, not the derived weather
// confidence.
type HoldingRequest struct {
	SecurityCode    string   `json:"security_code" validate:"required"`
	Shares          float64  `json:"shares" validate:"gt=0"`
	AverageCost     float64  `json:"average_cost" validate:"gte=0"`
	LivePrice       *float64 `json:"live_price,omitempty" validate:"omitempty,gte=0"`
	ConfidenceLevel int      `json:"confidence_level" validate:"min=1,max=100"`
}

// PortfoliosHandler handles the collection route.
// GET /api/portfolios?user_id=<id> | POST /api/portfolios
func (h *PortfolioHandler) PortfoliosHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			WriteError(w, http.StatusBadRequest, "user_id is required")
			return
		}
		portfolios, err := h.service.ListPortfolios(r.Context(), userID)
		if err != nil {
			h.logger.Warn().Err(err).Msg("Failed to list portfolios")
			WriteError(w, http.StatusInternalServerError, "failed to list portfolios")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"count":      len(portfolios),
			"portfolios": portfolios,
		})

	case http.MethodPost:
		var req CreatePortfolioRequest
		if !h.decodeAndValidate(w, r, &req) {
			return
		}
		created, err := h.service.CreatePortfolio(r.Context(), req.UserID, req.Name)
		if err != nil {
			h.logger.Warn().Err(err).Msg("Failed to create portfolio")
			WriteError(w, http.StatusInternalServerError, "failed to create portfolio")
			return
		}
		WriteJSON(w, http.StatusCreated, created)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// PortfolioRoutesHandler handles the item and sub-collection routes:
// GET/PUT/DELETE /api/portfolios/{id}
// GET/POST       /api/portfolios/{id}/holdings
func (h *PortfolioHandler) PortfolioRoutesHandler(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/portfolios/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")

	switch {
	case len(parts) == 1 && parts[0] != "":
		h.portfolioByID(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "holdings":
		h.holdingsCollection(w, r, parts[0])
	default:
		WriteError(w, http.StatusNotFound, "not found")
	}
}

func (h *PortfolioHandler) portfolioByID(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		p, err := h.service.GetPortfolio(r.Context(), id)
		if err != nil {
			h.writeServiceError(w, err, "portfolio")
			return
		}
		WriteJSON(w, http.StatusOK, p)

	case http.MethodPut:
		var req UpdatePortfolioRequest
		if !h.decodeAndValidate(w, r, &req) {
			return
		}
		p, err := h.service.RenamePortfolio(r.Context(), id, req.Name)
		if err != nil {
			h.writeServiceError(w, err, "portfolio")
			return
		}
		WriteJSON(w, http.StatusOK, p)

	case http.MethodDelete:
		if err := h.service.DeletePortfolio(r.Context(), id); err != nil {
			h.writeServiceError(w, err, "portfolio")
			return
		}
		WriteSuccess(w, "portfolio deleted")

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *PortfolioHandler) holdingsCollection(w http.ResponseWriter, r *http.Request, portfolioID string) {
	switch r.Method {
	case http.MethodGet:
		holdings, err := h.service.ListHoldings(r.Context(), portfolioID)
		if err != nil {
			h.writeServiceError(w, err, "holdings")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"count":    len(holdings),
			"holdings": holdings,
		})

	case http.MethodPost:
		var req HoldingRequest
		if !h.decodeAndValidate(w, r, &req) {
			return
		}
		created, err := h.service.AddHolding(r.Context(), portfolioID, portfolio.HoldingInput{
			SecurityCode:    req.SecurityCode,
			Shares:          req.Shares,
			AverageCost:     req.AverageCost,
			LivePrice:       req.LivePrice,
			ConfidenceLevel: req.ConfidenceLevel,
		})
		if err != nil {
			h.writeServiceError(w, err, "holding")
			return
		}
		WriteJSON(w, http.StatusCreated, created)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HoldingRoutesHandler handles GET/PUT/DELETE /api/holdings/{id}.
func (h *PortfolioHandler) HoldingRoutesHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/holdings/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		holding, err := h.service.GetHolding(r.Context(), id)
		if err != nil {
			h.writeServiceError(w, err, "holding")
			return
		}
		WriteJSON(w, http.StatusOK, holding)

	case http.MethodPut:
		var req HoldingRequest
		if !h.decodeAndValidate(w, r, &req) {
			return
		}
		updated, err := h.service.UpdateHolding(r.Context(), id, portfolio.HoldingInput{
			SecurityCode:    req.SecurityCode,
			Shares:          req.Shares,
			AverageCost:     req.AverageCost,
			LivePrice:       req.LivePrice,
			ConfidenceLevel: req.ConfidenceLevel,
		})
		if err != nil {
			h.writeServiceError(w, err, "holding")
			return
		}
		WriteJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		if err := h.service.DeleteHolding(r.Context(), id); err != nil {
			h.writeServiceError(w, err, "holding")
			return
		}
		WriteSuccess(w, "holding deleted")

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *PortfolioHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
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

func (h *PortfolioHandler) writeServiceError(w http.ResponseWriter, err error, entity string) {
	if errors.Is(err, interfaces.ErrNotFound) {
		WriteError(w, http.StatusNotFound, entity+" not found")
		return
	}
	h.logger.Warn().Err(err).Str("entity", entity).Msg("Portfolio operation failed")
	WriteError(w, http.StatusInternalServerError, "operation failed")
}
