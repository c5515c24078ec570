package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/sjwoo1999/stockweather-replit-sub000/internal/common"
	"github.com/sjwoo1999/stockweather-replit-sub000/internal/interfaces"
	"github.com/sjwoo1999/stockweather-replit-sub000/internal/services/catalog"
)

// SearchHandler serves the security catalog endpoints.
type SearchHandler struct {
	catalog *catalog.Service
	config  *common.WebSocketConfig
	logger  arbor.ILogger
}

func NewSearchHandler(catalogService *catalog.Service, config *common.WebSocketConfig, logger arbor.ILogger) *SearchHandler {
	return &SearchHandler{
		catalog: catalogService,
		config:  config,
		logger:  logger,
	}
}

// SearchSecuritiesHandler searches the catalog by substring on code,
// name, sector, or market.
// GET /api/securities/search?q=<query>&limit=<n>
func (h *SearchHandler) SearchSecuritiesHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	query := r.URL.Query().Get("q")
	limit := h.clampLimit(QueryInt(r, "limit", h.config.DefaultSearchLimit))

	results, err := h.catalog.Search(r.Context(), query, limit)
	if err != nil {
		h.logger.Warn().Err(err).Str("query", query).Msg("Security search failed")
		WriteError(w, http.StatusInternalServerError, "search failed")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"query":   query,
		"count":   len(results),
		"results": results,
	})
}

// SuggestSecuritiesHandler returns lightweight typeahead suggestions.
// GET /api/securities/suggest?q=<query>&limit=<n>
func (h *SearchHandler) SuggestSecuritiesHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	query := r.URL.Query().Get("q")
	limit := h.clampLimit(QueryInt(r, "limit", 10))

	suggestions, err := h.catalog.Suggest(r.Context(), query, limit)
	if err != nil {
		h.logger.Warn().Err(err).Str("query", query).Msg("Security suggest failed")
		WriteError(w, http.StatusInternalServerError, "suggest failed")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"query":       query,
		"suggestions": suggestions,
	})
}

// TopSecuritiesHandler returns the n largest active securities.
// GET /api/securities/top?n=<n>
func (h *SearchHandler) TopSecuritiesHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	n := h.clampLimit(QueryInt(r, "n", h.config.DefaultSearchLimit))

	results, err := h.catalog.TopByMarketCap(r.Context(), n)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Top securities lookup failed")
		WriteError(w, http.StatusInternalServerError, "lookup failed")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(results),
		"results": results,
	})
}

// GetSecurityHandler returns one catalog record by code.
// GET /api/securities/{code}
func (h *SearchHandler) GetSecurityHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	code := strings.TrimPrefix(r.URL.Path, "/api/securities/")
	if code == "" || strings.Contains(code, "/") {
		WriteError(w, http.StatusBadRequest, "invalid security code")
		return
	}

	sec, err := h.catalog.Get(r.Context(), code)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "security not found")
			return
		}
		h.logger.Warn().Err(err).Str("code", code).Msg("Security lookup failed")
		WriteError(w, http.StatusInternalServerError, "lookup failed")
		return
	}

	WriteJSON(w, http.StatusOK, sec)
}

func (h *SearchHandler) clampLimit(limit int) int {
	if limit <= 0 {
		return h.config.DefaultSearchLimit
	}
	if limit > h.config.MaxSearchLimit {
		return h.config.MaxSearchLimit
	}
	return limit
}
