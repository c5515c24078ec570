package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/sjwoo1999/stockweather-replit-sub000/internal/models"
	"github.com/sjwoo1999/stockweather-replit-sub000/internal/services/disclosures"
)

// DisclosureHandler serves the recent-disclosures endpoint.
type DisclosureHandler struct {
	service *disclosures.Service
	logger  arbor.ILogger
}

func NewDisclosureHandler(service *disclosures.Service, logger arbor.ILogger) *DisclosureHandler {
	return &DisclosureHandler{
		service: service,
		logger:  logger,
	}
}

// ListDisclosuresHandler returns the recent classified disclosures,
// optionally filtered by category or security code.
// GET /api/disclosures?category=<category>&code=<code>
func (h *DisclosureHandler) ListDisclosuresHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	recent, err := h.service.FetchRecent(r.Context())
	if err != nil {
		h.logger.Warn().Err(err).Msg("Disclosure fetch failed")
		WriteError(w, http.StatusBadGateway, "disclosure source unavailable")
		return
	}

	category := r.URL.Query().Get("category")
	code := r.URL.Query().Get("code")

	filtered := make([]models.Disclosure, 0, len(recent))
	for _, d := range recent {
		if category != "" && string(d.Category) != category {
			continue
		}
		if code != "" && d.SecurityCode != code {
			continue
		}
		filtered = append(filtered, d)
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":       len(filtered),
		"disclosures": filtered,
	})
}
