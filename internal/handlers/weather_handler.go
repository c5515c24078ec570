package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/sjwoo1999/stockweather-replit-sub000/internal/services/weather"
)

// WeatherHandler serves the market analysis endpoint.
type WeatherHandler struct {
	service *weather.Service
	logger  arbor.ILogger
}

func NewWeatherHandler(service *weather.Service, logger arbor.ILogger) *WeatherHandler {
	return &WeatherHandler{
		service: service,
		logger:  logger,
	}
}

// GetWeatherHandler returns the full market analysis:
// market weather, every security's weather, sector weather, and insights.
// GET /api/weather
func (h *WeatherHandler) GetWeatherHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	// Never fails; upstream outages degrade to the fallback record.
	analysis := h.service.GenerateMarketAnalysis(r.Context())

	WriteJSON(w, http.StatusOK, analysis)
}
