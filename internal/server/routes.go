package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// WebSocket route (realtime search)
	mux.HandleFunc("/ws", s.app.WSHandler.HandleWebSocket)

	// API routes - Market weather
	mux.HandleFunc("/api/weather", s.app.WeatherHandler.GetWeatherHandler)

	// API routes - Security catalog
	mux.HandleFunc("/api/securities/search", s.app.SearchHandler.SearchSecuritiesHandler)
	mux.HandleFunc("/api/securities/suggest", s.app.SearchHandler.SuggestSecuritiesHandler)
	mux.HandleFunc("/api/securities/top", s.app.SearchHandler.TopSecuritiesHandler)
	mux.HandleFunc("/api/securities/", s.app.SearchHandler.GetSecurityHandler) // GET /{code}

	// API routes - Disclosures
	mux.HandleFunc("/api/disclosures", s.app.DisclosureHandler.ListDisclosuresHandler)

	// API routes - Portfolios and holdings
	mux.HandleFunc("/api/portfolios", s.app.PortfolioHandler.PortfoliosHandler)    // GET (list), POST (create)
	mux.HandleFunc("/api/portfolios/", s.app.PortfolioHandler.PortfolioRoutesHandler) // /{id}, /{id}/holdings
	mux.HandleFunc("/api/holdings/", s.app.PortfolioHandler.HoldingRoutesHandler)  // GET/PUT/DELETE /{id}

	// API routes - Alerts
	mux.HandleFunc("/api/alerts", s.app.AlertHandler.AlertsHandler)      // GET (list), POST (create)
	mux.HandleFunc("/api/alerts/", s.app.AlertHandler.AlertRoutesHandler) // GET/PUT/DELETE /{id}

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.apiFallbackHandler)

	return mux
}

// apiFallbackHandler serves JSON 404s for unknown API paths.
func (s *Server) apiFallbackHandler(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		s.app.APIHandler.NotFoundHandler(w, r)
		return
	}
	http.NotFound(w, r)
}
