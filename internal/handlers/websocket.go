package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ternarybob/arbor"

	"github.com/sjwoo1999/stockweather-replit-sub000/internal/common"
	"github.com/sjwoo1999/stockweather-replit-sub000/internal/services/catalog"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// WSMessage is the envelope for all realtime messages.
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// SearchRequest is the payload of a "search" or "suggest" message.
type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

// SearchResultPayload is the payload of a "searchResult" message.
type SearchResultPayload struct {
	Query   string      `json:"query"`
	Count   int         `json:"count"`
	Results interface{} `json:"results"`
}

// WebSocketHandler serves the realtime security search exchange. Each
// connection is independent; the only shared data is the read-only
// catalog behind the catalog service.
type WebSocketHandler struct {
	logger      arbor.ILogger
	catalog     *catalog.Service
	config      *common.WebSocketConfig
	clients     map[*websocket.Conn]bool
	clientMutex map[*websocket.Conn]*sync.Mutex
	mu          sync.RWMutex
}

func NewWebSocketHandler(catalogService *catalog.Service, config *common.WebSocketConfig, logger arbor.ILogger) *WebSocketHandler {
	return &WebSocketHandler{
		logger:      logger,
		catalog:     catalogService,
		config:      config,
		clients:     make(map[*websocket.Conn]bool),
		clientMutex: make(map[*websocket.Conn]*sync.Mutex),
	}
}

// HandleWebSocket handles WebSocket connections
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.clientMutex[conn] = &sync.Mutex{}
	clientCount := len(h.clients)
	h.mu.Unlock()

	h.logger.Debug().Msgf("WebSocket client connected (total: %d)", clientCount)

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		delete(h.clientMutex, conn)
		remaining := len(h.clients)
		h.mu.Unlock()

		conn.Close()
		h.logger.Debug().Msgf("WebSocket client disconnected (remaining: %d)", remaining)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn().Err(err).Msg("WebSocket error")
			}
			break
		}

		h.handleMessage(r.Context(), conn, data)
	}
}

// handleMessage dispatches one client message. Malformed input answers
// with an "error" message instead of dropping the connection.
func (h *WebSocketHandler) handleMessage(ctx context.Context, conn *websocket.Conn, data []byte) {
	var envelope struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		h.sendError(conn, "invalid message")
		return
	}

	switch envelope.Type {
	case "search":
		h.handleSearch(ctx, conn, envelope.Payload)
	case "suggest":
		h.handleSuggest(ctx, conn, envelope.Payload)
	case "ping":
		h.sendToClient(conn, WSMessage{Type: "pong", Payload: time.Now().Format(time.RFC3339)})
	default:
		h.sendError(conn, "unknown message type: "+envelope.Type)
	}
}

func (h *WebSocketHandler) handleSearch(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) {
	req, ok := h.decodeSearchRequest(conn, payload)
	if !ok {
		return
	}

	results, err := h.catalog.Search(ctx, req.Query, req.Limit)
	if err != nil {
		h.logger.Warn().Err(err).Str("query", req.Query).Msg("Realtime search failed")
		h.sendError(conn, "search failed")
		return
	}

	h.sendToClient(conn, WSMessage{
		Type: "searchResult",
		Payload: SearchResultPayload{
			Query:   req.Query,
			Count:   len(results),
			Results: results,
		},
	})
}

func (h *WebSocketHandler) handleSuggest(ctx context.Context, conn *websocket.Conn, payload json.RawMessage) {
	req, ok := h.decodeSearchRequest(conn, payload)
	if !ok {
		return
	}

	suggestions, err := h.catalog.Suggest(ctx, req.Query, req.Limit)
	if err != nil {
		h.logger.Warn().Err(err).Str("query", req.Query).Msg("Realtime suggest failed")
		h.sendError(conn, "suggest failed")
		return
	}

	h.sendToClient(conn, WSMessage{
		Type: "suggestResult",
		Payload: SearchResultPayload{
			Query:   req.Query,
			Count:   len(suggestions),
			Results: suggestions,
		},
	})
}

func (h *WebSocketHandler) decodeSearchRequest(conn *websocket.Conn, payload json.RawMessage) (SearchRequest, bool) {
	var req SearchRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		h.sendError(conn, "invalid search payload")
		return req, false
	}

	if req.Limit <= 0 {
		req.Limit = h.config.DefaultSearchLimit
	}
	if req.Limit > h.config.MaxSearchLimit {
		req.Limit = h.config.MaxSearchLimit
	}

	return req, true
}

func (h *WebSocketHandler) sendError(conn *websocket.Conn, message string) {
	h.sendToClient(conn, WSMessage{
		Type:    "error",
		Payload: map[string]string{"error": message},
	})
}

// sendToClient writes one message to one client under its write mutex.
func (h *WebSocketHandler) sendToClient(conn *websocket.Conn, msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error().Err(err).Str("type", msg.Type).Msg("Failed to marshal WebSocket message")
		return
	}

	h.mu.RLock()
	mutex, ok := h.clientMutex[conn]
	h.mu.RUnlock()
	if !ok {
		return
	}

	mutex.Lock()
	err = conn.WriteMessage(websocket.TextMessage, data)
	mutex.Unlock()

	if err != nil {
		h.logger.Warn().Err(err).Str("type", msg.Type).Msg("Failed to send message to client")
	}
}

// ClientCount returns the number of connected clients.
func (h *WebSocketHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
