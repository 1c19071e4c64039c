package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/DachengChen/askdb/applog"
	"github.com/DachengChen/askdb/client"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handler is the HTTP layer in front of the agent.
type Handler struct {
	answerer Answerer
	provider string
}

// NewHandler creates a handler. provider is reported by /health.
func NewHandler(a Answerer, provider string) *Handler {
	return &Handler{answerer: a, provider: provider}
}

// RegisterRoutes attaches the agent endpoints to the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Get("/health", h.handleHealth)
}

type healthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider,omitempty"`
}

// handleChat answers one question. The reply shape is the one the
// client decodes: {"response": payload}.
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req client.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid request payload")
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		writeError(w, http.StatusUnprocessableEntity, "question is required")
		return
	}

	reqID := middleware.GetReqID(r.Context())
	session := r.Header.Get(client.SessionHeader)
	applog.Event("chat", "request=%s session=%s question=%q", reqID, session, question)

	payload, err := h.answerer.Answer(r.Context(), question)
	if err != nil {
		applog.Error("request=%s answer failed: %v", reqID, err)
		writeError(w, http.StatusInternalServerError, "Could not answer question: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, client.ChatResponse{Response: payload})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Provider: h.provider})
}

// writeJSON is a helper function for sending json responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data) //nolint:errcheck
	}
}

// writeError is a helper for sending a standardized json error.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
