package api

import (
	"net/http"

	"github.com/meetscribe/scribe-engine/internal/ai"
)

// HealthHandler reports API and AI-service health. The AI check issues a
// minimal live probe on every invocation; when no credential is configured it
// reports not_configured without touching the network.
type HealthHandler struct {
	ai ai.Client
}

func NewHealthHandler(client ai.Client) *HealthHandler {
	return &HealthHandler{ai: client}
}

type healthResponse struct {
	API       string `json:"api"`
	AIService string `json:"ai_service"`
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{API: "healthy"}

	switch {
	case !h.ai.Configured():
		resp.AIService = "not_configured"
	case h.ai.Ping(r.Context()) != nil:
		resp.AIService = "unavailable"
	default:
		resp.AIService = "healthy"
	}

	WriteJSON(w, http.StatusOK, resp)
}
