package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/meetscribe/scribe-engine/internal/summarize"
)

const (
	noteSuccess  = "Analysis completed successfully"
	noteDegraded = "AI service temporarily unavailable - basic analysis provided"
)

// AnalyzeHandler summarizes a plain transcript without any media processing.
type AnalyzeHandler struct {
	engine *summarize.Engine
	log    zerolog.Logger
}

func NewAnalyzeHandler(engine *summarize.Engine, log zerolog.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		engine: engine,
		log:    log.With().Str("handler", "analyze").Logger(),
	}
}

// Routes registers the analyze endpoint. Caller wraps with SessionAuth.
func (h *AnalyzeHandler) Routes(r chi.Router) {
	r.Post("/api/analyze-transcript", h.Analyze)
}

type analyzeRequest struct {
	Transcript string `json:"transcript"`
}

type analyzeResponse struct {
	Status   string             `json:"status"`
	Analysis summarize.Analysis `json:"analysis"`
	Note     string             `json:"note"`
}

// Analyze handles POST /api/analyze-transcript.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	transcript := strings.TrimSpace(req.Transcript)
	if transcript == "" {
		WriteError(w, http.StatusBadRequest, "transcript text is required")
		return
	}

	analysis, degraded, err := h.summarizeGuarded(r, transcript)
	if err != nil {
		// Last-resort degrade: serve the local analysis as a partial success
		// before ever surfacing a 500 for a summarization fault.
		h.log.Error().Err(err).Msg("summarization fault, serving fallback analysis")
		WriteJSON(w, http.StatusOK, analyzeResponse{
			Status:   "partial_success",
			Analysis: summarize.Fallback(transcript),
			Note:     "Service temporarily unavailable - basic analysis provided",
		})
		return
	}

	note := noteSuccess
	if degraded {
		note = noteDegraded
	}
	WriteJSON(w, http.StatusOK, analyzeResponse{
		Status:   "success",
		Analysis: analysis,
		Note:     note,
	})
}

// summarizeGuarded converts an engine panic into an error so the handler can
// still answer with a fallback analysis.
func (h *AnalyzeHandler) summarizeGuarded(r *http.Request, transcript string) (a summarize.Analysis, degraded bool, err error) {
	defer func() {
		if rv := recover(); rv != nil {
			err = fmt.Errorf("summarize panic: %v", rv)
		}
	}()
	a, degraded = h.engine.Summarize(r.Context(), transcript)
	return a, degraded, nil
}
