package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/meetscribe/scribe-engine/internal/ai"
	"github.com/meetscribe/scribe-engine/internal/media"
	"github.com/meetscribe/scribe-engine/internal/metrics"
	"github.com/meetscribe/scribe-engine/internal/summarize"
)

// UploadHandler runs the full processing pipeline for an uploaded media file:
// persist, demux if video, transcribe, summarize, respond, clean up.
type UploadHandler struct {
	store     *media.Store
	extractor *media.Extractor
	ai        ai.Client
	engine    *summarize.Engine
	language  string
	maxBytes  int64
	log       zerolog.Logger
}

func NewUploadHandler(store *media.Store, extractor *media.Extractor, client ai.Client,
	engine *summarize.Engine, language string, maxBytes int64, log zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		store:     store,
		extractor: extractor,
		ai:        client,
		engine:    engine,
		language:  language,
		maxBytes:  maxBytes,
		log:       log.With().Str("handler", "upload").Logger(),
	}
}

// Routes registers the upload endpoint. Caller wraps with SessionAuth.
func (h *UploadHandler) Routes(r chi.Router) {
	r.Post("/api/upload", h.Upload)
}

type uploadResponse struct {
	Status     string             `json:"status"`
	Transcript string             `json:"transcript"`
	Analysis   summarize.Analysis `json:"analysis"`
	Filename   string             `json:"filename"`
	FileType   string             `json:"file_type"`
}

// Upload handles POST /api/upload.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		WriteErrorDetail(w, http.StatusBadRequest, "invalid multipart form", err.Error())
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	tracker := media.NewTracker(h.log)
	defer tracker.CleanupAll()

	upload, err := h.store.Save(header.Filename, file)
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedType) {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error().Err(err).Str("filename", header.Filename).Msg("saving upload failed")
		WriteErrorDetail(w, http.StatusInternalServerError, "saving uploaded file failed", err.Error())
		return
	}
	tracker.Add(upload)

	audioFile := upload
	fileType := "audio"
	if media.IsVideoFilename(header.Filename) {
		fileType = "video"
		extracted, err := h.extractor.ExtractAudio(r.Context(), upload)
		if err != nil {
			// The extractor already removed the original; tracker removal is
			// idempotent for missing files.
			if errors.Is(err, media.ErrNoAudioTrack) {
				WriteError(w, http.StatusBadRequest, err.Error())
				return
			}
			h.log.Error().Err(err).Str("filename", header.Filename).Msg("audio extraction failed")
			WriteErrorDetail(w, http.StatusInternalServerError, "extracting audio from video failed", err.Error())
			return
		}
		tracker.Add(extracted)
		audioFile = extracted
	}
	metrics.UploadsTotal.WithLabelValues(fileType).Inc()

	transcript, err := h.ai.Transcribe(r.Context(), audioFile.Path, h.language)
	if err != nil {
		metrics.TranscriptionsTotal.WithLabelValues("error").Inc()
		h.log.Error().Err(err).Str("filename", header.Filename).Msg("transcription failed")
		WriteErrorDetail(w, http.StatusInternalServerError, "transcribing audio failed", err.Error())
		return
	}
	metrics.TranscriptionsTotal.WithLabelValues("ok").Inc()

	analysis, _ := h.engine.Summarize(r.Context(), transcript)

	WriteJSON(w, http.StatusOK, uploadResponse{
		Status:     "success",
		Transcript: transcript,
		Analysis:   analysis,
		Filename:   header.Filename,
		FileType:   fileType,
	})
}
