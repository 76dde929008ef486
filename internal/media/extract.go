package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrNoAudioTrack = errors.New("video file has no audio track")

// Extractor demuxes a video container's audio track to a normalized WAV
// suitable for speech-to-text (16 kHz mono PCM).
type Extractor struct {
	ffmpeg    string
	ffprobe   string
	outputDir string
	run       Executor
	log       zerolog.Logger
}

func NewExtractor(ffmpegPath, ffprobePath, outputDir string, run Executor, log zerolog.Logger) (*Extractor, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Extractor{
		ffmpeg:    ffmpegPath,
		ffprobe:   ffprobePath,
		outputDir: outputDir,
		run:       run,
		log:       log.With().Str("component", "extractor").Logger(),
	}, nil
}

// ExtractAudio probes the container for an audio stream, then demuxes it to
// a new scratch WAV. On any failure the original upload is removed before the
// error propagates; the caller never has to clean up a failed input.
func (e *Extractor) ExtractAudio(ctx context.Context, video *ScratchFile) (*ScratchFile, error) {
	hasAudio, err := e.probeAudioStream(ctx, video.Path)
	if err != nil {
		os.Remove(video.Path)
		return nil, fmt.Errorf("probe audio stream: %w", err)
	}
	if !hasAudio {
		os.Remove(video.Path)
		return nil, ErrNoAudioTrack
	}

	unique := strings.ReplaceAll(uuid.NewString(), "-", "")
	audioPath := filepath.Join(e.outputDir, unique+"_extracted_audio.wav")

	e.log.Info().Str("video", video.Path).Str("audio", audioPath).Msg("extracting audio track")

	// -vn drops the video stream; 16 kHz mono PCM is what speech-to-text
	// models expect.
	args := []string{
		"-i", video.Path,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		audioPath,
	}
	if _, err := e.run.Execute(ctx, e.ffmpeg, args...); err != nil {
		os.Remove(audioPath)
		os.Remove(video.Path)
		return nil, fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	return &ScratchFile{Path: audioPath, Kind: KindAudio}, nil
}

// probeAudioStream asks ffprobe whether the container has any audio stream.
// Reported separately from extraction so a silent container surfaces as
// ErrNoAudioTrack rather than a generic decode error.
func (e *Extractor) probeAudioStream(ctx context.Context, path string) (bool, error) {
	out, err := e.run.Execute(ctx, e.ffprobe,
		"-v", "error",
		"-select_streams", "a",
		"-show_entries", "stream=codec_type",
		"-of", "csv=p=0",
		path,
	)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}
