package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// fakeExecutor scripts ffprobe/ffmpeg behavior per command name.
type fakeExecutor struct {
	probeOut string
	probeErr error
	runErr   error
	calls    []string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, name)
	if strings.Contains(name, "ffprobe") {
		return f.probeOut, f.probeErr
	}
	if f.runErr != nil {
		return "", f.runErr
	}
	// Emulate ffmpeg writing the output file (last argument).
	out := args[len(args)-1]
	if err := os.WriteFile(out, []byte("wav"), 0o644); err != nil {
		return "", err
	}
	return "", nil
}

func writeVideo(t *testing.T, dir string) *ScratchFile {
	t.Helper()
	path := filepath.Join(dir, "abc123_clip.mp4")
	if err := os.WriteFile(path, []byte("vid"), 0o644); err != nil {
		t.Fatal(err)
	}
	return &ScratchFile{Path: path, Kind: KindUpload}
}

func TestExtractAudio(t *testing.T) {
	log := zerolog.Nop()

	t.Run("success_produces_wav", func(t *testing.T) {
		dir := t.TempDir()
		exec := &fakeExecutor{probeOut: "audio\n"}
		ex, err := NewExtractor("ffmpeg", "ffprobe", dir, exec, log)
		if err != nil {
			t.Fatalf("NewExtractor: %v", err)
		}
		video := writeVideo(t, dir)

		audio, err := ex.ExtractAudio(context.Background(), video)
		if err != nil {
			t.Fatalf("ExtractAudio: %v", err)
		}
		if audio.Kind != KindAudio {
			t.Errorf("Kind = %v, want KindAudio", audio.Kind)
		}
		if !strings.HasSuffix(audio.Path, "_extracted_audio.wav") {
			t.Errorf("audio path %q", audio.Path)
		}
		if _, err := os.Stat(audio.Path); err != nil {
			t.Errorf("audio file missing: %v", err)
		}
		if len(exec.calls) != 2 {
			t.Errorf("calls = %v, want probe then ffmpeg", exec.calls)
		}
	})

	t.Run("no_audio_track_detected_before_extraction", func(t *testing.T) {
		dir := t.TempDir()
		exec := &fakeExecutor{probeOut: "  \n"}
		ex, _ := NewExtractor("ffmpeg", "ffprobe", dir, exec, log)
		video := writeVideo(t, dir)

		_, err := ex.ExtractAudio(context.Background(), video)
		if !errors.Is(err, ErrNoAudioTrack) {
			t.Fatalf("err = %v, want ErrNoAudioTrack", err)
		}
		if len(exec.calls) != 1 {
			t.Errorf("ffmpeg ran despite missing audio stream: %v", exec.calls)
		}
		if _, err := os.Stat(video.Path); !os.IsNotExist(err) {
			t.Error("original upload not removed on no-audio-track failure")
		}
	})

	t.Run("ffmpeg_failure_removes_original", func(t *testing.T) {
		dir := t.TempDir()
		exec := &fakeExecutor{probeOut: "audio\n", runErr: fmt.Errorf("codec exploded")}
		ex, _ := NewExtractor("ffmpeg", "ffprobe", dir, exec, log)
		video := writeVideo(t, dir)

		_, err := ex.ExtractAudio(context.Background(), video)
		if err == nil {
			t.Fatal("expected extraction error")
		}
		if _, err := os.Stat(video.Path); !os.IsNotExist(err) {
			t.Error("original upload not removed on extraction failure")
		}
	})

	t.Run("probe_failure_removes_original", func(t *testing.T) {
		dir := t.TempDir()
		exec := &fakeExecutor{probeErr: fmt.Errorf("ffprobe missing")}
		ex, _ := NewExtractor("ffmpeg", "ffprobe", dir, exec, log)
		video := writeVideo(t, dir)

		if _, err := ex.ExtractAudio(context.Background(), video); err == nil {
			t.Fatal("expected probe error")
		}
		if _, err := os.Stat(video.Path); !os.IsNotExist(err) {
			t.Error("original upload not removed on probe failure")
		}
	})
}
