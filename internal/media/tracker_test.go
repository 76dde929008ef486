package media

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func scratch(t *testing.T, dir, name string) *ScratchFile {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	return &ScratchFile{Path: path}
}

func TestTracker(t *testing.T) {
	log := zerolog.Nop()

	t.Run("removes_all_tracked_files", func(t *testing.T) {
		dir := t.TempDir()
		tr := NewTracker(log)
		tr.Add(scratch(t, dir, "upload.mp4"))
		tr.Add(scratch(t, dir, "audio.wav"))

		tr.CleanupAll()

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 0 {
			t.Errorf("%d scratch files left after cleanup", len(entries))
		}
	})

	t.Run("second_call_is_noop", func(t *testing.T) {
		dir := t.TempDir()
		tr := NewTracker(log)
		tr.sleep = func(time.Duration) {}
		tr.Add(scratch(t, dir, "upload.mp3"))

		tr.CleanupAll()
		tr.CleanupAll()
	})

	t.Run("missing_file_counts_as_removed", func(t *testing.T) {
		dir := t.TempDir()
		tr := NewTracker(log)
		slept := 0
		tr.sleep = func(time.Duration) { slept++ }

		sf := scratch(t, dir, "upload.mp3")
		os.Remove(sf.Path)
		tr.Add(sf)

		tr.CleanupAll()
		if slept != 0 {
			t.Errorf("retried %d times for an already-gone file", slept)
		}
	})

	t.Run("retries_then_gives_up_quietly", func(t *testing.T) {
		dir := t.TempDir()
		tr := NewTracker(log)
		slept := 0
		tr.sleep = func(time.Duration) { slept++ }

		// A non-empty directory makes os.Remove fail on every attempt.
		locked := filepath.Join(dir, "locked")
		if err := os.MkdirAll(filepath.Join(locked, "child"), 0o755); err != nil {
			t.Fatal(err)
		}
		tr.Add(&ScratchFile{Path: locked})

		tr.CleanupAll() // must not panic or return an error to the caller
		if slept != removeAttempts-1 {
			t.Errorf("slept %d times, want %d", slept, removeAttempts-1)
		}
	})

	t.Run("nil_file_ignored", func(t *testing.T) {
		tr := NewTracker(log)
		tr.Add(nil)
		tr.CleanupAll()
	})
}
