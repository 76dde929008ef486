package media

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var ErrUnsupportedType = errors.New("unsupported file type")

// Kind distinguishes the original upload from audio derived out of it.
type Kind int

const (
	KindUpload Kind = iota
	KindAudio
)

// ScratchFile is a temporary on-disk artifact owned by a single request.
type ScratchFile struct {
	Path string
	Kind Kind
}

var (
	audioExtensions = map[string]bool{
		".mp3": true, ".wav": true, ".m4a": true, ".flac": true, ".ogg": true, ".aac": true,
	}
	videoExtensions = map[string]bool{
		".mp4": true, ".avi": true, ".mov": true, ".mkv": true, ".wmv": true, ".flv": true,
	}
)

// IsAudioFilename reports whether the filename has a supported audio extension.
func IsAudioFilename(name string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(name))]
}

// IsVideoFilename reports whether the filename has a supported video extension.
func IsVideoFilename(name string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(name))]
}

// Store persists uploaded blobs into a scratch directory.
type Store struct {
	uploadDir string
}

func NewStore(uploadDir string) (*Store, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{uploadDir: uploadDir}, nil
}

// Save validates the filename's extension, sanitizes the name, prefixes it
// with a random unique identifier, and writes the blob to the scratch dir.
// The file is fully written and closed before Save returns.
func (s *Store) Save(filename string, r io.Reader) (*ScratchFile, error) {
	if !IsAudioFilename(filename) && !IsVideoFilename(filename) {
		return nil, fmt.Errorf("%w: %s (accepted: mp3 wav m4a flac ogg aac mp4 avi mov mkv wmv flv)",
			ErrUnsupportedType, filepath.Ext(filename))
	}

	unique := strings.ReplaceAll(uuid.NewString(), "-", "")
	path := filepath.Join(s.uploadDir, unique+"_"+SanitizeFilename(filename))

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create scratch file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("write scratch file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("close scratch file: %w", err)
	}

	return &ScratchFile{Path: path, Kind: KindUpload}, nil
}

var (
	illegalPathChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespaceRuns   = regexp.MustCompile(`\s+`)
)

// SanitizeFilename replaces characters illegal in a path and collapses
// whitespace runs to a single separator.
func SanitizeFilename(name string) string {
	clean := illegalPathChars.ReplaceAllString(name, "_")
	return whitespaceRuns.ReplaceAllString(clean, "_")
}
