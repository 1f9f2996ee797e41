// Package upload spools uploaded audio to transient files that live for a
// single request.
package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const defaultPrefix = "transcribe-"

// sniffLen is how many leading bytes are kept for media type detection.
const sniffLen = 3072

var safeExt = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)

// Spooler writes uploads to uniquely named files under Dir.
type Spooler struct {
	Dir    string
	Prefix string
}

// NewSpooler returns a Spooler writing to dir, or to os.TempDir() when dir is empty.
func NewSpooler(dir string) *Spooler {
	if dir == "" {
		dir = os.TempDir()
	}
	return &Spooler{Dir: dir, Prefix: defaultPrefix}
}

// Artifact is the on-disk copy of one upload.
type Artifact struct {
	Path         string
	OriginalName string
	MediaType    string
	Size         int64
}

// Spool copies src into a fresh artifact. The original filename only
// contributes a sanitised extension. On error no file is left behind.
func (s *Spooler) Spool(src io.Reader, originalName, declaredType string) (*Artifact, error) {
	if err := os.MkdirAll(s.Dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create spool dir %s: %w", s.Dir, err)
	}

	path := filepath.Join(s.Dir, s.Prefix+uuid.NewString()+SafeExtension(originalName))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to create artifact: %w", err)
	}

	head := &headBuffer{limit: sniffLen}
	size, copyErr := io.Copy(f, io.TeeReader(src, head))
	closeErr := f.Close()
	if copyErr != nil || closeErr != nil {
		os.Remove(path)
		if copyErr != nil {
			return nil, fmt.Errorf("failed to write artifact: %w", copyErr)
		}
		return nil, fmt.Errorf("failed to close artifact: %w", closeErr)
	}

	return &Artifact{
		Path:         path,
		OriginalName: BaseName(originalName),
		MediaType:    MediaType(declaredType, head.buf),
		Size:         size,
	}, nil
}

// Open opens the artifact for reading.
func (a *Artifact) Open() (*os.File, error) {
	f, err := os.Open(a.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open artifact: %w", err)
	}
	return f, nil
}

// Remove deletes the artifact. Removing an already removed artifact is not an error.
func (a *Artifact) Remove() error {
	if err := os.Remove(a.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove artifact: %w", err)
	}
	return nil
}

// BaseName strips any directory part (either separator style) from a
// client supplied filename.
func BaseName(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if name == "." || name == ".." {
		return ""
	}
	return name
}

// SafeExtension returns the lower-cased extension of name when it is short
// and alphanumeric, and "" otherwise.
func SafeExtension(name string) string {
	ext := strings.ToLower(filepath.Ext(BaseName(name)))
	if !safeExt.MatchString(ext) {
		return ""
	}
	return ext
}

// MediaType prefers the declared type and falls back to sniffing head.
func MediaType(declared string, head []byte) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != "application/octet-stream" {
		if i := strings.IndexByte(declared, ';'); i >= 0 {
			declared = strings.TrimSpace(declared[:i])
		}
		return strings.ToLower(declared)
	}
	return mimetype.Detect(head).String()
}

type headBuffer struct {
	buf   []byte
	limit int
}

func (h *headBuffer) Write(p []byte) (int, error) {
	if room := h.limit - len(h.buf); room > 0 {
		if len(p) < room {
			room = len(p)
		}
		h.buf = append(h.buf, p[:room]...)
	}
	return len(p), nil
}
