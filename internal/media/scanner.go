package media

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var defaultExtensions = []string{".mp4", ".mkv", ".webm"}

// Scanner enumerates the immediate video files of a directory.
type Scanner struct {
	extensions map[string]bool
}

// NewScanner builds a Scanner accepting the given extensions in addition to
// anything whose declared type is video/*.
func NewScanner(extensions []string) *Scanner {
	if len(extensions) == 0 {
		extensions = defaultExtensions
	}
	s := &Scanner{extensions: make(map[string]bool, len(extensions))}
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		s.extensions[ext] = true
	}
	return s
}

// Scan checks permission on the handle and lists its matching files.
// Subdirectories are not descended into. An empty result is not an error;
// callers decide whether it replaces their current list.
func (s *Scanner) Scan(ctx context.Context, h Handle) ([]Item, error) {
	if err := h.RequestPermission(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(h.Path)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var items []Item
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.Type().IsRegular() {
			continue
		}
		full := filepath.Join(h.Path, entry.Name())
		if !s.IsVideo(full) {
			continue
		}
		var size int64
		if info, err := entry.Info(); err == nil {
			size = info.Size()
		}
		items = append(items, Item{
			ID:     uuid.NewString(),
			Title:  entry.Name(),
			Src:    fileLocator(full),
			Path:   full,
			Format: formatLabel(entry.Name()),
			Size:   size,
		})
	}
	return items, nil
}

// IsVideo reports whether the file at path is a recognised video, by its
// declared type, its extension, or (for files without a known type) its
// sniffed content.
func (s *Scanner) IsVideo(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if s.extensions[ext] {
		return true
	}
	if declared := mime.TypeByExtension(ext); declared != "" {
		return strings.HasPrefix(declared, "video/")
	}
	return strings.HasPrefix(sniff(path), "video/")
}

func sniff(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()
	buf := make([]byte, 512)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		return ""
	}
	return http.DetectContentType(buf[:n])
}

func fileLocator(path string) string {
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}
