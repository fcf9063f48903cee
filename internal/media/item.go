package media

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Item is one playable entry of the media library.
type Item struct {
	ID     string
	Title  string
	Src    string // playable locator (file:// or remote URL)
	Path   string // local file path; empty for remote items
	Format string
	Size   int64
}

// Target returns what the player should open.
func (i Item) Target() string {
	if i.Path != "" {
		return i.Path
	}
	return i.Src
}

// DemoItems returns the built-in list shown until a directory is scanned.
func DemoItems(title, src string) []Item {
	return []Item{{
		ID:     uuid.NewString(),
		Title:  title,
		Src:    src,
		Format: formatLabel(title),
	}}
}

func formatLabel(name string) string {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return "UNK"
	}
	return strings.ToUpper(ext)
}
