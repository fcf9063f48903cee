// Package prefs is the guide's flat string key/value store.
// Values live in ~/.config/guide/prefs.toml and are written through on every Set.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// Keys owned by the individual screens. Each key has exactly one writer.
const (
	KeyScreen       = "hhgttg_screen"
	KeyQuery        = "hhgttg_query"
	KeyCRTIntensity = "hhgttg_crt_intensity"
	KeyCRTSpeed     = "hhgttg_crt_speed"
	KeyMediaIndex   = "hhgttg_media_index"
)

// Store is the synchronous string-keyed capability handed to the UI.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

var (
	_ Store = (*File)(nil)
	_ Store = (*Memory)(nil)
)

// File is a Store persisted as a TOML table of strings.
type File struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// Open loads the store at path. Missing, unreadable or invalid files yield an
// empty store; the error is returned only for information and the store is
// always usable.
func Open(path string) (*File, error) {
	f := &File{path: path, values: make(map[string]string)}
	if strings.TrimSpace(path) == "" {
		return f, fmt.Errorf("prefs path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return f, nil
		}
		return f, fmt.Errorf("read prefs: %w", err)
	}

	var loaded map[string]string
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return f, fmt.Errorf("parse prefs: %w", err)
	}
	for k, v := range loaded {
		f.values[k] = v
	}
	return f, nil
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Get returns the stored value for key.
func (f *File) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return v, ok
}

// Set stores value and rewrites the file. The in-memory value is updated even
// when the write fails.
func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return f.saveLocked()
}

// Clear removes every key and deletes the backing file.
func (f *File) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = make(map[string]string)
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove prefs: %w", err)
	}
	return nil
}

// Keys returns the stored keys in sorted order.
func (f *File) Keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.values))
	for k := range f.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (f *File) saveLocked() error {
	if strings.TrimSpace(f.path) == "" {
		return fmt.Errorf("prefs path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(f.values)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename prefs: %w", err)
	}
	return nil
}

// Memory is a Store that never touches disk.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
	writes int
}

// NewMemory returns a Memory store seeded with initial values.
func NewMemory(initial map[string]string) *Memory {
	m := &Memory{values: make(map[string]string, len(initial))}
	for k, v := range initial {
		m.values[k] = v
	}
	return m
}

// Get returns the stored value for key.
func (m *Memory) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

// Set stores value.
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	m.writes++
	return nil
}

// Writes reports how many Set calls the store has seen.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
