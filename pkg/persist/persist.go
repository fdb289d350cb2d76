// Package persist stores each piece of application state as a JSON value
// under its own key.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Keys of the persisted state
const (
	KeyTasks     = "semanaSmartTasks"
	KeyCompleted = "completedTopics"
	KeyNotes     = "topicNotes"
	KeySyllabus  = "syllabusData"
	KeyTheme     = "appTheme"
	KeyWeekends  = "showWeekends"
	KeyQuickLink = "quickLink"
)

var Keys = []string{KeyTasks, KeyCompleted, KeyNotes, KeySyllabus, KeyTheme, KeyWeekends, KeyQuickLink}

var ErrInvalidKey = errors.New("invalid key")

type KV interface {
	// Get returns false when the key has never been set
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}

// Closer is implemented by backends holding resources
type Closer interface {
	Close() error
}

// Close closes kv if it needs closing
func Close(kv KV) error {
	if c, ok := kv.(Closer); ok {
		return c.Close()
	}
	return nil
}

// LoadJSON decodes the value of key into v.
// It returns false, leaving v untouched, when the key is missing.
func LoadJSON(kv KV, key string, v interface{}) (bool, error) {
	bs, ok, err := kv.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(bs, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func SaveJSON(kv KV, key string, v interface{}) error {
	bs, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return kv.Set(key, bs)
}

// LoadString reads a string saved either as JSON or as raw text
func LoadString(kv KV, key string) (string, bool, error) {
	bs, ok, err := kv.Get(key)
	if err != nil || !ok {
		return "", false, err
	}
	var s string
	if err := json.Unmarshal(bs, &s); err == nil {
		return s, true, nil
	}
	return strings.TrimSpace(string(bs)), true, nil
}

// SaveString stores s as raw text
func SaveString(kv KV, key, s string) error {
	return kv.Set(key, []byte(s))
}

// Dir keeps one JSON file per key
type Dir struct {
	dir string
}

func InDir(dir string) (*Dir, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &Dir{dir}, nil
}

func (d Dir) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\.`) {
		return "", ErrInvalidKey
	}
	return filepath.Join(d.dir, key+".json"), nil
}

func (d Dir) Get(key string) ([]byte, bool, error) {
	p, err := d.path(key)
	if err != nil {
		return nil, false, err
	}
	bs, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return bs, true, nil
}

// Set writes to a temporary file first so a crash never leaves half a value
func (d Dir) Set(key string, value []byte) error {
	p, err := d.path(key)
	if err != nil {
		return err
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, value, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

// Memory keeps values in a map, it is safe for concurrent use
type Memory struct {
	mu sync.Mutex
	m  map[string][]byte
}

func InMemory() *Memory {
	return &Memory{m: map[string][]byte{}}
}

func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	bs, ok := m.m[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(bs))
	copy(out, bs)
	return out, true, nil
}

func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	bs := make([]byte, len(value))
	copy(bs, value)
	m.m[key] = bs
	return nil
}
