package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by Get when the key has never been set.
var ErrNotFound = errors.New("store: key not found")

// Well-known keys.
const (
	KeyPoints             = "points"
	KeyDisplaySettings    = "displaySettings"
	KeyCalibrationContext = "calibrationContext"
)

// Store is a durable key-value store of raw JSON blobs.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// File keeps every key in one JSON object on disk. Writes go to a
// temporary file that is renamed over the original.
type File struct {
	path string
}

// Open returns a File store at path. The file is created on first Set.
func Open(path string) *File {
	return &File{path: path}
}

func (f *File) Path() string {
	return f.path
}

func (f *File) Get(key string) ([]byte, error) {
	all, err := f.readAll()
	if err != nil {
		return nil, err
	}
	v, ok := all[key]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

func (f *File) Set(key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("store: set %s: value is not valid JSON", key)
	}
	all, err := f.readAll()
	if err != nil {
		return err
	}
	all[key] = json.RawMessage(value)

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", f.path, err)
	}
	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("store: create %s: %w", dir, err)
		}
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("store: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("store: rename %s: %w", tmp, err)
	}
	return nil
}

func (f *File) readAll() (map[string]json.RawMessage, error) {
	all := make(map[string]json.RawMessage)
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return all, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", f.path, err)
	}
	if len(data) == 0 {
		return all, nil
	}
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("store: parse %s: %w", f.path, err)
	}
	return all, nil
}

// Memory is an in-process Store.
type Memory map[string][]byte

func NewMemory() Memory {
	return make(Memory)
}

func (m Memory) Get(key string) ([]byte, error) {
	v, ok := m[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m Memory) Set(key string, value []byte) error {
	m[key] = append([]byte(nil), value...)
	return nil
}

// GetJSON decodes the value at key into v.
func GetJSON(s Store, key string, v any) error {
	data, err := s.Get(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("store: decode %s: %w", key, err)
	}
	return nil
}

// SetJSON encodes v and stores it at key.
func SetJSON(s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	return s.Set(key, data)
}
