package prefs

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// fileName is the preferences document inside the config directory
	fileName = "preferences.yaml"
)

// errMalformed marks a preferences file that exists but is not a YAML mapping
var errMalformed = errors.New("malformed preferences file")

// KeyValue is a persistent string key-value collaborator
type KeyValue interface {
	// Get returns the stored value and whether the key was present
	Get(key string) (string, bool, error)
	// Set stores the value durably before returning
	Set(key, value string) error
}

// FileStore keeps preferences in a single YAML document
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store backed by the YAML file at path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns the preferences file path inside configDir
func DefaultPath(configDir string) string {
	return filepath.Join(configDir, fileName)
}

// Path returns the location of the preferences file
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read preferences file: %w", err)
	}

	values := map[string]string{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: %w", errMalformed, err)
	}
	if values == nil {
		values = map[string]string{}
	}
	return values, nil
}

// Get reads a key from the preferences file. A missing file holds no keys.
func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

// Set rewrites the preferences file with key updated. A malformed file is
// replaced by a fresh document.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	switch {
	case errors.Is(err, errMalformed):
		logrus.WithError(err).WithField("path", s.path).Warn("Replacing malformed preferences file")
		values = map[string]string{}
	case err != nil:
		return err
	}
	values[key] = value

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write preferences file: %w", err)
	}

	return nil
}

// MemoryStore is a KeyValue that lives only as long as the process
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore creates a store pre-populated with values
func NewMemoryStore(values map[string]string) *MemoryStore {
	s := &MemoryStore{values: map[string]string{}}
	for k, v := range values {
		s.values[k] = v
	}
	return s
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	return value, ok, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}
