// Package imagestore persists analyzed food photos on local disk so a
// successful analysis can link back to the photo it was made from.
package imagestore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Store struct {
	basePath string
}

func New(basePath string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("create photo directory: %w", err)
	}
	return &Store{basePath: basePath}, nil
}

// Save writes data under a generated key and returns the key.
func (s *Store) Save(prefix string, data []byte) (string, error) {
	key := fmt.Sprintf("%s_%d.img", prefix, time.Now().UnixNano())
	path := filepath.Join(s.basePath, key)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write photo: %w", err)
	}
	return key, nil
}

// Open returns the stored photo bytes for key.
func (s *Store) Open(key string) ([]byte, error) {
	path, err := s.safeJoin(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("photo not found")
		}
		return nil, fmt.Errorf("read photo: %w", err)
	}
	return data, nil
}

// safeJoin resolves key relative to basePath and rejects directory traversal.
func (s *Store) safeJoin(key string) (string, error) {
	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}
	absPath, err := filepath.Abs(filepath.Join(s.basePath, key))
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}
	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal attempt")
	}
	return absPath, nil
}
