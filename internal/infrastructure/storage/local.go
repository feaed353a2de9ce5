// Package storage provides file storage implementations for uploaded
// images and payment proofs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	catalogapp "github.com/onlineshop/backend/internal/application/catalog"
	orderapp "github.com/onlineshop/backend/internal/application/order"
)

// Ensure LocalStorage satisfies the application-facing stores
var (
	_ catalogapp.ImageStore = (*LocalStorage)(nil)
	_ orderapp.ProofStore   = (*LocalStorage)(nil)
)

// LocalStorage stores files on the local filesystem under a base
// directory. Keys are sanitized to their base name so callers cannot
// escape the directory.
type LocalStorage struct {
	baseDir string
	logger  *zap.Logger
}

// NewLocalStorage creates a local file store rooted at baseDir,
// creating the directory if needed.
func NewLocalStorage(baseDir string, logger *zap.Logger) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, errors.New("storage base directory is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &LocalStorage{baseDir: baseDir, logger: logger.Named("storage.local")}, nil
}

func (s *LocalStorage) path(key string) string {
	return filepath.Join(s.baseDir, filepath.Base(key))
}

// Save writes the content under the given key and returns the stored
// file name.
func (s *LocalStorage) Save(ctx context.Context, key string, content io.Reader) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}

	name := filepath.Base(key)
	f, err := os.Create(filepath.Join(s.baseDir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Debug("stored file", zap.String("key", name))
	return name, nil
}

// Delete removes the file for the given key. Deleting a missing file is
// not an error.
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Exists reports whether a file is stored under the given key
func (s *LocalStorage) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.New("storage key is required")
	}
	if _, err := os.Stat(s.path(key)); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
