// Package storage keeps uploaded space images either on local disk or in an
// S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"sharedesk/internal/cloud"
	"sharedesk/internal/config"
)

var ErrNotFound = errors.New("storage: object not found")

// ImageStore persists image blobs under opaque keys.
type ImageStore interface {
	Save(ctx context.Context, contentType string, data []byte) (string, error)
	Load(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// New builds the store selected by cfg.Storage.Driver.
func New(cfg config.Config) (ImageStore, error) {
	switch cfg.Storage.Driver {
	case "s3":
		sess, err := cloud.NewSession(cfg.AWS)
		if err != nil {
			return nil, err
		}
		return NewS3Store(sess, cfg.Storage.Bucket, cfg.Storage.Prefix), nil
	case "", "local":
		store, err := NewLocalStore(cfg.Storage.Dir)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("storage: unknown driver %q", cfg.Storage.Driver)
}

func objectName(contentType string) string {
	return uuid.New().String() + extensionFor(contentType)
}

func extensionFor(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	}
	return ""
}

type LocalStore struct {
	Dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create %s: %w", dir, err)
	}
	return &LocalStore{Dir: dir}, nil
}

func (s *LocalStore) Save(_ context.Context, contentType string, data []byte) (string, error) {
	key := objectName(contentType)
	if err := os.WriteFile(filepath.Join(s.Dir, key), data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write %s: %w", key, err)
	}
	return key, nil
}

func (s *LocalStore) Load(_ context.Context, key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

func (s *LocalStore) Delete(_ context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// path rejects keys that would escape the storage directory.
func (s *LocalStore) path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) {
		return "", fmt.Errorf("storage: invalid key %q", key)
	}
	return filepath.Join(s.Dir, key), nil
}
