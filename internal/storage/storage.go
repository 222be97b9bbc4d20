// Package storage abstracts the object storage bucket behind the media
// library: production uploads go to Cloudinary, tests and local development
// use the in-memory driver.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jutehus/jutehus/config"
)

// ObjectStore is the minimal bucket surface the application relies on.
type ObjectStore interface {
	// Upload stores the object under name and returns its public URL.
	Upload(ctx context.Context, name string, r io.Reader) (string, error)
	// Remove deletes the object stored under name.
	Remove(ctx context.Context, name string) error
}

// NewObjectStore builds the configured driver.
func NewObjectStore(cfg config.StorageConfig) (ObjectStore, error) {
	switch cfg.Type {
	case "cloudinary":
		return NewCloudinaryStore(cfg.URL, cfg.Folder)
	case "memory", "":
		return NewMemoryStore(cfg.Folder), nil
	default:
		return nil, errors.Errorf("storage: unknown driver %q", cfg.Type)
	}
}

// UploadName builds a collision-resistant object name for an uploaded file,
// keeping the original extension: <unix>_<random>.<ext>.
func UploadName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	rand := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("%d_%s%s", time.Now().Unix(), rand, ext)
}
