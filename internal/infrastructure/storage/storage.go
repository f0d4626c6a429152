package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"eventplanner/config"

	"github.com/google/uuid"
)

const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

// Storage persists uploaded files and returns their public URL.
type Storage interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

// New picks the driver named in cfg.
func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", DriverLocal:
		return NewLocalStorage(cfg.LocalDir, cfg.PublicBaseURL)
	case DriverS3:
		return NewS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// ObjectKey builds a unique key that keeps the original extension.
func ObjectKey(fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("%s/%s%s", time.Now().UTC().Format("2006/01/02"), uuid.New().String(), ext)
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
