package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type localStorage struct {
	dir     string
	baseURL string
}

func NewLocalStorage(dir, baseURL string) (Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &localStorage{dir: dir, baseURL: baseURL}, nil
}

func (s *localStorage) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	dst := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return joinURL(s.baseURL, key), nil
}
