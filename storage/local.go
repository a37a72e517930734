package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalUploader writes exports into a directory on disk. It is used when R2 is not configured.
type LocalUploader struct {
	dir           string
	publicBaseURL string
}

func NewLocalUploader(dir, publicBaseURL string) (*LocalUploader, error) {
	if dir == "" {
		return nil, errors.New("local uploader: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("local uploader: failed to create %s: %w", dir, err)
	}
	return &LocalUploader{dir: dir, publicBaseURL: publicBaseURL}, nil
}

func (u *LocalUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error) {
	path, err := u.path(key)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory for %s: %w", key, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file for %s: %w", key, err)
	}
	if _, err := io.Copy(f, reader); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write file for %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file for %s: %w", key, err)
	}

	location := u.GetPublicURL(key)
	if location == "" {
		location = path
	}
	return &UploadResult{Key: key, Location: location}, nil
}

func (u *LocalUploader) Delete(ctx context.Context, key string) error {
	path, err := u.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (u *LocalUploader) GetPublicURL(key string) string {
	return joinPublicURL(u.publicBaseURL, key)
}

func (u *LocalUploader) path(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(u.dir, clean), nil
}
