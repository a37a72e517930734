package storage

import (
	"context"
	"io"
)

// UploadResult describes a stored export artefact.
type UploadResult struct {
	Key      string `json:"key"`
	Location string `json:"location"`
	ETag     string `json:"etag,omitempty"`
}

// FileUploader stores rendered exports (text summaries, heat-map images).
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}
