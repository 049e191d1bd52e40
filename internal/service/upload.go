package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/odovalley/odo-valley-api/internal/media"
	"github.com/odovalley/odo-valley-api/internal/repository/ports"
)

const defaultUploadMaxBytes = int64(10 * 1024 * 1024)

// Upload is a single image file received from a multipart form.
type Upload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

// Uploader validates an image upload, optionally shrinks it, and writes it to
// object storage under a generated unique name. Shared by every resource
// service that accepts a file under the "image" form field.
type Uploader struct {
	storage   ports.ObjectStorage
	processor media.Processor
	bucket    string
	maxBytes  int64
}

func NewUploader(storage ports.ObjectStorage, processor media.Processor, bucket string, maxBytes int64) *Uploader {
	if maxBytes <= 0 {
		maxBytes = defaultUploadMaxBytes
	}
	return &Uploader{
		storage:   storage,
		processor: processor,
		bucket:    strings.TrimSpace(bucket),
		maxBytes:  maxBytes,
	}
}

// Store persists the upload and returns the public path or URL to record on
// the resource. The size ceiling is re-checked here even though the transport
// layer already enforces a body limit.
func (u *Uploader) Store(ctx context.Context, upload *Upload) (string, error) {
	if upload == nil || upload.Reader == nil {
		return "", fmt.Errorf("%w: empty upload", ErrUploadUnsupported)
	}
	if upload.Size > u.maxBytes {
		return "", fmt.Errorf("%w: maximum %d bytes", ErrUploadTooLarge, u.maxBytes)
	}

	contentType := media.DetectContentType(upload.ContentType, upload.FileName)
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: got %s", ErrUploadUnsupported, contentType)
	}

	data, err := io.ReadAll(io.LimitReader(upload.Reader, u.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > u.maxBytes {
		return "", fmt.Errorf("%w: maximum %d bytes", ErrUploadTooLarge, u.maxBytes)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty upload", ErrUploadUnsupported)
	}

	if u.processor != nil {
		optimized, err := u.processor.Optimize(ctx, media.Image{
			Data:        data,
			FileName:    upload.FileName,
			ContentType: contentType,
		})
		if err != nil {
			return "", err
		}
		data = optimized.Data
		contentType = optimized.ContentType
	}

	name := uuid.New().String() + imageExtension(contentType, upload.FileName)
	return u.storage.Upload(ctx, u.bucket, name, contentType, bytes.NewReader(data), int64(len(data)))
}

func imageExtension(contentType, fileName string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	}
	if ext := strings.ToLower(strings.TrimSpace(filepath.Ext(fileName))); ext != "" {
		return ext
	}
	return ".bin"
}
