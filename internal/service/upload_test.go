package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/odovalley/odo-valley-api/internal/media"
)

func TestUploader_Store_RejectsOversizedFile(t *testing.T) {
	ctx := context.Background()
	storage := &captureStorage{}
	uploader := NewUploader(storage, nil, "odo-images", 16)

	_, err := uploader.Store(ctx, testUpload(strings.Repeat("x", 17), "big.jpg", "image/jpeg"))
	if !errors.Is(err, ErrUploadTooLarge) {
		t.Fatalf("expected ErrUploadTooLarge, got %v", err)
	}
	if storage.uploads != 0 {
		t.Fatalf("oversized file must not reach storage")
	}

	// The declared size is checked, then the actual bytes are re-checked.
	lying := &Upload{
		Reader:      bytes.NewReader([]byte(strings.Repeat("x", 17))),
		Size:        10,
		FileName:    "big.jpg",
		ContentType: "image/jpeg",
	}
	if _, err := uploader.Store(ctx, lying); !errors.Is(err, ErrUploadTooLarge) {
		t.Fatalf("expected ErrUploadTooLarge for understated size, got %v", err)
	}
}

func TestUploader_Store_RejectsNonImage(t *testing.T) {
	ctx := context.Background()
	storage := &captureStorage{}
	uploader := newTestUploader(storage)

	_, err := uploader.Store(ctx, testUpload("%PDF-1.4", "doc.pdf", "application/pdf"))
	if !errors.Is(err, ErrUploadUnsupported) {
		t.Fatalf("expected ErrUploadUnsupported, got %v", err)
	}
	if storage.uploads != 0 {
		t.Fatalf("non-image must not reach storage")
	}
}

func TestUploader_Store_NamesByContentType(t *testing.T) {
	ctx := context.Background()
	storage := &captureStorage{}
	uploader := newTestUploader(storage)

	path, err := uploader.Store(ctx, testUpload("png-bytes", "photo", "image/png"))
	if err != nil {
		t.Fatalf("Store returned error: %v", err)
	}
	if !strings.HasSuffix(path, ".png") {
		t.Fatalf("expected .png suffix, got %q", path)
	}
	if storage.lastType != "image/png" {
		t.Fatalf("expected image/png, got %q", storage.lastType)
	}
	if string(storage.lastData) != "png-bytes" {
		t.Fatalf("unexpected stored bytes: %q", storage.lastData)
	}

	// Two uploads of the same file get distinct object names.
	first := storage.lastName
	if _, err := uploader.Store(ctx, testUpload("png-bytes", "photo", "image/png")); err != nil {
		t.Fatalf("second Store returned error: %v", err)
	}
	if storage.lastName == first {
		t.Fatalf("expected unique object names, got %q twice", first)
	}
}

type stubProcessor struct {
	calls  int
	output []byte
}

func (p *stubProcessor) Optimize(ctx context.Context, img media.Image) (*media.Optimized, error) {
	p.calls++
	return &media.Optimized{Data: p.output, ContentType: "image/webp", Resized: true}, nil
}

func TestUploader_Store_RunsProcessor(t *testing.T) {
	ctx := context.Background()
	storage := &captureStorage{}
	processor := &stubProcessor{output: []byte("optimized")}
	uploader := NewUploader(storage, processor, "odo-images", 0)

	path, err := uploader.Store(ctx, testUpload("original-jpeg", "photo.jpg", "image/jpeg"))
	if err != nil {
		t.Fatalf("Store returned error: %v", err)
	}
	if processor.calls != 1 {
		t.Fatalf("expected one processor call, got %d", processor.calls)
	}
	if string(storage.lastData) != "optimized" {
		t.Fatalf("expected processed bytes uploaded, got %q", storage.lastData)
	}
	if !strings.HasSuffix(path, ".webp") {
		t.Fatalf("extension should follow the processed content type, got %q", path)
	}
}

func TestUploader_Store_NormalizesDeclaredType(t *testing.T) {
	ctx := context.Background()
	storage := &captureStorage{}
	uploader := newTestUploader(storage)

	// Browsers still send image/jpg; the legacy alias is accepted.
	if _, err := uploader.Store(ctx, testUpload("jpeg-bytes", "photo.jpg", "image/jpg")); err != nil {
		t.Fatalf("Store returned error: %v", err)
	}
	if storage.lastType != "image/jpeg" {
		t.Fatalf("expected normalized image/jpeg, got %q", storage.lastType)
	}

	// Missing declared type falls back to the file extension.
	if _, err := uploader.Store(ctx, testUpload("png-bytes", "shot.png", "")); err != nil {
		t.Fatalf("Store returned error: %v", err)
	}
	if storage.lastType != "image/png" {
		t.Fatalf("expected image/png from extension, got %q", storage.lastType)
	}
}
