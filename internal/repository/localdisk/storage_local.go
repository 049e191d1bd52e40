package localdisk

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/odovalley/odo-valley-api/internal/repository/ports"
)

// Storage writes uploads to a local directory served by the API under
// /uploads. It is the default when no object storage is configured.
type Storage struct {
	dir string
}

func NewStorage(dir string) (*Storage, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("localdisk: empty upload directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("localdisk: create upload directory: %w", err)
	}
	return &Storage{dir: dir}, nil
}

// Upload writes the object into the uploads directory and returns the
// relative /uploads path stored on the resource. The bucket argument is
// ignored; local storage is flat.
func (s *Storage) Upload(ctx context.Context, _ string, objectName, _ string, reader io.Reader, size int64) (string, error) {
	name := filepath.Base(objectName)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("localdisk: invalid object name %q", objectName)
	}

	target := filepath.Join(s.dir, name)
	file, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("localdisk: create %s: %w", name, err)
	}

	written, err := io.Copy(file, reader)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(target)
		return "", fmt.Errorf("localdisk: write %s: %w", name, err)
	}
	if size > 0 && written != size {
		_ = os.Remove(target)
		return "", fmt.Errorf("localdisk: short write for %s: %d of %d bytes", name, written, size)
	}

	return "/uploads/" + name, nil
}

var _ ports.ObjectStorage = (*Storage)(nil)
