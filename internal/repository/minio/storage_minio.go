package minio

import (
	"context"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/odovalley/odo-valley-api/internal/repository/ports"
)

func NewClient(endpoint, key, secret string, useSSL bool) (*minio.Client, error) {
	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(key, secret, ""),
		Secure: useSSL,
	})
}

// Storage uploads objects to a MinIO bucket. When a public base URL is
// configured, returned URLs point there instead of the raw endpoint.
type Storage struct {
	client     *minio.Client
	publicBase string
}

func NewStorage(client *minio.Client, publicBase string) *Storage {
	return &Storage{
		client:     client,
		publicBase: strings.TrimRight(publicBase, "/"),
	}
}

func (s *Storage) Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	opts := minio.PutObjectOptions{ContentType: contentType}
	if _, err := s.client.PutObject(ctx, bucket, objectName, reader, size, opts); err != nil {
		return "", err
	}
	if s.publicBase != "" {
		return s.publicBase + "/" + strings.TrimLeft(objectName, "/"), nil
	}
	scheme := "http"
	if s.client.EndpointURL().Scheme == "https" {
		scheme = "https"
	}
	return scheme + "://" + s.client.EndpointURL().Host + "/" + bucket + "/" + strings.TrimLeft(objectName, "/"), nil
}

var _ ports.ObjectStorage = (*Storage)(nil)
