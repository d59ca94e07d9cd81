package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"imgbus/internal/core/domain"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

type S3Config struct {
	URI  string
	User string
	Key  string
}

// S3 stores images in an S3-compatible blob store. The locator path is
// "<bucket>/<object>".
type S3 struct {
	client *minio.Client
}

// NewS3 builds the client and performs an authentication handshake
// against the endpoint.
func NewS3(ctx context.Context, config S3Config) (*S3, error) {
	endpoint, secure := splitEndpoint(config.URI)

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.User, config.Key, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("error building s3 client: %w", err)
	}

	if _, err := client.ListBuckets(ctx); err != nil {
		return nil, fmt.Errorf("s3 authentication handshake failed: %w", err)
	}

	return &S3{client: client}, nil
}

func splitEndpoint(uri string) (string, bool) {
	if endpoint, ok := strings.CutPrefix(uri, "https://"); ok {
		return endpoint, true
	}

	return strings.TrimPrefix(uri, "http://"), false
}

func splitPath(path string) (string, string, error) {
	bucket, object, found := strings.Cut(path, "/")
	if !found || bucket == "" || object == "" {
		return "", "", fmt.Errorf("invalid s3 path %q, want bucket/object", path)
	}

	return bucket, object, nil
}

func (s *S3) Read(ctx context.Context, path string) (*domain.ImageFile, error) {
	bucket, object, err := splitPath(path)
	if err != nil {
		return nil, err
	}

	obj, err := s.client.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("error fetching %s: %w", path, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}

	return &domain.ImageFile{
		Data:        data,
		Filename:    filepath.Base(object),
		ContentType: mime.TypeByExtension(filepath.Ext(object)),
	}, nil
}

func (s *S3) Write(ctx context.Context, path string, file *domain.ImageFile) (string, error) {
	bucket, object, err := splitPath(path)
	if err != nil {
		return "", err
	}

	_, err = s.client.PutObject(ctx, bucket, object,
		bytes.NewReader(file.Data), int64(len(file.Data)),
		minio.PutObjectOptions{ContentType: file.ContentType})
	if err != nil {
		return "", fmt.Errorf("error uploading %s: %w", path, err)
	}

	log.Debug().Str("bucket", bucket).Str("object", object).Int("bytes", len(file.Data)).
		Msg("uploaded object to s3")

	return "s3://" + path, nil
}

func (s *S3) Close() {}
