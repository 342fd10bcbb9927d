// Package upload moves staged evidence files to durable object storage.
package upload

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"sira/backend/internal/config"
)

// ObjectStore is the remote storage boundary. Upload returns the public
// URL of the stored object; Delete removes a previously uploaded object
// by that URL (used for compensation on partial commit failure).
type ObjectStore interface {
	Upload(ctx context.Context, localPath, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}

// MinioStore implements ObjectStore on a MinIO/S3-compatible bucket.
type MinioStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewMinioStore creates the client and makes sure the bucket exists.
func NewMinioStore(cfg *config.Config) (*MinioStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	baseURL := cfg.MinioPublicURL
	if baseURL == "" {
		scheme := "http"
		if cfg.MinioUseSSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s", scheme, cfg.MinioEndpoint)
	}

	s := &MinioStore{
		client:  client,
		bucket:  cfg.MinioBucket,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
	if err := s.ensureBucket(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *MinioStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
	}
	return nil
}

// Upload streams a staged file into the bucket under a unique key and
// returns its public URL.
func (s *MinioStore) Upload(ctx context.Context, localPath, contentType string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open staged file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("stat staged file: %w", err)
	}

	key := fmt.Sprintf("%s/%s%s", config.EvidenceFolder, uuid.NewString(), path.Ext(localPath))
	_, err = s.client.PutObject(ctx, s.bucket, key, file, info.Size(), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, key), nil
}

// Delete removes an uploaded object given the URL Upload returned.
func (s *MinioStore) Delete(ctx context.Context, url string) error {
	prefix := fmt.Sprintf("%s/%s/", s.baseURL, s.bucket)
	key := strings.TrimPrefix(url, prefix)
	if key == url {
		return fmt.Errorf("url %q does not belong to bucket %s", url, s.bucket)
	}
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}
