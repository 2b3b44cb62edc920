package imagestore

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yanqian/outfit-concierge/internal/domain/wardrobe"
)

// MinioStore keeps wardrobe item images in an S3-compatible bucket.
type MinioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
	logger    *slog.Logger
}

// NewMinioStore constructs the store adapter.
func NewMinioStore(endpoint, accessKey, secretKey, bucket, publicURL string, logger *slog.Logger) (*MinioStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cleanEndpoint := sanitizeEndpoint(endpoint)
	useSSL := strings.HasPrefix(strings.ToLower(endpoint), "https")
	client, err := minio.New(cleanEndpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure:       useSSL,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init object storage client: %w", err)
	}
	if publicURL == "" {
		scheme := "http"
		if useSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, cleanEndpoint, bucket)
	}
	return &MinioStore{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		logger:    logger.With("component", "imagestore.minio"),
	}, nil
}

func (s *MinioStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err == nil && exists {
		return nil
	}
	err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	if err != nil && minio.ToErrorResponse(err).Code != "BucketAlreadyOwnedByYou" {
		return err
	}
	return nil
}

// Put uploads an item image and returns its serving URL.
func (s *MinioStore) Put(ctx context.Context, userID, itemID string, data []byte) (string, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return "", err
	}
	key := fmt.Sprintf("%s/%s", userID, itemID)
	contentType := http.DetectContentType(data)
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:      contentType,
		DisableMultipart: len(data) < 5*1024*1024, // small uploads as single part
	})
	if err != nil {
		return "", err
	}
	s.logger.Debug("item image stored", "user_id", userID, "item_id", itemID, "bytes", len(data))
	return fmt.Sprintf("%s/%s", s.publicURL, key), nil
}

var _ wardrobe.ImageStore = (*MinioStore)(nil)

// sanitizeEndpoint removes schemes and paths to satisfy minio.New expectations.
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if strings.Contains(raw, "/") {
		raw = strings.Split(raw, "/")[0]
	}
	return raw
}
