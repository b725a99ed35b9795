package image

import (
	"bytes"
	"context"
	"fmt"

	"openshelf/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// RemoteFetcher retrieves raw remote bytes. Satisfied by the proxy feature's
// fetcher.
type RemoteFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// CoverService ingests remote cover images: fetch, normalize at the content
// bounds, and store the resulting JPEG in the covers bucket.
type CoverService struct {
	client     storage.Client
	bucket     string
	fetcher    RemoteFetcher
	normalizer *Normalizer
	cfg        Config
	logger     *zap.Logger
}

// NewCoverService creates a cover ingest service.
func NewCoverService(client storage.Client, bucket string, fetcher RemoteFetcher, normalizer *Normalizer, cfg Config, logger *zap.Logger) *CoverService {
	return &CoverService{
		client:     client,
		bucket:     bucket,
		fetcher:    fetcher,
		normalizer: normalizer,
		cfg:        cfg,
		logger:     logger,
	}
}

// objectName returns the bucket key for an entry's cover.
func objectName(id string) string {
	return fmt.Sprintf("covers/%s.jpg", id)
}

// Ensure verifies the covers bucket exists, creating it if necessary.
func (s *CoverService) Ensure(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check covers bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create covers bucket: %w", err)
	}
	s.logger.Info("Created covers bucket", zap.String("bucket", s.bucket))
	return nil
}

// Ingest fetches the cover at url, normalizes it at the content bounds, and
// writes it to the bucket under covers/<id>.jpg.
func (s *CoverService) Ingest(ctx context.Context, id, url string) error {
	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return err
	}

	data, err := s.normalizer.Normalize([]byte(body), s.cfg.ContentMaxWidth, s.cfg.ContentMaxHeight, s.cfg.Quality)
	if err != nil {
		return err
	}

	_, err = s.client.PutObject(ctx, s.bucket, objectName(id),
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "image/jpeg"})
	if err != nil {
		return fmt.Errorf("failed to store cover %s: %w", id, err)
	}

	s.logger.Info("Ingested cover",
		zap.String("id", id), zap.Int("bytes", len(data)))
	return nil
}

// Remove deletes the stored cover for id. Removing an absent cover is not
// an error.
func (s *CoverService) Remove(ctx context.Context, id string) error {
	return s.client.RemoveObject(ctx, s.bucket, objectName(id), minio.RemoveObjectOptions{})
}
