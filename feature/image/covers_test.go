package image_test

import (
	"bytes"
	"context"
	"errors"
	"image/jpeg"
	"io"
	"testing"

	"openshelf/core/storage/mocks"
	"openshelf/feature/image"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type stubFetcher struct {
	body string
	err  error
}

func (f *stubFetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.body, f.err
}

func coverConfig() image.Config {
	return image.Config{
		MaxUploadBytes:   5 << 20,
		Quality:          80,
		ContentMaxWidth:  800,
		ContentMaxHeight: 1200,
	}
}

func TestIngestStoresNormalizedCover(t *testing.T) {
	cfg := coverConfig()
	client := &mocks.Client{}
	fetcher := &stubFetcher{body: string(pngImage(t, 1600, 1200))}

	var stored []byte
	client.On("PutObject", mock.Anything, "covers", "covers/ext-42.jpg",
		mock.Anything, mock.Anything, mock.MatchedBy(func(opts minio.PutObjectOptions) bool {
			return opts.ContentType == "image/jpeg"
		}),
	).Run(func(args mock.Arguments) {
		data, err := io.ReadAll(args.Get(3).(io.Reader))
		assert.NoError(t, err)
		stored = data
	}).Return(minio.UploadInfo{}, nil)

	svc := image.NewCoverService(client, "covers", fetcher,
		image.NewNormalizer(cfg.MaxUploadBytes), cfg, zap.NewNop())

	err := svc.Ingest(context.Background(), "ext-42", "http://example.com/cover.png")
	assert.NoError(t, err)
	client.AssertExpectations(t)

	dims, err := jpeg.DecodeConfig(bytes.NewReader(stored))
	assert.NoError(t, err)
	assert.Equal(t, 800, dims.Width)
	assert.Equal(t, 600, dims.Height)
}

func TestIngestPropagatesFetchError(t *testing.T) {
	cfg := coverConfig()
	client := &mocks.Client{}
	fetcher := &stubFetcher{err: errors.New("upstream gone")}

	svc := image.NewCoverService(client, "covers", fetcher,
		image.NewNormalizer(cfg.MaxUploadBytes), cfg, zap.NewNop())

	err := svc.Ingest(context.Background(), "ext-42", "http://example.com/cover.png")
	assert.Error(t, err)
	client.AssertNotCalled(t, "PutObject")
}

func TestIngestRejectsNonImageBody(t *testing.T) {
	cfg := coverConfig()
	client := &mocks.Client{}
	fetcher := &stubFetcher{body: "<html>not a cover</html>"}

	svc := image.NewCoverService(client, "covers", fetcher,
		image.NewNormalizer(cfg.MaxUploadBytes), cfg, zap.NewNop())

	err := svc.Ingest(context.Background(), "ext-42", "http://example.com/cover.png")
	assert.Error(t, err)
	client.AssertNotCalled(t, "PutObject")
}

func TestEnsureCreatesMissingBucket(t *testing.T) {
	cfg := coverConfig()
	client := &mocks.Client{}
	client.On("BucketExists", mock.Anything, "covers").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "covers", mock.Anything).Return(nil)

	svc := image.NewCoverService(client, "covers", &stubFetcher{},
		image.NewNormalizer(cfg.MaxUploadBytes), cfg, zap.NewNop())

	err := svc.Ensure(context.Background())
	assert.NoError(t, err)
	client.AssertExpectations(t)
}

func TestEnsureSkipsExistingBucket(t *testing.T) {
	cfg := coverConfig()
	client := &mocks.Client{}
	client.On("BucketExists", mock.Anything, "covers").Return(true, nil)

	svc := image.NewCoverService(client, "covers", &stubFetcher{},
		image.NewNormalizer(cfg.MaxUploadBytes), cfg, zap.NewNop())

	err := svc.Ensure(context.Background())
	assert.NoError(t, err)
	client.AssertNotCalled(t, "MakeBucket")
}

func TestRemoveDeletesCoverObject(t *testing.T) {
	cfg := coverConfig()
	client := &mocks.Client{}
	client.On("RemoveObject", mock.Anything, "covers", "covers/ext-42.jpg", mock.Anything).Return(nil)

	svc := image.NewCoverService(client, "covers", &stubFetcher{},
		image.NewNormalizer(cfg.MaxUploadBytes), cfg, zap.NewNop())

	err := svc.Remove(context.Background(), "ext-42")
	assert.NoError(t, err)
	client.AssertExpectations(t)
}
