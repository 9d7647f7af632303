package services_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/aurelhaus/backend/internal/config"
	"github.com/aurelhaus/backend/internal/services"
	"github.com/aurelhaus/backend/internal/store"
	"github.com/aurelhaus/backend/internal/store/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGalleryService(t *testing.T, cfg *config.Config) (*services.GalleryService, *memstore.ImageStore, *services.StorageService) {
	t.Helper()
	images := memstore.NewImageStore()
	storage := services.NewStorageService(cfg)
	return services.NewGalleryService(images, storage, cfg), images, storage
}

func makeJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func makePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadCreatesRecordAndBothAssets(t *testing.T) {
	cfg := testConfig(t)
	svc, images, storage := newGalleryService(t, cfg)
	ctx := context.Background()

	record, err := svc.Upload(ctx, "Sunset", makeJPEG(t, 800, 600), "a.jpg")
	require.NoError(t, err)

	assert.Equal(t, "Sunset", record.Title)
	assert.Equal(t, "a.jpg", record.Filename)

	count, err := images.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	assert.True(t, storage.Exists(services.NamespaceUploads, "a.jpg"))
	assert.True(t, storage.Exists(services.NamespaceThumbs, "a.jpg"))

	// Thumbnail has the fixed target resolution
	f, err := os.Open(storage.Path(services.NamespaceThumbs, "a.jpg"))
	require.NoError(t, err)
	defer f.Close()
	thumb, _, err := image.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, cfg.ThumbnailWidth, thumb.Bounds().Dx())
	assert.Equal(t, cfg.ThumbnailHeight, thumb.Bounds().Dy())
}

func TestUploadRejectsNonImage(t *testing.T) {
	cfg := testConfig(t)
	svc, images, storage := newGalleryService(t, cfg)
	ctx := context.Background()

	before, err := images.Count(ctx)
	require.NoError(t, err)

	_, err = svc.Upload(ctx, "Not an image", []byte("plain text, not pixels"), "fake.png")
	assert.ErrorIs(t, err, services.ErrUnsupportedFormat)

	after, err := images.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.False(t, storage.Exists(services.NamespaceUploads, "fake.png"))
	assert.False(t, storage.Exists(services.NamespaceThumbs, "fake.png"))
}

func TestUploadValidation(t *testing.T) {
	cfg := testConfig(t)
	svc, _, _ := newGalleryService(t, cfg)
	ctx := context.Background()

	_, err := svc.Upload(ctx, "", makePNG(t, 10, 10), "a.png")
	assert.ErrorIs(t, err, services.ErrTitleRequired)

	_, err = svc.Upload(ctx, "Empty", nil, "a.png")
	assert.ErrorIs(t, err, services.ErrEmptyFile)

	_, err = svc.Upload(ctx, "Dots", makePNG(t, 10, 10), "..")
	assert.ErrorIs(t, err, services.ErrUnsafeFilename)

	_, err = svc.Upload(ctx, "Wrong ext", makePNG(t, 10, 10), "vector.svg")
	assert.ErrorIs(t, err, services.ErrUnsupportedFormat)
}

func TestUploadRejectsOversizedImage(t *testing.T) {
	cfg := testConfig(t)
	cfg.UploadMaxImageSize = 16
	svc, _, _ := newGalleryService(t, cfg)

	_, err := svc.Upload(context.Background(), "Big", makePNG(t, 100, 100), "big.png")
	assert.ErrorIs(t, err, services.ErrImageTooLarge)
}

func TestUploadRenamesOnCollision(t *testing.T) {
	cfg := testConfig(t)
	svc, images, storage := newGalleryService(t, cfg)
	ctx := context.Background()

	first, err := svc.Upload(ctx, "First", makePNG(t, 20, 20), "pic.png")
	require.NoError(t, err)
	second, err := svc.Upload(ctx, "Second", makePNG(t, 30, 30), "pic.png")
	require.NoError(t, err)

	assert.Equal(t, "pic.png", first.Filename)
	assert.NotEqual(t, first.Filename, second.Filename)

	assert.True(t, storage.Exists(services.NamespaceUploads, first.Filename))
	assert.True(t, storage.Exists(services.NamespaceUploads, second.Filename))

	count, err := images.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestUploadSanitizesFilename(t *testing.T) {
	cfg := testConfig(t)
	svc, _, storage := newGalleryService(t, cfg)

	record, err := svc.Upload(context.Background(), "Walk", makePNG(t, 20, 20), "../evening walk.png")
	require.NoError(t, err)

	assert.Equal(t, "evening_walk.png", record.Filename)
	assert.True(t, storage.Exists(services.NamespaceUploads, "evening_walk.png"))
	// Nothing escaped the uploads namespace
	_, err = os.Stat(filepath.Join(cfg.LocalAssetsPath, "..", "evening walk.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteMissingRecord(t *testing.T) {
	cfg := testConfig(t)
	svc, images, _ := newGalleryService(t, cfg)
	ctx := context.Background()

	_, err := svc.Upload(ctx, "Keep", makePNG(t, 20, 20), "keep.png")
	require.NoError(t, err)

	err = svc.Delete(ctx, "missing.png")
	assert.ErrorIs(t, err, store.ErrNotFound)

	count, err := images.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDeleteRemovesRecordAndFiles(t *testing.T) {
	cfg := testConfig(t)
	svc, images, storage := newGalleryService(t, cfg)
	ctx := context.Background()

	record, err := svc.Upload(ctx, "Gone soon", makePNG(t, 20, 20), "gone.png")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, record.Filename))

	count, err := images.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
	assert.False(t, storage.Exists(services.NamespaceUploads, record.Filename))
	assert.False(t, storage.Exists(services.NamespaceThumbs, record.Filename))
}

func TestDeleteToleratesMissingFile(t *testing.T) {
	cfg := testConfig(t)
	svc, images, storage := newGalleryService(t, cfg)
	ctx := context.Background()

	record, err := svc.Upload(ctx, "Half gone", makePNG(t, 20, 20), "half.png")
	require.NoError(t, err)

	// Simulate a thumbnail that was lost on disk
	require.NoError(t, os.Remove(storage.Path(services.NamespaceThumbs, record.Filename)))

	require.NoError(t, svc.Delete(ctx, record.Filename))

	count, err := images.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
	assert.False(t, storage.Exists(services.NamespaceUploads, record.Filename))
}

func TestLatestReturnsNewestFirst(t *testing.T) {
	cfg := testConfig(t)
	svc, _, _ := newGalleryService(t, cfg)
	ctx := context.Background()

	for _, name := range []string{"one.png", "two.png", "three.png", "four.png"} {
		_, err := svc.Upload(ctx, name, makePNG(t, 20, 20), name)
		require.NoError(t, err)
	}

	latest, err := svc.Latest(ctx, 3)
	require.NoError(t, err)
	require.Len(t, latest, 3)
	assert.Equal(t, "four.png", latest[0].Filename)
	assert.Equal(t, "three.png", latest[1].Filename)
	assert.Equal(t, "two.png", latest[2].Filename)
}
