package services

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/Thejackcode565/Wish-A-Day/internal/models"
	"github.com/Thejackcode565/Wish-A-Day/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type uploadFixture struct {
	svc    *UploadService
	wishes *fakeWishStore
	images *fakeImageStore
	files  *storage.DiskStore
	gate   *fakeDiskGate
}

func newUploadFixture(t *testing.T, maxImages int) *uploadFixture {
	t.Helper()
	files, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	wishes := newFakeWishStore()
	images := newFakeImageStore()
	gate := &fakeDiskGate{ok: true}
	pipeline := NewImageService(files, testMaxFileSize)

	return &uploadFixture{
		svc:    NewUploadService(wishes, images, pipeline, gate, maxImages),
		wishes: wishes,
		images: images,
		files:  files,
		gate:   gate,
	}
}

func (f *uploadFixture) createWish(t *testing.T, wish *models.Wish) *models.Wish {
	t.Helper()
	created, err := NewWishService(f.wishes).CreateWish(context.Background(), wish)
	require.NoError(t, err)
	return created
}

func (f *uploadFixture) storedFileCount(t *testing.T) int {
	t.Helper()
	count := 0
	filepath.WalkDir(f.files.Root(), func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			count++
		}
		return nil
	})
	return count
}

func TestUploadImage_Success(t *testing.T) {
	f := newUploadFixture(t, 5)
	wish := f.createWish(t, &models.Wish{Message: "pics"})

	image, err := f.svc.UploadImage(context.Background(), wish.Slug,
		bytes.NewReader(pngWithAlpha(t)), "party.png", "image/png", time.Now())

	require.NoError(t, err)
	assert.Equal(t, wish.ID, image.WishID)

	_, err = f.files.Read(image.Path)
	require.NoError(t, err, "returned path must resolve to an existing file")

	count, _ := f.images.CountImagesByWish(context.Background(), wish.ID)
	assert.Equal(t, int64(1), count)
}

func TestUploadImage_UnknownWish(t *testing.T) {
	f := newUploadFixture(t, 5)

	_, err := f.svc.UploadImage(context.Background(), "nope1234",
		bytes.NewReader(pngWithAlpha(t)), "party.png", "image/png", time.Now())

	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestUploadImage_GoneWish(t *testing.T) {
	f := newUploadFixture(t, 5)
	wish := f.createWish(t, &models.Wish{Message: "pics"})
	require.NoError(t, f.wishes.SoftDelete(context.Background(), wish.ID, time.Now()))

	_, err := f.svc.UploadImage(context.Background(), wish.Slug,
		bytes.NewReader(pngWithAlpha(t)), "party.png", "image/png", time.Now())

	assert.True(t, errors.Is(err, ErrGone))
}

func TestUploadImage_ExpiredWish(t *testing.T) {
	f := newUploadFixture(t, 5)
	wish := f.createWish(t, &models.Wish{
		Message:   "pics",
		ExpiresAt: timePtr(time.Now().Add(-time.Hour)),
	})

	_, err := f.svc.UploadImage(context.Background(), wish.Slug,
		bytes.NewReader(pngWithAlpha(t)), "party.png", "image/png", time.Now())

	assert.True(t, errors.Is(err, ErrGone))
}

// One more than the per-wish ceiling is rejected regardless of validity.
func TestUploadImage_CeilingEnforced(t *testing.T) {
	f := newUploadFixture(t, 2)
	wish := f.createWish(t, &models.Wish{Message: "pics"})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := f.svc.UploadImage(ctx, wish.Slug,
			bytes.NewReader(pngWithAlpha(t)), "party.png", "image/png", time.Now())
		require.NoError(t, err)
	}

	_, err := f.svc.UploadImage(ctx, wish.Slug,
		bytes.NewReader(pngWithAlpha(t)), "party.png", "image/png", time.Now())

	assert.True(t, errors.Is(err, ErrQuotaExceeded))
	assert.Equal(t, 2, f.storedFileCount(t))
}

// A rejected upload never partially writes a file.
func TestUploadImage_OversizeRejectedBeforeWrite(t *testing.T) {
	f := newUploadFixture(t, 5)
	wish := f.createWish(t, &models.Wish{Message: "pics"})

	_, err := f.svc.UploadImage(context.Background(), wish.Slug,
		bytes.NewReader(make([]byte, testMaxFileSize+1)), "huge.png", "image/png", time.Now())

	assert.True(t, errors.Is(err, ErrPayloadTooLarge))
	assert.Equal(t, 0, f.storedFileCount(t))
}

func TestUploadImage_BadTypeRejectedBeforeWrite(t *testing.T) {
	f := newUploadFixture(t, 5)
	wish := f.createWish(t, &models.Wish{Message: "pics"})

	_, err := f.svc.UploadImage(context.Background(), wish.Slug,
		bytes.NewReader([]byte("plain text")), "notes.txt", "text/plain", time.Now())

	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, 0, f.storedFileCount(t))
}

// Disk-floor admission control rejects uploads even when the file would fit.
func TestUploadImage_StorageExhausted(t *testing.T) {
	f := newUploadFixture(t, 5)
	f.gate.ok = false
	wish := f.createWish(t, &models.Wish{Message: "pics"})

	_, err := f.svc.UploadImage(context.Background(), wish.Slug,
		bytes.NewReader(pngWithAlpha(t)), "party.png", "image/png", time.Now())

	assert.True(t, errors.Is(err, ErrStorageExhausted))
	assert.Equal(t, 0, f.storedFileCount(t))
}

func TestDeleteImage(t *testing.T) {
	f := newUploadFixture(t, 5)
	wish := f.createWish(t, &models.Wish{Message: "pics"})
	ctx := context.Background()

	image, err := f.svc.UploadImage(ctx, wish.Slug,
		bytes.NewReader(pngWithAlpha(t)), "party.png", "image/png", time.Now())
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteImage(ctx, wish.Slug, image.ID))

	_, err = f.files.Read(image.Path)
	assert.Error(t, err, "file must be gone")

	count, _ := f.images.CountImagesByWish(ctx, wish.ID)
	assert.Equal(t, int64(0), count)
}

func TestDeleteImage_NotFound(t *testing.T) {
	f := newUploadFixture(t, 5)
	wish := f.createWish(t, &models.Wish{Message: "pics"})

	err := f.svc.DeleteImage(context.Background(), wish.Slug, primitive.NewObjectID())

	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestListImages(t *testing.T) {
	f := newUploadFixture(t, 5)
	wish := f.createWish(t, &models.Wish{Message: "pics"})
	ctx := context.Background()

	images, err := f.svc.ListImages(ctx, wish.Slug)
	require.NoError(t, err)
	assert.Empty(t, images)

	_, err = f.svc.UploadImage(ctx, wish.Slug,
		bytes.NewReader(pngWithAlpha(t)), "a.png", "image/png", time.Now())
	require.NoError(t, err)

	images, err = f.svc.ListImages(ctx, wish.Slug)
	require.NoError(t, err)
	assert.Len(t, images, 1)
}
