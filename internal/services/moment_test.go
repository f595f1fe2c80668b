package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"couple-companion-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyMedia(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		mime     string
		want     string
	}{
		{"jpeg image", "photo.jpg", "image/jpeg", models.MediaImage},
		{"gif by extension", "funny.gif", "", models.MediaGIF},
		{"gif beats image mime", "funny.gif", "image/gif", models.MediaGIF},
		{"video by extension", "clip.mp4", "", models.MediaVideo},
		{"video by mime only", "clip.bin", "video/quicktime", models.MediaVideo},
		{"raw by extension", "shot.dng", "", models.MediaRaw},
		{"unknown falls back to image", "mystery", "", models.MediaImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, mime := classifyMedia(tt.filename, tt.mime)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, mime)
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "photo.jpg", sanitizeFilename("../../etc/photo.jpg"))
	assert.Equal(t, "my_photo__1_.jpg", sanitizeFilename("my photo (1).jpg"))
}

func TestMomentService_List(t *testing.T) {
	page := func(n int) []*models.Moment {
		out := make([]*models.Moment, n)
		for i := range out {
			out[i] = &models.Moment{ID: fmt.Sprintf("m%d", i)}
		}
		return out
	}

	t.Run("full page means more", func(t *testing.T) {
		svc := NewMomentService(&mockMomentStore{
			listByCoupleIDFn: func(ctx context.Context, coupleID string, limit, offset int) ([]*models.Moment, error) {
				return page(limit), nil
			},
		}, &mockObjectStorage{})

		moments, hasMore, err := svc.List(context.Background(), "couple-1", MomentPageSize, 0)
		require.NoError(t, err)
		assert.Len(t, moments, MomentPageSize)
		assert.True(t, hasMore)
	})

	t.Run("short page means done", func(t *testing.T) {
		svc := NewMomentService(&mockMomentStore{
			listByCoupleIDFn: func(ctx context.Context, coupleID string, limit, offset int) ([]*models.Moment, error) {
				return page(3), nil
			},
		}, &mockObjectStorage{})

		_, hasMore, err := svc.List(context.Background(), "couple-1", MomentPageSize, 40)
		require.NoError(t, err)
		assert.False(t, hasMore)
	})

	t.Run("limit is clamped to the page size", func(t *testing.T) {
		var gotLimit int
		svc := NewMomentService(&mockMomentStore{
			listByCoupleIDFn: func(ctx context.Context, coupleID string, limit, offset int) ([]*models.Moment, error) {
				gotLimit = limit
				return nil, nil
			},
		}, &mockObjectStorage{})

		_, _, err := svc.List(context.Background(), "couple-1", 500, 0)
		require.NoError(t, err)
		assert.Equal(t, MomentPageSize, gotLimit)
	})
}

func TestMomentService_Upload(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	var storedKey, storedMime string
	var created *models.Moment
	svc := NewMomentService(&mockMomentStore{
		createFn: func(ctx context.Context, m *models.Moment) error {
			created = m
			return nil
		},
	}, &mockObjectStorage{
		putFn: func(ctx context.Context, key, contentType string, data []byte) (string, error) {
			storedKey = key
			storedMime = contentType
			return "https://media.test/" + key, nil
		},
	})
	svc.now = func() time.Time { return now }

	moment, err := svc.Upload(context.Background(), "couple-1", "user-1",
		"beach day.jpg", "image/jpeg", []byte("bytes"), "first swim", 800, 600)
	require.NoError(t, err)

	assert.Contains(t, storedKey, "couple-1/user-1/")
	assert.Contains(t, storedKey, "beach_day.jpg")
	assert.Equal(t, "image/jpeg", storedMime)

	require.NotNil(t, created)
	assert.Equal(t, models.MediaImage, moment.MediaType)
	assert.Equal(t, "https://media.test/"+storedKey, moment.MediaURL)
	assert.Equal(t, "first swim", moment.Caption)
	assert.Equal(t, int64(5), moment.FileSizeBytes)
	assert.Equal(t, 800, moment.Width)
}

func TestMomentService_Upload_EmptyFile(t *testing.T) {
	svc := NewMomentService(&mockMomentStore{}, &mockObjectStorage{
		putFn: func(ctx context.Context, key, contentType string, data []byte) (string, error) {
			t.Fatal("Put must not be called for an empty file")
			return "", nil
		},
	})

	_, err := svc.Upload(context.Background(), "couple-1", "user-1", "x.jpg", "", nil, "", 0, 0)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestMomentService_Delete(t *testing.T) {
	moment := &models.Moment{ID: "m1", AuthorID: "user-1", MediaURL: "https://media.test/k"}

	t.Run("author deletes, object removed first", func(t *testing.T) {
		objectDeleted := false
		recordDeleted := false
		svc := NewMomentService(&mockMomentStore{
			getByIDFn: func(ctx context.Context, id string) (*models.Moment, error) {
				return moment, nil
			},
			deleteFn: func(ctx context.Context, id string) error {
				recordDeleted = true
				return nil
			},
		}, &mockObjectStorage{
			keyFromURLFn: func(url string) (string, bool) { return "k", true },
			deleteFn: func(ctx context.Context, key string) error {
				objectDeleted = true
				return nil
			},
		})

		got, err := svc.Delete(context.Background(), "user-1", "m1")
		require.NoError(t, err)
		assert.Equal(t, "m1", got.ID)
		assert.True(t, objectDeleted)
		assert.True(t, recordDeleted)
	})

	t.Run("partner cannot delete", func(t *testing.T) {
		svc := NewMomentService(&mockMomentStore{
			getByIDFn: func(ctx context.Context, id string) (*models.Moment, error) {
				return moment, nil
			},
			deleteFn: func(ctx context.Context, id string) error {
				t.Fatal("Delete must not be called by a non-author")
				return nil
			},
		}, &mockObjectStorage{})

		_, err := svc.Delete(context.Background(), "user-2", "m1")
		assert.ErrorIs(t, err, models.ErrForbidden)
	})

	t.Run("storage failure does not block the delete", func(t *testing.T) {
		recordDeleted := false
		svc := NewMomentService(&mockMomentStore{
			getByIDFn: func(ctx context.Context, id string) (*models.Moment, error) {
				return moment, nil
			},
			deleteFn: func(ctx context.Context, id string) error {
				recordDeleted = true
				return nil
			},
		}, &mockObjectStorage{
			keyFromURLFn: func(url string) (string, bool) { return "k", true },
			deleteFn: func(ctx context.Context, key string) error {
				return fmt.Errorf("s3 unavailable")
			},
		})

		_, err := svc.Delete(context.Background(), "user-1", "m1")
		require.NoError(t, err)
		assert.True(t, recordDeleted)
	})
}
