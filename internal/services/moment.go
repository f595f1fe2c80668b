package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"couple-companion-backend/internal/models"
	"couple-companion-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MomentPageSize is the fixed page size for the moments feed.
const MomentPageSize = 20

// MomentService handles shared media business logic
type MomentService struct {
	moments repository.MomentStore
	storage ObjectStorage
	now     func() time.Time
}

// NewMomentService creates a new moment service
func NewMomentService(moments repository.MomentStore, storage ObjectStorage) *MomentService {
	return &MomentService{
		moments: moments,
		storage: storage,
		now:     time.Now,
	}
}

// classifyMedia maps a filename and MIME type to a moment media type.
// Precedence: gif, then video, then raw, then image.
func classifyMedia(filename, mimeType string) (string, string) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	mime := mimeType
	if mime == "" {
		mime = "application/octet-stream"
	}

	switch {
	case ext == "gif" || strings.Contains(mime, "gif"):
		if mimeType == "" {
			mime = "image/gif"
		}
		return models.MediaGIF, mime
	case isVideoExt(ext) || strings.HasPrefix(mime, "video/"):
		if mimeType == "" {
			mime = "video/mp4"
		}
		return models.MediaVideo, mime
	case isRawExt(ext):
		if mimeType == "" {
			mime = "image/x-raw"
		}
		return models.MediaRaw, mime
	default:
		if mimeType == "" {
			mime = "image/jpeg"
		}
		return models.MediaImage, mime
	}
}

func isVideoExt(ext string) bool {
	switch ext {
	case "mp4", "mov", "avi", "webm", "mkv":
		return true
	}
	return false
}

func isRawExt(ext string) bool {
	switch ext {
	case "dng", "arw", "cr2", "nef", "raf", "raw":
		return true
	}
	return false
}

// sanitizeFilename keeps object keys free of path separators and spaces
func sanitizeFilename(name string) string {
	name = path.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

// List retrieves a page of the couple's moments, newest first.
// hasMore is true exactly when a full page came back.
func (s *MomentService) List(ctx context.Context, coupleID string, limit, offset int) ([]*models.Moment, bool, error) {
	if limit <= 0 || limit > MomentPageSize {
		limit = MomentPageSize
	}
	if offset < 0 {
		offset = 0
	}

	moments, err := s.moments.ListByCoupleID(ctx, coupleID, limit, offset)
	if err != nil {
		return nil, false, err
	}
	return moments, len(moments) == limit, nil
}

// Upload stores the media bytes under a couple- and author-namespaced
// key, then creates the metadata record pointing at the stored
// object's public address.
func (s *MomentService) Upload(ctx context.Context, coupleID, authorID, filename string,
	contentType string, data []byte, caption string, width, height int) (*models.Moment, error) {

	if len(data) == 0 {
		return nil, fmt.Errorf("media file is empty: %w", models.ErrValidation)
	}

	mediaType, mime := classifyMedia(filename, contentType)
	if filename == "" {
		filename = fmt.Sprintf("moment_%d", s.now().UnixMilli())
	}
	key := fmt.Sprintf("%s/%s/%d_%s", coupleID, authorID, s.now().UnixMilli(), sanitizeFilename(filename))

	url, err := s.storage.Put(ctx, key, mime, data)
	if err != nil {
		return nil, fmt.Errorf("failed to store media: %w", err)
	}

	moment := &models.Moment{
		ID:            uuid.New().String(),
		CoupleID:      coupleID,
		AuthorID:      authorID,
		MediaURL:      url,
		MediaType:     mediaType,
		MimeType:      mime,
		Caption:       caption,
		FileSizeBytes: int64(len(data)),
		Width:         width,
		Height:        height,
		CreatedAt:     s.now(),
	}

	if err := s.moments.Create(ctx, moment); err != nil {
		return nil, err
	}
	return moment, nil
}

// Delete removes a moment. Only the authoring identity may delete it.
// The backing object is deleted best-effort before the record.
func (s *MomentService) Delete(ctx context.Context, userID, momentID string) (*models.Moment, error) {
	moment, err := s.moments.GetByID(ctx, momentID)
	if err != nil {
		return nil, err
	}
	if moment.AuthorID != userID {
		return nil, fmt.Errorf("only the author may delete a moment: %w", models.ErrForbidden)
	}

	if key, ok := s.storage.KeyFromURL(moment.MediaURL); ok {
		if err := s.storage.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("moment_id", momentID).Msg("Failed to delete media object")
		}
	}

	if err := s.moments.Delete(ctx, momentID); err != nil {
		return nil, err
	}
	return moment, nil
}
