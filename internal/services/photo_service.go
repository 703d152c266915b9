package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"asir-guide-api/internal/i18n"
	"asir-guide-api/internal/models"
	apierrors "asir-guide-api/internal/pkg/errors"
)

// PhotoService is the memory wall: per-landmark visitor photo galleries.
// Append-only, no size cap, no dedup, no deletion.
type PhotoService interface {
	Gallery(ctx context.Context, landmarkID string) ([]models.Photo, error)
	Upload(ctx context.Context, landmarkID string, file io.Reader, contentType, uploaderName string, lang i18n.Language) ([]models.Photo, error)
}

type photoService struct {
	store PhotoStore
}

func NewPhotoService(store PhotoStore) PhotoService {
	return &photoService{store: store}
}

func (s *photoService) Gallery(ctx context.Context, landmarkID string) ([]models.Photo, error) {
	return s.store.Load(ctx, landmarkID)
}

// Upload reads the image, stores it inline-encoded and returns the updated
// gallery. A missing file fails with ErrNoFileSelected and leaves the
// gallery untouched.
func (s *photoService) Upload(ctx context.Context, landmarkID string, file io.Reader, contentType, uploaderName string, lang i18n.Language) ([]models.Photo, error) {
	if file == nil {
		return nil, apierrors.ErrNoFileSelected
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %v", err)
	}
	if len(data) == 0 {
		return nil, apierrors.ErrNoFileSelected
	}

	if contentType == "" {
		contentType = "image/jpeg"
	}

	name := strings.TrimSpace(uploaderName)
	if name == "" {
		name = i18n.T(i18n.KeyAnonymous, lang)
	}

	photo := models.Photo{
		Src:  "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data),
		Name: name,
	}
	return s.store.Append(ctx, landmarkID, photo)
}
