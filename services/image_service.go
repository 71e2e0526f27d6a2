package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mercado-sofia/FAITH-CommUNITY-sub001/config"
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ImageService moves inline base64 images into object storage. Storage
// outages must never block content approval: on any failure the cleaned
// original value is returned instead of an error.
type ImageService struct {
	store  *config.ObjectStore
	logger *zap.Logger
}

func NewImageService(store *config.ObjectStore, logger *zap.Logger) *ImageService {
	return &ImageService{store: store, logger: logger}
}

// Externalize uploads a base64 data URI to storage under folder and
// returns the stored URL. Values that are not data URIs are assumed to
// be stored URLs already and pass through unchanged.
func (s *ImageService) Externalize(ctx context.Context, value, folder string) string {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" || !strings.HasPrefix(cleaned, "data:") {
		return cleaned
	}

	url, err := s.upload(ctx, cleaned, folder)
	if err != nil {
		s.logger.Warn("image externalization failed, keeping inline value",
			zap.String("folder", folder),
			zap.Error(err),
		)
		return cleaned
	}
	return url
}

func (s *ImageService) upload(ctx context.Context, dataURI, folder string) (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("object storage not configured")
	}

	meta, payload, ok := strings.Cut(dataURI, ",")
	if !ok || !strings.Contains(meta, ";base64") {
		return "", fmt.Errorf("malformed data URI")
	}
	contentType := strings.TrimPrefix(meta, "data:")
	contentType = strings.SplitN(contentType, ";", 2)[0]

	ext, ok := imageExtensions[contentType]
	if !ok {
		ext = ".bin"
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}

	key := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), ext)
	url, err := s.store.Upload(ctx, key, contentType, bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	return url, nil
}
