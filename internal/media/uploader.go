package media

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ariefcatur/zenzee-admin/internal/settings"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

type Asset struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
	Kind     Kind   `json:"kind"`
}

type Uploader interface {
	Upload(ctx context.Context, r io.Reader, slot string, kind Kind) (Asset, error)
}

type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinary(cloudURL, folder string) (*CloudinaryUploader, error) {
	if cloudURL == "" {
		return nil, errors.New("cloudinary url not configured")
	}
	cld, err := cloudinary.NewFromURL(cloudURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryUploader{cld: cld, folder: folder}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, r io.Reader, slot string, kind Kind) (Asset, error) {
	res, err := u.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       u.folder + "/" + slot,
		ResourceType: string(kind),
	})
	if err != nil {
		return Asset{}, fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return Asset{}, fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	return Asset{URL: res.SecureURL, PublicID: res.PublicID, Kind: kind}, nil
}

// Service validates an upload, stores it and records it in section_media.
type Service struct {
	Limits   Limits
	Uploader Uploader
	Settings settings.Store
	Log      *zap.Logger
}

func (s *Service) Upload(ctx context.Context, slot, contentType string, size int64, r io.Reader) (Asset, error) {
	if slot == "" {
		return Asset{}, errors.New("missing media slot")
	}
	kind, err := s.Limits.Validate(slot, contentType, size)
	if err != nil {
		return Asset{}, err
	}
	if s.Uploader == nil {
		return Asset{}, errors.New("media uploads not configured")
	}
	a, err := s.Uploader.Upload(ctx, r, slot, kind)
	if err != nil {
		return Asset{}, err
	}

	// read-modify-write; only one admin edits media at a time in practice
	m, err := settings.Media.Get(ctx, s.Settings)
	if err != nil {
		return Asset{}, fmt.Errorf("load section media: %w", err)
	}
	if m == nil {
		m = settings.SectionMedia{}
	}
	m[slot] = settings.MediaRef{URL: a.URL, Type: string(a.Kind), PublicID: a.PublicID}
	if err := settings.Media.Save(ctx, s.Settings, m); err != nil {
		return Asset{}, fmt.Errorf("save section media: %w", err)
	}
	s.Log.Info("media uploaded", zap.String("slot", slot), zap.String("kind", string(kind)), zap.Int64("bytes", size))
	return a, nil
}
