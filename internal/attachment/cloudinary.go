package attachment

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorage uploads to Cloudinary and keeps the secure URL as the stored path.
type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStorage(url, folder string) (*CloudinaryStorage, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryStorage{cld: cld, folder: folder}, nil
}

func (s *CloudinaryStorage) Save(ctx context.Context, f File) (string, error) {
	name := FileName(f.Field, f.Name, time.Now())
	res, err := s.cld.Upload.Upload(ctx, f.Body, uploader.UploadParams{
		Folder:   s.folder,
		PublicID: strings.TrimSuffix(name, filepath.Ext(name)),
	})
	if err != nil {
		return "", err
	}
	if res.Error.Message != "" {
		return "", errors.New(res.Error.Message)
	}
	return res.SecureURL, nil
}

// Remove destroys the asset behind a secure URL returned by Save.
func (s *CloudinaryStorage) Remove(ctx context.Context, url string) error {
	base := path.Base(url)
	publicID := strings.TrimSuffix(base, path.Ext(base))
	if s.folder != "" {
		publicID = s.folder + "/" + publicID
	}
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return err
	}
	if res.Error.Message != "" {
		return errors.New(res.Error.Message)
	}
	return nil
}
