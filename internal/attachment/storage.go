// Package attachment stores uploaded images and reconciles them with the
// image paths an entity already holds.
package attachment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/fekuna/omnipos-directory-service/internal/apperror"
)

var (
	ErrNotImage     = errors.New("Only images are allowed!")
	ErrFileTooLarge = errors.New("File too large")
)

// File is one uploaded part handed to a Storage backend.
type File struct {
	Field       string
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Storage persists a file and returns the path or URL clients use to fetch it.
type Storage interface {
	Save(ctx context.Context, f File) (string, error)
}

// Remover is implemented by storages that can delete a stored file by the
// path Save returned.
type Remover interface {
	Remove(ctx context.Context, path string) error
}

// Files maps a form field name to the stored paths of its files, in upload order.
type Files map[string][]string

// First returns the first stored path for field.
func (f Files) First(field string) (string, bool) {
	paths := f[field]
	if len(paths) == 0 {
		return "", false
	}
	return paths[0], true
}

var allowedImage = regexp.MustCompile(`jpeg|jpg|png|gif`)

// CheckImage applies the upload filter: extension and content type must both
// name an image type, and the size must be within max.
func CheckImage(name, contentType string, size, max int64) error {
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedImage.MatchString(ext) || !allowedImage.MatchString(strings.ToLower(contentType)) {
		return ErrNotImage
	}
	if max > 0 && size > max {
		return ErrFileTooLarge
	}
	return nil
}

type Collector struct {
	storage  Storage
	maxBytes int64
}

func NewCollector(storage Storage, maxBytes int64) *Collector {
	return &Collector{storage: storage, maxBytes: maxBytes}
}

// Collect validates every file part of form before storing any of them, then
// saves them field by field. Rejected files come back as validation errors.
// A nil form yields empty Files.
func (c *Collector) Collect(ctx context.Context, form *multipart.Form) (Files, error) {
	files := Files{}
	if form == nil || len(form.File) == 0 {
		return files, nil
	}

	fields := make([]string, 0, len(form.File))
	for field, headers := range form.File {
		for _, fh := range headers {
			if err := CheckImage(fh.Filename, fh.Header.Get("Content-Type"), fh.Size, c.maxBytes); err != nil {
				return nil, &apperror.Error{Code: apperror.CodeValidation, Message: err.Error(), Cause: err}
			}
		}
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		for _, fh := range form.File[field] {
			path, err := c.save(ctx, field, fh)
			if err != nil {
				return nil, errors.Join(err, c.discard(ctx, files))
			}
			files[field] = append(files[field], path)
		}
	}
	return files, nil
}

// discard removes files saved earlier in a failed Collect. Storages without
// Remover keep them.
func (c *Collector) discard(ctx context.Context, files Files) error {
	rm, ok := c.storage.(Remover)
	if !ok {
		return nil
	}
	var errs []error
	for _, paths := range files {
		for _, p := range paths {
			if err := rm.Remove(context.WithoutCancel(ctx), p); err != nil {
				errs = append(errs, fmt.Errorf("remove upload %s: %w", p, err))
			}
		}
	}
	return errors.Join(errs...)
}

func (c *Collector) save(ctx context.Context, field string, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer src.Close()

	path, err := c.storage.Save(ctx, File{
		Field:       field,
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        src,
	})
	if err != nil {
		return "", fmt.Errorf("store upload %s: %w", fh.Filename, err)
	}
	return path, nil
}
