package attachment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LocalStorage writes uploads into a directory served statically under publicPrefix.
type LocalStorage struct {
	dir          string
	publicPrefix string
	now          func() time.Time
}

func NewLocalStorage(dir, publicPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &LocalStorage{
		dir:          dir,
		publicPrefix: strings.TrimRight(publicPrefix, "/"),
		now:          time.Now,
	}, nil
}

var unsafeFieldChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// FileName builds <field>-<unix millis>-<short id><ext>. Bracketed field
// names such as serviceImages[0] are flattened to serviceImages_0.
func FileName(field, original string, at time.Time) string {
	base := strings.Trim(unsafeFieldChars.ReplaceAllString(field, "_"), "_")
	if base == "" {
		base = "file"
	}
	short := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s-%d-%s%s", base, at.UnixMilli(), short, strings.ToLower(filepath.Ext(original)))
}

func (s *LocalStorage) Save(ctx context.Context, f File) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := FileName(f.Field, f.Name, s.now())

	dst, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, f.Body); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", err
	}
	if err := dst.Close(); err != nil {
		return "", err
	}
	return path.Join(s.publicPrefix, name), nil
}

// Remove deletes a file previously returned by Save. Missing files are not an error.
func (s *LocalStorage) Remove(_ context.Context, p string) error {
	if !strings.HasPrefix(p, s.publicPrefix+"/") {
		return fmt.Errorf("path %s is outside %s", p, s.publicPrefix)
	}
	err := os.Remove(filepath.Join(s.dir, path.Base(p)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
