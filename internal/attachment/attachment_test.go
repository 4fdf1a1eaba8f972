package attachment

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fekuna/omnipos-directory-service/internal/model"
)

type memStorage struct {
	saved map[string][]byte
	n     int
}

func (m *memStorage) Save(_ context.Context, f File) (string, error) {
	if m.saved == nil {
		m.saved = map[string][]byte{}
	}
	b, err := io.ReadAll(f.Body)
	if err != nil {
		return "", err
	}
	m.n++
	p := fmt.Sprintf("/uploads/stores/%s-%d%s", f.Field, m.n, filepath.Ext(f.Name))
	m.saved[p] = b
	return p, nil
}

type part struct {
	field, name, contentType, body string
}

func buildForm(t *testing.T, parts ...part) *multipart.Form {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, p := range parts {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, p.field, p.name))
		h.Set("Content-Type", p.contentType)
		pw, err := w.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}
		pw.Write([]byte(p.body))
	}
	w.Close()
	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatal(err)
	}
	return form
}

func TestMergeSingle(t *testing.T) {
	files := Files{"coverImage": {"/uploads/stores/new.png"}}
	if got := MergeSingle("/old.png", files, "coverImage"); got != "/uploads/stores/new.png" {
		t.Fatalf("cover = %q, want new upload", got)
	}
	if got := MergeSingle("/old-logo.png", files, "logoImage"); got != "/old-logo.png" {
		t.Fatalf("logo = %q, want existing kept", got)
	}
}

func TestMergeGalleryAppends(t *testing.T) {
	files := Files{"galleryImages": {"/g2.png", "/g3.png"}}
	got := MergeGallery([]string{"/g1.png"}, files, "galleryImages")
	want := []string{"/g1.png", "/g2.png", "/g3.png"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("gallery = %v, want %v", got, want)
	}
}

func TestMergeItemsPreservesExistingImageByID(t *testing.T) {
	existing := model.StoreItems{
		{ID: "svc-a", Title: "Haircut", Image: "/uploads/stores/a.png"},
		{ID: "svc-b", Title: "Shave", Image: "/uploads/stores/b.png"},
	}
	// Reordered and without images, as the dashboard sends them.
	submitted := model.StoreItems{
		{ID: "svc-b", Title: "Shave"},
		{ID: "svc-a", Title: "Haircut deluxe"},
	}
	got := MergeItems(existing, submitted, Files{}, "serviceImages")
	if got[0].Image != "/uploads/stores/b.png" || got[1].Image != "/uploads/stores/a.png" {
		t.Fatalf("images = %q, %q, want b then a", got[0].Image, got[1].Image)
	}
	if got[1].Title != "Haircut deluxe" {
		t.Fatalf("title = %q, want submitted title", got[1].Title)
	}
}

func TestMergeItemsFileMatching(t *testing.T) {
	existing := model.StoreItems{{ID: "svc-a", Image: "/a.png"}}
	submitted := model.StoreItems{
		{ID: "svc-a", Title: "A"},
		{Title: "B"},
		{Title: "C", Image: "https://cdn.example/c.png"},
	}
	files := Files{
		"serviceImages[svc-a]": {"/by-id.png"},
		"serviceImages[1]":     {"/by-index.png"},
	}
	got := MergeItems(existing, submitted, files, "serviceImages")
	if got[0].Image != "/by-id.png" {
		t.Fatalf("item 0 image = %q, want id-tagged file", got[0].Image)
	}
	if got[1].Image != "/by-index.png" {
		t.Fatalf("item 1 image = %q, want index-tagged file", got[1].Image)
	}
	if got[2].Image != "https://cdn.example/c.png" {
		t.Fatalf("item 2 image = %q, want submitted image", got[2].Image)
	}
	if got[1].ID == "" || got[2].ID == "" {
		t.Fatal("new items were not assigned ids")
	}
	if got[0].ID != "svc-a" {
		t.Fatalf("existing id changed to %q", got[0].ID)
	}
}

func TestMergeItemsUntaggedPositional(t *testing.T) {
	submitted := model.StoreItems{{Title: "A"}, {Title: "B"}}
	files := Files{"productImages": {"/p0.png"}}
	got := MergeItems(nil, submitted, files, "productImages")
	if got[0].Image != "/p0.png" || got[1].Image != "" {
		t.Fatalf("images = %q, %q, want /p0.png and empty", got[0].Image, got[1].Image)
	}
}

func TestCheckImage(t *testing.T) {
	if err := CheckImage("a.PNG", "image/png", 10, 100); err != nil {
		t.Fatalf("png rejected: %v", err)
	}
	if err := CheckImage("a.pdf", "application/pdf", 10, 100); !errors.Is(err, ErrNotImage) {
		t.Fatalf("pdf err = %v, want ErrNotImage", err)
	}
	if err := CheckImage("a.png", "text/plain", 10, 100); !errors.Is(err, ErrNotImage) {
		t.Fatalf("mismatched type err = %v, want ErrNotImage", err)
	}
	if err := CheckImage("a.jpg", "image/jpeg", 101, 100); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("oversize err = %v, want ErrFileTooLarge", err)
	}
}

func TestCollectorStoresEveryPart(t *testing.T) {
	form := buildForm(t,
		part{"galleryImages", "g1.png", "image/png", "one"},
		part{"galleryImages", "g2.jpg", "image/jpeg", "two"},
		part{"logoImage", "logo.gif", "image/gif", "logo"},
	)
	store := &memStorage{}
	files, err := NewCollector(store, 1024).Collect(context.Background(), form)
	if err != nil {
		t.Fatalf("Collect error: %v", err)
	}
	if len(files["galleryImages"]) != 2 {
		t.Fatalf("gallery files = %v, want 2", files["galleryImages"])
	}
	if _, ok := files.First("logoImage"); !ok {
		t.Fatal("logo not collected")
	}
	if len(store.saved) != 3 {
		t.Fatalf("saved %d files, want 3", len(store.saved))
	}
}

func TestCollectorRejectsBeforeSaving(t *testing.T) {
	form := buildForm(t,
		part{"coverImage", "c.png", "image/png", "ok"},
		part{"logoImage", "notes.txt", "text/plain", "nope"},
	)
	store := &memStorage{}
	if _, err := NewCollector(store, 1024).Collect(context.Background(), form); !errors.Is(err, ErrNotImage) {
		t.Fatalf("err = %v, want ErrNotImage", err)
	}
	if len(store.saved) != 0 {
		t.Fatalf("saved %d files before rejecting", len(store.saved))
	}
}

func TestLocalStorageSave(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "/uploads/stores/")
	if err != nil {
		t.Fatal(err)
	}
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }

	p, err := s.Save(context.Background(), File{Field: "serviceImages[0]", Name: "Cut.JPG", Body: strings.NewReader("img")})
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if !strings.HasPrefix(p, "/uploads/stores/serviceImages_0-1700000000000-") || !strings.HasSuffix(p, ".jpg") {
		t.Fatalf("path = %q", p)
	}
	b, err := os.ReadFile(filepath.Join(dir, filepath.Base(p)))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "img" {
		t.Fatalf("content = %q, want img", b)
	}
}

// failingStorage saves to disk until the named field, which it refuses.
type failingStorage struct {
	*LocalStorage
	failField string
}

func (f failingStorage) Save(ctx context.Context, file File) (string, error) {
	if file.Field == f.failField {
		return "", errors.New("disk full")
	}
	return f.LocalStorage.Save(ctx, file)
}

func TestCollectorRemovesSavedFilesOnFailure(t *testing.T) {
	dir := t.TempDir()
	local, err := NewLocalStorage(dir, "/uploads/stores")
	if err != nil {
		t.Fatal(err)
	}
	form := buildForm(t,
		part{"coverImage", "c.png", "image/png", "cover"},
		part{"galleryImages", "g.png", "image/png", "gallery"},
		part{"logoImage", "l.png", "image/png", "logo"},
	)

	_, err = NewCollector(failingStorage{LocalStorage: local, failField: "logoImage"}, 1024).Collect(context.Background(), form)
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("err = %v, want disk full", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("%d files left behind after a failed upload", len(entries))
	}
}

func TestLocalStorageRemove(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "/uploads/stores")
	if err != nil {
		t.Fatal(err)
	}
	p, err := s.Save(context.Background(), File{Field: "logoImage", Name: "l.png", Body: strings.NewReader("img")})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Remove(context.Background(), p); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, filepath.Base(p))); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("file still present: %v", err)
	}
	if err := s.Remove(context.Background(), p); err != nil {
		t.Fatalf("second Remove error: %v", err)
	}
	if err := s.Remove(context.Background(), "/elsewhere/x.png"); err == nil {
		t.Fatal("expected error for a path outside the prefix")
	}
}
