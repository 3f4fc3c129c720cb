package utils

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidUpload is returned for files rejected by an UploadPolicy
var ErrInvalidUpload = errors.New("invalid upload")

// multipartMemory is the part of a form kept in memory while parsing
const multipartMemory = 10 << 20

// formOverhead leaves room for text fields next to a size-limited file
const formOverhead = 1 << 20

// UploadPolicy describes one family of image uploads
type UploadPolicy struct {
	Field      string   // form field carrying the file
	Subdir     string   // directory below the public root, also the URL prefix
	Allowed    []string // extensions and image/* subtypes, without dot
	MaxBytes   int64    // 0 means unlimited
	NamePrefix string
}

var (
	// ChampionImages accepts champion photos
	ChampionImages = UploadPolicy{
		Field:   "image",
		Subdir:  "championsImage",
		Allowed: []string{"jpeg", "jpg", "png", "webp"},
	}
	// SchoolImages accepts school pictures up to 5MB
	SchoolImages = UploadPolicy{
		Field:      "img",
		Subdir:     "ftc",
		Allowed:    []string{"jpeg", "jpg", "png", "gif", "webp"},
		MaxBytes:   5 << 20,
		NamePrefix: "img-",
	}
)

func (p UploadPolicy) allows(kind string) bool {
	for _, a := range p.Allowed {
		if a == kind {
			return true
		}
	}
	return false
}

func (p UploadPolicy) rejectMessage() string {
	return fmt.Sprintf("only image files (%s) are allowed", strings.Join(p.Allowed, ", "))
}

// ImageStore keeps uploaded images below a public directory
type ImageStore struct {
	root string
}

// NewImageStore creates the store and the directory of every policy
func NewImageStore(root string, policies ...UploadPolicy) (*ImageStore, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, errors.New("upload: public directory is required")
	}
	for _, p := range policies {
		if err := os.MkdirAll(filepath.Join(root, p.Subdir), 0o755); err != nil {
			return nil, fmt.Errorf("upload: ensure directory: %w", err)
		}
	}
	return &ImageStore{root: root}, nil
}

// Root returns the public directory
func (s *ImageStore) Root() string {
	return s.root
}

// Save parses the request form and stores the single file found under
// p.Field. It returns the public URL of the stored file, or "" when the
// request carries no file. Text fields stay available through r.FormValue.
func (s *ImageStore) Save(w http.ResponseWriter, r *http.Request, p UploadPolicy) (string, error) {
	if p.MaxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, p.MaxBytes+formOverhead)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", fmt.Errorf("%w: file too large", ErrInvalidUpload)
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidUpload, err)
	}

	files := r.MultipartForm.File[p.Field]
	if len(files) == 0 {
		return "", nil
	}
	if len(files) > 1 {
		return "", fmt.Errorf("%w: only one file may be sent as %q", ErrInvalidUpload, p.Field)
	}
	fh := files[0]
	if p.MaxBytes > 0 && fh.Size > p.MaxBytes {
		return "", fmt.Errorf("%w: file too large", ErrInvalidUpload)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	ctype := strings.ToLower(fh.Header.Get("Content-Type"))
	if !p.allows(strings.TrimPrefix(ext, ".")) ||
		!strings.HasPrefix(ctype, "image/") ||
		!p.allows(strings.TrimPrefix(ctype, "image/")) {
		return "", fmt.Errorf("%w: %s", ErrInvalidUpload, p.rejectMessage())
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("upload: open part: %w", err)
	}
	defer src.Close()

	name := fmt.Sprintf("%s%d-%s%s", p.NamePrefix, time.Now().UnixMilli(), uuid.NewString(), ext)
	dir := filepath.Join(s.root, p.Subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("upload: ensure directory: %w", err)
	}
	full := filepath.Join(dir, name)
	if err := writeFile(full, src); err != nil {
		return "", err
	}
	return path.Join("/", p.Subdir, name), nil
}

// writeFile copies src into a new file at full. A partial file is removed.
func writeFile(full string, src io.Reader) error {
	dst, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("upload: create file: %w", err)
	}
	_, err = io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(full)
		return fmt.Errorf("upload: write file: %w", err)
	}
	return nil
}

// Remove deletes the file behind a public URL. Empty URLs and files that
// are already gone are not errors.
func (s *ImageStore) Remove(url string) error {
	if strings.TrimSpace(url) == "" {
		return nil
	}
	rel := path.Clean("/" + strings.ReplaceAll(url, "\\", "/"))
	if rel == "/" {
		return nil
	}
	full := filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(rel, "/")))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("upload: remove file: %w", err)
	}
	return nil
}
