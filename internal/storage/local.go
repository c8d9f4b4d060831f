// Package storage persists uploaded media on the local filesystem and
// serves it back through the /uploads static route.
package storage

import (
	"bytes"
	"fmt"
	"image"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"azeyco/internal/middleware"
	"azeyco/internal/models"
	"azeyco/internal/observability"

	"github.com/google/uuid"

	// Register decoders so DecodeConfig recognizes every accepted format.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Upload kinds map to subdirectories under the upload root.
const (
	KindProfilePicture = "profile-pictures"
	KindCoverPicture   = "cover-pictures"
	KindPostMedia      = "posts"
)

// Size limits per upload kind.
const (
	MaxProfilePictureBytes = 5 * 1024 * 1024
	MaxCoverPictureBytes   = 10 * 1024 * 1024
	MaxPostMediaBytes      = 2 * 1024 * 1024
)

var extensionByMime = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// LocalStore writes uploads under a root directory.
type LocalStore struct {
	root string
}

// NewLocalStore creates the upload directories and returns the store.
func NewLocalStore(root string) (*LocalStore, error) {
	for _, kind := range []string{KindProfilePicture, KindCoverPicture, KindPostMedia} {
		if err := os.MkdirAll(filepath.Join(root, kind), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create upload directory: %w", err)
		}
	}
	return &LocalStore{root: root}, nil
}

// Root returns the upload root directory.
func (s *LocalStore) Root() string {
	return s.root
}

// SaveImage validates content as an image within maxBytes and writes it under
// the kind directory with a random name. It returns the public URL path.
func (s *LocalStore) SaveImage(kind string, content []byte, maxBytes int64) (string, error) {
	if len(content) == 0 {
		observability.UploadRejections.WithLabelValues("empty").Inc()
		return "", models.NewValidationError("No file uploaded")
	}
	if int64(len(content)) > maxBytes {
		observability.UploadRejections.WithLabelValues("too_large").Inc()
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", maxBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(content)
	ext, ok := extensionByMime[detectedType]
	if !ok {
		observability.UploadRejections.WithLabelValues("mime").Inc()
		return "", models.NewValidationError("Only image files are allowed")
	}

	// DetectContentType only sniffs magic bytes; make sure the payload
	// actually decodes as an image before persisting it.
	if _, _, err := image.DecodeConfig(bytes.NewReader(content)); err != nil {
		observability.UploadRejections.WithLabelValues("decode").Inc()
		return "", models.NewValidationError("Invalid image file")
	}

	name := uuid.NewString() + ext
	path := filepath.Join(s.root, kind, name)
	if err := os.WriteFile(path, content, 0o640); err != nil {
		return "", models.NewInternalError(err)
	}
	observability.UploadBytes.WithLabelValues(kind).Add(float64(len(content)))

	return "/uploads/" + kind + "/" + name, nil
}

// Remove deletes a previously stored file by its public URL path. Failures
// are logged but never surfaced; the database record is authoritative.
func (s *LocalStore) Remove(urlPath string) {
	rel := strings.TrimPrefix(urlPath, "/uploads/")
	if rel == "" || rel == urlPath {
		return
	}
	rel = filepath.Clean(rel)
	if strings.HasPrefix(rel, "..") {
		return
	}
	path := filepath.Join(s.root, rel)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		middleware.Logger.Warn("failed to remove uploaded file", "path", path, "error", err)
	}
}
