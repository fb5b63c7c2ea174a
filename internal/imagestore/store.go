// ABOUTME: Image store for model-edited images
// ABOUTME: Saves returned image bytes to a cache directory on disk
package imagestore

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Store persists edited images so the user can open them.
type Store struct {
	cacheDir string
	lastPath string
}

// New creates a store rooted under the system temp directory.
func New() (*Store, error) {
	cacheDir := filepath.Join(os.TempDir(), "cadenza-images")
	return NewAt(cacheDir)
}

// NewAt creates a store rooted at dir.
func NewAt(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Store{cacheDir: dir}, nil
}

// Save writes image bytes under a content-hashed filename and returns
// the path. Saving identical bytes twice reuses the existing file.
func (s *Store) Save(data []byte, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("refusing to save empty image")
	}

	hash := sha256.Sum256(data)
	filename := fmt.Sprintf("%x%s", hash[:8], extensionFor(mimeType))
	path := filepath.Join(s.cacheDir, filename)

	if _, err := os.Stat(path); err == nil {
		log.Debug().Str("path", path).Msg("image cache hit")
		s.lastPath = path
		return path, nil
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	log.Info().Str("path", path).Int("bytes", len(data)).Msg("image saved")
	s.lastPath = path
	return path, nil
}

// LastPath returns the most recently saved image path.
func (s *Store) LastPath() string {
	return s.lastPath
}

// Cleanup removes the cache directory.
func (s *Store) Cleanup() error {
	return os.RemoveAll(s.cacheDir)
}

// extensionFor maps a MIME type to a file extension.
func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}
