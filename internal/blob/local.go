package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes media under a directory; the development default when
// no bucket is configured
type LocalStore struct {
	root          string
	publicBaseURL string
}

// NewLocalStore creates a LocalStore rooted at dir
func NewLocalStore(dir, publicBaseURL string) *LocalStore {
	return &LocalStore{root: dir, publicBaseURL: publicBaseURL}
}

// Put writes the file, creating parent directories as needed
func (s *LocalStore) Put(_ context.Context, path string, data []byte, _ string) error {
	full := filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(path, "/")))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create media dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("write media file: %w", err)
	}
	return nil
}

// PublicURL joins the configured public base with the storage path
func (s *LocalStore) PublicURL(path string) string {
	if s.publicBaseURL == "" {
		return ""
	}
	return strings.TrimSuffix(s.publicBaseURL, "/") + "/" + strings.TrimPrefix(path, "/")
}
