package disk

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rendypratama/invoicehub-backend/pkg/config"
	"github.com/rendypratama/invoicehub-backend/pkg/logger"
)

// Store persists uploaded image files on local disk and hands back the public
// reference path they are served under.
type Store struct {
	dir        string
	publicPath string
}

// New ensures the upload directory exists and returns a store rooted there.
func New(ctx context.Context, cfg config.UploadsConfig, logg *logger.Logger) (*Store, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("uploads directory is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating uploads directory %q: %w", cfg.Dir, err)
	}

	publicPath := cfg.PublicPath
	if publicPath == "" {
		publicPath = "/uploads"
	}
	publicPath = "/" + strings.Trim(publicPath, "/")

	if logg != nil {
		logg.Info(logg.WithField(ctx, "dir", cfg.Dir), "upload store ready")
	}

	return &Store{dir: cfg.Dir, publicPath: publicPath}, nil
}

// Dir returns the filesystem directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes the uploaded content to disk under a collision-free name and
// returns the public reference, e.g. "/uploads/image-1735810000000-a1b2c3d4.png".
func (s *Store) Save(ctx context.Context, originalName string, content io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := fmt.Sprintf("image-%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}

	if _, err := io.Copy(dst, content); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("writing upload file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("closing upload file: %w", err)
	}

	return s.publicPath + "/" + name, nil
}

// Delete removes a previously stored file by its public reference. Deleting a
// reference that no longer exists is not an error.
func (s *Store) Delete(ctx context.Context, ref string) error {
	name, err := s.fileName(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing upload %q: %w", ref, err)
	}
	return nil
}

// fileName resolves a public reference back to a bare file name, rejecting
// anything that would escape the upload directory.
func (s *Store) fileName(ref string) (string, error) {
	trimmed := strings.TrimPrefix(ref, s.publicPath+"/")
	if trimmed == ref || trimmed == "" {
		return "", fmt.Errorf("reference %q is not under %s", ref, s.publicPath)
	}
	cleaned := path.Clean(trimmed)
	if cleaned != trimmed || strings.Contains(cleaned, "/") {
		return "", fmt.Errorf("reference %q is not a valid upload name", ref)
	}
	return cleaned, nil
}
