package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cimillas/aplay-admin/internal/media"
)

// Store writes uploads under basePath and serves them at baseURL.
type Store struct {
	basePath string
	baseURL  string
}

func New(basePath, baseURL string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create media directory: %w", err)
	}
	return &Store{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (s *Store) Save(ctx context.Context, folder, mimeType string, r io.Reader) (string, error) {
	if !media.KnownFolder(folder) {
		return "", media.ErrUnknownFolder
	}
	if err := os.MkdirAll(filepath.Join(s.basePath, folder), 0o755); err != nil {
		return "", fmt.Errorf("create folder: %w", err)
	}

	name := fmt.Sprintf("%d%s", time.Now().UnixNano(), mimeTypeToExt(mimeType))
	path := filepath.Join(s.basePath, folder, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close file: %w", err)
	}

	return s.baseURL + "/" + folder + "/" + name, nil
}

func (s *Store) Delete(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok {
		return media.ErrForeignURL
	}

	path, err := s.safeJoin(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return media.ErrNotFound
		}
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

// safeJoin resolves key relative to basePath and rejects directory traversal.
func (s *Store) safeJoin(key string) (string, error) {
	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}
	absPath, err := filepath.Abs(filepath.Join(s.basePath, key))
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}
	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal attempt")
	}
	return absPath, nil
}

func mimeTypeToExt(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
