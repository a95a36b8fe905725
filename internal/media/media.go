package media

import (
	"context"
	"errors"
	"io"
)

var (
	ErrUnknownFolder = errors.New("unknown media folder")
	ErrNotFound      = errors.New("media object not found")
	ErrForeignURL    = errors.New("url not managed by this store")
)

// Folders accepted by the upload surface.
const (
	FolderCovers   = "covers"
	FolderLogos    = "logos"
	FolderPodcasts = "podcasts"
)

// KnownFolder reports whether folder is one of the accepted upload folders.
func KnownFolder(folder string) bool {
	switch folder {
	case FolderCovers, FolderLogos, FolderPodcasts:
		return true
	}
	return false
}

// Store persists uploaded images and hands back publicly resolvable URLs.
// Delete accepts a URL previously returned by Save.
type Store interface {
	Save(ctx context.Context, folder, mimeType string, r io.Reader) (url string, err error)
	Delete(ctx context.Context, url string) error
}
