package utils

import (
	"context"
	"io"
	"path/filepath"
	"strings"
)

// FileStore is implemented by FileStorage (local disk) and R2Storage.
type FileStore interface {
	SaveFile(ctx context.Context, subDir, originalFilename string, reader io.Reader) (string, error)
	DeleteFile(ctx context.Context, key string) error
	URL(ctx context.Context, key string) (string, error)
}

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageExtension maps a sniffed content type to the extension its file is
// stored under. Only the image types browsers render inline are accepted.
func ImageExtension(contentType string) (string, bool) {
	ext, ok := imageExtensions[contentType]
	return ext, ok
}

// storedExtension keeps a known image extension from filename and drops
// anything else, so a stored object is never served as markup or script.
func storedExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".jpeg" {
		ext = ".jpg"
	}
	for _, known := range imageExtensions {
		if ext == known {
			return ext
		}
	}
	return ""
}

func contentTypeFor(ext string) string {
	for ct, known := range imageExtensions {
		if ext == known {
			return ct
		}
	}
	return "application/octet-stream"
}
