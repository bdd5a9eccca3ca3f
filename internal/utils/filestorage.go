package utils

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileStorage handles saving and deleting files on local disk.
type FileStorage struct {
	BaseDir string // e.g. "./uploads"
	BaseURL string // e.g. "http://localhost:8080"
}

// NewFileStorage creates a FileStorage rooted at baseDir.
func NewFileStorage(baseDir, baseURL string) *FileStorage {
	return &FileStorage{BaseDir: baseDir, BaseURL: strings.TrimRight(baseURL, "/")}
}

// SaveFile writes the contents of reader to <BaseDir>/<subDir>/<uniqueFilename>.
// Only known image extensions from originalFilename survive into the name.
// It returns the url_suffix (relative path from BaseDir) that can be stored in DB.
func (fs *FileStorage) SaveFile(_ context.Context, subDir, originalFilename string, reader io.Reader) (string, error) {
	dir := filepath.Join(fs.BaseDir, subDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	uniqueName, err := objectName(storedExtension(originalFilename))
	if err != nil {
		return "", err
	}
	fullPath := filepath.Join(dir, uniqueName)

	out, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", fullPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", fullPath, err)
	}

	return filepath.ToSlash(filepath.Join(subDir, uniqueName)), nil
}

// DeleteFile removes the file at <BaseDir>/<urlSuffix>.
// It is safe to call if the file does not exist.
func (fs *FileStorage) DeleteFile(_ context.Context, urlSuffix string) error {
	clean := filepath.Clean(filepath.FromSlash(urlSuffix))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return fmt.Errorf("invalid file key %q", urlSuffix)
	}
	fullPath := filepath.Join(fs.BaseDir, clean)
	err := os.Remove(fullPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file %s: %w", fullPath, err)
	}
	return nil
}

func (fs *FileStorage) URL(_ context.Context, urlSuffix string) (string, error) {
	return fmt.Sprintf("%s/uploads/%s", fs.BaseURL, urlSuffix), nil
}
