package filestorage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

type FileStorageInterface interface {
	Save(file io.Reader, originalFileName string, prefix string) (filePath string, err error)
	Delete(filePath string) error
}

// LocalFileStorage writes files under basePath/prefix/yyyy/mm/dd.
type LocalFileStorage struct {
	basePath  string
	publicURL string
}

func NewLocalFileStorage(basePath string) (FileStorageInterface, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &LocalFileStorage{basePath: basePath, publicURL: "/uploads/"}, nil
}

func (s *LocalFileStorage) Save(file io.Reader, originalFileName string, prefix string) (string, error) {
	now := time.Now()
	ext := strings.ToLower(filepath.Ext(originalFileName))
	name := fmt.Sprintf("%s-%s%s", now.Format("2006-01-02"), uuid.NewString(), ext)

	datePath := now.Format("2006/01/02")
	dir := filepath.Join(s.basePath, prefix, datePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		return "", err
	}
	return filepath.ToSlash(filepath.Join(prefix, datePath, name)), nil
}

// Delete accepts either a stored relative path or its public "/uploads/..." URL.
// Missing files are not an error.
func (s *LocalFileStorage) Delete(fileURL string) error {
	relative := filepath.Clean("/" + strings.TrimPrefix(fileURL, s.publicURL))
	fullPath := filepath.Join(s.basePath, relative)

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
