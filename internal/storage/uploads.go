package storage

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ImageStore deposits uploaded gift images on disk and hands back the
// public path they will be served under.
type ImageStore struct {
	dir string
}

// NewImageStore ensures the upload directory exists and returns a store
// writing into it.
func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &ImageStore{dir: dir}, nil
}

// Save writes one multipart file under a unique name and returns the
// public /uploads path referencing it.
func (s *ImageStore) Save(c *gin.Context, file *multipart.FileHeader) (string, error) {
	name := uuid.NewString() + filepath.Ext(file.Filename)
	dst := filepath.Join(s.dir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", fmt.Errorf("failed to save uploaded file: %w", err)
	}
	return "/uploads/" + name, nil
}
