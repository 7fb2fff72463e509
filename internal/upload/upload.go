// Package upload stores attachment files on local disk and extracts Open
// Graph thumbnails from external links.
package upload

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/SBleeyouk/deepfake-daily/pkg/errors"
)

// Saver writes uploaded attachments under a public directory.
type Saver struct {
	dir     string
	maxSize int64
}

// NewSaver ensures the upload directory exists.
func NewSaver(dir string, maxSize int64) (*Saver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Saver{dir: dir, maxSize: maxSize}, nil
}

// Dir returns the directory uploads are written to.
func (s *Saver) Dir() string {
	return s.dir
}

// Save persists a multipart file under a collision-free name and returns
// the public URL path it will be served from.
func (s *Saver) Save(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > s.maxSize {
		return "", errors.NewUploadTooLarge(file.Size, s.maxSize)
	}

	name := uuid.NewString() + filepath.Ext(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(s.dir, name)); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	return "/uploads/" + name, nil
}
