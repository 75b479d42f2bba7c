package handlers

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// saveTempUpload spools a multipart file into the temp upload directory and
// returns its path plus a cleanup function. Callers must defer cleanup so
// the temp file is removed on every exit path.
func saveTempUpload(c *gin.Context, file *multipart.FileHeader, dir string) (string, func(), error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", nil, fmt.Errorf("failed to create temp upload dir: %w", err)
	}

	path := filepath.Join(dir, uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", nil, fmt.Errorf("failed to save uploaded file: %w", err)
	}

	cleanup := func() { _ = os.Remove(path) }
	return path, cleanup, nil
}
