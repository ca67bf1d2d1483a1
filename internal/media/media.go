// Package media defines the upload gateway the core depends on and a
// local-disk implementation of it.
package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrUploadFailed wraps any storage failure behind the gateway.
var ErrUploadFailed = errors.New("upload failed")

// maxUploadSize bounds accepted files at 10MB.
const maxUploadSize = 10 * 1024 * 1024

// Uploader accepts a binary file and returns a stable URL. The core
// only needs this narrow contract; storage specifics live behind it.
type Uploader interface {
	Upload(ctx context.Context, filename string, content []byte) (string, error)
}

// DiskUploader stores uploads under a local directory and serves them
// from a configured base URL.
type DiskUploader struct {
	dir     string
	baseURL string
}

// NewDiskUploader returns a DiskUploader writing into dir.
func NewDiskUploader(dir, baseURL string) *DiskUploader {
	return &DiskUploader{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

// Upload writes content to disk under a collision-free name and
// returns its public URL.
func (u *DiskUploader) Upload(ctx context.Context, filename string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(content) == 0 {
		return "", fmt.Errorf("%w: empty file", ErrUploadFailed)
	}
	if len(content) > maxUploadSize {
		return "", fmt.Errorf("%w: file exceeds %d bytes", ErrUploadFailed, maxUploadSize)
	}

	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(u.dir, name), content, 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	return u.baseURL + "/" + name, nil
}
