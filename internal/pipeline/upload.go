package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Upload is an accepted multipart audio file spooled to per-request scratch
// storage. It is owned exclusively by one request and removed when that
// request finishes, whatever the outcome.
type Upload struct {
	Name string
	Size int64
	Path string
}

// SaveUpload spools an uploaded stream into dir under a collision-free name
// that keeps the original extension. The caller owns removal.
func SaveUpload(dir, name string, r io.Reader) (Upload, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	ext := inputExt(name)
	path := filepath.Join(dir, uuid.NewString()+"."+ext)
	f, err := os.Create(path)
	if err != nil {
		return Upload{}, fmt.Errorf("create upload scratch file: %w", err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return Upload{}, fmt.Errorf("spool upload: %w", err)
	}
	return Upload{Name: name, Size: n, Path: path}, nil
}

// Remove deletes the spooled file. Safe on the zero value.
func (u Upload) Remove() {
	if u.Path != "" {
		_ = os.Remove(u.Path)
	}
}
