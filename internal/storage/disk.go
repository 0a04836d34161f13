package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/casetrail/casetrail-backend/pkg/sanitize"
)

// Store abstracts where evidence files live. The vault only needs to save a
// file under a key and remove it again if the database insert fails.
type Store interface {
	Save(key string, r io.Reader) (string, error)
	Remove(path string) error
}

// MakeObjectKey builds a per-case object key with a short random prefix so
// two uploads of the same filename never overwrite each other:
// <caseID>/<8 hex chars>_<sanitized name>
func MakeObjectKey(caseID uint, filename string) string {
	suffix := uuid.NewString()[:8]
	return path.Join(strconv.FormatUint(uint64(caseID), 10), suffix+"_"+sanitize.Filename(filename))
}

// Disk stores files under a local upload root.
type Disk struct {
	root string
}

func NewDisk(root string) *Disk { return &Disk{root: root} }

// Save writes the reader's content to <root>/<key>, creating parent
// directories as needed, and returns the full path persisted on the record.
func (d *Disk) Save(key string, r io.Reader) (string, error) {
	dst := filepath.Join(d.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("storage: mkdir: %w", err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("storage: create: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("storage: write: %w", err)
	}
	return dst, nil
}

// Remove deletes a previously saved file. Idempotent: a missing file is not
// an error (already cleaned up).
func (d *Disk) Remove(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
