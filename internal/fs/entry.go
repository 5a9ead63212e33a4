package fs

import (
	"os"
	"path/filepath"
	"time"
)

// Entry represents a single file or directory on disk.
type Entry struct {
	Name      string
	FullPath  string
	IsDir     bool
	IsSymlink bool
	Size      int64
	Modified  time.Time
	Mode      os.FileMode
}

// IsHidden reports whether the entry should be treated as hidden.
func (e Entry) IsHidden() bool {
	return IsHidden(e.FullPath, e.Name)
}

// Path returns the entry's cleaned absolute path.
func (e Entry) Path() string {
	return filepath.Clean(e.FullPath)
}
