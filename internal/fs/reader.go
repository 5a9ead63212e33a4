package fs

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"
)

// ReadDir lists a directory in on-disk order. Names are NFC-normalised and
// symlinks report the kind of their target. Entries the platform never shows
// are skipped; hidden entries are kept and left to the caller.
func ReadDir(dirPath string) ([]Entry, error) {
	dirPath = filepath.Clean(dirPath)
	dirents, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't read directory %s", dirPath)
	}

	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		info, err := d.Info()
		if err != nil {
			// Removed between readdir and lstat.
			continue
		}

		rawName := d.Name()
		fullPath := filepath.Join(dirPath, rawName)
		if ShouldHideFromListing(fullPath, rawName) {
			continue
		}

		isDir := d.IsDir()
		isSymlink := info.Mode()&os.ModeSymlink != 0
		if isSymlink {
			if target, err := os.Stat(fullPath); err == nil {
				isDir = target.IsDir()
			}
		}

		entries = append(entries, Entry{
			Name:      norm.NFC.String(rawName),
			FullPath:  fullPath,
			IsDir:     isDir,
			IsSymlink: isSymlink,
			Size:      info.Size(),
			Modified:  info.ModTime(),
			Mode:      info.Mode(),
		})
	}
	return entries, nil
}
