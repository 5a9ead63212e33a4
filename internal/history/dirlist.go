package history

import (
	"path/filepath"
	"time"

	fsutil "github.com/kk-code-lab/rtab/internal/fs"
)

// NoSelection marks a listing without a selected entry.
const NoSelection = -1

// DirList is one loaded directory: its entries in display order plus the
// selection and viewport state the UI keeps for it.
type DirList struct {
	Path     string
	Contents []fsutil.Entry
	Offset   int
	LoadedAt time.Time

	index int
	stale bool
}

// NewDirList builds a listing for path. The first entry is selected when the
// listing is non-empty.
func NewDirList(path string, contents []fsutil.Entry) *DirList {
	l := &DirList{
		Path:     filepath.Clean(path),
		Contents: contents,
		LoadedAt: time.Now(),
		index:    NoSelection,
	}
	if len(contents) > 0 {
		l.index = 0
	}
	return l
}

// Len returns the number of entries.
func (l *DirList) Len() int {
	return len(l.Contents)
}

// Index returns the selected index, if any.
func (l *DirList) Index() (int, bool) {
	if l.index == NoSelection {
		return 0, false
	}
	return l.index, true
}

// SetIndex selects idx, clamped to the listing. An empty listing has no
// selection.
func (l *DirList) SetIndex(idx int) {
	if len(l.Contents) == 0 {
		l.index = NoSelection
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(l.Contents) {
		idx = len(l.Contents) - 1
	}
	l.index = idx
}

// ClearIndex drops the selection.
func (l *DirList) ClearIndex() {
	l.index = NoSelection
}

// Selected returns the selected entry. A selection that no longer fits the
// entries reports nothing.
func (l *DirList) Selected() (*fsutil.Entry, bool) {
	idx, ok := l.Index()
	if !ok || idx >= len(l.Contents) {
		return nil, false
	}
	return &l.Contents[idx], true
}

// SelectedPath returns the path of the selected entry.
func (l *DirList) SelectedPath() (string, bool) {
	entry, ok := l.Selected()
	if !ok {
		return "", false
	}
	return entry.Path(), true
}

// IndexOf returns the position of the entry at path, or -1.
func (l *DirList) IndexOf(path string) int {
	path = filepath.Clean(path)
	for i := range l.Contents {
		if l.Contents[i].Path() == path {
			return i
		}
	}
	return -1
}

// SelectPath selects the entry at path and reports whether it was found.
func (l *DirList) SelectPath(path string) bool {
	idx := l.IndexOf(path)
	if idx < 0 {
		return false
	}
	l.index = idx
	return true
}

// MarkStale flags the listing for reload. Loaders decide when to act on it.
func (l *DirList) MarkStale() {
	l.stale = true
}

// NeedsUpdate reports whether the listing was marked stale.
func (l *DirList) NeedsUpdate() bool {
	return l.stale
}

// ScrollTo adjusts Offset so the selection is visible in a viewport of the
// given height.
func (l *DirList) ScrollTo(height int) {
	idx, ok := l.Index()
	if !ok || height <= 0 {
		l.Offset = 0
		return
	}
	if idx < l.Offset {
		l.Offset = idx
	}
	if idx >= l.Offset+height {
		l.Offset = idx - height + 1
	}
	if maxOffset := len(l.Contents) - height; l.Offset > maxOffset {
		l.Offset = maxOffset
	}
	if l.Offset < 0 {
		l.Offset = 0
	}
}
