// Package history holds the per-tab cache of loaded directory listings.
package history

import (
	"path/filepath"
	"sort"
)

// History maps cleaned absolute paths to loaded listings. It is owned by a
// single tab and is not safe for concurrent use.
type History struct {
	lists map[string]*DirList
}

// New returns an empty history.
func New() *History {
	return &History{lists: make(map[string]*DirList)}
}

func key(path string) string {
	return filepath.Clean(path)
}

// Get returns the listing cached for path.
func (h *History) Get(path string) (*DirList, bool) {
	if h == nil {
		return nil, false
	}
	l, ok := h.lists[key(path)]
	return l, ok
}

// Contains reports whether path has a cached listing.
func (h *History) Contains(path string) bool {
	_, ok := h.Get(path)
	return ok
}

// Insert stores list under its path, replacing any previous listing.
func (h *History) Insert(list *DirList) {
	if list == nil {
		return
	}
	if h.lists == nil {
		h.lists = make(map[string]*DirList)
	}
	list.Path = key(list.Path)
	h.lists[list.Path] = list
}

// Remove drops the listing for path.
func (h *History) Remove(path string) {
	if h == nil {
		return
	}
	delete(h.lists, key(path))
}

// Len returns the number of cached listings.
func (h *History) Len() int {
	if h == nil {
		return 0
	}
	return len(h.lists)
}

// Paths returns the cached paths in sorted order.
func (h *History) Paths() []string {
	if h == nil {
		return nil
	}
	paths := make([]string, 0, len(h.lists))
	for p := range h.lists {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// MarkStale flags the listing for path, if cached.
func (h *History) MarkStale(path string) {
	if l, ok := h.Get(path); ok {
		l.MarkStale()
	}
}
