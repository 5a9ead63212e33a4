// Package tab holds the navigation state of a single browser tab: where the
// user is, where they were, and the listings loaded so far.
package tab

import (
	"path/filepath"

	"github.com/kk-code-lab/rtab/internal/history"
)

// Lookup is the outcome of a parent lookup.
type Lookup int

const (
	// LookupNoParent means the current directory is a root.
	LookupNoParent Lookup = iota
	// LookupNotCached means the parent exists but has not been loaded.
	LookupNotCached
	// LookupFound means the parent listing is cached.
	LookupFound
)

func (l Lookup) String() string {
	switch l {
	case LookupNoParent:
		return "no-parent"
	case LookupNotCached:
		return "not-cached"
	case LookupFound:
		return "found"
	}
	return "unknown"
}

// Tab is one navigation context. M is the preview metadata type stored per
// path; the tab never looks inside it.
//
// A Tab is not safe for concurrent use.
type Tab[M any] struct {
	cwd         string
	previousCwd string
	hasPrevious bool
	history     *history.History
	metadata    map[string]M
	options     DisplayOptions
	notifier    Notifier
}

// Option configures optional collaborators at construction.
type Option func(*settings)

type settings struct {
	notifier Notifier
}

// WithNotifier registers a hook told about every directory change.
func WithNotifier(n Notifier) Option {
	return func(s *settings) {
		s.notifier = n
	}
}

// New creates a tab at cwd over an existing history. The error is reserved for
// validation and is currently always nil.
func New[M any](cwd string, h *history.History, opts DisplayOptions, extra ...Option) (*Tab[M], error) {
	var s settings
	for _, o := range extra {
		o(&s)
	}
	if h == nil {
		h = history.New()
	}
	return &Tab[M]{
		cwd:      filepath.Clean(cwd),
		history:  h,
		metadata: make(map[string]M),
		options:  opts,
		notifier: s.notifier,
	}, nil
}

// Cwd returns the current directory.
func (t *Tab[M]) Cwd() string {
	return t.cwd
}

// SetCwd records the current directory as previous and moves to path. It
// does not touch the history or check that path exists.
func (t *Tab[M]) SetCwd(path string) {
	t.previousCwd = t.cwd
	t.hasPrevious = true
	t.cwd = filepath.Clean(path)

	t.notify()
}

// notify tells the notifier about cwd. Errors and panics are dropped.
func (t *Tab[M]) notify() {
	if t.notifier == nil {
		return
	}
	defer func() { _ = recover() }()
	_ = t.notifier.Notify(t.cwd)
}

// PreviousCwd returns the directory before the most recent change.
func (t *Tab[M]) PreviousCwd() (string, bool) {
	return t.previousCwd, t.hasPrevious
}

// History returns the tab's listing cache.
func (t *Tab[M]) History() *history.History {
	return t.history
}

// SetHistory replaces the listing cache.
func (t *Tab[M]) SetHistory(h *history.History) {
	t.history = h
}

// Metadata returns the preview metadata map. Callers may mutate it directly.
func (t *Tab[M]) Metadata() map[string]M {
	return t.metadata
}

// SetMetadata replaces the preview metadata map.
func (t *Tab[M]) SetMetadata(m map[string]M) {
	if m == nil {
		m = make(map[string]M)
	}
	t.metadata = m
}

// Options returns a copy of the display options.
func (t *Tab[M]) Options() DisplayOptions {
	return t.options
}

// OptionsRef returns the display options for in-place edits.
func (t *Tab[M]) OptionsRef() *DisplayOptions {
	return &t.options
}

// SetOptions replaces the display options.
func (t *Tab[M]) SetOptions(opts DisplayOptions) {
	t.options = opts
}

// parentPath returns the parent of cwd; roots have none.
func (t *Tab[M]) parentPath() (string, bool) {
	parent := filepath.Dir(t.cwd)
	if parent == t.cwd {
		return "", false
	}
	return parent, true
}

// childPath follows the current listing's selection to an entry path.
func (t *Tab[M]) childPath() (string, bool) {
	curr, ok := t.CurrentList()
	if !ok {
		return "", false
	}
	return curr.SelectedPath()
}

// CurrentList returns the cached listing of the current directory.
func (t *Tab[M]) CurrentList() (*history.DirList, bool) {
	return t.history.Get(t.cwd)
}

// ParentList returns the cached listing of the parent directory. A root and
// an unloaded parent both report false; see ParentLookup.
func (t *Tab[M]) ParentList() (*history.DirList, bool) {
	parent, ok := t.parentPath()
	if !ok {
		return nil, false
	}
	return t.history.Get(parent)
}

// ParentLookup distinguishes a root from a parent that is not loaded yet.
func (t *Tab[M]) ParentLookup() Lookup {
	parent, ok := t.parentPath()
	if !ok {
		return LookupNoParent
	}
	if !t.history.Contains(parent) {
		return LookupNotCached
	}
	return LookupFound
}

// ChildList returns the cached listing of the selected entry in the current
// directory.
func (t *Tab[M]) ChildList() (*history.DirList, bool) {
	path, ok := t.childPath()
	if !ok {
		return nil, false
	}
	return t.history.Get(path)
}

// UpdateCurrentList runs fn on the cached current listing.
func (t *Tab[M]) UpdateCurrentList(fn func(*history.DirList)) bool {
	return apply(t.CurrentList, fn)
}

// UpdateParentList runs fn on the cached parent listing.
func (t *Tab[M]) UpdateParentList(fn func(*history.DirList)) bool {
	return apply(t.ParentList, fn)
}

// UpdateChildList runs fn on the cached child listing.
func (t *Tab[M]) UpdateChildList(fn func(*history.DirList)) bool {
	return apply(t.ChildList, fn)
}

func apply(get func() (*history.DirList, bool), fn func(*history.DirList)) bool {
	l, ok := get()
	if !ok {
		return false
	}
	fn(l)
	return true
}
