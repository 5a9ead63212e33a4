// Package preview holds the per-path state the child pane remembers between
// visits.
package preview

// DirState is the preview memory for one directory: how far the child pane
// was scrolled and which entry was highlighted there.
type DirState struct {
	Offset   int
	Selected string
}

// Store is the tab-owned map of preview states keyed by directory path.
type Store = map[string]DirState

// Remember records state for path, dropping empty states.
func Remember(store Store, path string, state DirState) {
	if store == nil {
		return
	}
	if state == (DirState{}) {
		delete(store, path)
		return
	}
	store[path] = state
}

// Recall returns the state recorded for path.
func Recall(store Store, path string) (DirState, bool) {
	state, ok := store[path]
	return state, ok
}
