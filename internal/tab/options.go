package tab

import fsutil "github.com/kk-code-lab/rtab/internal/fs"

// DisplayOptions is the per-tab display configuration. The tab stores it; the
// loader and renderer interpret it.
type DisplayOptions struct {
	ShowHidden bool
	Sort       fsutil.SortOptions
	// Filter is a glob or substring matched against entry names.
	Filter string
}

// DefaultDisplayOptions hides dot-files and sorts directories first.
func DefaultDisplayOptions() DisplayOptions {
	return DisplayOptions{Sort: fsutil.DefaultSortOptions()}
}
