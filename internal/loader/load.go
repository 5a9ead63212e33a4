// Package loader turns directories on disk into history listings.
package loader

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"pkt.systems/pslog"

	fsutil "github.com/kk-code-lab/rtab/internal/fs"
	"github.com/kk-code-lab/rtab/internal/history"
	"github.com/kk-code-lab/rtab/internal/tab"
)

// readDirFn mirrors fs.ReadDir but is overridable in tests.
var readDirFn = fsutil.ReadDir

// Load reads path and builds a listing shaped by opts.
func Load(ctx context.Context, path string, opts tab.DisplayOptions) (*history.DirList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := readDirFn(path)
	if err != nil {
		return nil, err
	}
	entries = Filter(entries, opts)
	fsutil.Sort(entries, opts.Sort)
	return history.NewDirList(path, entries), nil
}

// Reload reads prev's directory again, keeping the selected entry and the
// scroll offset when the entry still exists.
func Reload(ctx context.Context, prev *history.DirList, opts tab.DisplayOptions) (*history.DirList, error) {
	next, err := Load(ctx, prev.Path, opts)
	if err != nil {
		return nil, err
	}
	restoreSelection(prev, next)
	return next, nil
}

func restoreSelection(prev, next *history.DirList) {
	next.Offset = prev.Offset
	if selected, ok := prev.SelectedPath(); ok && next.SelectPath(selected) {
		return
	}
	// The entry is gone; stay near where it was.
	if idx, ok := prev.Index(); ok {
		next.SetIndex(idx)
	}
}

// Filter drops hidden entries unless opts.ShowHidden and applies opts.Filter.
// A filter containing glob syntax is matched with doublestar, anything else
// is a substring match. Matching ignores case unless the sort is case
// sensitive.
func Filter(entries []fsutil.Entry, opts tab.DisplayOptions) []fsutil.Entry {
	pattern := opts.Filter
	fold := !opts.Sort.CaseSensitive
	if fold {
		pattern = strings.ToLower(pattern)
	}
	glob := strings.ContainsAny(pattern, "*?[{")

	out := entries[:0]
	for _, e := range entries {
		if !opts.ShowHidden && e.IsHidden() {
			continue
		}
		if pattern != "" && !matchName(e.Name, pattern, glob, fold) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func matchName(name, pattern string, glob, fold bool) bool {
	if fold {
		name = strings.ToLower(name)
	}
	if glob {
		if ok, err := doublestar.Match(pattern, name); err == nil {
			return ok
		}
	}
	return strings.Contains(name, pattern)
}

// PopulateToRoot loads path and every ancestor missing from h (or marked
// stale) in parallel, then points each ancestor's selection at the child on
// the way down. Only a failure to read path itself is returned; unreadable
// ancestors are skipped.
func PopulateToRoot(ctx context.Context, h *history.History, path string, opts tab.DisplayOptions) error {
	chain := ancestry(path)
	lists := make([]*history.DirList, len(chain))

	g, gctx := errgroup.WithContext(ctx)
	for i, dir := range chain {
		if cached, ok := h.Get(dir); ok && !cached.NeedsUpdate() {
			continue
		}
		g.Go(func() error {
			var (
				list *history.DirList
				err  error
			)
			if cached, ok := h.Get(dir); ok {
				list, err = Reload(gctx, cached, opts)
			} else {
				list, err = Load(gctx, dir, opts)
			}
			if err != nil {
				if i == 0 {
					return err
				}
				pslog.Ctx(ctx).Debug("skipping unreadable ancestor", "path", dir, "err", err)
				return nil
			}
			lists[i] = list
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return errors.Wrapf(err, "couldn't populate %s", path)
	}

	for i, list := range lists {
		if list != nil {
			h.Insert(list)
		}
		if i == 0 {
			continue
		}
		if parent, ok := h.Get(chain[i]); ok {
			parent.SelectPath(chain[i-1])
		}
	}
	return nil
}

// ancestry returns path followed by each parent up to the root.
func ancestry(path string) []string {
	path = filepath.Clean(path)
	chain := []string{path}
	for {
		parent := filepath.Dir(path)
		if parent == path {
			return chain
		}
		chain = append(chain, parent)
		path = parent
	}
}
