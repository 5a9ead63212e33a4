package app

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"pkt.systems/pslog"

	"github.com/kk-code-lab/rtab/internal/history"
	"github.com/kk-code-lab/rtab/internal/loader"
	"github.com/kk-code-lab/rtab/internal/logx"
	"github.com/kk-code-lab/rtab/internal/preview"
	"github.com/kk-code-lab/rtab/internal/tab"
	"github.com/kk-code-lab/rtab/internal/ui/input"
	renderui "github.com/kk-code-lab/rtab/internal/ui/render"
)

// BrowserTab is the tab type the application drives.
type BrowserTab = tab.Tab[preview.DirState]

// childToken identifies the single in-flight child-pane read. Starting a new
// one cancels the previous.
const childToken = 1

// navigator applies input actions to a tab. It runs on the event loop
// goroutine; background reads come back through post.
type navigator struct {
	ctx    context.Context
	tabID  string
	tab    *BrowserTab
	async  *loader.Async
	post   func(loader.Result)
	height int

	frame        renderui.Frame
	childPending string
	openFile     func(path string) error
}

func newNavigator(ctx context.Context, tabID string, t *BrowserTab, post func(loader.Result)) *navigator {
	return &navigator{
		ctx:    ctx,
		tabID:  tabID,
		tab:    t,
		async:  loader.NewAsync(),
		post:   post,
		height: 1,
		frame:  renderui.Frame{Loading: map[string]bool{}},
	}
}

func (n *navigator) log() pslog.Logger {
	return logx.WithTab(pslog.Ctx(n.ctx), n.tabID, n.tab.Cwd())
}

// start loads the initial directory and its ancestors.
func (n *navigator) start() error {
	if err := loader.PopulateToRoot(n.ctx, n.tab.History(), n.tab.Cwd(), n.tab.Options()); err != nil {
		return err
	}
	n.scroll()
	n.requestChild()
	return nil
}

// handle applies action and reports whether the application should quit.
func (n *navigator) handle(action input.Action) bool {
	n.frame.Err = nil
	n.frame.Message = ""

	switch a := action.(type) {
	case input.QuitAction:
		return true
	case input.ResizeAction:
		n.height = renderui.PaneHeight(a.Height)
	case input.CursorMoveAction:
		n.moveBy(a.Delta)
	case input.CursorPageAction:
		n.moveBy(a.Pages * max(n.height, 1))
	case input.CursorTopAction:
		n.moveTo(func(*history.DirList) int { return 0 })
	case input.CursorBottomAction:
		n.moveTo(func(l *history.DirList) int { return l.Len() - 1 })
	case input.EnterAction:
		n.enter()
	case input.ParentAction:
		n.parent()
	case input.PreviousDirAction:
		prev, ok := n.tab.PreviousCwd()
		if !ok {
			n.frame.Message = "no previous directory"
			return false
		}
		n.changeDirectory(prev)
	case input.HomeAction:
		home, err := os.UserHomeDir()
		if err != nil {
			n.fail(errors.Wrap(err, "couldn't find home directory"))
			return false
		}
		n.changeDirectory(home)
	case input.ToggleHiddenAction:
		opts := n.tab.OptionsRef()
		opts.ShowHidden = !opts.ShowHidden
		n.refresh()
		if opts.ShowHidden {
			n.frame.Message = "showing hidden files"
		} else {
			n.frame.Message = "hiding hidden files"
		}
	case input.ReloadAction:
		n.reload()
	}
	return false
}

func (n *navigator) fail(err error) {
	n.frame.Err = err
	n.log().Warn("navigation failed", "err", err)
}

func (n *navigator) moveBy(delta int) {
	n.moveTo(func(l *history.DirList) int {
		idx, _ := l.Index()
		return idx + delta
	})
}

func (n *navigator) moveTo(target func(*history.DirList) int) {
	moved := n.tab.UpdateCurrentList(func(l *history.DirList) {
		l.SetIndex(target(l))
		l.ScrollTo(n.height)
	})
	if moved {
		n.requestChild()
	}
}

func (n *navigator) scroll() {
	n.tab.UpdateCurrentList(func(l *history.DirList) { l.ScrollTo(n.height) })
}

func (n *navigator) enter() {
	curr, ok := n.tab.CurrentList()
	if !ok {
		return
	}
	entry, ok := curr.Selected()
	if !ok {
		return
	}
	if !entry.IsDir {
		if n.openFile == nil {
			n.frame.Message = "not a directory"
			return
		}
		if err := n.openFile(entry.Path()); err != nil {
			n.fail(err)
		}
		return
	}
	n.changeDirectory(entry.Path())
}

func (n *navigator) parent() {
	if n.tab.ParentLookup() == tab.LookupNoParent {
		n.frame.Message = "already at the root"
		return
	}
	n.changeDirectory(filepath.Dir(n.tab.Cwd()))
}

// changeDirectory loads path if needed and only then moves the tab there, so
// an unreadable directory leaves the tab where it was.
func (n *navigator) changeDirectory(path string) {
	path = filepath.Clean(path)
	from := n.tab.Cwd()

	if err := n.ensureLoaded(path); err != nil {
		n.fail(err)
		return
	}
	n.tab.SetCwd(path)
	if err := loader.PopulateToRoot(n.ctx, n.tab.History(), path, n.tab.Options()); err != nil {
		n.fail(err)
	}
	// Coming up from a child keeps it highlighted.
	if filepath.Dir(from) == path {
		n.tab.UpdateCurrentList(func(l *history.DirList) { l.SelectPath(from) })
	}
	n.scroll()
	n.log().Debug("changed directory", "from", from)
	n.requestChild()
}

func (n *navigator) ensureLoaded(path string) error {
	h := n.tab.History()
	cached, ok := h.Get(path)
	if ok && !cached.NeedsUpdate() {
		return nil
	}

	var (
		list *history.DirList
		err  error
	)
	if ok {
		list, err = loader.Reload(n.ctx, cached, n.tab.Options())
	} else {
		list, err = loader.Load(n.ctx, path, n.tab.Options())
	}
	if err != nil {
		return err
	}
	n.restore(list)
	h.Insert(list)
	return nil
}

// restore applies remembered preview state to a freshly loaded listing.
func (n *navigator) restore(list *history.DirList) {
	state, ok := preview.Recall(n.tab.Metadata(), list.Path)
	if !ok {
		return
	}
	if state.Selected != "" {
		list.SelectPath(state.Selected)
	}
	list.Offset = state.Offset
}

// requestChild starts a background read of the selected directory when it
// is not cached yet.
func (n *navigator) requestChild() {
	if n.childPending != "" {
		delete(n.frame.Loading, n.childPending)
		n.childPending = ""
		n.async.Cancel(childToken)
	}

	curr, ok := n.tab.CurrentList()
	if !ok {
		return
	}
	entry, ok := curr.Selected()
	if !ok || !entry.IsDir {
		return
	}
	path := entry.Path()
	if cached, ok := n.tab.History().Get(path); ok && !cached.NeedsUpdate() {
		return
	}

	n.childPending = path
	n.frame.Loading[path] = true
	n.async.Start(n.ctx, loader.Request{
		Token:    childToken,
		Path:     path,
		Options:  n.tab.Options(),
		Callback: n.post,
	})
}

// loaded stores a background read result delivered on the loop goroutine.
func (n *navigator) loaded(res loader.Result) {
	if res.Path != n.childPending {
		return
	}
	delete(n.frame.Loading, res.Path)
	n.childPending = ""

	if res.Err != nil {
		n.log().Debug("child listing unavailable", "path", res.Path, "err", res.Err)
		return
	}
	h := n.tab.History()
	if prev, ok := h.Get(res.Path); ok {
		res.List.Offset = prev.Offset
		if sel, ok := prev.SelectedPath(); ok {
			res.List.SelectPath(sel)
		}
	} else {
		n.restore(res.List)
	}
	h.Insert(res.List)
}

// refresh marks every cached listing stale and reloads the visible chain.
// Other listings reload when next visited.
func (n *navigator) refresh() {
	h := n.tab.History()
	for _, p := range h.Paths() {
		h.MarkStale(p)
	}
	if err := loader.PopulateToRoot(n.ctx, h, n.tab.Cwd(), n.tab.Options()); err != nil {
		n.fail(err)
	}
	n.scroll()
	n.requestChild()
}

// reload drops the whole cache, keeping each directory's selection in the
// preview metadata so it survives the reread.
func (n *navigator) reload() {
	old := n.tab.History()
	meta := n.tab.Metadata()
	for _, p := range old.Paths() {
		l, _ := old.Get(p)
		sel, _ := l.SelectedPath()
		preview.Remember(meta, p, preview.DirState{Offset: l.Offset, Selected: sel})
	}

	// The old listings stay in place until the reread succeeds.
	fresh := history.New()
	if err := loader.PopulateToRoot(n.ctx, fresh, n.tab.Cwd(), n.tab.Options()); err != nil {
		n.fail(err)
		return
	}
	n.tab.SetHistory(fresh)
	for _, p := range fresh.Paths() {
		l, _ := fresh.Get(p)
		n.restore(l)
	}
	n.scroll()
	n.requestChild()
	n.frame.Message = "reloaded"
}
