package render

import (
	"fmt"

	units "github.com/docker/go-units"
	"github.com/gdamore/tcell/v2"

	fsutil "github.com/kk-code-lab/rtab/internal/fs"
	"github.com/kk-code-lab/rtab/internal/history"
)

// Panes is the read side of a tab the renderer draws from.
type Panes interface {
	Cwd() string
	ParentList() (*history.DirList, bool)
	CurrentList() (*history.DirList, bool)
	ChildList() (*history.DirList, bool)
}

// Frame carries the transient status drawn around the panes.
type Frame struct {
	Message string
	Err     error
	// Loading marks directories with a read in flight.
	Loading map[string]bool
}

// Renderer draws the three-pane view.
type Renderer struct {
	screen tcell.Screen
	theme  ColorTheme
	widths widthCache
}

// NewRenderer creates a renderer for screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  DefaultTheme(),
	}
}

// PaneHeight returns the number of listing rows for a screen of height h.
func PaneHeight(h int) int {
	return max(h-2, 0)
}

// Render draws the whole screen.
func (r *Renderer) Render(p Panes, f Frame) {
	r.screen.Clear()
	w, h := r.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}

	r.drawHeader(p.Cwd(), w)

	layout := computeLayout(w)
	height := PaneHeight(h)
	if layout.parentW > 0 {
		if parent, ok := p.ParentList(); ok {
			r.drawList(parent, layout.parentX, 1, layout.parentW, height, false)
		}
	}

	current, ok := p.CurrentList()
	switch {
	case ok:
		r.drawList(current, layout.currentX, 1, layout.currentW, height, true)
	case f.Loading[p.Cwd()]:
		r.drawNote(layout.currentX, 1, layout.currentW, "loading…")
	}

	if layout.childW > 0 && ok {
		r.drawChild(p, current, f, layout.childX, layout.childW, height)
	}

	r.drawStatus(current, f, w, h-1)
	r.screen.Show()
}

func (r *Renderer) drawHeader(cwd string, w int) {
	style := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg).Bold(true)
	r.fill(0, 0, w, style)
	r.drawText(0, 0, w, r.truncateTextToWidth(sanitizeName(cwd), w), style)
}

func (r *Renderer) drawChild(p Panes, current *history.DirList, f Frame, x, w, height int) {
	if child, ok := p.ChildList(); ok {
		r.drawList(child, x, 1, w, height, false)
		return
	}
	entry, ok := current.Selected()
	if !ok {
		return
	}
	if entry.IsDir {
		if f.Loading[entry.Path()] {
			r.drawNote(x, 1, w, "loading…")
		}
		return
	}
	r.drawFileInfo(entry, x, w)
}

func (r *Renderer) drawFileInfo(entry *fsutil.Entry, x, w int) {
	style := tcell.StyleDefault.Foreground(r.theme.StatusFg)
	lines := []string{
		sanitizeName(entry.Name),
		"",
		fmt.Sprintf("size      %s", units.HumanSize(float64(entry.Size))),
		fmt.Sprintf("modified  %s", entry.Modified.Format("2006-01-02 15:04")),
		fmt.Sprintf("mode      %s", entry.Mode),
	}
	for i, line := range lines {
		r.drawText(x, 1+i, w, r.truncateTextToWidth(line, w), style)
	}
}

func (r *Renderer) drawNote(x, y, w int, note string) {
	style := tcell.StyleDefault.Foreground(r.theme.LoadingFg).Italic(true)
	r.drawText(x, y, w, r.truncateTextToWidth(note, w), style)
}

func (r *Renderer) drawList(list *history.DirList, x, y, w, height int, active bool) {
	if w <= 0 || height <= 0 {
		return
	}
	if list.Len() == 0 {
		r.drawNote(x, y, w, "empty")
		return
	}

	idx, hasSel := list.Index()
	if !hasSel {
		idx = -1
	}
	start := viewportStart(list.Offset, max(idx, 0), list.Len(), height)
	end := min(start+height, list.Len())

	for row, i := 0, start; i < end; row, i = row+1, i+1 {
		entry := list.Contents[i]
		style := r.entryStyle(entry)
		if i == idx {
			bg := r.theme.InactiveBg
			if active {
				bg = r.theme.SelectionBg
			}
			style = style.Background(bg).Foreground(r.theme.SelectionFg)
			r.fill(x, y+row, w, style)
		}

		name := sanitizeName(entry.Name)
		if entry.IsDir {
			name += "/"
		}
		r.drawText(x+1, y+row, w-1, r.truncateTextToWidth(name, w-1), style)
	}
}

func (r *Renderer) entryStyle(entry fsutil.Entry) tcell.Style {
	style := tcell.StyleDefault.Foreground(r.theme.FileFg)
	switch {
	case entry.IsSymlink:
		style = style.Foreground(r.theme.SymlinkFg)
	case entry.IsDir:
		style = style.Foreground(r.theme.DirectoryFg).Bold(true)
	}
	if entry.IsHidden() {
		style = style.Foreground(r.theme.HiddenFg)
	}
	return style
}

func (r *Renderer) drawStatus(current *history.DirList, f Frame, w, y int) {
	if y <= 0 {
		return
	}
	style := tcell.StyleDefault.Foreground(r.theme.StatusFg)
	text := f.Message
	if f.Err != nil {
		style = style.Foreground(r.theme.ErrorFg)
		text = f.Err.Error()
	} else if current != nil {
		pos := 0
		if idx, ok := current.Index(); ok {
			pos = idx + 1
		}
		counter := fmt.Sprintf("%d/%d", pos, current.Len())
		if text != "" {
			text += "  "
		}
		text += counter
	}
	r.drawText(0, y, w, r.truncateTextToWidth(sanitizeName(text), w), style)
}
