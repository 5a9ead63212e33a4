package render

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	fsutil "github.com/kk-code-lab/rtab/internal/fs"
	"github.com/kk-code-lab/rtab/internal/history"
)

func TestTruncateTextToWidth(t *testing.T) {
	r := NewRenderer(nil)

	tests := []struct {
		name   string
		text   string
		width  int
		expect string
	}{
		{name: "fits without truncation", text: "file.txt", width: 20, expect: "file.txt"},
		{name: "adds ellipsis when needed", text: "verylongname", width: 6, expect: "veryl…"},
		{name: "only ellipsis when width too small", text: "example", width: 1, expect: "…"},
		{name: "multi-byte characters respected", text: "你好世界", width: 5, expect: "你好…"},
		{name: "returns empty when width is zero", text: "anything", width: 0, expect: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.truncateTextToWidth(tt.text, tt.width); got != tt.expect {
				t.Fatalf("expected %q, got %q (width %d)", tt.expect, got, tt.width)
			}
		})
	}
}

func TestMeasureTextWidth(t *testing.T) {
	r := NewRenderer(nil)
	if got := r.measureTextWidth("abc"); got != 3 {
		t.Fatalf("expected ASCII width 3, got %d", got)
	}
	if got := r.measureTextWidth("你好"); got != 4 {
		t.Fatalf("expected wide rune width 4, got %d", got)
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{in: "plain.txt", want: "plain.txt"},
		{in: "evil\x1b[31m", want: "evil?[31m"},
		{in: "tab\there", want: "tab here"},
		{in: "abc\u202edcba", want: "abc?dcba"},
	}
	for _, tt := range tests {
		if got := sanitizeName(tt.in); got != tt.want {
			t.Fatalf("sanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestComputeLayout(t *testing.T) {
	wide := computeLayout(82)
	if wide.parentW != 10 || wide.childW != 40 || wide.currentW != 30 {
		t.Fatalf("unexpected wide layout %+v", wide)
	}
	if wide.childX+wide.childW != 82 {
		t.Fatalf("layout should span the full width, got %+v", wide)
	}

	narrow := computeLayout(40)
	if narrow.parentW != 0 || narrow.currentW == 0 || narrow.childW == 0 {
		t.Fatalf("expected parent pane dropped, got %+v", narrow)
	}

	tiny := computeLayout(10)
	if tiny.currentW != 10 || tiny.childW != 0 {
		t.Fatalf("expected single pane, got %+v", tiny)
	}
}

func TestViewportStart(t *testing.T) {
	tests := []struct {
		name                       string
		offset, idx, n, height, at int
	}{
		{name: "everything fits", offset: 3, idx: 4, n: 5, height: 10, at: 0},
		{name: "keeps offset when visible", offset: 2, idx: 4, n: 20, height: 5, at: 2},
		{name: "scrolls down", offset: 0, idx: 9, n: 20, height: 5, at: 5},
		{name: "scrolls up", offset: 8, idx: 3, n: 20, height: 5, at: 3},
		{name: "clamps at end", offset: 18, idx: 19, n: 20, height: 5, at: 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := viewportStart(tt.offset, tt.idx, tt.n, tt.height); got != tt.at {
				t.Fatalf("expected %d, got %d", tt.at, got)
			}
		})
	}
}

type stubPanes struct {
	cwd                    string
	parent, current, child *history.DirList
}

func (s stubPanes) Cwd() string { return s.cwd }

func (s stubPanes) ParentList() (*history.DirList, bool)  { return s.parent, s.parent != nil }
func (s stubPanes) CurrentList() (*history.DirList, bool) { return s.current, s.current != nil }
func (s stubPanes) ChildList() (*history.DirList, bool)   { return s.child, s.child != nil }

func dirList(path string, entries ...fsutil.Entry) *history.DirList {
	return history.NewDirList(path, entries)
}

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func rowText(screen tcell.SimulationScreen, y int) string {
	cells, w, _ := screen.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		runes := cells[y*w+x].Runes
		if len(runes) == 0 {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(runes[0])
	}
	return b.String()
}

func TestRenderDrawsThreePanes(t *testing.T) {
	screen := newSimScreen(t, 82, 6)
	r := NewRenderer(screen)

	panes := stubPanes{
		cwd:     "/home/u/docs",
		parent:  dirList("/home/u", fsutil.Entry{Name: "docs", FullPath: "/home/u/docs", IsDir: true}),
		current: dirList("/home/u/docs", fsutil.Entry{Name: "report", FullPath: "/home/u/docs/report", IsDir: true}),
		child:   dirList("/home/u/docs/report", fsutil.Entry{Name: "q1.txt", FullPath: "/home/u/docs/report/q1.txt"}),
	}
	r.Render(panes, Frame{})

	if header := rowText(screen, 0); !strings.HasPrefix(header, "/home/u/docs") {
		t.Fatalf("expected cwd in header, got %q", header)
	}
	row := rowText(screen, 1)
	for _, want := range []string{"docs/", "report/", "q1.txt"} {
		if !strings.Contains(row, want) {
			t.Fatalf("expected %q in first pane row, got %q", want, row)
		}
	}
	if status := rowText(screen, 5); !strings.HasPrefix(status, "1/1") {
		t.Fatalf("expected position counter, got %q", status)
	}
}

func TestRenderShowsLoadingAndFileInfo(t *testing.T) {
	screen := newSimScreen(t, 82, 8)
	r := NewRenderer(screen)

	current := dirList("/d",
		fsutil.Entry{Name: "sub", FullPath: "/d/sub", IsDir: true},
		fsutil.Entry{Name: "notes.txt", FullPath: "/d/notes.txt", Size: 2048, Modified: time.Unix(0, 0)},
	)
	panes := stubPanes{cwd: "/d", current: current}

	r.Render(panes, Frame{Loading: map[string]bool{"/d/sub": true}})
	if row := rowText(screen, 1); !strings.Contains(row, "loading…") {
		t.Fatalf("expected loading note for child, got %q", row)
	}

	current.SetIndex(1)
	r.Render(panes, Frame{})
	found := false
	for y := 1; y < 7; y++ {
		if strings.Contains(rowText(screen, y), "size") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected file info in child pane")
	}
}

func TestRenderShowsError(t *testing.T) {
	screen := newSimScreen(t, 40, 4)
	r := NewRenderer(screen)
	r.Render(stubPanes{cwd: "/x"}, Frame{Err: errors.New("permission denied")})
	if status := rowText(screen, 3); !strings.HasPrefix(status, "permission denied") {
		t.Fatalf("expected error in status line, got %q", status)
	}
}
