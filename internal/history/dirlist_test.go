package history

import "testing"

func TestNewDirListSelection(t *testing.T) {
	if _, ok := NewDirList("/empty", nil).Index(); ok {
		t.Fatalf("empty listing should have no selection")
	}
	idx, ok := NewDirList("/d", entries("/d", "a", "b")).Index()
	if !ok || idx != 0 {
		t.Fatalf("expected first entry selected, got %d %v", idx, ok)
	}
}

func TestSetIndexClamps(t *testing.T) {
	l := NewDirList("/d", entries("/d", "a", "b", "c"))

	tests := []struct {
		in, want int
	}{
		{in: -5, want: 0},
		{in: 1, want: 1},
		{in: 99, want: 2},
	}
	for _, tt := range tests {
		l.SetIndex(tt.in)
		if got, _ := l.Index(); got != tt.want {
			t.Fatalf("SetIndex(%d): expected %d, got %d", tt.in, tt.want, got)
		}
	}

	l.ClearIndex()
	if _, ok := l.Selected(); ok {
		t.Fatalf("cleared selection should report nothing")
	}
}

func TestSelectPath(t *testing.T) {
	l := NewDirList("/d", entries("/d", "a", "b"))
	if !l.SelectPath("/d/b/") {
		t.Fatalf("expected /d/b to be found")
	}
	path, ok := l.SelectedPath()
	if !ok || path != "/d/b" {
		t.Fatalf("expected /d/b selected, got %q", path)
	}
	if l.SelectPath("/d/zzz") {
		t.Fatalf("unexpected match for missing entry")
	}
	if path, _ := l.SelectedPath(); path != "/d/b" {
		t.Fatalf("failed lookup must keep selection, got %q", path)
	}
}

func TestSelectedOutOfRange(t *testing.T) {
	l := NewDirList("/d", entries("/d", "a", "b"))
	l.SetIndex(1)
	l.Contents = l.Contents[:1]
	if _, ok := l.Selected(); ok {
		t.Fatalf("selection past the end should report nothing")
	}
}

func TestScrollTo(t *testing.T) {
	l := NewDirList("/d", entries("/d", "0", "1", "2", "3", "4", "5", "6", "7", "8", "9"))

	l.SetIndex(6)
	l.ScrollTo(4)
	if l.Offset != 3 {
		t.Fatalf("expected offset 3, got %d", l.Offset)
	}

	l.SetIndex(1)
	l.ScrollTo(4)
	if l.Offset != 1 {
		t.Fatalf("expected offset 1, got %d", l.Offset)
	}

	l.SetIndex(9)
	l.ScrollTo(20)
	if l.Offset != 0 {
		t.Fatalf("expected offset 0 when everything fits, got %d", l.Offset)
	}
}
