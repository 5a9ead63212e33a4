package history

import (
	"reflect"
	"testing"

	fsutil "github.com/kk-code-lab/rtab/internal/fs"
)

func entries(dir string, names ...string) []fsutil.Entry {
	out := make([]fsutil.Entry, len(names))
	for i, n := range names {
		out[i] = fsutil.Entry{Name: n, FullPath: dir + "/" + n}
	}
	return out
}

func TestHistoryInsertGetRemove(t *testing.T) {
	h := New()
	if _, ok := h.Get("/tmp"); ok {
		t.Fatalf("expected empty history")
	}

	list := NewDirList("/tmp/", entries("/tmp", "a"))
	h.Insert(list)

	got, ok := h.Get("/tmp")
	if !ok || got != list {
		t.Fatalf("expected inserted listing back, got %v %v", got, ok)
	}
	if got.Path != "/tmp" {
		t.Fatalf("expected cleaned path, got %q", got.Path)
	}
	if !h.Contains("/tmp/./") {
		t.Fatalf("expected lookup to clean its key")
	}

	h.Remove("/tmp")
	if h.Len() != 0 {
		t.Fatalf("expected listing removed, len=%d", h.Len())
	}
}

func TestHistoryPathsSorted(t *testing.T) {
	h := New()
	for _, p := range []string{"/b", "/a", "/a/c"} {
		h.Insert(NewDirList(p, nil))
	}
	if got, want := h.Paths(), []string{"/a", "/a/c", "/b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNilHistoryIsEmpty(t *testing.T) {
	var h *History
	if _, ok := h.Get("/"); ok {
		t.Fatalf("nil history should not return listings")
	}
	if h.Len() != 0 || h.Paths() != nil {
		t.Fatalf("nil history should be empty")
	}
}

func TestMarkStale(t *testing.T) {
	h := New()
	h.Insert(NewDirList("/x", nil))
	h.MarkStale("/x")
	h.MarkStale("/missing")
	l, _ := h.Get("/x")
	if !l.NeedsUpdate() {
		t.Fatalf("expected listing to be stale")
	}
}
