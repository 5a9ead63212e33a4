package tab

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestOSC7Sequence(t *testing.T) {
	tests := []struct {
		name, host, path, expect string
	}{
		{
			name:   "plain path",
			host:   "box",
			path:   "/home/u",
			expect: "\x1b]7;file://box/home/u\x1b\\",
		},
		{
			name:   "escapes spaces",
			host:   "box",
			path:   "/tmp/my dir",
			expect: "\x1b]7;file://box/tmp/my%20dir\x1b\\",
		},
		{
			name:   "empty host",
			host:   "",
			path:   "/",
			expect: "\x1b]7;file:///\x1b\\",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OSC7Sequence(tt.host, tt.path); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestOSC7NotifierFlushesOnClose(t *testing.T) {
	out := &lockedBuffer{}
	n := NewOSC7Notifier(out, nil)

	if err := n.Notify("/srv/data"); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if err := n.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got := out.String()
	if !strings.HasSuffix(got, "/srv/data\x1b\\") {
		t.Fatalf("expected last write to announce /srv/data, got %q", got)
	}
	if err := n.Notify("/late"); err != ErrNotifierClosed {
		t.Fatalf("expected ErrNotifierClosed, got %v", err)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, bytes.ErrTooLarge
}

func TestOSC7NotifierReportsWriteErrors(t *testing.T) {
	var mu sync.Mutex
	var errs []error
	n := NewOSC7Notifier(failingWriter{}, func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	})
	_ = n.Notify("/x")
	_ = n.Close()

	mu.Lock()
	defer mu.Unlock()
	if len(errs) != 1 {
		t.Fatalf("expected one reported error, got %d", len(errs))
	}
}
