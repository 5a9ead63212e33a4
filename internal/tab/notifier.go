package tab

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Notifier is told about directory changes after they happen. Implementations
// must not block; their errors are ignored by the tab.
type Notifier interface {
	Notify(path string) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(path string) error

// Notify calls f.
func (f NotifierFunc) Notify(path string) error {
	return f(path)
}

// ErrNotifierClosed is returned by Notify after Close.
var ErrNotifierClosed = errors.New("notifier closed")

// OSC7Notifier reports the working directory to the host terminal with the
// OSC 7 escape sequence. Writes happen on a background goroutine; when the
// writer falls behind only the latest directory is kept.
type OSC7Notifier struct {
	w       io.Writer
	host    string
	onError func(error)

	pending chan string
	quit    chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewOSC7Notifier starts a notifier writing to w. onError may be nil.
func NewOSC7Notifier(w io.Writer, onError func(error)) *OSC7Notifier {
	host, err := os.Hostname()
	if err != nil {
		host = ""
	}
	n := &OSC7Notifier{
		w:       w,
		host:    host,
		onError: onError,
		pending: make(chan string, 1),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go n.run()
	return n
}

// Notify queues path without waiting for the write.
func (n *OSC7Notifier) Notify(path string) error {
	select {
	case <-n.quit:
		return ErrNotifierClosed
	default:
	}
	for {
		select {
		case n.pending <- path:
			return nil
		default:
		}
		// Drop the stale directory and retry.
		select {
		case <-n.pending:
		default:
		}
	}
}

// Close flushes a queued directory and stops the writer goroutine.
func (n *OSC7Notifier) Close() error {
	n.once.Do(func() {
		close(n.quit)
	})
	<-n.done
	return nil
}

func (n *OSC7Notifier) run() {
	defer close(n.done)
	for {
		select {
		case path := <-n.pending:
			n.write(path)
		case <-n.quit:
			select {
			case path := <-n.pending:
				n.write(path)
			default:
			}
			return
		}
	}
}

func (n *OSC7Notifier) write(path string) {
	if _, err := io.WriteString(n.w, OSC7Sequence(n.host, path)); err != nil && n.onError != nil {
		n.onError(errors.Wrap(err, "couldn't write OSC 7 sequence"))
	}
}

// OSC7Sequence renders the escape sequence announcing path on host.
func OSC7Sequence(host, path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Host: host, Path: p}
	return fmt.Sprintf("\x1b]7;%s\x1b\\", u.String())
}
