package loader

import (
	"context"
	"sync"

	"github.com/kk-code-lab/rtab/internal/history"
	"github.com/kk-code-lab/rtab/internal/tab"
)

// Request describes a background directory read.
type Request struct {
	Token    int
	Path     string
	Options  tab.DisplayOptions
	Callback func(Result)
}

// Result is delivered to Request.Callback once the read completes. Canceled
// reads deliver nothing.
type Result struct {
	Token int
	Path  string
	List  *history.DirList
	Err   error
}

// Async runs directory reads on goroutines, one per token.
type Async struct {
	mu   sync.Mutex
	jobs map[int]*job
	wg   sync.WaitGroup
}

type job struct {
	cancel context.CancelFunc
}

// NewAsync constructs an idle loader.
func NewAsync() *Async {
	return &Async{jobs: make(map[int]*job)}
}

// Start begins req in the background. Requests without a token, path or
// callback are ignored.
func (a *Async) Start(ctx context.Context, req Request) {
	if req.Token == 0 || req.Path == "" || req.Callback == nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	j := &job{cancel: cancel}
	a.mu.Lock()
	if prev, ok := a.jobs[req.Token]; ok {
		prev.cancel()
	}
	a.jobs[req.Token] = j
	a.mu.Unlock()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer a.finish(req.Token, j)

		list, err := Load(ctx, req.Path, req.Options)
		if ctx.Err() != nil {
			return
		}
		req.Callback(Result{Token: req.Token, Path: req.Path, List: list, Err: err})
	}()
}

func (a *Async) finish(token int, j *job) {
	j.cancel()
	a.mu.Lock()
	defer a.mu.Unlock()
	// A newer request may have reused the token.
	if current, ok := a.jobs[token]; ok && current == j {
		delete(a.jobs, token)
	}
}

// Cancel abandons the read for token.
func (a *Async) Cancel(token int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if j, ok := a.jobs[token]; ok {
		j.cancel()
		delete(a.jobs, token)
	}
}

// Pending reports how many reads are in flight.
func (a *Async) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.jobs)
}

// Wait blocks until every started read has finished or been canceled.
func (a *Async) Wait() {
	a.wg.Wait()
}
