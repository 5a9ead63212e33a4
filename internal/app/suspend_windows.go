//go:build windows

package app

import "os"

func contSignals() []os.Signal {
	return nil
}

// Windows has no SIGTSTP/SIGCONT; suspend is a no-op.
func (app *Application) suspendToShell() {}

func (app *Application) resumeAfterStop() {}
