//go:build !windows

package app

import (
	"os"
	"syscall"
)

func contSignals() []os.Signal {
	return []os.Signal{syscall.SIGCONT}
}

func (app *Application) suspendToShell() {
	_ = app.screen.Suspend()
	// Stop only this process; the wrapper shell function shares our process
	// group and must keep job control.
	_ = syscall.Kill(syscall.Getpid(), syscall.SIGTSTP)
}

func (app *Application) resumeAfterStop() {
	if err := app.screen.Resume(); err != nil {
		return
	}
	app.screen.Sync()
}
