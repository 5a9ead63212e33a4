package app

import (
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/rtab/internal/loader"
)

// Run processes events until the user quits.
func (app *Application) Run() {
	eventChan := make(chan tcell.Event)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-quit:
				return
			}
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	app.render()
	for {
		select {
		case ev := <-eventChan:
			if !app.handleEvent(ev) {
				return
			}
		case <-sigContCh:
			app.resumeAfterStop()
		}

		if app.drainActions() {
			return
		}
		app.render()
	}
}

func (app *Application) render() {
	app.renderer.Render(app.nav.tab, app.nav.frame)
}

// handleEvent returns false once the loop should stop.
func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlZ {
			app.suspendToShell()
			return true
		}
		app.input.ProcessEvent(ev)
	case *tcell.EventResize:
		app.screen.Sync()
		app.input.ProcessEvent(ev)
	case *tcell.EventInterrupt:
		if res, ok := ev.Data().(loader.Result); ok {
			app.nav.loaded(res)
		}
	}
	return true
}

// drainActions applies queued actions and reports whether one was a quit.
func (app *Application) drainActions() bool {
	for {
		select {
		case action := <-app.actionCh:
			if app.nav.handle(action) {
				return true
			}
		default:
			return false
		}
	}
}
