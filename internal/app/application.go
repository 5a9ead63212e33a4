// Package app runs the interactive browser: one tab, three panes.
package app

import (
	"context"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/term"
	"pkt.systems/pslog"

	"github.com/kk-code-lab/rtab/internal/config"
	"github.com/kk-code-lab/rtab/internal/history"
	"github.com/kk-code-lab/rtab/internal/loader"
	"github.com/kk-code-lab/rtab/internal/preview"
	"github.com/kk-code-lab/rtab/internal/tab"
	inputui "github.com/kk-code-lab/rtab/internal/ui/input"
	renderui "github.com/kk-code-lab/rtab/internal/ui/render"
)

// Application represents the running app.
type Application struct {
	screen   tcell.Screen
	nav      *navigator
	renderer *renderui.Renderer
	input    *inputui.InputHandler
	actionCh chan inputui.Action
	notifier io.Closer
	editor   []string
}

// NewApplication opens the terminal and loads startDir. The logger is taken
// from ctx.
func NewApplication(ctx context.Context, cfg config.Config, startDir string) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "couldn't open terminal")
	}
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, "couldn't initialize terminal")
	}

	app, err := newApplication(ctx, screen, cfg, startDir)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return app, nil
}

func newApplication(ctx context.Context, screen tcell.Screen, cfg config.Config, startDir string) (*Application, error) {
	tabID := uuid.NewString()
	log := pslog.Ctx(ctx)

	var extra []tab.Option
	var notifier io.Closer
	if cfg.Notify.OSC7 && stdoutIsTerminal() {
		n := tab.NewOSC7Notifier(os.Stdout, func(err error) {
			log.Debug("host notification failed", "tab", tabID, "err", err)
		})
		extra = append(extra, tab.WithNotifier(n))
		notifier = n
	}

	t, err := tab.New[preview.DirState](startDir, history.New(), cfg.DisplayOptions(), extra...)
	if err != nil {
		closeQuietly(notifier)
		return nil, err
	}

	app := &Application{
		screen:   screen,
		renderer: renderui.NewRenderer(screen),
		actionCh: make(chan inputui.Action, 10),
		notifier: notifier,
	}
	app.input = inputui.NewInputHandler(app.actionCh)
	app.nav = newNavigator(ctx, tabID, t, func(res loader.Result) {
		_ = screen.PostEvent(tcell.NewEventInterrupt(res))
	})
	if editor, ok := detectEditorCommand(); ok {
		app.editor = editor
		app.nav.openFile = app.openInEditor
	}

	_, h := screen.Size()
	app.nav.height = renderui.PaneHeight(h)
	if err := app.nav.start(); err != nil {
		closeQuietly(notifier)
		return nil, err
	}
	log.Info("tab opened", "tab", tabID, "cwd", t.Cwd())
	return app, nil
}

// Close cleans up resources.
func (app *Application) Close() error {
	app.nav.async.Wait()
	closeQuietly(app.notifier)
	app.screen.Fini()
	return nil
}

// CurrentPath returns the tab's directory, written out for shell integration
// on exit.
func (app *Application) CurrentPath() string {
	return app.nav.tab.Cwd()
}

// stdoutIsTerminal guards the OSC 7 notifier: redirected output must not
// receive escape sequences.
var stdoutIsTerminal = func() bool { return isTerminal(os.Stdout) }

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}
