// Package input turns terminal events into navigation actions.
package input

import "github.com/gdamore/tcell/v2"

// InputHandler converts tcell events to Actions.
type InputHandler struct {
	actionChan chan<- Action
}

// NewInputHandler creates a handler emitting on actionChan.
func NewInputHandler(actionChan chan<- Action) *InputHandler {
	return &InputHandler{actionChan: actionChan}
}

// ProcessEvent emits the action for ev, if any. It returns false once the
// user asked to quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- ResizeAction{Width: w, Height: h}
	}
	return true
}

func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	action, ok := translateKey(ev)
	if !ok {
		return true
	}
	ih.actionChan <- action
	_, quit := action.(QuitAction)
	return !quit
}

func translateKey(ev *tcell.EventKey) (Action, bool) {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return QuitAction{}, true
	case tcell.KeyUp:
		return CursorMoveAction{Delta: -1}, true
	case tcell.KeyDown:
		return CursorMoveAction{Delta: 1}, true
	case tcell.KeyPgUp:
		return CursorPageAction{Pages: -1}, true
	case tcell.KeyPgDn:
		return CursorPageAction{Pages: 1}, true
	case tcell.KeyHome:
		return CursorTopAction{}, true
	case tcell.KeyEnd:
		return CursorBottomAction{}, true
	case tcell.KeyRight, tcell.KeyEnter:
		return EnterAction{}, true
	case tcell.KeyLeft, tcell.KeyBackspace, tcell.KeyBackspace2:
		return ParentAction{}, true
	case tcell.KeyRune:
	default:
		return nil, false
	}

	switch ev.Rune() {
	case 'q':
		return QuitAction{}, true
	case 'k':
		return CursorMoveAction{Delta: -1}, true
	case 'j':
		return CursorMoveAction{Delta: 1}, true
	case 'g':
		return CursorTopAction{}, true
	case 'G':
		return CursorBottomAction{}, true
	case 'l':
		return EnterAction{}, true
	case 'h':
		return ParentAction{}, true
	case '-':
		return PreviousDirAction{}, true
	case '~':
		return HomeAction{}, true
	case '.':
		return ToggleHiddenAction{}, true
	case 'r':
		return ReloadAction{}, true
	}
	return nil, false
}
