package input

// Action is a navigation request produced from user input.
type Action interface{}

type (
	// CursorMoveAction moves the selection by Delta entries.
	CursorMoveAction struct{ Delta int }
	// CursorPageAction moves the selection by whole screens.
	CursorPageAction struct{ Pages int }
	CursorTopAction    struct{}
	CursorBottomAction struct{}
	// EnterAction opens the selected directory.
	EnterAction  struct{}
	ParentAction struct{}
	// PreviousDirAction jumps back to the directory before the last change.
	PreviousDirAction  struct{}
	HomeAction         struct{}
	ToggleHiddenAction struct{}
	ReloadAction       struct{}
	ResizeAction       struct{ Width, Height int }
	QuitAction         struct{}
)
