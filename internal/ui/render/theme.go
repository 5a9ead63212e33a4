package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	HeaderBg    tcell.Color
	HeaderFg    tcell.Color
	HiddenFg    tcell.Color
	SelectionBg tcell.Color
	SelectionFg tcell.Color
	InactiveBg  tcell.Color
	DirectoryFg tcell.Color
	SymlinkFg   tcell.Color
	FileFg      tcell.Color
	StatusFg    tcell.Color
	ErrorFg     tcell.Color
	LoadingFg   tcell.Color
}

// DefaultTheme returns the default color scheme.
func DefaultTheme() ColorTheme {
	return ColorTheme{
		HeaderBg:    tcell.ColorDefault,
		HeaderFg:    tcell.ColorDefault,
		HiddenFg:    tcell.ColorLightSlateGray,
		SelectionBg: tcell.Color33,
		SelectionFg: tcell.ColorWhite,
		InactiveBg:  tcell.Color238,
		DirectoryFg: tcell.Color33,
		SymlinkFg:   tcell.Color51,
		FileFg:      tcell.ColorDefault,
		StatusFg:    tcell.ColorDefault,
		ErrorFg:     tcell.ColorRed,
		LoadingFg:   tcell.ColorLightSlateGray,
	}
}
