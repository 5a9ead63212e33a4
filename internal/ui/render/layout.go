package render

// paneLayout holds the column spans of the parent, current and child panes.
type paneLayout struct {
	parentX, parentW   int
	currentX, currentW int
	childX, childW     int
}

const (
	parentRatio  = 1
	currentRatio = 3
	childRatio   = 4
	minPaneWidth = 8
)

// computeLayout splits width into three panes separated by one blank column.
// Narrow terminals drop the parent pane first, then the child pane.
func computeLayout(width int) paneLayout {
	if width <= 0 {
		return paneLayout{}
	}

	total := parentRatio + currentRatio + childRatio
	usable := width - 2
	parentW := usable * parentRatio / total
	childW := usable * childRatio / total

	switch {
	case parentW >= minPaneWidth:
		currentW := usable - parentW - childW
		return paneLayout{
			parentX: 0, parentW: parentW,
			currentX: parentW + 1, currentW: currentW,
			childX: parentW + currentW + 2, childW: childW,
		}
	case width-1 >= 2*minPaneWidth:
		usable = width - 1
		childW = usable * childRatio / (currentRatio + childRatio)
		currentW := usable - childW
		return paneLayout{
			currentX: 0, currentW: currentW,
			childX: currentW + 1, childW: childW,
		}
	default:
		return paneLayout{currentX: 0, currentW: width}
	}
}

// viewportStart returns the first visible row so that idx stays within a
// window of height rows, starting from the remembered offset.
func viewportStart(offset, idx, n, height int) int {
	if height <= 0 || n <= height {
		return 0
	}
	if idx < offset {
		offset = idx
	}
	if idx >= offset+height {
		offset = idx - height + 1
	}
	return min(max(offset, 0), n-height)
}
