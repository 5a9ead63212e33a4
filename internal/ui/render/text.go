package render

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

type widthCache struct {
	mu    sync.RWMutex
	ascii [128]int // width+1; zero means unknown
	wide  sync.Map
}

func (c *widthCache) runeWidth(ru rune) int {
	if ru >= 0 && ru < 128 {
		c.mu.RLock()
		w := c.ascii[ru]
		c.mu.RUnlock()
		if w != 0 {
			return w - 1
		}
		actual := max(runewidth.RuneWidth(ru), 0)
		c.mu.Lock()
		c.ascii[ru] = actual + 1
		c.mu.Unlock()
		return actual
	}

	if cached, ok := c.wide.Load(ru); ok {
		return cached.(int)
	}
	w := max(runewidth.RuneWidth(ru), 0)
	c.wide.Store(ru, w)
	return w
}

func (r *Renderer) measureTextWidth(text string) int {
	width := 0
	for _, ru := range text {
		width += r.widths.runeWidth(ru)
	}
	return width
}

// truncateTextToWidth shortens text to maxWidth columns, ending in an
// ellipsis when anything was cut.
func (r *Renderer) truncateTextToWidth(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}
	if r.measureTextWidth(text) <= maxWidth {
		return text
	}

	ellipsisWidth := max(runewidth.StringWidth(ellipsis), 1)
	if maxWidth <= ellipsisWidth {
		return ellipsis
	}

	available := maxWidth - ellipsisWidth
	var b strings.Builder
	width := 0
	for _, ru := range text {
		rw := r.widths.runeWidth(ru)
		if width+rw > available {
			break
		}
		b.WriteRune(ru)
		width += rw
	}
	b.WriteString(ellipsis)
	return b.String()
}

// drawText writes text from x, clipped to maxWidth columns, and returns the
// column after the last cell written.
func (r *Renderer) drawText(x, y, maxWidth int, text string, style tcell.Style) int {
	start := x
	for _, ru := range text {
		w := r.widths.runeWidth(ru)
		if w == 0 {
			continue
		}
		if x-start+w > maxWidth {
			break
		}
		r.screen.SetContent(x, y, ru, nil, style)
		x += w
	}
	return x
}

func (r *Renderer) fill(x, y, width int, style tcell.Style) {
	for i := 0; i < width; i++ {
		r.screen.SetContent(x+i, y, ' ', nil, style)
	}
}

// sanitizeName keeps file names from injecting terminal control sequences.
func sanitizeName(name string) string {
	clean := true
	for _, ru := range name {
		if isControlRune(ru) {
			clean = false
			break
		}
	}
	if clean {
		return name
	}

	var b strings.Builder
	for _, ru := range name {
		switch {
		case ru == '\t' || ru == '\n' || ru == '\r':
			b.WriteByte(' ')
		case isControlRune(ru):
			b.WriteByte('?')
		default:
			b.WriteRune(ru)
		}
	}
	return b.String()
}

func isControlRune(ru rune) bool {
	switch {
	case ru < 0x20, ru == 0x7f:
		return true
	case ru >= 0x80 && ru < 0xa0:
		return true
	case ru >= 0x202a && ru <= 0x202e, ru >= 0x2066 && ru <= 0x2069:
		// Bidi overrides and isolates reorder the rest of the line.
		return true
	}
	return false
}
