package colour

import (
	"fmt"
	"strings"
)

const (
	ansiReset    = "\033[0m"
	defaultWidth = 8
)

// ansiBackground returns the 24-bit escape sequence selecting c as background colour.
func (c RGB) ansiBackground() string {
	return fmt.Sprintf("\033[48;2;%d;%d;%dm", c.R, c.G, c.B)
}

// ansiForeground returns the 24-bit escape sequence selecting c as text colour.
func (c RGB) ansiForeground() string {
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", c.R, c.G, c.B)
}

// ColourPreview returns a block of width spaces painted in c.
func ColourPreview(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	return c.ansiBackground() + strings.Repeat(" ", width) + ansiReset
}

// ColourPreviewWithText paints text in fg on a bg block of width cells, centred and
// truncated to fit.
func ColourPreviewWithText(bg, fg RGB, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	runes := []rune(text)
	if len(runes) > width {
		runes = runes[:width]
	}
	left := (width - len(runes)) / 2
	right := width - len(runes) - left

	return bg.ansiBackground() + fg.ansiForeground() +
		strings.Repeat(" ", left) + string(runes) + strings.Repeat(" ", right) + ansiReset
}
