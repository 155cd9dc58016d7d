package promptline

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/redline/internal/mask"
)

// ANSI codes for the cursor and the misspelling highlight.
// Cursor uses reverse video; highlight uses underline plus a soft red so
// it survives both light and dark backgrounds.
const (
	cursorOn  = "\x1b[7m"  // reverse video on
	cursorOff = "\x1b[27m" // reverse video off (not a full reset)

	defaultHighlightOn  = "\x1b[4;38;5;203m" // underline, soft red foreground
	defaultHighlightOff = "\x1b[24;39m"      // underline and foreground off
)

var (
	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	suggestionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// highlightMarkers derives the on/off marker pair for a configured color.
// The mask only carries on/off boundaries; the marker bytes are this
// renderer's convention.
func highlightMarkers(color string) (string, string) {
	if color == "" {
		return defaultHighlightOn, defaultHighlightOff
	}
	c := termenv.ANSI256.Color(color)
	if c == nil {
		return defaultHighlightOn, defaultHighlightOff
	}
	return termenv.CSI + "4;" + c.Sequence(false) + "m", defaultHighlightOff
}

// View renders the line with highlight markers and cursor overlay.
// This implements the tea.Model View interface.
func (m Model) View() string {
	if len(m.value) == 0 {
		return m.renderEmpty()
	}

	var b strings.Builder
	msk := m.freshMask()

	if !m.focused {
		// No cursor overlay to interleave, so the mask splices its
		// markers directly.
		if msk != nil {
			b.WriteString(msk.Apply(m.Value(), m.highlightOn, m.highlightOff))
		} else {
			b.WriteString(m.Value())
		}
	} else {
		// Walk grapheme clusters while tracking the rune offset, so
		// directive markers land between clusters and combining marks
		// stay under the cursor with their base character.
		offset := 0
		gr := uniseg.NewGraphemes(m.Value())
		for gr.Next() {
			cluster := gr.Str()
			m.writeMarker(&b, msk, offset)
			if offset == m.cursor {
				b.WriteString(cursorOn)
				b.WriteString(cluster)
				b.WriteString(cursorOff)
			} else {
				b.WriteString(cluster)
			}
			offset += utf8.RuneCountInString(cluster)
		}

		// An off directive may point one past the last character.
		m.writeMarker(&b, msk, len(m.value))
		if m.cursor == len(m.value) {
			b.WriteString(cursorOn)
			b.WriteString(" ")
			b.WriteString(cursorOff)
		}
	}

	if hint := m.renderSuggestions(); hint != "" {
		b.WriteString("\n")
		b.WriteString(hint)
	}
	return b.String()
}

func (m Model) writeMarker(b *strings.Builder, msk *mask.Mask, offset int) {
	if msk == nil {
		return
	}
	if d, ok := msk.Get(offset); ok {
		if d == mask.StyleOn {
			b.WriteString(m.highlightOn)
		} else {
			b.WriteString(m.highlightOff)
		}
	}
}

func (m Model) renderEmpty() string {
	if !m.focused {
		return placeholderStyle.Render(m.placeholder)
	}
	if m.placeholder == "" {
		return cursorOn + " " + cursorOff
	}
	// Cursor sits on the placeholder's first character.
	first, rest := splitFirstGrapheme(m.placeholder)
	return cursorOn + first + cursorOff + placeholderStyle.Render(rest)
}

func (m Model) renderSuggestions() string {
	if len(m.suggestions) == 0 {
		return ""
	}
	hint := "did you mean: " + strings.Join(m.suggestions, ", ")
	hint = runewidth.Truncate(hint, m.width, "…")
	return suggestionStyle.Render(hint)
}

func splitFirstGrapheme(s string) (string, string) {
	gr := uniseg.NewGraphemes(s)
	if !gr.Next() {
		return " ", ""
	}
	first := gr.Str()
	return first, s[len(first):]
}
