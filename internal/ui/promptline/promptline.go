// Package promptline provides a single-line editing widget with live
// spell highlighting.
//
// The widget owns the buffer and cursor. Every content mutation fires the
// change-listener registry synchronously before Update returns, so a new
// keystroke can never interleave with an in-flight mask recompute; the
// renderer then reads the installed mask back from the store when drawing.
// Cursor offsets are rune offsets; rendering groups runes into grapheme
// clusters so combining marks stay attached under the cursor.
package promptline

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/redline/internal/listener"
	"github.com/zjrosen/redline/internal/log"
	"github.com/zjrosen/redline/internal/mask"
	"github.com/zjrosen/redline/internal/token"
)

// SubmitMsg is emitted when the line is submitted with Enter.
type SubmitMsg struct {
	Content string
}

// Config defines promptline configuration.
type Config struct {
	// Placeholder is shown while the buffer is empty.
	Placeholder string

	// Width bounds rendering; 0 means the default of 80 columns.
	Width int

	// Store receives the recomputed masks; the renderer reads it back.
	Store *mask.Store

	// Registry is fired on every content mutation. The widget registers
	// nothing itself; the host wires highlighters (and anything else)
	// into it.
	Registry *listener.Registry

	// Suggest, when set, is queried for replacement candidates for the
	// highlighted word under the cursor.
	Suggest func(word string) ([]string, error)

	// MisspelledColor is an ANSI-256 palette index or hex color for the
	// highlight markers. Empty selects the default.
	MisspelledColor string

	// KeyMap overrides the default key bindings when non-zero.
	KeyMap *KeyMap
}

// Model holds the prompt line state.
type Model struct {
	id          mask.BufferID
	value       []rune
	cursor      int // rune offset, 0..len(value)
	focused     bool
	width       int
	placeholder string
	keyMap      KeyMap

	store    *mask.Store
	registry *listener.Registry
	suggest  func(string) ([]string, error)

	highlightOn  string
	highlightOff string

	suggestions []string
	err         error // last recompute failure, cleared on success
}

// New creates a prompt line with a fresh buffer identity.
func New(cfg Config) Model {
	width := cfg.Width
	if width == 0 {
		width = 80
	}
	keyMap := DefaultKeyMap()
	if cfg.KeyMap != nil {
		keyMap = *cfg.KeyMap
	}
	on, off := highlightMarkers(cfg.MisspelledColor)

	return Model{
		id:           mask.NewBufferID(),
		width:        width,
		placeholder:  cfg.Placeholder,
		keyMap:       keyMap,
		store:        cfg.Store,
		registry:     cfg.Registry,
		suggest:      cfg.Suggest,
		highlightOn:  on,
		highlightOff: off,
	}
}

// ID returns the widget's buffer identity in the mask store.
func (m Model) ID() mask.BufferID {
	return m.id
}

// Value returns the current buffer content.
func (m Model) Value() string {
	return string(m.value)
}

// Cursor returns the cursor's rune offset.
func (m Model) Cursor() int {
	return m.cursor
}

// SetCursor moves the cursor, clamped to the buffer bounds.
func (m *Model) SetCursor(offset int) {
	switch {
	case offset < 0:
		m.cursor = 0
	case offset > len(m.value):
		m.cursor = len(m.value)
	default:
		m.cursor = offset
	}
	m.refreshSuggestions()
}

// SetValue replaces the buffer content, moves the cursor to the end and
// fires the change listeners.
func (m *Model) SetValue(content string) {
	m.value = []rune(content)
	m.cursor = len(m.value)
	m.notify()
}

// Reset clears the buffer and fires the change listeners.
func (m *Model) Reset() {
	m.SetValue("")
}

// Focus enables cursor rendering and key handling.
func (m *Model) Focus() {
	m.focused = true
}

// Blur disables cursor rendering and key handling.
func (m *Model) Blur() {
	m.focused = false
}

// Focused reports whether the widget has focus.
func (m Model) Focused() bool {
	return m.focused
}

// Err returns the error from the most recent recompute, if any.
func (m Model) Err() error {
	return m.err
}

// Suggestions returns the candidates for the highlighted word under the
// cursor, most likely first.
func (m Model) Suggestions() []string {
	return m.suggestions
}

// SetWidth updates the render width.
func (m *Model) SetWidth(width int) {
	if width > 0 {
		m.width = width
	}
}

// Update implements the Bubble Tea update contract.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keyMap.Submit):
		content := m.Value()
		return m, func() tea.Msg { return SubmitMsg{Content: content} }

	case key.Matches(keyMsg, m.keyMap.Left):
		m.SetCursor(m.cursor - 1)

	case key.Matches(keyMsg, m.keyMap.Right):
		m.SetCursor(m.cursor + 1)

	case key.Matches(keyMsg, m.keyMap.Home):
		m.SetCursor(0)

	case key.Matches(keyMsg, m.keyMap.End):
		m.SetCursor(len(m.value))

	case key.Matches(keyMsg, m.keyMap.Backspace):
		if m.cursor > 0 {
			m.value = append(m.value[:m.cursor-1], m.value[m.cursor:]...)
			m.cursor--
			m.notify()
		}

	case key.Matches(keyMsg, m.keyMap.Delete):
		if m.cursor < len(m.value) {
			m.value = append(m.value[:m.cursor], m.value[m.cursor+1:]...)
			m.notify()
		}

	default:
		switch keyMsg.Type {
		case tea.KeyRunes:
			m.insert(keyMsg.Runes)
		case tea.KeySpace:
			m.insert([]rune{' '})
		}
	}

	return m, nil
}

func (m *Model) insert(runes []rune) {
	if len(runes) == 0 {
		return
	}
	updated := make([]rune, 0, len(m.value)+len(runes))
	updated = append(updated, m.value[:m.cursor]...)
	updated = append(updated, runes...)
	updated = append(updated, m.value[m.cursor:]...)
	m.value = updated
	m.cursor += len(runes)
	m.notify()
}

// notify fires the change listeners with the current snapshot, records
// any recompute failure and refreshes the suggestion hint. It runs to
// completion before Update returns, so listeners always observe a buffer
// consistent with the triggering mutation.
func (m *Model) notify() {
	m.err = nil
	if m.registry != nil {
		if err := m.registry.Notify(m.Value()); err != nil {
			m.err = err
			log.ErrorErr(log.CatUI, "change listeners failed", err)
		}
	}
	m.refreshSuggestions()
}

// refreshSuggestions queries the dictionary for the highlighted word under
// the cursor. Suggestion failures only clear the hint; the typed line
// itself is unaffected.
func (m *Model) refreshSuggestions() {
	m.suggestions = nil
	if m.suggest == nil || m.store == nil {
		return
	}

	w, ok := m.wordAt(m.cursor)
	if !ok {
		return
	}

	msk := m.freshMask()
	if msk == nil {
		return
	}
	if d, found := msk.Get(w.Start); !found || d != mask.StyleOn {
		return
	}

	suggestions, err := m.suggest(w.Text)
	if err != nil {
		log.ErrorErr(log.CatUI, "suggest failed", err, "word", w.Text)
		return
	}
	m.suggestions = suggestions
}

// wordAt returns the word whose span contains offset (a cursor resting
// just past a word's last character still counts).
func (m Model) wordAt(offset int) (token.Word, bool) {
	for _, w := range token.Tokenize(m.Value()) {
		if offset >= w.Start && offset <= w.End() {
			return w, true
		}
	}
	return token.Word{}, false
}

// freshMask returns the installed mask only when it was built from the
// current buffer content; a stale mask is never applied.
func (m Model) freshMask() *mask.Mask {
	if m.store == nil {
		return nil
	}
	msk, content, ok := m.store.Get(m.id)
	if !ok || content != m.Value() {
		return nil
	}
	return msk
}
