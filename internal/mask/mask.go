// Package mask computes and stores sparse styling overlays for line buffers.
//
// A mask maps 0-based rune offsets to style on/off directives. Applying a
// mask decorates a rendered copy of the buffer; the buffer itself is never
// mutated. Masks are rebuilt from scratch on every buffer change, never
// patched incrementally.
package mask

import (
	"sort"
	"strings"
)

// Directive tells the renderer to start or stop styling at an offset.
type Directive uint8

const (
	StyleOn Directive = iota
	StyleOff
)

func (d Directive) String() string {
	switch d {
	case StyleOn:
		return "on"
	case StyleOff:
		return "off"
	default:
		return "unknown"
	}
}

// Mask is a sparse set of offset-keyed style directives. A StyleOff key may
// equal the buffer's rune length, meaning "stop styling at end of line".
// Directives are independent keyed events; nothing about a Mask depends on
// the order they were set.
type Mask struct {
	directives map[int]Directive
}

// New returns an empty mask.
func New() *Mask {
	return &Mask{directives: make(map[int]Directive)}
}

// Set records a directive at the given rune offset, replacing any previous
// directive at that offset.
func (m *Mask) Set(offset int, d Directive) {
	m.directives[offset] = d
}

// Get returns the directive at offset, if any.
func (m *Mask) Get(offset int) (Directive, bool) {
	d, ok := m.directives[offset]
	return d, ok
}

// Len returns the number of directives.
func (m *Mask) Len() int {
	return len(m.directives)
}

// Offsets returns the directive keys in ascending order.
func (m *Mask) Offsets() []int {
	offsets := make([]int, 0, len(m.directives))
	for o := range m.directives {
		offsets = append(offsets, o)
	}
	sort.Ints(offsets)
	return offsets
}

// Equal reports whether both masks hold the same directives.
func (m *Mask) Equal(other *Mask) bool {
	if other == nil || len(m.directives) != len(other.directives) {
		return false
	}
	for o, d := range m.directives {
		if od, ok := other.directives[o]; !ok || od != d {
			return false
		}
	}
	return true
}

// Apply splices the markers into a copy of buffer at the directive offsets,
// ascending, and returns the decorated string. The markers are opaque to
// the mask; the caller picks the rendering convention (ANSI escapes in a
// terminal, visible sentinels in tests). Offsets beyond the buffer's rune
// length are clamped to the end.
func (m *Mask) Apply(buffer, onMarker, offMarker string) string {
	if len(m.directives) == 0 {
		return buffer
	}

	runes := []rune(buffer)
	var b strings.Builder
	prev := 0
	for _, o := range m.Offsets() {
		d := m.directives[o]
		if o > len(runes) {
			o = len(runes)
		}
		b.WriteString(string(runes[prev:o]))
		if d == StyleOn {
			b.WriteString(onMarker)
		} else {
			b.WriteString(offMarker)
		}
		prev = o
	}
	b.WriteString(string(runes[prev:]))
	return b.String()
}
