package mask

import (
	"fmt"

	"github.com/zjrosen/redline/internal/token"
)

// Classify decides whether a word should be highlighted. Implementations
// backed by an external dictionary may fail (for example when queried
// before the dictionary is loaded); any error aborts the whole build so a
// wrong highlight decision is never silently committed.
type Classify func(token.Word) (bool, error)

// Build computes a fresh mask for the given words. Each highlighted word
// contributes exactly one StyleOn at its start offset and one StyleOff one
// past its last character; other words contribute nothing. Words never
// overlap, so the resulting directives are well-nested without a merge
// pass. Build carries no state between calls: the result is a pure
// function of the words and the classify outcomes.
func Build(words []token.Word, classify Classify) (*Mask, error) {
	m := New()
	for _, w := range words {
		hit, err := classify(w)
		if err != nil {
			return nil, fmt.Errorf("classifying %q at offset %d: %w", w.Text, w.Start, err)
		}
		if !hit {
			continue
		}
		m.Set(w.Start, StyleOn)
		m.Set(w.End(), StyleOff)
	}
	return m, nil
}
