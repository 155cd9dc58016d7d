// Package spell is the dictionary collaborator behind word highlighting.
//
// The real word-validity engine (affix expansion, morphology, ranked
// suggestions) lives outside this program; this package defines the two
// stateless queries the pipeline needs, a file-backed Dictionary that
// answers them from a plain word list, and the classify adapters that plug
// a Checker into the mask builder.
package spell

import (
	"errors"

	"github.com/zjrosen/redline/internal/mask"
	"github.com/zjrosen/redline/internal/token"
)

// ErrNotInitialized is returned by Check and Suggest when the dictionary
// has not been loaded yet. The caller must not guess a verdict: both
// "valid" and "invalid" defaults would be observably wrong.
var ErrNotInitialized = errors.New("spellchecker not initialized")

// Checker answers word-validity queries.
type Checker interface {
	// Check reports whether word is known to the dictionary.
	Check(word string) (bool, error)

	// Suggest returns replacement candidates, most likely first.
	Suggest(word string) ([]string, error)
}

// Misspelled adapts a Checker into a classify function: a word is
// highlighted iff the dictionary does not know it. Checker errors
// propagate so a failed lookup aborts the mask rebuild instead of
// silently un-highlighting the word.
func Misspelled(c Checker) mask.Classify {
	return func(w token.Word) (bool, error) {
		known, err := c.Check(w.Text)
		if err != nil {
			return false, err
		}
		return !known, nil
	}
}

// EvenLength is the placeholder classify used when no dictionary is
// configured: highlight iff the word has an even number of runes.
func EvenLength(w token.Word) (bool, error) {
	return w.Len()%2 == 0, nil
}
