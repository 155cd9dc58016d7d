// Package token splits a line buffer into words for highlighting.
//
// Offsets throughout are 0-based rune offsets into the buffer. A word is a
// maximal run of characters that are neither whitespace nor punctuation;
// word start offsets strictly increase across a scan, so a word's start
// offset doubles as its identity within one buffer snapshot.
package token

import (
	"unicode"
	"unicode/utf8"
)

// Word is a non-owning view of one word in a buffer snapshot.
type Word struct {
	// Start is the rune offset of the word's first character.
	Start int

	// Text is the exact substring of the run.
	Text string
}

// Len returns the word's length in runes.
func (w Word) Len() int {
	return utf8.RuneCountInString(w.Text)
}

// End returns the rune offset one past the word's last character.
func (w Word) End() int {
	return w.Start + w.Len()
}

// IsBoundary reports whether r delimits words. The test is the Unicode
// whitespace and punctuation classes, not a fixed ASCII table, so the
// same semantics hold independent of source alphabet.
func IsBoundary(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsPunct(r)
}

// Tokenize scans buffer once, left to right, and returns its words in
// strictly increasing Start order.
//
// Runs of consecutive boundary characters yield nothing. A word that runs
// to end-of-buffer without a closing boundary is still emitted, but a
// boundary character at end-of-buffer leaves no empty trailing word. The
// empty buffer yields no words. Tokenize is total: any input is valid.
func Tokenize(buffer string) []Word {
	runes := []rune(buffer)
	var words []Word
	start := 0
	for i, r := range runes {
		switch {
		case IsBoundary(r):
			if i > start {
				words = append(words, Word{Start: start, Text: string(runes[start:i])})
			}
			start = i + 1
		case i == len(runes)-1:
			words = append(words, Word{Start: start, Text: string(runes[start:])})
		}
	}
	return words
}

// ByStart keys words by start offset. Starts strictly advance within one
// scan, so the mapping is lossless.
func ByStart(words []Word) map[int]Word {
	m := make(map[int]Word, len(words))
	for _, w := range words {
		m[w.Start] = w
	}
	return m
}
