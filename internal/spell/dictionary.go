package spell

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/zjrosen/redline/internal/log"
)

const maxSuggestions = 5

// Dictionary is a word-list-backed Checker. It reads Hunspell-style files:
// the affix file is only checked for readability (affix expansion is the
// external engine's job), and the .dic word list is parsed with its entry
// count header and per-word flag suffixes ("word/FLAGS") stripped.
//
// Init may be called again at any time to swap in a fresh word list; reads
// and reloads are safe from concurrent goroutines.
type Dictionary struct {
	mu     sync.RWMutex
	words  map[string]struct{}
	sorted []string // lowercased, for prefix-scan suggestions
	loaded bool
}

// NewDictionary returns an uninitialized dictionary. Check and Suggest
// fail with ErrNotInitialized until Init succeeds.
func NewDictionary() *Dictionary {
	return &Dictionary{}
}

// Init loads the dictionary from the given affix and word-list paths.
// It fails if either file is unreadable or the word list is malformed,
// and leaves any previously loaded word list in place on failure.
func (d *Dictionary) Init(affPath, dictPath string) error {
	if _, err := os.Stat(affPath); err != nil {
		return fmt.Errorf("reading affix file %s: %w", affPath, err)
	}

	f, err := os.Open(dictPath) //nolint:gosec // G304: path comes from user config
	if err != nil {
		return fmt.Errorf("reading dictionary file %s: %w", dictPath, err)
	}
	defer func() { _ = f.Close() }()

	words, err := parseWordList(f)
	if err != nil {
		return fmt.Errorf("parsing dictionary file %s: %w", dictPath, err)
	}

	sorted := make([]string, 0, len(words))
	for w := range words {
		sorted = append(sorted, strings.ToLower(w))
	}
	sort.Strings(sorted)

	d.mu.Lock()
	d.words = words
	d.sorted = sorted
	d.loaded = true
	d.mu.Unlock()

	log.Info(log.CatSpell, "dictionary loaded", "path", dictPath, "words", len(words))
	return nil
}

// Check reports whether word is in the word list. The lookup tolerates
// sentence-case and all-caps variants of a known lowercase word.
func (d *Dictionary) Check(word string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.loaded {
		return false, ErrNotInitialized
	}
	if _, ok := d.words[word]; ok {
		return true, nil
	}
	_, ok := d.words[strings.ToLower(word)]
	return ok, nil
}

// Suggest returns up to five dictionary words ranked by longest shared
// prefix with word. This is a cheap stand-in ordering: edit-distance
// ranking belongs to the external engine.
func (d *Dictionary) Suggest(word string) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.loaded {
		return nil, ErrNotInitialized
	}

	lower := strings.ToLower(word)
	type scored struct {
		word   string
		common int
	}
	var candidates []scored
	for _, w := range d.sorted {
		if w == lower {
			continue
		}
		if c := commonPrefixLen(w, lower); c > 0 {
			candidates = append(candidates, scored{word: w, common: c})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].common > candidates[j].common
	})
	if len(candidates) > maxSuggestions {
		candidates = candidates[:maxSuggestions]
	}

	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.word
	}
	return out, nil
}

// WordCount returns the number of loaded words, for logging.
func (d *Dictionary) WordCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.words)
}

// parseWordList reads a Hunspell-style .dic: an integer entry-count header
// followed by one entry per line. Affix flags after '/' and morphological
// fields after a tab are stripped.
func parseWordList(f *os.File) (map[string]struct{}, error) {
	scanner := bufio.NewScanner(f)

	var header string
	for scanner.Scan() {
		header = strings.TrimSpace(scanner.Text())
		if header != "" {
			break
		}
	}
	if header == "" {
		return nil, fmt.Errorf("empty word list")
	}
	if _, err := strconv.Atoi(header); err != nil {
		return nil, fmt.Errorf("missing entry count header, got %q", header)
	}

	words := make(map[string]struct{})
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if i := strings.IndexByte(line, '/'); i >= 0 {
			line = line[:i]
		}
		if i := strings.IndexByte(line, '\t'); i >= 0 {
			line = line[:i]
		}
		if line != "" {
			words[line] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

func commonPrefixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}
