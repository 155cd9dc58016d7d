package spell

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/redline/internal/token"
)

// fakeChecker is a scripted Checker for adapter and cache tests.
type fakeChecker struct {
	known        map[string]bool
	suggestions  map[string][]string
	err          error
	checkCalls   int
	suggestCalls int
}

func (f *fakeChecker) Check(word string) (bool, error) {
	f.checkCalls++
	if f.err != nil {
		return false, f.err
	}
	return f.known[word], nil
}

func (f *fakeChecker) Suggest(word string) ([]string, error) {
	f.suggestCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.suggestions[word], nil
}

func TestMisspelled_InvertsCheck(t *testing.T) {
	classify := Misspelled(&fakeChecker{known: map[string]bool{"cat": true}})

	hit, err := classify(token.Word{Start: 0, Text: "cat"})
	require.NoError(t, err)
	require.False(t, hit, "known word must not be highlighted")

	hit, err = classify(token.Word{Start: 4, Text: "dgo"})
	require.NoError(t, err)
	require.True(t, hit, "unknown word must be highlighted")
}

func TestMisspelled_PropagatesCheckerError(t *testing.T) {
	classify := Misspelled(&fakeChecker{err: ErrNotInitialized})

	_, err := classify(token.Word{Text: "cat"})
	require.ErrorIs(t, err, ErrNotInitialized)
}

func TestEvenLength(t *testing.T) {
	for text, want := range map[string]bool{
		"cat":   false,
		"cats":  true,
		"ab":    true,
		"héllo": false, // five runes
	} {
		hit, err := EvenLength(token.Word{Text: text})
		require.NoError(t, err)
		require.Equal(t, want, hit, "word %q", text)
	}
}

func TestCachedChecker_CachesVerdicts(t *testing.T) {
	inner := &fakeChecker{known: map[string]bool{"cat": true}}
	c := NewCachedChecker(inner, DefaultExpiration, DefaultCleanupInterval)

	for i := 0; i < 3; i++ {
		known, err := c.Check("cat")
		require.NoError(t, err)
		require.True(t, known)
	}
	require.Equal(t, 1, inner.checkCalls)
}

func TestCachedChecker_CachesSuggestions(t *testing.T) {
	inner := &fakeChecker{suggestions: map[string][]string{"dgo": {"dog", "ago"}}}
	c := NewCachedChecker(inner, DefaultExpiration, DefaultCleanupInterval)

	for i := 0; i < 3; i++ {
		got, err := c.Suggest("dgo")
		require.NoError(t, err)
		require.Equal(t, []string{"dog", "ago"}, got)
	}
	require.Equal(t, 1, inner.suggestCalls)
}

func TestCachedChecker_DoesNotCacheErrors(t *testing.T) {
	inner := &fakeChecker{err: ErrNotInitialized}
	c := NewCachedChecker(inner, DefaultExpiration, DefaultCleanupInterval)

	_, err := c.Check("cat")
	require.ErrorIs(t, err, ErrNotInitialized)
	_, err = c.Check("cat")
	require.ErrorIs(t, err, ErrNotInitialized)
	require.Equal(t, 2, inner.checkCalls, "errors must be retried, not cached")

	// Once the inner checker recovers, the verdict is served and cached.
	inner.err = nil
	inner.known = map[string]bool{"cat": true}
	known, err := c.Check("cat")
	require.NoError(t, err)
	require.True(t, known)
}

func TestCachedChecker_FlushDropsEntries(t *testing.T) {
	inner := &fakeChecker{known: map[string]bool{"cat": true}}
	c := NewCachedChecker(inner, DefaultExpiration, DefaultCleanupInterval)

	_, err := c.Check("cat")
	require.NoError(t, err)

	c.Flush()

	_, err = c.Check("cat")
	require.NoError(t, err)
	require.Equal(t, 2, inner.checkCalls)
}
