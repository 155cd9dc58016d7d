package spell

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeDictFiles creates a minimal affix/word-list pair in a temp dir.
func writeDictFiles(t *testing.T, dic string) (affPath, dictPath string) {
	t.Helper()
	dir := t.TempDir()
	affPath = filepath.Join(dir, "en_US.aff")
	dictPath = filepath.Join(dir, "en_US.dic")
	require.NoError(t, os.WriteFile(affPath, []byte("SET UTF-8\n"), 0o644))
	require.NoError(t, os.WriteFile(dictPath, []byte(dic), 0o644))
	return affPath, dictPath
}

func TestDictionary_CheckBeforeInit(t *testing.T) {
	d := NewDictionary()

	_, err := d.Check("cat")
	require.ErrorIs(t, err, ErrNotInitialized)

	_, err = d.Suggest("cat")
	require.ErrorIs(t, err, ErrNotInitialized)
}

func TestDictionary_InitMissingAffixFile(t *testing.T) {
	_, dictPath := writeDictFiles(t, "1\ncat\n")

	d := NewDictionary()
	err := d.Init(filepath.Join(t.TempDir(), "missing.aff"), dictPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "affix file")
}

func TestDictionary_InitMissingWordList(t *testing.T) {
	affPath, _ := writeDictFiles(t, "1\ncat\n")

	d := NewDictionary()
	err := d.Init(affPath, filepath.Join(t.TempDir(), "missing.dic"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "dictionary file")
}

func TestDictionary_InitMalformedHeader(t *testing.T) {
	affPath, dictPath := writeDictFiles(t, "cat\ndog\n")

	d := NewDictionary()
	err := d.Init(affPath, dictPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "entry count header")
}

func TestDictionary_InitEmptyWordList(t *testing.T) {
	affPath, dictPath := writeDictFiles(t, "")

	d := NewDictionary()
	require.Error(t, d.Init(affPath, dictPath))
}

func TestDictionary_CheckKnownAndUnknown(t *testing.T) {
	affPath, dictPath := writeDictFiles(t, "3\ncat\ndog/S\nhello\tpo:noun\n")

	d := NewDictionary()
	require.NoError(t, d.Init(affPath, dictPath))
	require.Equal(t, 3, d.WordCount())

	for word, want := range map[string]bool{
		"cat":   true,
		"dog":   true, // affix flags stripped
		"hello": true, // morph fields stripped
		"Cat":   true, // sentence-case variant
		"catz":  false,
		"S":     false,
	} {
		known, err := d.Check(word)
		require.NoError(t, err)
		require.Equal(t, want, known, "word %q", word)
	}
}

func TestDictionary_SuggestRanksByPrefix(t *testing.T) {
	affPath, dictPath := writeDictFiles(t, "4\ncats\ncar\ncatalog\ndog\n")

	d := NewDictionary()
	require.NoError(t, d.Init(affPath, dictPath))

	got, err := d.Suggest("catz")
	require.NoError(t, err)
	require.NotEmpty(t, got)
	// "cats" and "catalog" share "cat" with the query; "car" only "ca".
	require.Subset(t, got, []string{"cats", "catalog"})
	require.Equal(t, "car", got[len(got)-1])
	require.NotContains(t, got, "dog")
	require.LessOrEqual(t, len(got), maxSuggestions)
}

func TestDictionary_SuggestExcludesQueryItself(t *testing.T) {
	affPath, dictPath := writeDictFiles(t, "2\ncat\ncats\n")

	d := NewDictionary()
	require.NoError(t, d.Init(affPath, dictPath))

	got, err := d.Suggest("cat")
	require.NoError(t, err)
	require.NotContains(t, got, "cat")
	require.Contains(t, got, "cats")
}

func TestDictionary_ReInitReplacesWordList(t *testing.T) {
	affPath, dictPath := writeDictFiles(t, "1\ncat\n")

	d := NewDictionary()
	require.NoError(t, d.Init(affPath, dictPath))

	require.NoError(t, os.WriteFile(dictPath, []byte("1\ndog\n"), 0o644))
	require.NoError(t, d.Init(affPath, dictPath))

	known, err := d.Check("cat")
	require.NoError(t, err)
	require.False(t, known)

	known, err = d.Check("dog")
	require.NoError(t, err)
	require.True(t, known)
}

func TestDictionary_FailedReInitKeepsOldWordList(t *testing.T) {
	affPath, dictPath := writeDictFiles(t, "1\ncat\n")

	d := NewDictionary()
	require.NoError(t, d.Init(affPath, dictPath))

	require.NoError(t, os.WriteFile(dictPath, []byte("not-a-count\n"), 0o644))
	require.Error(t, d.Init(affPath, dictPath))

	known, err := d.Check("cat")
	require.NoError(t, err)
	require.True(t, known)
}
