package wordlist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListHas1024UniqueWords(t *testing.T) {
	seen := make(map[string]bool, len(Words))
	for _, w := range Words {
		require.False(t, seen[w], "duplicate word %q", w)
		seen[w] = true
	}
	require.Len(t, seen, 1024)
}

func TestPrefixesAreUnique(t *testing.T) {
	seen := make(map[string]string, len(Words))
	for _, w := range Words {
		prefix := w[:PrefixLength]
		if other, exists := seen[prefix]; exists {
			t.Fatalf("prefix %q ambiguous between %q and %q", prefix, other, w)
		}
		seen[prefix] = w
	}
}

func TestWordsAreSorted(t *testing.T) {
	for i := 1; i < len(Words); i++ {
		require.True(t, Words[i-1] < Words[i], "words not sorted at index %d", i)
	}
}

func TestWordToIndexRoundTrip(t *testing.T) {
	for i, w := range Words {
		idx, err := WordToIndex(w)
		require.NoError(t, err)
		require.Equal(t, i, idx)
	}
}

func TestWordToIndexCaseAndWhitespaceInsensitive(t *testing.T) {
	idx, err := WordToIndex("  AcAdEmIc  ")
	require.NoError(t, err)
	require.Equal(t, 0, idx)
}

func TestWordToIndexPrefixMatch(t *testing.T) {
	idx, err := WordToIndex("acad")
	require.NoError(t, err)
	require.Equal(t, 0, idx)
}

func TestWordToIndexUnknownWordErrors(t *testing.T) {
	_, err := WordToIndex("notarealword")
	require.Error(t, err)
}

func TestIndexToWordOutOfRangeErrors(t *testing.T) {
	_, err := IndexToWord(-1)
	require.Error(t, err)
	_, err = IndexToWord(1024)
	require.Error(t, err)
}

func TestSuggestReturnsCloseMatches(t *testing.T) {
	suggestions := Suggest("acadmic")
	require.NotEmpty(t, suggestions)
	found := false
	for _, s := range suggestions {
		if s == "academic" {
			found = true
		}
	}
	require.True(t, found, "expected 'academic' among suggestions %v", suggestions)
}

func TestSuggestIsCaseInsensitive(t *testing.T) {
	a := Suggest("ACADMIC")
	b := Suggest("acadmic")
	require.Equal(t, a, b)
}

func TestWordsContainOnlyLowercaseLetters(t *testing.T) {
	for _, w := range Words {
		require.Equal(t, strings.ToLower(w), w)
	}
}
