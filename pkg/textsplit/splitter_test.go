package textsplit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSplitterValidation(t *testing.T) {
	_, err := NewSplitter(0, 0)
	assert.Error(t, err)

	_, err = NewSplitter(10, 10)
	assert.Error(t, err)

	_, err = NewSplitter(10, -1)
	assert.Error(t, err)

	s, err := NewSplitter(10, 3)
	require.NoError(t, err)
	assert.Equal(t, 10, s.ChunkSize)
	assert.Equal(t, 3, s.Overlap)
}

func TestSplitEmptyText(t *testing.T) {
	s := DefaultSplitter()
	assert.Empty(t, s.Split(""))
}

func TestSplitShortTextSingleChunk(t *testing.T) {
	s, err := NewSplitter(100, 10)
	require.NoError(t, err)

	chunks := s.Split("hello world")
	require.Len(t, chunks, 1)
	assert.Equal(t, "hello world", chunks[0])
}

func TestSplitOverlapBetweenConsecutiveChunks(t *testing.T) {
	s, err := NewSplitter(10, 4)
	require.NoError(t, err)

	text := "abcdefghijklmnopqrstuvwxyz"
	chunks := s.Split(text)
	require.Greater(t, len(chunks), 1)

	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1])
		cur := []rune(chunks[i])
		overlap := string(prev[len(prev)-4:])
		assert.True(t, strings.HasPrefix(string(cur), overlap),
			"chunk %d should start with the last 4 runes of chunk %d", i, i-1)
	}
}

func TestSplitChunkSizeBound(t *testing.T) {
	s, err := NewSplitter(7, 2)
	require.NoError(t, err)

	for _, c := range s.Split(strings.Repeat("x", 95)) {
		assert.LessOrEqual(t, len([]rune(c)), 7)
	}
}

// Reconstructing the input from chunk[0] plus the non-overlapping suffix of
// every subsequent chunk must yield the original text exactly.
func TestSplitRoundTrip(t *testing.T) {
	cases := []struct {
		name    string
		size    int
		overlap int
		text    string
	}{
		{"exact multiple", 10, 0, strings.Repeat("ab", 25)},
		{"with overlap", 10, 3, "the quick brown fox jumps over the lazy dog and keeps running"},
		{"ragged tail", 13, 5, strings.Repeat("lorem ipsum ", 11)},
		{"unicode", 8, 2, "héllo wörld ünicode tèxt with áccents everywhere"},
		{"single chunk", 500, 50, "short"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewSplitter(tc.size, tc.overlap)
			require.NoError(t, err)

			chunks := s.Split(tc.text)
			require.NotEmpty(t, chunks)

			rebuilt := chunks[0]
			for _, c := range chunks[1:] {
				runes := []rune(c)
				rebuilt += string(runes[tc.overlap:])
			}
			assert.Equal(t, tc.text, rebuilt)
		})
	}
}
