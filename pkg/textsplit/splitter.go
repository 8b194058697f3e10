// Package textsplit produces overlapping fixed-size text segments for
// embedding. Consecutive chunks share an overlap so that context spanning a
// chunk boundary is not lost.
package textsplit

import "fmt"

const (
	DefaultChunkSize = 700
	DefaultOverlap   = 70
)

// Splitter splits text into chunks of at most ChunkSize runes, with each
// chunk after the first repeating the last Overlap runes of its predecessor.
type Splitter struct {
	ChunkSize int
	Overlap   int
}

// NewSplitter validates the parameters and returns a Splitter.
func NewSplitter(chunkSize, overlap int) (*Splitter, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("overlap must satisfy 0 <= overlap < chunk size, got %d", overlap)
	}
	return &Splitter{ChunkSize: chunkSize, Overlap: overlap}, nil
}

// DefaultSplitter returns a splitter with the production chunking parameters.
func DefaultSplitter() *Splitter {
	s, _ := NewSplitter(DefaultChunkSize, DefaultOverlap)
	return s
}

// Split returns the ordered chunks of text. Empty text yields no chunks;
// text shorter than one chunk yields exactly one. Concatenating the first
// chunk with the non-overlapping suffix of every subsequent chunk
// reconstructs the input exactly.
func (s *Splitter) Split(text string) []string {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	if len(runes) <= s.ChunkSize {
		return []string{text}
	}

	step := s.ChunkSize - s.Overlap
	chunks := make([]string, 0, (len(runes)+step-1)/step)
	for start := 0; start < len(runes); start += step {
		end := start + s.ChunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}
