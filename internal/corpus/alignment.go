package corpus

import (
	"errors"
	"fmt"
)

var (
	// ErrUnaligned is returned when a range splits an aligned chunk.
	ErrUnaligned = errors.New("corpus: range does not fall on alignment boundaries")

	// ErrOutOfRange is returned when a range lies outside the word.
	ErrOutOfRange = errors.New("corpus: range out of bounds")
)

// Alignment maps inclusive index ranges between a word's spelling and its
// phoneme sequence.
type Alignment interface {
	// GraphemeRange maps an inclusive phoneme range to a grapheme range.
	GraphemeRange(phStart, phEnd int) (grStart, grEnd int, err error)

	// PhonemeRange maps an inclusive grapheme range to a phoneme range.
	PhonemeRange(grStart, grEnd int) (phStart, phEnd int, err error)
}

// Chunk pairs an inclusive grapheme span with an inclusive phoneme span.
type Chunk struct {
	GStart, GEnd int
	PStart, PEnd int
}

// ChunkAlignment is an Alignment made of consecutive chunks, each holding at
// least one grapheme and one phoneme.
type ChunkAlignment struct {
	chunks []Chunk
}

// NewChunkAlignment builds an alignment from per-chunk grapheme and phoneme
// counts. Both counts must be positive for every chunk.
func NewChunkAlignment(graphemeCounts, phonemeCounts []int) (*ChunkAlignment, error) {
	if len(graphemeCounts) != len(phonemeCounts) {
		return nil, fmt.Errorf("chunk count mismatch: %d graphemes, %d phonemes", len(graphemeCounts), len(phonemeCounts))
	}

	a := &ChunkAlignment{chunks: make([]Chunk, 0, len(graphemeCounts))}
	g, p := 0, 0
	for i := range graphemeCounts {
		gn, pn := graphemeCounts[i], phonemeCounts[i]
		if gn <= 0 || pn <= 0 {
			return nil, fmt.Errorf("chunk %d: empty side (%d graphemes, %d phonemes)", i, gn, pn)
		}
		a.chunks = append(a.chunks, Chunk{
			GStart: g, GEnd: g + gn - 1,
			PStart: p, PEnd: p + pn - 1,
		})
		g += gn
		p += pn
	}
	return a, nil
}

// Chunks returns a copy of the aligned chunks.
func (a *ChunkAlignment) Chunks() []Chunk {
	out := make([]Chunk, len(a.chunks))
	copy(out, a.chunks)
	return out
}

// GraphemeRange implements Alignment.
func (a *ChunkAlignment) GraphemeRange(phStart, phEnd int) (int, int, error) {
	first, last, err := a.span(phStart, phEnd,
		func(c Chunk) int { return c.PStart },
		func(c Chunk) int { return c.PEnd })
	if err != nil {
		return 0, 0, err
	}
	return first.GStart, last.GEnd, nil
}

// PhonemeRange implements Alignment.
func (a *ChunkAlignment) PhonemeRange(grStart, grEnd int) (int, int, error) {
	first, last, err := a.span(grStart, grEnd,
		func(c Chunk) int { return c.GStart },
		func(c Chunk) int { return c.GEnd })
	if err != nil {
		return 0, 0, err
	}
	return first.PStart, last.PEnd, nil
}

// span finds the chunks starting at start and ending at end on one side.
func (a *ChunkAlignment) span(start, end int, lo, hi func(Chunk) int) (Chunk, Chunk, error) {
	if len(a.chunks) == 0 || start < 0 || end < start || end > hi(a.chunks[len(a.chunks)-1]) {
		return Chunk{}, Chunk{}, fmt.Errorf("%w: [%d, %d]", ErrOutOfRange, start, end)
	}

	firstIdx, lastIdx := -1, -1
	for i, c := range a.chunks {
		if lo(c) == start {
			firstIdx = i
		}
		if hi(c) == end {
			lastIdx = i
			break
		}
	}
	if firstIdx < 0 || lastIdx < firstIdx {
		return Chunk{}, Chunk{}, fmt.Errorf("%w: [%d, %d]", ErrUnaligned, start, end)
	}
	return a.chunks[firstIdx], a.chunks[lastIdx], nil
}
