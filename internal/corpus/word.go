// Package corpus holds pronunciation dictionary entries and the read-only
// views the matcher and statistics need over them.
package corpus

import (
	"errors"
	"fmt"
	"iter"
	"sort"
	"strings"

	"github.com/ppiankov/portmanteau/internal/phonetic"
)

// ErrUnknownWord is returned when a spelling is not in the corpus.
var ErrUnknownWord = errors.New("corpus: unknown word")

const (
	chunkSep = "|"
	unitSep  = ":"
	nullUnit = "_"
)

// Word is a dictionary entry: spelling, pronunciation and their alignment.
type Word struct {
	Grapheme  string
	Phonemes  phonetic.Sequence
	Alignment Alignment
}

// GraphemeSpan returns the spelling aligned with the inclusive phoneme range.
func (w *Word) GraphemeSpan(phStart, phEnd int) (string, error) {
	gs, ge, err := w.Alignment.GraphemeRange(phStart, phEnd)
	if err != nil {
		return "", err
	}
	return w.Grapheme[gs : ge+1], nil
}

func (w *Word) String() string {
	return fmt.Sprintf("%s [%s]", w.Grapheme, w.Phonemes)
}

// ParseWord builds a Word from aligned chunk columns such as
// "c|a|t|" and "K|AE1|T|". Units inside a chunk are joined with ':' and '_'
// marks an empty side. Chunks with an empty side are folded into their
// neighbour so every chunk has both graphemes and phonemes.
func ParseWord(graphemes, phonemes string) (*Word, error) {
	gChunks := splitChunks(graphemes)
	pChunks := splitChunks(phonemes)
	if len(gChunks) != len(pChunks) {
		return nil, fmt.Errorf("chunk count mismatch: %d graphemes, %d phonemes", len(gChunks), len(pChunks))
	}
	if len(gChunks) == 0 {
		return nil, errors.New("empty entry")
	}

	type chunk struct {
		g  string
		ph phonetic.Sequence
	}
	var (
		merged    []chunk
		pendingG  string
		pendingPh phonetic.Sequence
	)
	for i := range gChunks {
		g := pendingG + parseGraphemes(gChunks[i])
		ph := phonetic.Concat(pendingPh, parsePhonemes(pChunks[i]))
		pendingG, pendingPh = "", nil

		switch {
		case g != "" && len(ph) > 0:
			merged = append(merged, chunk{g: g, ph: ph})
		case len(merged) > 0:
			last := &merged[len(merged)-1]
			last.g += g
			last.ph = phonetic.Concat(last.ph, ph)
		default:
			pendingG, pendingPh = g, ph
		}
	}
	if pendingG != "" || len(pendingPh) > 0 || len(merged) == 0 {
		return nil, errors.New("entry has no chunk with both graphemes and phonemes")
	}

	var (
		spelling strings.Builder
		seq      phonetic.Sequence
		gCounts  = make([]int, len(merged))
		pCounts  = make([]int, len(merged))
	)
	for i, c := range merged {
		spelling.WriteString(c.g)
		seq = append(seq, c.ph...)
		gCounts[i] = len(c.g)
		pCounts[i] = len(c.ph)
	}

	alignment, err := NewChunkAlignment(gCounts, pCounts)
	if err != nil {
		return nil, err
	}
	return &Word{Grapheme: spelling.String(), Phonemes: seq, Alignment: alignment}, nil
}

// MustParseWord is like ParseWord but panics on error. Intended for fixtures.
func MustParseWord(graphemes, phonemes string) *Word {
	w, err := ParseWord(graphemes, phonemes)
	if err != nil {
		panic(fmt.Sprintf("corpus: parse %q %q: %v", graphemes, phonemes, err))
	}
	return w
}

func splitChunks(s string) []string {
	s = strings.Trim(strings.TrimSpace(s), chunkSep)
	if s == "" {
		return nil
	}
	return strings.Split(s, chunkSep)
}

func parseGraphemes(chunk string) string {
	var b strings.Builder
	for _, u := range strings.Split(chunk, unitSep) {
		if u == nullUnit {
			continue
		}
		b.WriteString(strings.ToLower(u))
	}
	return b.String()
}

func parsePhonemes(chunk string) phonetic.Sequence {
	var seq phonetic.Sequence
	for _, u := range strings.Split(chunk, unitSep) {
		if u == nullUnit || u == "" {
			continue
		}
		seq = append(seq, phonetic.Phoneme(strings.ToUpper(u)))
	}
	return seq
}

// Corpus is read-only access to every entry of a pronunciation dictionary.
type Corpus interface {
	// Len returns the number of entries.
	Len() int

	// All yields every (spelling, word) entry.
	All() iter.Seq2[string, *Word]
}

// Dictionary is an immutable in-memory Corpus iterated in spelling order.
type Dictionary struct {
	words map[string]*Word
	order []string
}

// NewDictionary indexes words by spelling. The first entry of a repeated
// spelling wins.
func NewDictionary(words []*Word) *Dictionary {
	d := &Dictionary{words: make(map[string]*Word, len(words))}
	for _, w := range words {
		if _, exists := d.words[w.Grapheme]; exists {
			continue
		}
		d.words[w.Grapheme] = w
		d.order = append(d.order, w.Grapheme)
	}
	sort.Strings(d.order)
	return d
}

// Len implements Corpus.
func (d *Dictionary) Len() int {
	return len(d.order)
}

// All implements Corpus.
func (d *Dictionary) All() iter.Seq2[string, *Word] {
	return func(yield func(string, *Word) bool) {
		for _, spelling := range d.order {
			if !yield(spelling, d.words[spelling]) {
				return
			}
		}
	}
}

// Lookup returns the entry for spelling, case-insensitively.
func (d *Dictionary) Lookup(spelling string) (*Word, bool) {
	w, ok := d.words[strings.ToLower(strings.TrimSpace(spelling))]
	return w, ok
}

// Resolve is Lookup returning ErrUnknownWord for missing spellings.
func (d *Dictionary) Resolve(spelling string) (*Word, error) {
	w, ok := d.Lookup(spelling)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWord, spelling)
	}
	return w, nil
}
