package stats

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/ppiankov/portmanteau/internal/corpus"
	"github.com/ppiankov/portmanteau/internal/phonetic"
)

// FrequencyTable counts contiguous phoneme subsequences across a corpus:
// anywhere in a word, at its head, and at its tail. Each word contributes at
// most once per subsequence and side.
type FrequencyTable struct {
	maxLen int
	all    map[string]int
	head   map[string]int
	tail   map[string]int
}

// BuildFrequencyTable scans c once. Subsequences longer than maxLen are not
// counted; maxLen <= 0 counts every length.
func BuildFrequencyTable(c corpus.Corpus, maxLen int) *FrequencyTable {
	t := &FrequencyTable{
		maxLen: maxLen,
		all:    make(map[string]int),
		head:   make(map[string]int),
		tail:   make(map[string]int),
	}

	for _, w := range c.All() {
		seq := w.Phonemes
		n := len(seq)
		seen := make(map[string]struct{})
		for i := 0; i < n; i++ {
			for j := i + 1; j <= n; j++ {
				if maxLen > 0 && j-i > maxLen {
					break
				}
				key := seq[i:j].String()
				if _, dup := seen[key]; !dup {
					seen[key] = struct{}{}
					t.all[key]++
				}
				if i == 0 {
					t.head[key]++
				}
				if j == n {
					t.tail[key]++
				}
			}
		}
	}

	return t
}

// Entry is one counted subsequence, phonemes joined by '-'.
type Entry struct {
	Sequence string
	Count    int
}

func (t *FrequencyTable) side(side Side) (map[string]int, error) {
	switch side {
	case SideHead:
		return t.head, nil
	case SideTail:
		return t.tail, nil
	case SideAll:
		return t.all, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSide, side)
	}
}

// Frequency returns how many words contain seq on the given side.
func (t *FrequencyTable) Frequency(seq phonetic.Sequence, side Side) (int, error) {
	m, err := t.side(side)
	if err != nil {
		return 0, err
	}

	n, ok := m[seq.String()]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, seq)
	}
	return n, nil
}

// Len returns the number of distinct subsequences counted.
func (t *FrequencyTable) Len() int {
	return len(t.all)
}

// Top returns the n most frequent subsequences on side, most frequent first
// and ties in sequence order. n <= 0 returns every entry.
func (t *FrequencyTable) Top(side Side, n int) ([]Entry, error) {
	m, err := t.side(side)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(m))
	for seq, count := range m {
		entries = append(entries, Entry{Sequence: seq, Count: count})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Sequence, b.Sequence)
	})

	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}
