package portmanteau

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/ppiankov/portmanteau/internal/corpus"
	"github.com/ppiankov/portmanteau/internal/model"
	"github.com/ppiankov/portmanteau/internal/phonetic"
)

// Candidate is an accepted inclusion portmanteau. It is immutable once
// returned by Matcher.Match.
type Candidate struct {
	Short *corpus.Word
	Long  *corpus.Word

	// Offset is the phoneme index in Long where Short was matched.
	Offset int

	Grapheme string
	Phonemes phonetic.Sequence

	ReconstructionProba float64

	OverlapVowelPhones     int
	OverlapConsonantPhones int
	OverlapPhones          int
	OverlapDistance        float64

	// OverlapProba is the grapheme/phoneme commonness of the overlap.
	OverlapProba float64
}

// Key is the ranking tuple of a candidate; smaller is better.
type Key struct {
	NegOverlapPhones int
	OverlapDistance  float64
	OverlapProba     float64
}

// Compare orders keys lexicographically.
func (k Key) Compare(o Key) int {
	if c := cmp.Compare(k.NegOverlapPhones, o.NegOverlapPhones); c != 0 {
		return c
	}
	if c := cmp.Compare(k.OverlapDistance, o.OverlapDistance); c != 0 {
		return c
	}
	return cmp.Compare(k.OverlapProba, o.OverlapProba)
}

// OrderingKey returns (-overlap phones, overlap distance, overlap probability).
func (c *Candidate) OrderingKey() Key {
	return Key{
		NegOverlapPhones: -c.OverlapPhones,
		OverlapDistance:  c.OverlapDistance,
		OverlapProba:     c.OverlapProba,
	}
}

// Rank sorts candidates best first. Ties keep their input order.
func Rank(candidates []*Candidate) {
	slices.SortStableFunc(candidates, func(a, b *Candidate) int {
		return a.OrderingKey().Compare(b.OrderingKey())
	})
}

func (c *Candidate) String() string {
	return fmt.Sprintf("%s (%s/%s)", c.Grapheme, c.Short.Grapheme, c.Long.Grapheme)
}

// Describe renders the candidate for reports and debugging.
func (c *Candidate) Describe() string {
	rule := strings.Repeat("-", 79)

	var b strings.Builder
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "# Word Combination: %s + %s\n", c.Short.Grapheme, c.Long.Grapheme)
	fmt.Fprintf(&b, "# Grapheme Portmanteau: %s\n", c.Grapheme)
	fmt.Fprintf(&b, "# Phoneme Portmanteau: %s\n", c.Phonemes)
	fmt.Fprintf(&b, "# Phoneme Distance: %g\n", c.OverlapDistance)
	fmt.Fprintf(&b, "# Grapheme+Phoneme Probability: %g\n", round(c.OverlapProba, 5))
	fmt.Fprintf(&b, "# Overlapping Phones: %d\n", c.OverlapPhones)
	fmt.Fprintf(&b, "# Overlapping Vowel Phones: %d\n", c.OverlapVowelPhones)
	fmt.Fprintf(&b, "# Overlapping Consonant Phones: %d\n", c.OverlapConsonantPhones)
	b.WriteString(rule + "\n")
	return b.String()
}

// Blend converts the candidate to its report representation.
func (c *Candidate) Blend() model.Blend {
	phones := make([]string, len(c.Phonemes))
	for i, p := range c.Phonemes {
		phones[i] = string(p)
	}
	return model.Blend{
		Short:                  c.Short.Grapheme,
		Long:                   c.Long.Grapheme,
		Grapheme:               c.Grapheme,
		Phonemes:               phones,
		Offset:                 c.Offset,
		ReconstructionProba:    c.ReconstructionProba,
		OverlapVowelPhones:     c.OverlapVowelPhones,
		OverlapConsonantPhones: c.OverlapConsonantPhones,
		OverlapPhones:          c.OverlapPhones,
		OverlapDistance:        c.OverlapDistance,
		OverlapProba:           round(c.OverlapProba, 5),
	}
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
