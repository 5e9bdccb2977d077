// Package portmanteau finds inclusion portmanteaus: a short word whose
// pronunciation sits, within a tolerant distance, inside a longer word, so
// that the short spelling can replace the matched part of the long spelling.
//
// Matching scans offsets left to right and returns the first admissible
// overlap rather than the globally best one. Expected negative outcomes are
// reported through Result; only corpus statistic failures surface as errors.
package portmanteau

import (
	"fmt"

	"github.com/ppiankov/portmanteau/internal/corpus"
	"github.com/ppiankov/portmanteau/internal/phonetic"
	"github.com/ppiankov/portmanteau/internal/stats"
)

// Status is the outcome of a match attempt.
type Status int

const (
	StatusOK     Status = 0
	StatusFailed Status = 1
)

// Reason classifies a match attempt.
type Reason string

const (
	ReasonFound              Reason = "found"
	ReasonSameLength         Reason = "same_length"
	ReasonTooFewVowels       Reason = "too_few_vowels"
	ReasonTooFewConsonants   Reason = "too_few_consonants"
	ReasonNoOverlap          Reason = "no_overlap"
	ReasonUnaligned          Reason = "unaligned"
	ReasonIdenticalGraphemes Reason = "identical_graphemes"
)

var messages = map[Reason]string{
	ReasonFound:              "portmanteau found!",
	ReasonSameLength:         "arpabet phonemes are same length, can't construct inclusion",
	ReasonTooFewVowels:       "arpabet overlap does not have enough vowels",
	ReasonTooFewConsonants:   "arpabet overlap does not have enough consonants",
	ReasonNoOverlap:          "no <=max_overlap_dist overlaps were found",
	ReasonUnaligned:          "arpabet_phoneme could not be aligned with grapheme",
	ReasonIdenticalGraphemes: "grapheme overlaps are identical",
}

// Message returns the human-readable message for r.
func (r Reason) Message() string {
	return messages[r]
}

// Result is the structured outcome of Matcher.Match.
type Result struct {
	Candidate *Candidate
	Status    Status
	Reason    Reason
	Message   string
}

func failed(r Reason) Result {
	return Result{Status: StatusFailed, Reason: r, Message: r.Message()}
}

// Config holds the match thresholds.
type Config struct {
	MinVowelPhones     int
	MinConsonantPhones int
	MaxOverlapDistance float64
}

// DefaultConfig returns the default thresholds.
func DefaultConfig() Config {
	return Config{
		MinVowelPhones:     1,
		MinConsonantPhones: 1,
		MaxOverlapDistance: 3,
	}
}

// Statistics provides the corpus probabilities used to score a candidate.
type Statistics interface {
	ProbWordGivenSubgrapheme(sub string, side stats.Side) (float64, error)
	GraphemePhonemeProb(sub string, subPh phonetic.Sequence) (float64, error)
}

// Matcher builds inclusion portmanteaus. It holds no mutable state and is
// safe for concurrent use as long as its Statistics are.
type Matcher struct {
	cfg    Config
	engine *phonetic.Engine
	stats  Statistics
}

// NewMatcher creates a matcher.
func NewMatcher(cfg Config, engine *phonetic.Engine, st Statistics) *Matcher {
	return &Matcher{cfg: cfg, engine: engine, stats: st}
}

// Config returns the matcher thresholds.
func (m *Matcher) Config() Config {
	return m.cfg
}

// Match tries to embed the phonetically shorter of the two words inside the
// longer one. The returned error is non-nil only when a corpus statistic
// cannot be computed.
func (m *Matcher) Match(word1, word2 *corpus.Word) (Result, error) {
	if len(word1.Phonemes) == len(word2.Phonemes) {
		return failed(ReasonSameLength), nil
	}

	short, long := word1, word2
	if len(word1.Phonemes) > len(word2.Phonemes) {
		short, long = word2, word1
	}

	// every overlap contains all of short
	vowels, consonants := m.engine.CountClasses(short.Phonemes)
	if vowels < m.cfg.MinVowelPhones {
		return failed(ReasonTooFewVowels), nil
	}
	if consonants < m.cfg.MinConsonantPhones {
		return failed(ReasonTooFewConsonants), nil
	}

	n := len(short.Phonemes)
	res := failed(ReasonNoOverlap)
	for offset := 0; offset+n <= len(long.Phonemes); offset++ {
		window := long.Phonemes[offset : offset+n]
		dist, err := m.engine.SequenceDistance(short.Phonemes, window)
		if err != nil {
			return Result{}, err
		}
		if dist > m.cfg.MaxOverlapDistance {
			continue
		}

		gStart, gEnd, err := long.Alignment.GraphemeRange(offset, offset+n-1)
		if err != nil {
			res = failed(ReasonUnaligned)
			continue
		}
		overlap := long.Grapheme[gStart : gEnd+1]
		if overlap == short.Grapheme {
			res = failed(ReasonIdenticalGraphemes)
			continue
		}

		c, err := m.build(short, long, offset, gStart, gEnd, dist)
		if err != nil {
			return Result{}, err
		}
		c.OverlapVowelPhones = vowels
		c.OverlapConsonantPhones = consonants
		c.OverlapPhones = vowels + consonants

		return Result{
			Candidate: c,
			Status:    StatusOK,
			Reason:    ReasonFound,
			Message:   ReasonFound.Message(),
		}, nil
	}

	return res, nil
}

// build assembles the candidate for an accepted offset.
func (m *Matcher) build(short, long *corpus.Word, offset, gStart, gEnd int, dist float64) (*Candidate, error) {
	n := len(short.Phonemes)
	head := long.Grapheme[:gStart]
	tail := long.Grapheme[gEnd+1:]

	// the dangling spelling that best identifies long decides reconstructability
	reconstruction := 0.0
	for _, d := range []struct {
		sub  string
		side stats.Side
	}{{head, stats.SideHead}, {tail, stats.SideTail}} {
		if d.sub == "" {
			continue
		}
		p, err := m.stats.ProbWordGivenSubgrapheme(d.sub, d.side)
		if err != nil {
			return nil, fmt.Errorf("reconstruct %q from %s %q: %w", long.Grapheme, d.side, d.sub, err)
		}
		reconstruction = max(reconstruction, p)
	}

	shortProb, err := m.stats.GraphemePhonemeProb(short.Grapheme, short.Phonemes)
	if err != nil {
		return nil, fmt.Errorf("overlap probability of %q: %w", short.Grapheme, err)
	}
	longProb, err := m.stats.GraphemePhonemeProb(long.Grapheme[gStart:gEnd+1], long.Phonemes[offset:offset+n])
	if err != nil {
		return nil, fmt.Errorf("overlap probability of %q: %w", long.Grapheme, err)
	}

	return &Candidate{
		Short:               short,
		Long:                long,
		Offset:              offset,
		Grapheme:            head + short.Grapheme + tail,
		Phonemes:            phonetic.Concat(long.Phonemes[:offset], short.Phonemes, long.Phonemes[offset+n:]),
		ReconstructionProba: reconstruction,
		OverlapDistance:     dist,
		OverlapProba:        max(shortProb, longProb),
	}, nil
}
