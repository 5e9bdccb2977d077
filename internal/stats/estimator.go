// Package stats derives corpus-wide statistics used to judge how surprising
// a blend is: how guessable its dangling spelling is and how common the
// overlapping spelling/pronunciation pair is at word edges.
package stats

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/portmanteau/internal/cache"
	"github.com/ppiankov/portmanteau/internal/corpus"
	"github.com/ppiankov/portmanteau/internal/phonetic"
)

var (
	// ErrNoMatches is returned when no corpus spelling shares the substring.
	ErrNoMatches = errors.New("stats: no corpus entry matches")

	// ErrEmptyCorpus is returned when a ratio over the corpus is undefined.
	ErrEmptyCorpus = errors.New("stats: corpus is empty")

	// ErrInvalidSide is returned for a side the operation does not support.
	ErrInvalidSide = errors.New("stats: invalid side")

	// ErrNotFound is returned by FrequencyTable for unseen sequences.
	ErrNotFound = errors.New("stats: sequence not found")
)

// Side selects which word edge a substring is anchored to.
type Side string

const (
	SideHead Side = "head"
	SideTail Side = "tail"
	SideAll  Side = "all"
)

// ParseSide converts s to a Side.
func ParseSide(s string) (Side, error) {
	switch side := Side(strings.ToLower(strings.TrimSpace(s))); side {
	case SideHead, SideTail, SideAll:
		return side, nil
	default:
		return "", fmt.Errorf("%w: %q (want head, tail or all)", ErrInvalidSide, s)
	}
}

// Estimator answers probability queries over a corpus. Results are memoized
// when a cache is configured; the corpus must not change afterwards.
type Estimator struct {
	corpus corpus.Corpus
	cache  cache.Cache[float64]
}

// Option configures an Estimator.
type Option func(*Estimator)

// WithCache memoizes query results in c.
func WithCache(c cache.Cache[float64]) Option {
	return func(e *Estimator) {
		e.cache = c
	}
}

// NewEstimator creates an estimator over c.
func NewEstimator(c corpus.Corpus, opts ...Option) *Estimator {
	e := &Estimator{corpus: c}
	for _, o := range opts {
		o(e)
	}
	return e
}

// ProbWordGivenSubgrapheme estimates how well a dangling substring identifies
// its word: 1 / (number of corpus spellings starting (head) or ending (tail)
// with sub). A count of zero is an error, never +Inf.
func (e *Estimator) ProbWordGivenSubgrapheme(sub string, side Side) (float64, error) {
	var match func(spelling string) bool
	switch side {
	case SideHead:
		match = func(spelling string) bool { return strings.HasPrefix(spelling, sub) }
	case SideTail:
		match = func(spelling string) bool { return strings.HasSuffix(spelling, sub) }
	default:
		return 0, fmt.Errorf("%w: %q (want head or tail)", ErrInvalidSide, side)
	}

	return e.memo(cache.Key("word-given-sub", string(side), sub), func() (float64, error) {
		count := 0
		for spelling := range e.corpus.All() {
			if match(spelling) {
				count++
			}
		}
		if count == 0 {
			return 0, fmt.Errorf("%w: %s %q", ErrNoMatches, side, sub)
		}
		return 1.0 / float64(count), nil
	})
}

// GraphemePhonemeProb returns the share of corpus entries that start with
// both sub and subPh, or end with both. High values mark common affixes.
func (e *Estimator) GraphemePhonemeProb(sub string, subPh phonetic.Sequence) (float64, error) {
	return e.memo(cache.Key("grapheme-phoneme", sub, subPh.String()), func() (float64, error) {
		total := e.corpus.Len()
		if total == 0 {
			return 0, ErrEmptyCorpus
		}

		count := 0
		for spelling, w := range e.corpus.All() {
			head := strings.HasPrefix(spelling, sub) && w.Phonemes.HasPrefix(subPh)
			tail := strings.HasSuffix(spelling, sub) && w.Phonemes.HasSuffix(subPh)
			if head || tail {
				count++
			}
		}
		return float64(count) / float64(total), nil
	})
}

func (e *Estimator) memo(key string, compute func() (float64, error)) (float64, error) {
	if e.cache == nil {
		return compute()
	}
	if v, ok := e.cache.Get(key); ok {
		return v, nil
	}

	v, err := compute()
	if err != nil {
		return 0, err
	}
	_ = e.cache.Set(key, v, 0)
	return v, nil
}
