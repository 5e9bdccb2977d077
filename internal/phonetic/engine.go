package phonetic

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrLengthMismatch is returned when aligned sequences differ in length.
	ErrLengthMismatch = errors.New("phonetic: sequences must have equal length")

	// ErrInvalidTables is returned by NewEngine for inconsistent tables.
	ErrInvalidTables = errors.New("phonetic: invalid tables")
)

// Costs of each tolerance tier.
const (
	CostExact          = 0.0
	CostStressMismatch = 1.0
	CostNearConsonant  = 2.0
	CostNearVowel      = 4.0
)

// Engine computes phone and phoneme distances from a set of Tables.
// It is read-only after construction and safe for concurrent use.
type Engine struct {
	vowels         map[string]struct{}
	consonants     map[string]struct{}
	nearConsonants map[Pair]struct{}
	nearVowels     map[Pair]struct{}
}

// NewEngine validates t and builds the lookup sets.
func NewEngine(t Tables) (*Engine, error) {
	e := &Engine{
		vowels:         make(map[string]struct{}, len(t.Vowels)),
		consonants:     make(map[string]struct{}, len(t.Consonants)),
		nearConsonants: make(map[Pair]struct{}, len(t.NearMissConsonants)),
		nearVowels:     make(map[Pair]struct{}, len(t.NearMissVowels)),
	}

	for _, v := range t.Vowels {
		e.vowels[v] = struct{}{}
	}
	for _, c := range t.Consonants {
		if _, ok := e.vowels[c]; ok {
			return nil, fmt.Errorf("%w: %q is both vowel and consonant", ErrInvalidTables, c)
		}
		e.consonants[c] = struct{}{}
	}

	for _, p := range t.NearMissConsonants {
		if err := checkPair(p, e.consonants, "consonant"); err != nil {
			return nil, err
		}
		e.nearConsonants[normalize(p)] = struct{}{}
	}
	for _, p := range t.NearMissVowels {
		if err := checkPair(p, e.vowels, "vowel"); err != nil {
			return nil, err
		}
		e.nearVowels[normalize(p)] = struct{}{}
	}

	return e, nil
}

func checkPair(p Pair, class map[string]struct{}, kind string) error {
	if p[0] == p[1] {
		return fmt.Errorf("%w: %s pair %v repeats a symbol", ErrInvalidTables, kind, p)
	}
	for _, s := range p {
		if _, ok := class[s]; !ok {
			return fmt.Errorf("%w: %s pair %v names unknown %s %q", ErrInvalidTables, kind, p, kind, s)
		}
	}
	return nil
}

// normalize orders a pair so lookups are order independent.
func normalize(p Pair) Pair {
	if p[1] < p[0] {
		return Pair{p[1], p[0]}
	}
	return p
}

// IsVowel classifies p by symbol, ignoring stress.
func (e *Engine) IsVowel(p Phoneme) bool {
	_, ok := e.vowels[p.Symbol()]
	return ok
}

// IsConsonant classifies p by symbol, ignoring stress.
func (e *Engine) IsConsonant(p Phoneme) bool {
	_, ok := e.consonants[p.Symbol()]
	return ok
}

// CountClasses counts vowel and consonant phones in seq. Phones in neither
// set are not counted.
func (e *Engine) CountClasses(seq Sequence) (vowels, consonants int) {
	for _, p := range seq {
		switch {
		case e.IsVowel(p):
			vowels++
		case e.IsConsonant(p):
			consonants++
		}
	}
	return vowels, consonants
}

// PhoneDistance returns the cost of substituting a for b. The result is
// symmetric and +Inf when the phones cannot match.
func (e *Engine) PhoneDistance(a, b Phoneme) float64 {
	if a == b {
		return CostExact
	}

	sa, sb := a.Symbol(), b.Symbol()
	if sa == sb {
		ta, tb := a.Stress(), b.Stress()
		if (ta == StressUnstressed && tb == StressPrimary) || (ta == StressPrimary && tb == StressUnstressed) {
			return CostStressMismatch
		}
		// secondary stress differences are free
		return CostExact
	}

	pair := normalize(Pair{sa, sb})
	if e.IsConsonant(a) && e.IsConsonant(b) {
		if _, ok := e.nearConsonants[pair]; ok {
			return CostNearConsonant
		}
	}
	if e.IsVowel(a) && e.IsVowel(b) && a.Stress() == b.Stress() {
		if _, ok := e.nearVowels[pair]; ok {
			return CostNearVowel
		}
	}

	return math.Inf(1)
}

// SequenceDistance sums PhoneDistance position by position. It does not
// consider insertions or deletions.
func (e *Engine) SequenceDistance(a, b Sequence) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(a), len(b))
	}

	total := 0.0
	for i := range a {
		total += e.PhoneDistance(a[i], b[i])
		if math.IsInf(total, 1) {
			break
		}
	}
	return total, nil
}
