// Package phonetic implements the tolerant ARPAbet phone and phoneme distance
// used to decide whether one pronunciation can stand in for another.
package phonetic

import (
	"strings"
)

// Stress is the stress digit carried by a vowel phoneme.
type Stress int

const (
	StressNone       Stress = -1 // consonants carry no stress digit
	StressUnstressed Stress = 0
	StressPrimary    Stress = 1
	StressSecondary  Stress = 2
)

// Phoneme is a single ARPAbet phone, e.g. "K" or "AE1".
type Phoneme string

// Symbol returns the phone symbol without its stress digit.
func (p Phoneme) Symbol() string {
	s := string(p)
	if n := len(s); n > 0 && isStressDigit(s[n-1]) {
		return s[:n-1]
	}
	return s
}

// Stress returns the stress digit, or StressNone if the phone has none.
func (p Phoneme) Stress() Stress {
	s := string(p)
	if n := len(s); n > 0 && isStressDigit(s[n-1]) {
		return Stress(s[n-1] - '0')
	}
	return StressNone
}

func isStressDigit(c byte) bool {
	return c == '0' || c == '1' || c == '2'
}

// Sequence is an ordered pronunciation. Sequences handed out by the corpus
// are shared and must not be modified.
type Sequence []Phoneme

// ParseSequence splits s on whitespace, '-' or '|' and upper-cases each phone.
func ParseSequence(s string) Sequence {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '-' || r == '|'
	})
	seq := make(Sequence, 0, len(fields))
	for _, f := range fields {
		seq = append(seq, Phoneme(strings.ToUpper(f)))
	}
	return seq
}

// String joins the phones with '-'.
func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, p := range s {
		parts[i] = string(p)
	}
	return strings.Join(parts, "-")
}

// Equal reports whether both sequences hold the same phones, stress included.
func (s Sequence) Equal(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is a leading run of s.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	return len(prefix) <= len(s) && s[:len(prefix)].Equal(prefix)
}

// HasSuffix reports whether suffix is a trailing run of s.
func (s Sequence) HasSuffix(suffix Sequence) bool {
	return len(suffix) <= len(s) && s[len(s)-len(suffix):].Equal(suffix)
}

// Concat returns a new sequence holding the parts in order.
func Concat(parts ...Sequence) Sequence {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make(Sequence, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
