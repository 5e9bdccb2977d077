package phonetic

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultTables())
	require.NoError(t, err)
	return e
}

func TestPhoneme_SymbolAndStress(t *testing.T) {
	tests := []struct {
		in     Phoneme
		symbol string
		stress Stress
	}{
		{"K", "K", StressNone},
		{"AE1", "AE", StressPrimary},
		{"AH0", "AH", StressUnstressed},
		{"AO2", "AO", StressSecondary},
		{"", "", StressNone},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.symbol, tt.in.Symbol())
			assert.Equal(t, tt.stress, tt.in.Stress())
		})
	}
}

func TestPhoneDistance_Tiers(t *testing.T) {
	e := newTestEngine(t)
	inf := math.Inf(1)

	tests := []struct {
		name string
		a, b Phoneme
		want float64
	}{
		{"identical consonant", "K", "K", 0},
		{"identical vowel", "AE1", "AE1", 0},
		{"unstressed vs primary", "AE0", "AE1", 1},
		{"primary vs unstressed", "AE1", "AE0", 1},
		{"secondary vs primary is free", "AE2", "AE1", 0},
		{"secondary vs unstressed is free", "AE2", "AE0", 0},
		{"near consonant", "D", "T", 2},
		{"near consonant reversed", "T", "D", 2},
		{"far consonants", "K", "S", inf},
		{"near vowel same stress", "EH1", "IH1", 4},
		{"near vowel different stress", "EH1", "IH0", inf},
		{"far vowels", "AA1", "IY1", inf},
		{"vowel vs consonant", "AE1", "T", inf},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.PhoneDistance(tt.a, tt.b))
		})
	}
}

func TestPhoneDistance_SymmetricAndReflexive(t *testing.T) {
	e := newTestEngine(t)
	tables := DefaultTables()

	var phones []Phoneme
	for _, c := range tables.Consonants {
		phones = append(phones, Phoneme(c))
	}
	for _, v := range tables.Vowels {
		for _, d := range []string{"0", "1", "2"} {
			phones = append(phones, Phoneme(v+d))
		}
	}

	for _, a := range phones {
		assert.Equal(t, 0.0, e.PhoneDistance(a, a), "self distance of %s", a)
		for _, b := range phones {
			assert.Equal(t, e.PhoneDistance(a, b), e.PhoneDistance(b, a), "%s vs %s", a, b)
		}
	}
}

func TestSequenceDistance(t *testing.T) {
	e := newTestEngine(t)

	d, err := e.SequenceDistance(ParseSequence("K AE1 T"), ParseSequence("K AE1 T"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)

	d, err = e.SequenceDistance(ParseSequence("K AE1 D"), ParseSequence("K AE0 T"))
	require.NoError(t, err)
	assert.Equal(t, 3.0, d)

	d, err = e.SequenceDistance(ParseSequence("K AE1 T"), ParseSequence("S AE1 T"))
	require.NoError(t, err)
	assert.True(t, math.IsInf(d, 1))
}

func TestSequenceDistance_LengthMismatch(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.SequenceDistance(ParseSequence("K AE1 T"), ParseSequence("K AE1"))
	require.ErrorIs(t, err, ErrLengthMismatch)
}

func TestCountClasses(t *testing.T) {
	e := newTestEngine(t)

	v, c := e.CountClasses(ParseSequence("K AE1 T AH0 G AO2 R IY0"))
	assert.Equal(t, 4, v)
	assert.Equal(t, 4, c)
}

func TestNewEngine_InvalidTables(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Tables)
	}{
		{"symbol in both classes", func(tb *Tables) { tb.Consonants = append(tb.Consonants, "AA") }},
		{"consonant pair with vowel", func(tb *Tables) { tb.NearMissConsonants = append(tb.NearMissConsonants, Pair{"B", "AA"}) }},
		{"vowel pair repeats symbol", func(tb *Tables) { tb.NearMissVowels = append(tb.NearMissVowels, Pair{"AA", "AA"}) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables := DefaultTables()
			tt.mutate(&tables)
			_, err := NewEngine(tables)
			require.ErrorIs(t, err, ErrInvalidTables)
		})
	}
}

func TestSequence_PrefixSuffix(t *testing.T) {
	seq := ParseSequence("K-AE1-T-AH0-G-AO2-R-IY0")

	assert.True(t, seq.HasPrefix(ParseSequence("K AE1")))
	assert.False(t, seq.HasPrefix(ParseSequence("K AE0")))
	assert.True(t, seq.HasSuffix(ParseSequence("R IY0")))
	assert.True(t, seq.HasSuffix(Sequence{}))
	assert.False(t, ParseSequence("K").HasPrefix(seq))
	assert.Equal(t, "K-AE1-T-AH0-G-AO2-R-IY0", seq.String())
}

func TestLoadTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	content := `vowels: [AA, AO]
consonants: [B, P]
near_miss_consonants:
  - [B, P]
near_miss_vowels:
  - [AA, AO]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tables, err := LoadTables(path)
	require.NoError(t, err)
	assert.Equal(t, []Pair{{"B", "P"}}, tables.NearMissConsonants)

	e, err := NewEngine(tables)
	require.NoError(t, err)
	assert.Equal(t, 4.0, e.PhoneDistance("AA1", "AO1"))
}
