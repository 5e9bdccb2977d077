package model

import "time"

// Report is the result of a batch run
type Report struct {
	Corpus      string    `json:"corpus"`       // Lexicon the words were looked up in
	GeneratedAt time.Time `json:"generated_at"` // When the batch finished
	Settings    Settings  `json:"settings"`     // Thresholds the blends were found with
	Summary     Summary   `json:"summary"`
	Blends      []Blend   `json:"blends"` // Ranked best first
	Failures    []Failure `json:"failures,omitempty"`
}

// Settings records the thresholds a report was produced with
type Settings struct {
	MinVowelPhones     int     `json:"min_vowel_phones"`
	MinConsonantPhones int     `json:"min_consonant_phones"`
	MaxOverlapDistance float64 `json:"max_overlap_distance"`
}

// Summary counts batch outcomes
type Summary struct {
	Pairs   int            `json:"pairs"`   // Pairs submitted
	Found   int            `json:"found"`   // Pairs yielding a blend
	Errors  int            `json:"errors"`  // Pairs that failed with an error
	Reasons map[string]int `json:"reasons"` // Outcome counts by reason
}

// Blend is the report view of a portmanteau candidate
type Blend struct {
	Short                  string   `json:"short"`
	Long                   string   `json:"long"`
	Grapheme               string   `json:"grapheme"`
	Phonemes               []string `json:"phonemes"`
	Offset                 int      `json:"offset"`
	ReconstructionProba    float64  `json:"reconstruction_proba"`
	OverlapVowelPhones     int      `json:"overlap_vowel_phones"`
	OverlapConsonantPhones int      `json:"overlap_consonant_phones"`
	OverlapPhones          int      `json:"overlap_phones"`
	OverlapDistance        float64  `json:"overlap_distance"`
	OverlapProba           float64  `json:"overlap_proba"`
}

// Failure records a pair that could not be evaluated
type Failure struct {
	Word1 string `json:"word1"`
	Word2 string `json:"word2"`
	Error string `json:"error"`
}
