package model

import (
	"runtime"
	"time"

	"github.com/ppiankov/portmanteau/internal/phonetic"
)

// Config is the complete portmanteau configuration
type Config struct {
	Corpus      CorpusConfig      `yaml:"corpus" mapstructure:"corpus"`
	Matcher     MatcherConfig     `yaml:"matcher" mapstructure:"matcher"`
	Phonetics   phonetic.Tables   `yaml:"phonetics" mapstructure:"phonetics"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// CorpusConfig locates the aligned lexicon
type CorpusConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// MatcherConfig holds the overlap thresholds
type MatcherConfig struct {
	MinVowelPhones     int     `yaml:"min_vowel_phones" mapstructure:"min_vowel_phones"`
	MinConsonantPhones int     `yaml:"min_consonant_phones" mapstructure:"min_consonant_phones"`
	MaxOverlapDistance float64 `yaml:"max_overlap_distance" mapstructure:"max_overlap_distance"`
}

// ConcurrencyConfig controls the batch worker pool
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// CacheConfig controls memoization of corpus statistics
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// OutputConfig controls reporting
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
	Top     int  `yaml:"top" mapstructure:"top"` // 0 keeps every blend
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Matcher: MatcherConfig{
			MinVowelPhones:     1,
			MinConsonantPhones: 1,
			MaxOverlapDistance: 3,
		},
		Phonetics: phonetic.DefaultTables(),
		Concurrency: ConcurrencyConfig{
			Workers: runtime.NumCPU(),
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     time.Hour,
		},
		Output: OutputConfig{
			Top: 50,
		},
	}
}
