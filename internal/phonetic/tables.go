package phonetic

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Pair is an unordered pair of phone symbols.
type Pair [2]string

// Tables holds the static classification data the Engine is driven by.
type Tables struct {
	Vowels             []string `yaml:"vowels" mapstructure:"vowels"`
	Consonants         []string `yaml:"consonants" mapstructure:"consonants"`
	NearMissConsonants []Pair   `yaml:"near_miss_consonants" mapstructure:"near_miss_consonants"`
	NearMissVowels     []Pair   `yaml:"near_miss_vowels" mapstructure:"near_miss_vowels"`
}

// DefaultTables returns the ARPAbet inventory used by the CMU dictionary.
//
// Consonant near-misses pair voiced/voiceless partners and neighbouring
// nasals. Vowel near-misses pair vowels adjacent in height or backness.
func DefaultTables() Tables {
	return Tables{
		Vowels: []string{
			"AA", "AE", "AH", "AO", "AW", "AY", "EH", "ER",
			"EY", "IH", "IY", "OW", "OY", "UH", "UW",
		},
		Consonants: []string{
			"B", "CH", "D", "DH", "F", "G", "HH", "JH", "K", "L", "M", "N",
			"NG", "P", "R", "S", "SH", "T", "TH", "V", "W", "Y", "Z", "ZH",
		},
		NearMissConsonants: []Pair{
			{"B", "P"},
			{"D", "T"},
			{"G", "K"},
			{"V", "F"},
			{"DH", "TH"},
			{"Z", "S"},
			{"ZH", "SH"},
			{"JH", "CH"},
			{"M", "N"},
			{"N", "NG"},
		},
		NearMissVowels: []Pair{
			{"AA", "AO"},
			{"AA", "AH"},
			{"AE", "EH"},
			{"AH", "UH"},
			{"EH", "IH"},
			{"EH", "EY"},
			{"IH", "IY"},
			{"UH", "UW"},
			{"AO", "OW"},
			{"ER", "AH"},
		},
	}
}

// LoadTables reads tables from a YAML file.
func LoadTables(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("read tables: %w", err)
	}

	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tables{}, fmt.Errorf("parse tables: %w", err)
	}
	return t, nil
}
