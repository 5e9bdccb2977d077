package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// errSkipLine signals that a line should be skipped (comment, empty, etc.).
var errSkipLine = errors.New("skip line")

// LoadStats holds loader statistics for logging.
type LoadStats struct {
	TotalLines   int
	CommentLines int
	ParsedLines  int
	InvalidLines int
	UniqueWords  int
}

// LoadResult holds a loaded dictionary and how it was read.
type LoadResult struct {
	Dictionary *Dictionary
	Stats      LoadStats
}

// Load reads an aligned lexicon file into a Dictionary.
func Load(filePath string) (LoadResult, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return LoadResult{}, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Read(f)
}

// Read parses an aligned lexicon: one "<graphemes> <phonemes>" entry per
// line, chunks separated by '|'. Lines starting with ";;;" are comments.
// Malformed lines are counted and skipped.
func Read(r io.Reader) (LoadResult, error) {
	var (
		stats LoadStats
		words []*Word
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		stats.TotalLines++
		line := scanner.Text()

		w, err := parseLine(line)
		if err == errSkipLine {
			if strings.HasPrefix(line, ";;;") {
				stats.CommentLines++
			}
			continue
		}
		if err != nil {
			stats.InvalidLines++
			continue
		}

		stats.ParsedLines++
		words = append(words, w)
	}

	if err := scanner.Err(); err != nil {
		return LoadResult{}, fmt.Errorf("scanner error: %w", err)
	}

	dict := NewDictionary(words)
	stats.UniqueWords = dict.Len()
	return LoadResult{Dictionary: dict, Stats: stats}, nil
}

func parseLine(line string) (*Word, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, ";;;") {
		return nil, errSkipLine
	}

	fields := strings.Fields(line)
	if len(fields) != 2 {
		return nil, fmt.Errorf("expected 2 columns, got %d", len(fields))
	}
	return ParseWord(fields[0], fields[1])
}
