package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/portmanteau/internal/corpus"
	"github.com/ppiankov/portmanteau/internal/portmanteau"
)

// Matcher defines the interface for matching two dictionary words
type Matcher interface {
	Match(word1, word2 *corpus.Word) (portmanteau.Result, error)
}

// Resolver looks words up by spelling
type Resolver interface {
	Resolve(spelling string) (*corpus.Word, error)
}

// Pair is an ordered pair of spellings to match
type Pair struct {
	Word1 string
	Word2 string
}

func (p Pair) String() string {
	return p.Word1 + "/" + p.Word2
}

// PairJob represents a single match job
type PairJob struct {
	Index    int
	Pair     Pair
	Resolver Resolver
	Matcher  Matcher
}

// Execute executes the match job
func (j *PairJob) Execute(ctx context.Context) Result {
	res := &PairResult{Index: j.Index, Pair: j.Pair}
	if err := ctx.Err(); err != nil {
		res.Error = err
		return res
	}

	w1, err := j.Resolver.Resolve(j.Pair.Word1)
	if err != nil {
		res.Error = err
		return res
	}
	w2, err := j.Resolver.Resolve(j.Pair.Word2)
	if err != nil {
		res.Error = err
		return res
	}

	match, err := j.Matcher.Match(w1, w2)
	if err != nil {
		res.Error = fmt.Errorf("match %s: %w", j.Pair, err)
		return res
	}
	res.Result = match
	return res
}

// PairResult represents the result of a match job
type PairResult struct {
	Index  int
	Pair   Pair
	Result portmanteau.Result
	Error  error
}

// GetError returns the error from the match result
func (r *PairResult) GetError() error {
	return r.Error
}

// BatchProcessor matches many pairs concurrently
type BatchProcessor struct {
	resolver    Resolver
	matcher     Matcher
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(resolver Resolver, matcher Matcher, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		resolver:    resolver,
		matcher:     matcher,
		concurrency: concurrency,
	}
}

// ProcessPairs matches pairs concurrently. Results come back in input order.
// When ctx ends early, pairs that never ran carry the context error.
func (b *BatchProcessor) ProcessPairs(ctx context.Context, pairs []Pair) []*PairResult {
	if len(pairs) == 0 {
		return []*PairResult{}
	}

	// Create worker pool
	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	// Submit jobs until the context ends
	for i, pair := range pairs {
		job := &PairJob{
			Index:    i,
			Pair:     pair,
			Resolver: b.resolver,
			Matcher:  b.matcher,
		}
		if !pool.Submit(job) {
			break
		}
	}

	// Wait for submitted jobs to complete
	results := pool.Wait()

	pairResults := make([]*PairResult, len(pairs))
	for _, result := range results {
		r := result.(*PairResult)
		pairResults[r.Index] = r
	}

	for i, r := range pairResults {
		if r != nil {
			continue
		}
		err := ctx.Err()
		if err == nil {
			err = context.Canceled
		}
		pairResults[i] = &PairResult{Index: i, Pair: pairs[i], Error: err}
	}

	return pairResults
}

// ProcessFile reads pairs from a file and matches them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*PairResult, error) {
	pairs, err := ReadPairsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read pairs: %w", err)
	}

	return b.ProcessPairs(ctx, pairs), nil
}

// ReadPairsFromFile reads word pairs from a file (one "word1 word2" per line)
func ReadPairsFromFile(filePath string) ([]Pair, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var pairs []Pair
	seen := make(map[Pair]bool)

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected 2 words, got %d", lineNum, len(fields))
		}
		pair := Pair{Word1: strings.ToLower(fields[0]), Word2: strings.ToLower(fields[1])}

		// Deduplicate pairs
		if !seen[pair] {
			seen[pair] = true
			pairs = append(pairs, pair)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return pairs, nil
}
