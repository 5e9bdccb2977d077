package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ppiankov/portmanteau/internal/corpus"
	"github.com/ppiankov/portmanteau/internal/model"
	"github.com/ppiankov/portmanteau/internal/phonetic"
	"github.com/ppiankov/portmanteau/internal/portmanteau"
	"github.com/ppiankov/portmanteau/internal/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lexicon = `;;; test lexicon
c|a|t|  K|AE1|T|
k|a|t|  K|AE1|T|
c|a|d|  K|AE1|D|
d|o|g|  D|AO1|G|
c|a|t|e|g|o|r|y|  K|AE1|T|AH0|G|AO2|R|IY0|
broken line with too many columns
`

func writeLexicon(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lexicon.txt")
	require.NoError(t, os.WriteFile(path, []byte(lexicon), 0644))
	return path
}

func testPipeline(t *testing.T) *Pipeline {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Corpus.Path = writeLexicon(t)
	cfg.Concurrency.Workers = 2

	p, err := NewPipeline(cfg)
	require.NoError(t, err)
	return p
}

func TestNewPipeline(t *testing.T) {
	p := testPipeline(t)
	assert.Equal(t, 5, p.Dictionary().Len())
	assert.NotNil(t, p.Estimator())
	assert.NotNil(t, p.memo)
}

func TestNewPipeline_NoCorpus(t *testing.T) {
	_, err := NewPipeline(model.DefaultConfig())
	require.Error(t, err)

	cfg := model.DefaultConfig()
	cfg.Corpus.Path = filepath.Join(t.TempDir(), "missing.txt")
	_, err = NewPipeline(cfg)
	require.Error(t, err)
}

func TestNew_InvalidTables(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Phonetics.Consonants = append(cfg.Phonetics.Consonants, "AA")

	_, err := New(cfg, corpus.NewDictionary(nil))
	require.ErrorIs(t, err, phonetic.ErrInvalidTables)
}

func TestNew_CacheDisabled(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false

	p, err := New(cfg, corpus.NewDictionary(nil))
	require.NoError(t, err)
	assert.Nil(t, p.memo)
}

func TestMatcherConfig(t *testing.T) {
	got := MatcherConfig(model.MatcherConfig{MinVowelPhones: 2, MinConsonantPhones: 3, MaxOverlapDistance: 4.5})
	assert.Equal(t, portmanteau.Config{MinVowelPhones: 2, MinConsonantPhones: 3, MaxOverlapDistance: 4.5}, got)
}

func TestPipeline_Match(t *testing.T) {
	p := testPipeline(t)

	res, err := p.Match("Kat", "category")
	require.NoError(t, err)
	require.Equal(t, portmanteau.StatusOK, res.Status, res.Message)
	assert.Equal(t, "kategory", res.Candidate.Grapheme)

	_, err = p.Match("kat", "zebra")
	require.ErrorIs(t, err, corpus.ErrUnknownWord)
}

func TestPipeline_Run(t *testing.T) {
	p := testPipeline(t)

	pairs := []worker.Pair{
		{Word1: "cad", Word2: "category"},
		{Word1: "kat", Word2: "category"},
		{Word1: "cat", Word2: "dog"},
		{Word1: "kat", Word2: "zebra"},
	}
	report := p.Run(context.Background(), pairs)

	assert.Equal(t, p.config.Corpus.Path, report.Corpus)
	assert.Equal(t, 4, report.Summary.Pairs)
	assert.Equal(t, 2, report.Summary.Found)
	assert.Equal(t, 1, report.Summary.Errors)
	assert.Equal(t, map[string]int{"found": 2, "same_length": 1}, report.Summary.Reasons)
	assert.Equal(t, 3.0, report.Settings.MaxOverlapDistance)

	require.Len(t, report.Blends, 2)
	// equal overlap size, the exact overlap ranks first
	assert.Equal(t, "kategory", report.Blends[0].Grapheme)
	assert.Equal(t, "cadegory", report.Blends[1].Grapheme)

	require.Len(t, report.Failures, 1)
	assert.Equal(t, "zebra", report.Failures[0].Word2)
	assert.Contains(t, report.Failures[0].Error, "unknown word")
}

func TestPipeline_Run_Top(t *testing.T) {
	p := testPipeline(t)
	p.config.Output.Top = 1

	report := p.Run(context.Background(), []worker.Pair{
		{Word1: "cad", Word2: "category"},
		{Word1: "kat", Word2: "category"},
	})
	assert.Equal(t, 2, report.Summary.Found)
	require.Len(t, report.Blends, 1)
	assert.Equal(t, "kategory", report.Blends[0].Grapheme)
}

func TestPipeline_Run_Cancelled(t *testing.T) {
	p := testPipeline(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := p.Run(ctx, []worker.Pair{{Word1: "kat", Word2: "category"}})
	assert.Equal(t, 1, report.Summary.Errors)
	assert.Empty(t, report.Blends)
}

func TestPipeline_RunFile(t *testing.T) {
	p := testPipeline(t)
	path := filepath.Join(t.TempDir(), "pairs.txt")
	require.NoError(t, os.WriteFile(path, []byte("# pairs\nkat category\nkat category\n"), 0644))

	report, err := p.RunFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Summary.Pairs)
	assert.Equal(t, 1, report.Summary.Found)

	_, err = p.RunFile(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}

func TestRenderer(t *testing.T) {
	p := testPipeline(t)
	report := p.Run(context.Background(), []worker.Pair{
		{Word1: "kat", Word2: "category"},
		{Word1: "kat", Word2: "zebra"},
	})
	r := NewRenderer()
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "report.json")
	require.NoError(t, r.RenderJSON(report, jsonPath))
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)

	var decoded model.Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Blends, 1)
	assert.Equal(t, "kategory", decoded.Blends[0].Grapheme)
	assert.Equal(t, []string{"K", "AE1", "T", "AH0", "G", "AO2", "R", "IY0"}, decoded.Blends[0].Phonemes)

	mdPath := filepath.Join(dir, "report.md")
	require.NoError(t, r.RenderMarkdown(report, mdPath))
	md, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.Contains(t, string(md), "# Portmanteau Report")
	assert.Contains(t, string(md), "| 1 | **kategory** | kat / category | K-AE1-T-AH0-G-AO2-R-IY0 | 0 |")
	assert.Contains(t, string(md), "| found | 1 |")
	assert.Contains(t, string(md), "- `kat zebra`:")

	var buf bytes.Buffer
	r.RenderSummary(&buf, report)
	assert.Contains(t, buf.String(), "Found:   1")
	assert.Contains(t, buf.String(), "Errors:  1")
	assert.Contains(t, buf.String(), "kategory")
}

func TestRenderer_EmptyReport(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer().WriteMarkdown(&buf, &model.Report{})
	assert.Contains(t, buf.String(), "_No portmanteaus found._")
	assert.NotContains(t, buf.String(), "## Errors")
}
