package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/ppiankov/portmanteau/internal/model"
)

// Renderer writes batch reports as JSON, Markdown and a console summary
type Renderer struct{}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderMarkdown writes the report as a Markdown document
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var buf bytes.Buffer
	r.WriteMarkdown(&buf, report)

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteMarkdown formats the report as Markdown into w
func (r *Renderer) WriteMarkdown(w io.Writer, report *model.Report) {
	fmt.Fprintf(w, "# Portmanteau Report\n\n")
	if report.Corpus != "" {
		fmt.Fprintf(w, "- **Corpus:** `%s`\n", report.Corpus)
	}
	fmt.Fprintf(w, "- **Generated:** %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(w, "- **Settings:** min vowels %d, min consonants %d, max overlap distance %g\n",
		report.Settings.MinVowelPhones, report.Settings.MinConsonantPhones, report.Settings.MaxOverlapDistance)
	fmt.Fprintf(w, "- **Pairs:** %d (found %d, errors %d)\n\n",
		report.Summary.Pairs, report.Summary.Found, report.Summary.Errors)

	fmt.Fprintf(w, "## Blends\n\n")
	if len(report.Blends) == 0 {
		fmt.Fprintf(w, "_No portmanteaus found._\n\n")
	} else {
		fmt.Fprintf(w, "| # | Blend | Words | Phonemes | Distance | Overlap | Probability | Reconstruction |\n")
		fmt.Fprintf(w, "|---|-------|-------|----------|----------|---------|-------------|----------------|\n")
		for i, b := range report.Blends {
			fmt.Fprintf(w, "| %d | **%s** | %s / %s | %s | %g | %d (%dV %dC) | %.5f | %.5f |\n",
				i+1, b.Grapheme, b.Short, b.Long, strings.Join(b.Phonemes, "-"),
				b.OverlapDistance, b.OverlapPhones, b.OverlapVowelPhones, b.OverlapConsonantPhones,
				b.OverlapProba, b.ReconstructionProba)
		}
		fmt.Fprintf(w, "\n")
	}

	if len(report.Summary.Reasons) > 0 {
		fmt.Fprintf(w, "## Outcomes\n\n")
		fmt.Fprintf(w, "| Reason | Pairs |\n")
		fmt.Fprintf(w, "|--------|-------|\n")
		for _, reason := range sortedReasons(report.Summary.Reasons) {
			fmt.Fprintf(w, "| %s | %d |\n", reason, report.Summary.Reasons[reason])
		}
		fmt.Fprintf(w, "\n")
	}

	if len(report.Failures) > 0 {
		fmt.Fprintf(w, "## Errors\n\n")
		for _, f := range report.Failures {
			fmt.Fprintf(w, "- `%s %s`: %s\n", f.Word1, f.Word2, f.Error)
		}
		fmt.Fprintf(w, "\n")
	}
}

// RenderSummary prints a short console summary
func (r *Renderer) RenderSummary(w io.Writer, report *model.Report) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "  Portmanteau Summary\n")
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Pairs:   %d\n", report.Summary.Pairs)
	fmt.Fprintf(w, "  Found:   %d\n", report.Summary.Found)
	fmt.Fprintf(w, "  Errors:  %d\n", report.Summary.Errors)
	for _, reason := range sortedReasons(report.Summary.Reasons) {
		fmt.Fprintf(w, "    %-20s %d\n", reason, report.Summary.Reasons[reason])
	}
	fmt.Fprintf(w, "\n")

	for i, b := range report.Blends {
		fmt.Fprintf(w, "  %3d. %-20s %s/%s  dist=%g  proba=%.5f\n",
			i+1, b.Grapheme, b.Short, b.Long, b.OverlapDistance, b.OverlapProba)
	}
	if len(report.Blends) > 0 {
		fmt.Fprintf(w, "\n")
	}
}

func sortedReasons(reasons map[string]int) []string {
	keys := make([]string, 0, len(reasons))
	for k := range reasons {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
