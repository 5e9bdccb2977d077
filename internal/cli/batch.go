package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/ppiankov/portmanteau/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	outJSON      string
	outMD        string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <pairs-file>",
	Short: "Match many word pairs from a file in parallel",
	Long: `Batch matches word pairs concurrently:
- Read pairs from input file (one "word1 word2" per line, # comments)
- Match pairs in parallel with configurable worker count
- Rank blends by overlap size, distance and overlap rarity
- Write JSON and Markdown reports

Example:
  portmanteau batch pairs.txt --corpus lexicon.txt
  portmanteau batch pairs.txt --concurrency 8 --json blends.json --md blends.md
  portmanteau batch pairs.txt --top 20 --timeout 1m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	addMatcherFlags(batchCmd)

	batchCmd.Flags().Int("concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().Int("top", 50, "keep only the best N blends (0 keeps all)")
	batchCmd.Flags().Bool("no-cache", false, "disable memoization of corpus statistics")
	batchCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	batchCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	v := viper.GetViper()
	bindMatcherFlags(cmd, v)
	_ = v.BindPFlag("concurrency.workers", cmd.Flags().Lookup("concurrency"))
	_ = v.BindPFlag("output.top", cmd.Flags().Lookup("top"))

	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		cfg.Cache.Enabled = false
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Portmanteau Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Corpus:       %s\n", cfg.Corpus.Path)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Max distance: %g\n", cfg.Matcher.MaxOverlapDistance)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	p, err := pipeline.NewPipeline(cfg, pipeline.WithLogger(newLogger(cfg.Output.Verbose)))
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "✓ Loaded %d words\n", p.Dictionary().Len())

	fmt.Fprintf(os.Stderr, "⚙️  Matching pairs with %d workers...\n", cfg.Concurrency.Workers)
	report, err := p.RunFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	if cfg.Output.Verbose {
		for _, f := range report.Failures {
			fmt.Fprintf(os.Stderr, "✗ %s %s: %s\n", f.Word1, f.Word2, f.Error)
		}
	}
	if ctx.Err() != nil {
		fmt.Fprintf(os.Stderr, "⚠️  Batch stopped early: %v\n", ctx.Err())
	}

	if err := p.RenderReport(report, outJSON, outMD, true); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}
