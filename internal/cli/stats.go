package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/portmanteau/internal/phonetic"
	"github.com/ppiankov/portmanteau/internal/pipeline"
	"github.com/ppiankov/portmanteau/internal/stats"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	statsSide    string
	statsMaxLen  int
	statsTop     int
	statsProbSub string
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats [phoneme ...]",
	Short: "Show phoneme subsequence frequencies of the corpus",
	Long: `Stats counts contiguous phoneme subsequences across the corpus, anywhere
in a word (all), at its start (head) or at its end (tail).

Without arguments the most frequent subsequences are listed. With
arguments the frequency of that one sequence is printed.

Example:
  portmanteau stats --side head --top 10
  portmanteau stats K AE1 T --side all
  portmanteau stats --prob egory`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVar(&statsSide, "side", "all", "word edge: head, tail or all")
	statsCmd.Flags().IntVar(&statsMaxLen, "max-len", 3, "longest subsequence counted (0 counts all)")
	statsCmd.Flags().IntVar(&statsTop, "top", 20, "number of subsequences listed")
	statsCmd.Flags().StringVar(&statsProbSub, "prob", "", "print P(word | spelling) for a head and tail substring")
}

func runStats(cmd *cobra.Command, args []string) error {
	side, err := stats.ParseSide(statsSide)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg, pipeline.WithLogger(newLogger(cfg.Output.Verbose)))
	if err != nil {
		return err
	}

	if statsProbSub != "" {
		for _, s := range []stats.Side{stats.SideHead, stats.SideTail} {
			prob, err := p.Estimator().ProbWordGivenSubgrapheme(strings.ToLower(statsProbSub), s)
			if errors.Is(err, stats.ErrNoMatches) {
				fmt.Printf("  %-4s %-20s no matches\n", s, statsProbSub)
				continue
			}
			if err != nil {
				return err
			}
			fmt.Printf("  %-4s %-20s %.5f\n", s, statsProbSub, prob)
		}
		return nil
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Counting subsequences of up to %d phones...\n", statsMaxLen)
	}
	table := stats.BuildFrequencyTable(p.Dictionary(), statsMaxLen)
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Counted %d distinct subsequences\n", table.Len())
	}

	if len(args) > 0 {
		seq := phonetic.ParseSequence(strings.Join(args, " "))
		n, err := table.Frequency(seq, side)
		if errors.Is(err, stats.ErrNotFound) {
			n = 0
		} else if err != nil {
			return err
		}
		fmt.Printf("%s\t%s\t%d\n", seq, side, n)
		return nil
	}

	entries, err := table.Top(side, statsTop)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Printf("%8d  %s\n", e.Count, e.Sequence)
	}
	return nil
}
