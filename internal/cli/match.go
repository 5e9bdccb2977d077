package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ppiankov/portmanteau/internal/pipeline"
	"github.com/ppiankov/portmanteau/internal/portmanteau"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var matchJSON bool

// matchCmd represents the match command
var matchCmd = &cobra.Command{
	Use:   "match <word1> <word2>",
	Short: "Try to blend two words into an inclusion portmanteau",
	Long: `Match embeds the phonetically shorter word inside the longer one:
- slide the short pronunciation over the long one, left to right
- accept the first offset within the max overlap distance
- map the matched phonemes back to the long spelling
- substitute the short spelling there

Example:
  portmanteau match kat category --corpus lexicon.txt
  portmanteau match bet bitter --max-distance 4
  portmanteau match cad category --json`,
	Args: cobra.ExactArgs(2),
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)
	addMatcherFlags(matchCmd)
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "print the blend as JSON")
}

// addMatcherFlags registers the threshold flags shared by match and batch
func addMatcherFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("max-distance", 3, "maximum phonetic distance of the overlap")
	cmd.Flags().Int("min-vowels", 1, "minimum vowel phones in the overlap")
	cmd.Flags().Int("min-consonants", 1, "minimum consonant phones in the overlap")
}

// bindMatcherFlags binds the threshold flags of the running command. Binding
// happens at run time because match and batch share the viper keys.
func bindMatcherFlags(cmd *cobra.Command, v *viper.Viper) {
	_ = v.BindPFlag("matcher.max_overlap_distance", cmd.Flags().Lookup("max-distance"))
	_ = v.BindPFlag("matcher.min_vowel_phones", cmd.Flags().Lookup("min-vowels"))
	_ = v.BindPFlag("matcher.min_consonant_phones", cmd.Flags().Lookup("min-consonants"))
}

func runMatch(cmd *cobra.Command, args []string) error {
	bindMatcherFlags(cmd, viper.GetViper())
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg, pipeline.WithLogger(newLogger(cfg.Output.Verbose)))
	if err != nil {
		return err
	}

	res, err := p.Match(args[0], args[1])
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}

	if res.Status != portmanteau.StatusOK {
		fmt.Fprintf(os.Stderr, "✗ %s/%s: %s\n", args[0], args[1], res.Message)
		return nil
	}

	if matchJSON {
		data, err := json.MarshalIndent(res.Candidate.Blend(), "", "  ")
		if err != nil {
			return fmt.Errorf("marshal blend: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Print(res.Candidate.Describe())
	return nil
}
