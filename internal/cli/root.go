package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ppiankov/portmanteau/internal/model"
	"github.com/ppiankov/portmanteau/internal/phonetic"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile    string
	verbose    bool
	corpusPath string
	tablesPath string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "portmanteau",
	Short: "Portmanteau - inclusion blend finder over a pronunciation dictionary",
	Long: `Portmanteau finds inclusion portmanteaus: a short word whose pronunciation
sits inside a longer word, so that the short spelling can replace the
matching part of the long spelling ("kat" + "category" = "kategory").

Words are looked up in an aligned pronunciation lexicon. Phonemes are
compared with a tolerant distance: stress slips and near-miss consonants
and vowels are allowed up to a configurable threshold.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number for Portmanteau.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("portmanteau v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.portmanteau/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&corpusPath, "corpus", "", "aligned pronunciation lexicon")
	rootCmd.PersistentFlags().StringVar(&tablesPath, "tables", "", "YAML file with vowel, consonant and near-miss tables")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("corpus.path", rootCmd.PersistentFlags().Lookup("corpus"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.portmanteau")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	setDefaults(viper.GetViper(), model.DefaultConfig())

	// Read in environment variables that match PORTMANTEAU_*
	viper.SetEnvPrefix("PORTMANTEAU")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every scalar setting so environment variables are
// honoured even when no config file mentions the key
func setDefaults(v *viper.Viper, cfg *model.Config) {
	v.SetDefault("corpus.path", cfg.Corpus.Path)
	v.SetDefault("matcher.min_vowel_phones", cfg.Matcher.MinVowelPhones)
	v.SetDefault("matcher.min_consonant_phones", cfg.Matcher.MinConsonantPhones)
	v.SetDefault("matcher.max_overlap_distance", cfg.Matcher.MaxOverlapDistance)
	v.SetDefault("concurrency.workers", cfg.Concurrency.Workers)
	v.SetDefault("cache.enabled", cfg.Cache.Enabled)
	v.SetDefault("cache.ttl", cfg.Cache.TTL)
	v.SetDefault("output.verbose", cfg.Output.Verbose)
	v.SetDefault("output.top", cfg.Output.Top)
}

// loadConfig overlays the config file, environment and bound flags onto the
// defaults
func loadConfig(v *viper.Viper) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if tablesPath != "" {
		tables, err := phonetic.LoadTables(tablesPath)
		if err != nil {
			return nil, fmt.Errorf("load tables: %w", err)
		}
		cfg.Phonetics = tables
	}

	return cfg, nil
}

// newLogger returns the structured logger used by the pipeline
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
