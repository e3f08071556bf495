// Package main is the entry point for the pubmed-pharma-papers CLI: it
// searches PubMed for a query and reports papers with at least one author
// affiliated with a pharmaceutical or biotech company.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Ananthu100/pubmed-pharma-papers-aganitha/internal/pipeline"
	"github.com/Ananthu100/pubmed-pharma-papers-aganitha/internal/pubmed"
	"github.com/Ananthu100/pubmed-pharma-papers-aganitha/internal/secrets"
	"github.com/Ananthu100/pubmed-pharma-papers-aganitha/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds NCBI credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

var rootCmd = &cobra.Command{
	Use:   "pubmed-pharma-papers <query>",
	Short: "Find PubMed papers with pharma or biotech company authors",
	Long: `pubmed-pharma-papers runs a PubMed query through the NCBI E-utilities API,
fetches the matching records, and keeps the papers where at least one author
lists a pharmaceutical or biotech company affiliation. Results go to a CSV
file with --file, or to a console table otherwise.

The query uses PubMed's full query syntax, e.g.:

  pubmed-pharma-papers 'cancer immunotherapy AND 2024[pdat]' -n 50 -f papers.csv`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
	RunE: runRoot,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pubmed-pharma-papers.yaml or ~/.config/pubmed-pharma-papers/config.yaml)")

	rootCmd.Flags().IntP("max-results", "n", 25, "maximum number of papers to retrieve")
	rootCmd.Flags().StringP("file", "f", "", "write results to this CSV file instead of the console")
	rootCmd.Flags().BoolP("debug", "d", false, "print diagnostic information to stderr")
	rootCmd.Flags().Duration("timeout", 30*time.Second, "per-request HTTP timeout")
	rootCmd.Flags().String("cache", "", "SQLite cache database for fetched records")
	rootCmd.Flags().String("save-run", "", "save the query, settings, and results to a YAML run file")

	viper.BindPFlag("max_results", rootCmd.Flags().Lookup("max-results"))
	viper.BindPFlag("timeout", rootCmd.Flags().Lookup("timeout"))
	viper.BindPFlag("cache.path", rootCmd.Flags().Lookup("cache"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pubmed-pharma-papers")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pubmed-pharma-papers"))
		}
	}

	viper.SetEnvPrefix("PUBMED_PHARMA_PAPERS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	filePath, _ := cmd.Flags().GetString("file")
	debug, _ := cmd.Flags().GetBool("debug")
	saveRun, _ := cmd.Flags().GetString("save-run")

	timeout := viper.GetDuration("timeout")
	apiKey := loadedSecrets[secrets.KeyAPIKey]
	email := loadedSecrets[secrets.KeyEmail]
	userAgent := "pubmed-pharma-papers/" + version

	cfg := types.PipelineConfig{
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{Timeout: timeout, UserAgent: userAgent},
			MaxResults: viper.GetInt("max_results"),
			APIKey:     apiKey,
			Email:      email,
		},
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{Timeout: timeout, UserAgent: userAgent},
			APIKey:     apiKey,
			Email:      email,
		},
		Filter: types.FilterConfig{
			IncludeKeywords: viper.GetStringSlice("filter.include_keywords"),
			ExcludeKeywords: viper.GetStringSlice("filter.exclude_keywords"),
		},
		Output: types.OutputConfig{FilePath: filePath},
		Cache:  types.CacheConfig{Path: viper.GetString("cache.path")},
	}

	var debugWriter io.Writer
	if debug {
		debugWriter = os.Stderr
	}

	opts := pipeline.Options{
		Query:       query,
		Config:      cfg,
		Stdout:      os.Stdout,
		DebugWriter: debugWriter,
		SaveRunPath: saveRun,
		Client: &pubmed.Client{
			Client:     &http.Client{Timeout: timeout},
			SearchBase: viper.GetString("endpoints.esearch"),
			FetchBase:  viper.GetString("endpoints.efetch"),
		},
	}

	summary, err := pipeline.Run(cmd.Context(), opts)
	if err != nil {
		if errors.Is(err, pipeline.ErrInvalidInput) {
			return err
		}
		var netErr *pubmed.NetworkError
		if errors.As(err, &netErr) {
			return fmt.Errorf("network error: %w", err)
		}
		return err
	}

	if filePath != "" {
		fmt.Fprintf(os.Stderr, "Wrote %d papers to %s (searched %d, fetched %d)\n",
			summary.Matched, filePath, summary.Found, summary.Fetched)
	}
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
