package pipeline

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/Ananthu100/pubmed-pharma-papers-aganitha/pkg/types"
)

// RunFile is the on-disk record of one pipeline run: the query, the
// effective configuration, the filtered rows, and a summary. Analysts can
// keep run files next to the CSVs as provenance for a bibliography.
type RunFile struct {
	Query   string              `yaml:"query"`
	Config  RunConfig           `yaml:"config"`
	Rows    []types.FilteredRow `yaml:"rows"`
	Summary RunSummary          `yaml:"summary"`
}

// RunConfig stores the settings that shaped the results.
type RunConfig struct {
	MaxResults      int      `yaml:"max_results"`
	IncludeKeywords []string `yaml:"include_keywords,omitempty"`
	ExcludeKeywords []string `yaml:"exclude_keywords,omitempty"`
}

// RunSummary stores result statistics and a timestamp.
type RunSummary struct {
	Found     int       `yaml:"found"`
	CacheHits int       `yaml:"cache_hits,omitempty"`
	Fetched   int       `yaml:"fetched"`
	Matched   int       `yaml:"matched"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteRunFile saves the run to a YAML file.
func WriteRunFile(path, query string, cfg types.PipelineConfig, rows []types.FilteredRow, summary Summary) error {
	rf := RunFile{
		Query: query,
		Config: RunConfig{
			MaxResults:      cfg.Search.MaxResults,
			IncludeKeywords: cfg.Filter.IncludeKeywords,
			ExcludeKeywords: cfg.Filter.ExcludeKeywords,
		},
		Rows: rows,
		Summary: RunSummary{
			Found:     summary.Found,
			CacheHits: summary.CacheHits,
			Fetched:   summary.Fetched,
			Matched:   summary.Matched,
			Timestamp: time.Now(),
		},
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling run file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadRunFile loads a previously saved run file from disk.
func ReadRunFile(path string) (*RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run file: %w", err)
	}
	var rf RunFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing run file: %w", err)
	}
	return &rf, nil
}
