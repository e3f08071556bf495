package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pubmed-pharma-papers/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the ESearch stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of PMIDs to request (default 25).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// APIKey is an optional NCBI API key for a higher rate limit.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Email is sent as the email parameter per NCBI usage policy.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// FetchConfig holds settings for the EFetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// BatchSize is the number of PMIDs per EFetch request (default 50).
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// BatchDelay is the pause between consecutive EFetch requests
	// (default 340ms, per NCBI's three-requests-per-second policy).
	BatchDelay time.Duration `json:"batch_delay" yaml:"batch_delay"`

	// APIKey is an optional NCBI API key for a higher rate limit.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Email is sent as the email parameter per NCBI usage policy.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// FilterConfig holds the affiliation keyword lists. Both lists are matched
// case-insensitively as substrings of the affiliation text.
type FilterConfig struct {
	// IncludeKeywords mark an affiliation as industry (pharma/biotech terms,
	// company suffixes).
	IncludeKeywords []string `json:"include_keywords" yaml:"include_keywords"`

	// ExcludeKeywords mark an affiliation as academic. An exclusion match
	// overrides any inclusion match.
	ExcludeKeywords []string `json:"exclude_keywords" yaml:"exclude_keywords"`
}

// OutputConfig holds settings for the output stage.
type OutputConfig struct {
	// FilePath is the CSV destination. Empty means print a table to the console.
	FilePath string `json:"file_path,omitempty" yaml:"file_path,omitempty"`
}

// CacheConfig holds settings for the optional SQLite record cache.
type CacheConfig struct {
	// Path is the SQLite database file. Empty disables the cache.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// PipelineConfig groups all stage configurations for one run.
type PipelineConfig struct {
	Search SearchConfig `json:"search" yaml:"search"`
	Fetch  FetchConfig  `json:"fetch" yaml:"fetch"`
	Filter FilterConfig `json:"filter" yaml:"filter"`
	Output OutputConfig `json:"output" yaml:"output"`
	Cache  CacheConfig  `json:"cache" yaml:"cache"`
}
