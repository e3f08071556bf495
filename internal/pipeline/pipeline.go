// Package pipeline runs the search → fetch → filter → output chain for one
// query.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Ananthu100/pubmed-pharma-papers-aganitha/internal/cache"
	"github.com/Ananthu100/pubmed-pharma-papers-aganitha/internal/filter"
	"github.com/Ananthu100/pubmed-pharma-papers-aganitha/internal/output"
	"github.com/Ananthu100/pubmed-pharma-papers-aganitha/internal/pubmed"
	"github.com/Ananthu100/pubmed-pharma-papers-aganitha/pkg/types"
)

// ErrInvalidInput marks validation failures caught before any network call.
var ErrInvalidInput = errors.New("invalid input")

// Options configures one pipeline run.
type Options struct {
	// Query is the PubMed search expression.
	Query string

	// Config holds the per-stage settings.
	Config types.PipelineConfig

	// Stdout receives the console table when no output file is configured.
	Stdout io.Writer

	// DebugWriter, when non-nil, receives diagnostic lines (stderr in the CLI).
	DebugWriter io.Writer

	// SaveRunPath, when set, writes a YAML run file after a successful run.
	SaveRunPath string

	// Client overrides the E-utilities client; tests point it at httptest
	// servers. When nil a client is built from Config.
	Client *pubmed.Client
}

// Summary reports per-stage counts from a completed run.
type Summary struct {
	Found     int
	CacheHits int
	Fetched   int
	Matched   int
}

// Run executes the pipeline: validate, search, fetch (through the optional
// cache), filter, output. It is strictly sequential; the only branching is
// the per-record filter predicate.
func Run(ctx context.Context, opts Options) (Summary, error) {
	if err := validate(opts); err != nil {
		return Summary{}, err
	}

	debugf := func(format string, args ...any) {
		if opts.DebugWriter != nil {
			fmt.Fprintf(opts.DebugWriter, "[DEBUG] "+format+"\n", args...)
		}
	}

	client := opts.Client
	if client == nil {
		client = &pubmed.Client{Client: &http.Client{Timeout: opts.Config.Search.Timeout}}
	}

	debugf("query: %q, max results: %d", opts.Query, opts.Config.Search.MaxResults)

	pmids, err := client.Search(ctx, opts.Query, opts.Config.Search)
	if err != nil {
		return Summary{}, fmt.Errorf("searching PubMed: %w", err)
	}
	debugf("found %d PMIDs", len(pmids))

	summary := Summary{Found: len(pmids)}

	records, cacheHits, err := fetchRecords(ctx, client, pmids, opts, debugf)
	if err != nil {
		return summary, err
	}
	summary.CacheHits = cacheHits
	summary.Fetched = len(records) - cacheHits
	debugf("fetched %d records (%d from cache)", len(records), cacheHits)

	rows := filter.Apply(records, filter.FromConfig(opts.Config.Filter))
	summary.Matched = len(rows)
	debugf("%d records with industry-affiliated authors", len(rows))

	if path := opts.Config.Output.FilePath; path != "" {
		if err := output.WriteCSV(rows, path); err != nil {
			return summary, fmt.Errorf("writing output: %w", err)
		}
		debugf("wrote %s", path)
	} else {
		output.FormatTable(rows, opts.Stdout)
	}

	if opts.SaveRunPath != "" {
		if err := WriteRunFile(opts.SaveRunPath, opts.Query, opts.Config, rows, summary); err != nil {
			return summary, fmt.Errorf("saving run file: %w", err)
		}
		debugf("saved run file %s", opts.SaveRunPath)
	}

	return summary, nil
}

func validate(opts Options) error {
	if strings.TrimSpace(opts.Query) == "" {
		return fmt.Errorf("%w: query must not be empty", ErrInvalidInput)
	}
	if opts.Config.Search.MaxResults <= 0 {
		return fmt.Errorf("%w: max results must be positive, got %d",
			ErrInvalidInput, opts.Config.Search.MaxResults)
	}
	if path := opts.Config.Output.FilePath; path != "" {
		dir := filepath.Dir(path)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return fmt.Errorf("%w: output directory %s does not exist", ErrInvalidInput, dir)
		}
	}
	return nil
}

// fetchRecords retrieves records for pmids, serving what it can from the
// cache when one is configured. Cache failures degrade to a full fetch;
// they never fail the run.
func fetchRecords(ctx context.Context, client *pubmed.Client, pmids []string, opts Options, debugf func(string, ...any)) ([]types.PaperRecord, int, error) {
	if opts.Config.Cache.Path == "" {
		records, err := client.FetchDetails(ctx, pmids, opts.Config.Fetch, opts.DebugWriter)
		return records, 0, err
	}

	store, err := cache.Open(opts.Config.Cache.Path)
	if err != nil {
		debugf("cache unavailable (%v), fetching everything", err)
		records, err := client.FetchDetails(ctx, pmids, opts.Config.Fetch, opts.DebugWriter)
		return records, 0, err
	}
	defer store.Close()

	hits, misses, err := store.Get(ctx, pmids)
	if err != nil {
		debugf("cache lookup failed (%v), fetching everything", err)
		records, err := client.FetchDetails(ctx, pmids, opts.Config.Fetch, opts.DebugWriter)
		return records, 0, err
	}

	fetched, err := client.FetchDetails(ctx, misses, opts.Config.Fetch, opts.DebugWriter)
	if err != nil {
		return nil, 0, err
	}
	if len(fetched) > 0 {
		if err := store.Put(ctx, fetched); err != nil {
			debugf("cache store failed: %v", err)
		}
	}

	// Reassemble in search-result order.
	byPMID := make(map[string]types.PaperRecord, len(hits)+len(fetched))
	for _, r := range hits {
		byPMID[r.PMID] = r
	}
	for _, r := range fetched {
		byPMID[r.PMID] = r
	}
	var records []types.PaperRecord
	for _, id := range pmids {
		if r, ok := byPMID[id]; ok {
			records = append(records, r)
		}
	}
	return records, len(hits), nil
}
