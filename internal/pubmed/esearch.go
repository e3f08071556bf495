package pubmed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Ananthu100/pubmed-pharma-papers-aganitha/internal/httputil"
	"github.com/Ananthu100/pubmed-pharma-papers-aganitha/pkg/types"
)

// Search queries ESearch and returns the PMIDs matching the query, at most
// cfg.MaxResults of them, in the order PubMed returns them.
func (c *Client) Search(ctx context.Context, query string, cfg types.SearchConfig) ([]string, error) {
	if query == "" {
		return nil, fmt.Errorf("empty ESearch query")
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 25
	}

	params := url.Values{
		"db":      {"pubmed"},
		"term":    {query},
		"retmax":  {fmt.Sprintf("%d", maxResults)},
		"retmode": {"json"},
	}
	identify(params, cfg.APIKey, cfg.Email)

	reqURL := c.searchBase() + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.Client, req, 0)
	if err != nil {
		return nil, &NetworkError{Endpoint: "esearch", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Endpoint: "esearch", StatusCode: resp.StatusCode, Reason: "unexpected status"}
	}

	var er esearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return nil, &APIError{Endpoint: "esearch", Reason: "parsing response", Err: err}
	}
	if er.Result.Error != "" {
		return nil, &APIError{Endpoint: "esearch", Reason: er.Result.Error}
	}

	ids := er.Result.IDList
	if len(ids) > maxResults {
		ids = ids[:maxResults]
	}
	return ids, nil
}

// ESearch JSON structures.
type esearchResponse struct {
	Result esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	Count  string   `json:"count"`
	RetMax string   `json:"retmax"`
	IDList []string `json:"idlist"`
	Error  string   `json:"ERROR"`
}
