package pubmed

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Ananthu100/pubmed-pharma-papers-aganitha/internal/httputil"
	"github.com/Ananthu100/pubmed-pharma-papers-aganitha/pkg/types"
)

const (
	defaultBatchSize  = 50
	defaultBatchDelay = 340 * time.Millisecond
)

// FetchDetails retrieves full records for the given PMIDs via EFetch,
// batching requests and pausing between batches per NCBI usage policy.
// An empty PMID list yields an empty result without any request.
//
// PMIDs the API does not return a record for are reported on debugw and
// skipped; a failed request or an unparsable body aborts the whole fetch.
func (c *Client) FetchDetails(ctx context.Context, pmids []string, cfg types.FetchConfig, debugw io.Writer) ([]types.PaperRecord, error) {
	if len(pmids) == 0 {
		return nil, nil
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	delay := cfg.BatchDelay
	if delay <= 0 {
		delay = defaultBatchDelay
	}

	byPMID := make(map[string]types.PaperRecord)
	for start := 0; start < len(pmids); start += batchSize {
		if start > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		end := start + batchSize
		if end > len(pmids) {
			end = len(pmids)
		}

		records, err := c.fetchBatch(ctx, pmids[start:end], cfg)
		if err != nil {
			return nil, err
		}
		for _, r := range records {
			byPMID[r.PMID] = r
		}
	}

	// Preserve the search-result order and report unresolved PMIDs.
	var out []types.PaperRecord
	for _, id := range pmids {
		r, ok := byPMID[id]
		if !ok {
			if debugw != nil {
				fmt.Fprintf(debugw, "[DEBUG] no record returned for PMID %s, skipping\n", id)
			}
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (c *Client) fetchBatch(ctx context.Context, pmids []string, cfg types.FetchConfig) ([]types.PaperRecord, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(pmids, ",")},
		"retmode": {"xml"},
	}
	identify(params, cfg.APIKey, cfg.Email)

	reqURL := c.fetchBase() + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.Client, req, 0)
	if err != nil {
		return nil, &NetworkError{Endpoint: "efetch", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Endpoint: "efetch", StatusCode: resp.StatusCode, Reason: "unexpected status"}
	}

	var set pubmedArticleSet
	if err := xml.NewDecoder(resp.Body).Decode(&set); err != nil {
		return nil, &APIError{Endpoint: "efetch", Reason: "parsing response", Err: err}
	}

	var records []types.PaperRecord
	for _, art := range set.Articles {
		cit := art.Citation
		if cit.PMID == "" {
			continue
		}

		r := types.PaperRecord{
			PMID:    cit.PMID,
			Title:   strings.TrimSpace(cit.Article.Title),
			PubDate: formatPubDate(cit.Article),
		}
		for _, a := range cit.Article.Authors {
			author := types.Author{
				ForeName: strings.TrimSpace(a.ForeName),
				LastName: strings.TrimSpace(a.LastName),
			}
			// Consortia carry a collective name instead of fore/last.
			if author.LastName == "" && a.CollectiveName != "" {
				author.LastName = strings.TrimSpace(a.CollectiveName)
			}
			for _, aff := range a.Affiliations {
				if aff = strings.TrimSpace(aff); aff != "" {
					author.Affiliations = append(author.Affiliations, aff)
				}
			}
			r.Authors = append(r.Authors, author)
		}
		records = append(records, r)
	}
	return records, nil
}

// formatPubDate joins the journal PubDate parts in source format
// (e.g. "2024 Mar 15", or just "1998-1999" for Medline range dates),
// falling back to the electronic ArticleDate year.
func formatPubDate(a articleDetail) string {
	pd := a.Journal.Issue.PubDate
	if pd.MedlineDate != "" {
		return pd.MedlineDate
	}
	var parts []string
	for _, p := range []string{pd.Year, pd.Month, pd.Day} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	return a.ArticleDate.Year
}

// EFetch XML structures (PubmedArticleSet subset).
type pubmedArticleSet struct {
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	Citation medlineCitation `xml:"MedlineCitation"`
}

type medlineCitation struct {
	PMID    string        `xml:"PMID"`
	Article articleDetail `xml:"Article"`
}

type articleDetail struct {
	Title       string          `xml:"ArticleTitle"`
	Journal     journalInfo     `xml:"Journal"`
	ArticleDate electronicDate  `xml:"ArticleDate"`
	Authors     []articleAuthor `xml:"AuthorList>Author"`
}

type journalInfo struct {
	Issue journalIssue `xml:"JournalIssue"`
}

type journalIssue struct {
	PubDate pubDate `xml:"PubDate"`
}

type pubDate struct {
	Year        string `xml:"Year"`
	Month       string `xml:"Month"`
	Day         string `xml:"Day"`
	MedlineDate string `xml:"MedlineDate"`
}

type electronicDate struct {
	Year string `xml:"Year"`
}

type articleAuthor struct {
	LastName       string   `xml:"LastName"`
	ForeName       string   `xml:"ForeName"`
	CollectiveName string   `xml:"CollectiveName"`
	Affiliations   []string `xml:"AffiliationInfo>Affiliation"`
}
