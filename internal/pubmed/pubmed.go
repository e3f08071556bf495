// Package pubmed queries the NCBI E-utilities API: ESearch for PMIDs
// matching a query and EFetch for the full bibliographic records.
package pubmed

import (
	"fmt"
	"net/http"
	"net/url"
)

// Default E-utilities endpoints. Declared as vars so tests can substitute
// httptest servers.
var (
	esearchBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"
	efetchBase  = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"
)

// toolName is sent as the tool parameter per NCBI usage policy.
const toolName = "pubmed-pharma-papers"

// Client issues E-utilities requests. SearchBase and FetchBase override the
// default endpoints when non-empty (config-file overrides use this).
type Client struct {
	Client     *http.Client
	SearchBase string
	FetchBase  string
}

func (c *Client) searchBase() string {
	if c.SearchBase != "" {
		return c.SearchBase
	}
	return esearchBase
}

func (c *Client) fetchBase() string {
	if c.FetchBase != "" {
		return c.FetchBase
	}
	return efetchBase
}

// identify adds the tool/email/api_key parameters NCBI asks polite clients
// to send. All are optional.
func identify(params url.Values, apiKey, email string) {
	params.Set("tool", toolName)
	if email != "" {
		params.Set("email", email)
	}
	if apiKey != "" {
		params.Set("api_key", apiKey)
	}
}

// APIError reports a non-success status or an unparsable body from an
// E-utilities endpoint.
type APIError struct {
	// Endpoint is "esearch" or "efetch".
	Endpoint string

	// StatusCode is the HTTP status, or 0 for parse failures.
	StatusCode int

	// Reason describes what went wrong.
	Reason string

	// Err is the underlying cause, if any.
	Err error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Endpoint, e.Reason, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Endpoint, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Endpoint, e.Reason)
}

func (e *APIError) Unwrap() error { return e.Err }

// NetworkError reports a transport-level failure (timeout, DNS failure,
// connection refused) before any HTTP status was received.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: request failed: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
