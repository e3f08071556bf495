// Package types defines shared data structures for the pubmed-pharma-papers
// pipeline: fetched PubMed records, their filtered projection, and the
// per-stage configuration structs.
package types

// Author is one entry from a PubMed record's author list, with the raw
// affiliation strings attached to it. Affiliation text is free-form and may
// be empty.
type Author struct {
	ForeName     string   `json:"fore_name" yaml:"fore_name"`
	LastName     string   `json:"last_name" yaml:"last_name"`
	Affiliations []string `json:"affiliations,omitempty" yaml:"affiliations,omitempty"`
}

// FullName returns "ForeName LastName", degrading gracefully when either
// part is missing.
func (a Author) FullName() string {
	switch {
	case a.ForeName == "":
		return a.LastName
	case a.LastName == "":
		return a.ForeName
	default:
		return a.ForeName + " " + a.LastName
	}
}

// PaperRecord is one bibliographic record fetched from PubMed EFetch.
// PubDate is kept as the source-provided string (often just a year, sometimes
// "2024 Mar 15") rather than a normalized time.
type PaperRecord struct {
	// PMID is the PubMed record identifier.
	PMID string `json:"pmid" yaml:"pmid"`

	// Title is the article title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// PubDate is the publication date string in source format.
	PubDate string `json:"pub_date" yaml:"pub_date"`

	// Authors lists the record's authors in source order.
	Authors []Author `json:"authors" yaml:"authors"`
}

// FilteredRow is the projection of a PaperRecord kept after affiliation
// filtering. Field order matches the output CSV column order.
type FilteredRow struct {
	PubmedID                 string `json:"pubmed_id" yaml:"pubmed_id"`
	Title                    string `json:"title" yaml:"title"`
	PublicationDate          string `json:"publication_date" yaml:"publication_date"`
	NonAcademicAuthors       string `json:"non_academic_authors" yaml:"non_academic_authors"`
	CompanyAffiliations      string `json:"company_affiliations" yaml:"company_affiliations"`
	CorrespondingAuthorEmail string `json:"corresponding_author_email" yaml:"corresponding_author_email"`
}
