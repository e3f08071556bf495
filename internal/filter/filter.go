// Package filter classifies author affiliations as industry or academic and
// projects the retained papers into output rows.
package filter

import (
	"regexp"
	"strings"

	"github.com/Ananthu100/pubmed-pharma-papers-aganitha/pkg/types"
)

// Built-in keyword lists. Matching is case-insensitive substring containment
// against the raw affiliation text.
var (
	defaultInclude = []string{
		"pharma", "biotech", "biosciences", "therapeutics", "diagnostics",
		"life sciences", "laboratories", "inc", "corp", "ltd", "gmbh",
		"pharmaceutical", "genomics", "healthcare", "bioscience", "biopharma",
	}

	defaultExclude = []string{
		"university", "college", "hospital", "school", "faculty", "academy",
	}
)

// Keywords holds the inclusion and exclusion lists, pre-lowercased.
// An exclusion match always overrides an inclusion match: an affiliation
// like "Excelsior University BioPharma Labs" counts as academic. Whether
// that is the right call for pharma-affiliated teaching hospitals is a
// product decision; the current policy drops them.
type Keywords struct {
	include []string
	exclude []string
}

// Default returns the built-in keyword lists.
func Default() Keywords {
	return New(defaultInclude, defaultExclude)
}

// New builds a Keywords set from explicit lists. Empty strings are dropped;
// matching is case-insensitive.
func New(include, exclude []string) Keywords {
	return Keywords{
		include: lowerNonEmpty(include),
		exclude: lowerNonEmpty(exclude),
	}
}

// FromConfig builds a Keywords set from configuration, falling back to the
// built-in list for whichever side is unset.
func FromConfig(cfg types.FilterConfig) Keywords {
	include := cfg.IncludeKeywords
	if len(include) == 0 {
		include = defaultInclude
	}
	exclude := cfg.ExcludeKeywords
	if len(exclude) == 0 {
		exclude = defaultExclude
	}
	return New(include, exclude)
}

func lowerNonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// IsIndustry reports whether the affiliation text matches an inclusion
// keyword and no exclusion keyword.
func (k Keywords) IsIndustry(affiliation string) bool {
	low := strings.ToLower(affiliation)
	return containsAny(low, k.include) && !containsAny(low, k.exclude)
}

func containsAny(low string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(low, kw) {
			return true
		}
	}
	return false
}

// Apply filters records to those with at least one industry-affiliated
// author and projects each kept record into a FilteredRow. All matching
// authors and their matching affiliations are included, semicolon-joined;
// the email is taken from the first matching affiliation that carries one.
func Apply(records []types.PaperRecord, k Keywords) []types.FilteredRow {
	var rows []types.FilteredRow
	for _, rec := range records {
		var (
			authors      []string
			affiliations []string
			email        string
			seenAff      = make(map[string]bool)
		)

		for _, a := range rec.Authors {
			matched := false
			for _, aff := range a.Affiliations {
				if !k.IsIndustry(aff) {
					continue
				}
				matched = true
				if !seenAff[aff] {
					seenAff[aff] = true
					affiliations = append(affiliations, aff)
				}
				if email == "" {
					email = ExtractEmail(aff)
				}
			}
			if matched {
				if name := a.FullName(); name != "" {
					authors = append(authors, name)
				}
			}
		}

		if len(affiliations) == 0 {
			continue
		}
		rows = append(rows, types.FilteredRow{
			PubmedID:                 rec.PMID,
			Title:                    rec.Title,
			PublicationDate:          rec.PubDate,
			NonAcademicAuthors:       strings.Join(authors, "; "),
			CompanyAffiliations:      strings.Join(affiliations, "; "),
			CorrespondingAuthorEmail: email,
		})
	}
	return rows
}

var emailPattern = regexp.MustCompile(`[\w.-]+@[\w.-]+`)

// ExtractEmail returns the first email-like token in the text, with any
// trailing sentence period stripped. Affiliation strings often end with
// "author@example.com." as the last sentence.
func ExtractEmail(text string) string {
	m := emailPattern.FindString(text)
	return strings.TrimRight(m, ".")
}
