package filter

import (
	"strings"
	"testing"

	"github.com/Ananthu100/pubmed-pharma-papers-aganitha/pkg/types"
)

func TestIsIndustry(t *testing.T) {
	k := Default()
	tests := []struct {
		name        string
		affiliation string
		want        bool
	}{
		{"pharma company", "Pfizer Inc., New York, NY, USA", true},
		{"biotech", "Genmab Biotech, Copenhagen, Denmark", true},
		{"gmbh suffix", "Boehringer Ingelheim GmbH, Germany", true},
		{"plain university", "Department of Biology, Harvard University", false},
		{"hospital", "Massachusetts General Hospital, Boston", false},
		{"empty", "", false},
		{"no keywords at all", "Independent researcher, Lisbon", false},
		{"exclusion wins over inclusion", "Excelsior University BioPharma Labs", false},
		{"teaching hospital with pharma unit", "Novartis Pharma Unit, St. Mary's Hospital", false},
		{"case insensitive", "ACME PHARMACEUTICALS LTD", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := k.IsIndustry(tt.affiliation); got != tt.want {
				t.Errorf("IsIndustry(%q) = %v, want %v", tt.affiliation, got, tt.want)
			}
		})
	}
}

func TestFromConfigOverrides(t *testing.T) {
	k := FromConfig(types.FilterConfig{
		IncludeKeywords: []string{"widgets"},
		ExcludeKeywords: []string{"museum"},
	})
	if !k.IsIndustry("Acme Widgets, Springfield") {
		t.Error("configured inclusion keyword should match")
	}
	if k.IsIndustry("Widgets Museum of Natural History") {
		t.Error("configured exclusion keyword should win")
	}
	// The built-in lists should not leak through explicit config.
	if k.IsIndustry("Pfizer Inc.") {
		t.Error("default inclusion keywords should be replaced, not merged")
	}
}

func TestFromConfigDefaults(t *testing.T) {
	k := FromConfig(types.FilterConfig{})
	if !k.IsIndustry("Moderna Therapeutics, Cambridge MA") {
		t.Error("empty config should fall back to built-in lists")
	}
}

func TestApplyRetainsIndustryPapers(t *testing.T) {
	records := []types.PaperRecord{
		{
			PMID:    "38912345",
			Title:   "A phase II trial.",
			PubDate: "2024 Mar",
			Authors: []types.Author{
				{ForeName: "Wei", LastName: "Chen", Affiliations: []string{"Pfizer Inc., New York. wei.chen@pfizer.com."}},
				{ForeName: "Amara", LastName: "Okafor", Affiliations: []string{"Stanford University, CA"}},
			},
		},
		{
			PMID:    "38900001",
			Title:   "Purely academic work.",
			PubDate: "2023",
			Authors: []types.Author{
				{ForeName: "Liis", LastName: "Tamm", Affiliations: []string{"University of Tartu, Estonia"}},
			},
		},
	}

	rows := Apply(records, Default())
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}

	row := rows[0]
	if row.PubmedID != "38912345" {
		t.Errorf("PubmedID = %q", row.PubmedID)
	}
	if row.NonAcademicAuthors != "Wei Chen" {
		t.Errorf("NonAcademicAuthors = %q, want only the industry author", row.NonAcademicAuthors)
	}
	if !strings.Contains(row.CompanyAffiliations, "Pfizer Inc., New York") {
		t.Errorf("CompanyAffiliations = %q", row.CompanyAffiliations)
	}
	if row.CorrespondingAuthorEmail != "wei.chen@pfizer.com" {
		t.Errorf("CorrespondingAuthorEmail = %q", row.CorrespondingAuthorEmail)
	}
}

func TestApplyCollectsAllMatchingAuthors(t *testing.T) {
	records := []types.PaperRecord{
		{
			PMID:  "1",
			Title: "Joint industry paper.",
			Authors: []types.Author{
				{ForeName: "A", LastName: "One", Affiliations: []string{"Roche Pharma, Basel"}},
				{ForeName: "B", LastName: "Two", Affiliations: []string{"Genentech Inc., South San Francisco"}},
				{ForeName: "C", LastName: "Three", Affiliations: []string{"Uppsala University"}},
			},
		},
	}

	rows := Apply(records, Default())
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if rows[0].NonAcademicAuthors != "A One; B Two" {
		t.Errorf("NonAcademicAuthors = %q", rows[0].NonAcademicAuthors)
	}
	if !strings.Contains(rows[0].CompanyAffiliations, "Roche Pharma") ||
		!strings.Contains(rows[0].CompanyAffiliations, "Genentech Inc.") {
		t.Errorf("CompanyAffiliations = %q", rows[0].CompanyAffiliations)
	}
}

func TestApplyDeduplicatesSharedAffiliations(t *testing.T) {
	shared := "AstraZeneca, Cambridge, UK"
	records := []types.PaperRecord{
		{
			PMID:  "1",
			Title: "Shared affiliation.",
			Authors: []types.Author{
				{ForeName: "A", LastName: "One", Affiliations: []string{shared}},
				{ForeName: "B", LastName: "Two", Affiliations: []string{shared}},
			},
		},
	}

	rows := Apply(records, Default())
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if rows[0].CompanyAffiliations != shared {
		t.Errorf("CompanyAffiliations = %q, want the affiliation once", rows[0].CompanyAffiliations)
	}
	if rows[0].NonAcademicAuthors != "A One; B Two" {
		t.Errorf("NonAcademicAuthors = %q", rows[0].NonAcademicAuthors)
	}
}

func TestApplyExcludesRecordsWithNoMatch(t *testing.T) {
	records := []types.PaperRecord{
		{PMID: "1", Title: "No authors at all."},
		{
			PMID:  "2",
			Title: "Authors without affiliations.",
			Authors: []types.Author{
				{ForeName: "A", LastName: "One"},
			},
		},
	}
	if rows := Apply(records, Default()); len(rows) != 0 {
		t.Errorf("len(rows) = %d, want 0", len(rows))
	}
}

func TestExtractEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Pfizer Inc., New York. wei.chen@pfizer.com.", "wei.chen@pfizer.com"},
		{"Contact: j-doe@labs.example.org", "j-doe@labs.example.org"},
		{"no email here", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ExtractEmail(tt.input); got != tt.want {
				t.Errorf("ExtractEmail(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
