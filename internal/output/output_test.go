package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Ananthu100/pubmed-pharma-papers-aganitha/pkg/types"
)

func sampleRows() []types.FilteredRow {
	return []types.FilteredRow{
		{
			PubmedID:                 "38912345",
			Title:                    `A "quoted" title, with a comma.`,
			PublicationDate:          "2024 Mar 15",
			NonAcademicAuthors:       "Wei Chen; B Two",
			CompanyAffiliations:      "Pfizer Inc., New York",
			CorrespondingAuthorEmail: "wei.chen@pfizer.com",
		},
		{
			PubmedID:        "38911111",
			Title:           "Line\nbreak title",
			PublicationDate: "2023",
		},
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	want := sampleRows()

	if err := WriteCSV(want, path); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	got, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestWriteCSVZeroRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	if err := WriteCSV(nil, path); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	got := strings.TrimSpace(string(data))
	want := strings.Join(Header, ",")
	if got != want {
		t.Errorf("file contents = %q, want header only %q", got, want)
	}
}

func TestWriteCSVLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")

	if err := WriteCSV(sampleRows(), path); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.csv" {
		t.Errorf("directory should contain only out.csv, got %v", entries)
	}
}

func TestWriteCSVMissingDirectory(t *testing.T) {
	err := WriteCSV(sampleRows(), filepath.Join(t.TempDir(), "no", "such", "dir", "out.csv"))
	if err == nil {
		t.Error("expected error for missing destination directory")
	}
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(sampleRows(), &buf)
	s := buf.String()

	if !strings.Contains(s, "38912345") {
		t.Error("table should contain the PMID")
	}
	if !strings.Contains(s, "wei.chen@pfizer.com") {
		t.Error("table should contain the email")
	}
	if !strings.Contains(s, "2 matching papers") {
		t.Error("table should contain the summary line")
	}
}

func TestFormatTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(nil, &buf)
	if !strings.Contains(buf.String(), "No matching papers") {
		t.Error("empty output should say no matching papers")
	}
}
