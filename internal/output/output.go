// Package output serializes filtered rows to CSV or a console table.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Ananthu100/pubmed-pharma-papers-aganitha/pkg/types"
)

// Header is the fixed CSV column order.
var Header = []string{
	"PubmedID",
	"Title",
	"PublicationDate",
	"NonAcademicAuthors",
	"CompanyAffiliations",
	"CorrespondingAuthorEmail",
}

// WriteCSV writes rows to path as UTF-8 CSV with the fixed header. Zero
// rows produce a header-only file. The data is written to a temp file in
// the destination directory and renamed on success, so a failed run never
// leaves a partial file behind.
func WriteCSV(rows []types.FilteredRow, path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".papers-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	writeErr := writeCSVTo(rows, tmp)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing CSV: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func writeCSVTo(rows []types.FilteredRow, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.PubmedID,
			row.Title,
			row.PublicationDate,
			row.NonAcademicAuthors,
			row.CompanyAffiliations,
			row.CorrespondingAuthorEmail,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a file previously written by WriteCSV back into rows.
func ReadCSV(path string) ([]types.FilteredRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening CSV: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("missing header row")
	}

	var rows []types.FilteredRow
	for _, rec := range records[1:] {
		if len(rec) != len(Header) {
			return nil, fmt.Errorf("row has %d fields, want %d", len(rec), len(Header))
		}
		rows = append(rows, types.FilteredRow{
			PubmedID:                 rec[0],
			Title:                    rec[1],
			PublicationDate:          rec[2],
			NonAcademicAuthors:       rec[3],
			CompanyAffiliations:      rec[4],
			CorrespondingAuthorEmail: rec[5],
		})
	}
	return rows, nil
}

// FormatTable writes rows as a human-readable table to w.
func FormatTable(rows []types.FilteredRow, w io.Writer) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No matching papers found.")
		return
	}

	fmt.Fprintf(w, "%-10s  %-50s  %-12s  %-25s  %-35s  %s\n",
		"PubmedID", "Title", "Date", "Authors", "Company", "Email")
	fmt.Fprintln(w, strings.Repeat("-", 150))

	for _, r := range rows {
		fmt.Fprintf(w, "%-10s  %-50s  %-12s  %-25s  %-35s  %s\n",
			r.PubmedID,
			truncate(r.Title, 50),
			truncate(r.PublicationDate, 12),
			truncate(r.NonAcademicAuthors, 25),
			truncate(r.CompanyAffiliations, 35),
			r.CorrespondingAuthorEmail)
	}

	fmt.Fprintf(w, "\n%d matching papers\n", len(rows))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
