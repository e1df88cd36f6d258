// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package table loads bibliography tables from CSV, TSV, and XLSX files
// and writes results back out. Rows that cannot be used are skipped with
// a reason and reported; loading never fails on a single bad row.
// See docs/ARCHITECTURE.md § Table Loading.
package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/pdiddy/paper-tracker/internal/link"
	"github.com/pdiddy/paper-tracker/pkg/types"
)

// keyAliases are the header names accepted for the unique-key column,
// compared case-insensitively, in priority order.
var keyAliases = []string{"Bib Key", "BibKey", "Key"}

// Optional column names, compared case-insensitively.
const (
	colTitle = "Title"
	colDOI   = "DOI"
	colURL   = "URL"
)

// SkippedRow records one rejected source row.
type SkippedRow struct {
	// Row is the 1-based source row number, excluding the header.
	Row int `json:"row" yaml:"row"`

	// Key is the row's key, when present.
	Key string `json:"key,omitempty" yaml:"key,omitempty"`

	// Reason is a human-readable explanation.
	Reason string `json:"reason" yaml:"reason"`
}

// LoadReport summarizes a table load.
type LoadReport struct {
	Loaded   int          `json:"loaded" yaml:"loaded"`
	Skipped  []SkippedRow `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Encoding string       `json:"encoding" yaml:"encoding"`

	// Link-kind breakdown of the loaded entries.
	DOILinks    int `json:"doi_links" yaml:"doi_links"`
	URLLinks    int `json:"url_links" yaml:"url_links"`
	SearchLinks int `json:"search_links" yaml:"search_links"`
}

// Total returns the number of source rows considered.
func (r LoadReport) Total() int {
	return r.Loaded + len(r.Skipped)
}

// Load reads the file at path into a Table, deriving each entry's link.
// XLSX files are read from their first sheet; anything else is treated
// as delimited text. Per-row problems are reported on w and collected in
// the report; only file-level problems (unreadable file, missing key
// column) return an error.
func Load(path string, cfg types.LoaderConfig, w io.Writer) (*types.Table, LoadReport, error) {
	var (
		records  [][]string
		encoding string
		err      error
	)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		records, err = readXLSX(path)
		encoding = "xlsx"
	} else {
		records, encoding, err = readDelimited(path)
	}
	if err != nil {
		return nil, LoadReport{}, err
	}
	if len(records) == 0 {
		return nil, LoadReport{}, fmt.Errorf("file %s contains no rows", path)
	}

	header := records[0]
	cols, err := mapColumns(header, cfg.KeyColumn)
	if err != nil {
		return nil, LoadReport{}, fmt.Errorf("%w (available columns: %s)", err, strings.Join(header, ", "))
	}

	tbl := &types.Table{Columns: header}
	report := LoadReport{Encoding: encoding}

	for i, rec := range records[1:] {
		rowNum := i + 1
		entry, reason := buildEntry(header, cols, rec, cfg.LinkConfig)
		if reason != "" {
			report.Skipped = append(report.Skipped, SkippedRow{Row: rowNum, Key: entry.Key, Reason: reason})
			fmt.Fprintf(w, "skipped row %d: %s\n", rowNum, reason)
			continue
		}

		tbl.Entries = append(tbl.Entries, entry)
		report.Loaded++
		switch entry.LinkKind {
		case types.KindDOI:
			report.DOILinks++
		case types.KindURL:
			report.URLLinks++
		case types.KindSearch:
			report.SearchLinks++
		}
	}

	fmt.Fprintf(w, "\nloaded %d entries (%d doi, %d url, %d search), skipped %d\n",
		report.Loaded, report.DOILinks, report.URLLinks, report.SearchLinks, len(report.Skipped))
	return tbl, report, nil
}

// columnIndexes maps the semantic columns onto header positions.
// A value of -1 means the column is absent.
type columnIndexes struct {
	key   int
	title int
	doi   int
	url   int
}

func mapColumns(header []string, keyOverride string) (columnIndexes, error) {
	cols := columnIndexes{key: -1, title: -1, doi: -1, url: -1}

	find := func(name string) int {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
		return -1
	}

	if keyOverride != "" {
		cols.key = find(keyOverride)
	} else {
		for _, alias := range keyAliases {
			if cols.key = find(alias); cols.key >= 0 {
				break
			}
		}
	}
	if cols.key < 0 {
		name := keyOverride
		if name == "" {
			name = keyAliases[0]
		}
		return cols, fmt.Errorf("missing required column %q", name)
	}

	cols.title = find(colTitle)
	cols.doi = find(colDOI)
	cols.url = find(colURL)
	return cols, nil
}

// buildEntry converts one record into an Entry, returning a non-empty
// skip reason when the row is unusable.
func buildEntry(header []string, cols columnIndexes, rec []string, cfg types.LinkConfig) (types.Entry, string) {
	cell := func(idx int) string {
		if idx < 0 || idx >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[idx])
	}

	e := types.Entry{
		Key:    cell(cols.key),
		Title:  cell(cols.title),
		DOI:    cell(cols.doi),
		URL:    cell(cols.url),
		Fields: make(map[string]string, len(header)),
	}
	for i, h := range header {
		e.Fields[h] = cell(i)
	}

	if e.Key == "" {
		return e, "missing key"
	}
	if strings.ContainsAny(e.Key, `/\`) {
		return e, fmt.Sprintf("key %q contains a path separator", e.Key)
	}

	e.Link, e.LinkKind = link.Derive(e, cfg)
	if e.LinkKind == types.KindNone {
		return e, fmt.Sprintf("%s: no DOI/URL/title", e.Key)
	}
	return e, ""
}

// readDelimited reads a CSV/TSV file, trying the fixed encoding list and
// sniffing the delimiter. Returns the parsed records and the name of the
// encoding that succeeded.
func readDelimited(path string) ([][]string, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}

	text, encoding, err := decodeText(raw)
	if err != nil {
		return nil, "", fmt.Errorf("decoding %s: %w", path, err)
	}

	records, err := sniffRecords(text)
	if err != nil {
		return nil, "", fmt.Errorf("parsing %s: %w", path, err)
	}
	return records, encoding, nil
}

// sniffRecords tries the candidate delimiters in order and keeps the
// first that yields more than one column.
func sniffRecords(text string) ([][]string, error) {
	var firstErr error
	for _, d := range []rune{',', '\t', ';', '|'} {
		r := csv.NewReader(strings.NewReader(text))
		r.Comma = d
		r.FieldsPerRecord = -1
		recs, err := r.ReadAll()
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if len(recs) > 0 && maxCols(recs) > 1 {
			return recs, nil
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return nil, fmt.Errorf("unable to detect a delimiter")
}

func maxCols(recs [][]string) int {
	m := 0
	for _, row := range recs {
		if len(row) > m {
			m = len(row)
		}
	}
	return m
}

// cp1252Holes are the Windows-1252 code points with no assignment; a
// byte hitting one of these means the data is not 1252.
var cp1252Holes = [...]byte{0x81, 0x8D, 0x8F, 0x90, 0x9D}

// decodeText decodes raw bytes trying UTF-8 (BOM tolerated), then
// Windows-1252, then ISO-8859-1. Latin-1 is total, so decoding only
// fails on an empty candidate list, which cannot happen here.
func decodeText(raw []byte) (string, string, error) {
	data := bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})

	if utf8.Valid(data) {
		return string(data), "utf-8", nil
	}

	if !hasCP1252Hole(data) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err == nil {
			return string(decoded), "windows-1252", nil
		}
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", "", fmt.Errorf("no supported encoding matched: %w", err)
	}
	return string(decoded), "iso-8859-1", nil
}

func hasCP1252Hole(data []byte) bool {
	for _, b := range data {
		for _, hole := range cp1252Holes {
			if b == hole {
				return true
			}
		}
	}
	return false
}

// readXLSX reads the first sheet of an XLSX workbook into records.
func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}
