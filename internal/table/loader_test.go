// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package table

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/paper-tracker/pkg/types"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	csvData := "Bib Key,DOI,Title,URL\n" +
		"Smith2023,10.1145/3534678.3539081,Machine Learning in Distributed Systems,https://dl.acm.org/doi/10.1145/3534678.3539081\n" +
		"Johnson2023,,Cloud Computing Architectures,https://doi.org/10.1145/3534678.3539082\n" +
		"Brown2023,,AI Ethics and Fairness,\n" +
		",10.1145/3534678.3539084,Orphan Row,\n"

	path := writeTemp(t, "refs.csv", []byte(csvData))
	tbl, report, err := Load(path, types.LoaderConfig{}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Loaded)
	assert.Len(t, report.Skipped, 1)
	assert.Equal(t, "missing key", report.Skipped[0].Reason)
	assert.Equal(t, "utf-8", report.Encoding)
	assert.Equal(t, 4, report.Total())

	require.Len(t, tbl.Entries, 3)

	smith := tbl.Entries[0]
	assert.Equal(t, "Smith2023", smith.Key)
	assert.Equal(t, types.KindDOI, smith.LinkKind)
	assert.Equal(t, "https://doi.org/10.1145/3534678.3539081", smith.Link)

	// DOI recovered from the doi.org URL.
	johnson := tbl.Entries[1]
	assert.Equal(t, types.KindDOI, johnson.LinkKind)
	assert.Equal(t, "https://doi.org/10.1145/3534678.3539082", johnson.Link)

	// Title-only row falls back to a search link.
	brown := tbl.Entries[2]
	assert.Equal(t, types.KindSearch, brown.LinkKind)
	assert.Equal(t, 2, report.DOILinks)
	assert.Equal(t, 1, report.SearchLinks)
}

func TestLoadTSVDelimiterSniffed(t *testing.T) {
	tsv := "Bib Key\tDOI\tTitle\nSmith2023\t10.1/xyz\tSome Title\n"
	path := writeTemp(t, "refs.tsv", []byte(tsv))

	tbl, report, err := Load(path, types.LoaderConfig{}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Loaded)
	assert.Equal(t, "Smith2023", tbl.Entries[0].Key)
}

func TestLoadWindows1252(t *testing.T) {
	// "Muñoz2023" with 0xF1 (ñ in both 1252 and latin-1) plus a 0x93
	// smart quote, which only 1252 maps to a printable rune.
	data := []byte("Bib Key,Title\nMu\xf1oz2023,\x93Smart\x94 Systems\n")
	path := writeTemp(t, "refs.csv", data)

	tbl, report, err := Load(path, types.LoaderConfig{}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "windows-1252", report.Encoding)
	assert.Equal(t, "Muñoz2023", tbl.Entries[0].Key)
	assert.Equal(t, "“Smart” Systems", tbl.Entries[0].Title)
}

func TestLoadLatin1Fallback(t *testing.T) {
	// 0x81 is unassigned in Windows-1252, forcing the ISO-8859-1 branch.
	data := []byte("Bib Key,Title\nKey1,x\x81y\n")
	path := writeTemp(t, "refs.csv", data)

	_, report, err := Load(path, types.LoaderConfig{}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "iso-8859-1", report.Encoding)
}

func TestLoadUTF8BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Bib Key,DOI\nSmith2023,10.1/xyz\n")...)
	path := writeTemp(t, "refs.csv", data)

	tbl, _, err := Load(path, types.LoaderConfig{}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "Smith2023", tbl.Entries[0].Key)
}

func TestLoadMissingKeyColumn(t *testing.T) {
	path := writeTemp(t, "refs.csv", []byte("DOI,Title\n10.1/xyz,Some Title\n"))
	_, _, err := Load(path, types.LoaderConfig{}, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bib Key")
	assert.Contains(t, err.Error(), "available columns")
}

func TestLoadKeyColumnAliasesAndOverride(t *testing.T) {
	path := writeTemp(t, "refs.csv", []byte("key,DOI\nSmith2023,10.1/xyz\n"))
	tbl, _, err := Load(path, types.LoaderConfig{}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "Smith2023", tbl.Entries[0].Key)

	path = writeTemp(t, "refs2.csv", []byte("Citation ID,DOI\nSmith2023,10.1/xyz\n"))
	tbl, _, err = Load(path, types.LoaderConfig{KeyColumn: "Citation ID"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "Smith2023", tbl.Entries[0].Key)
}

func TestLoadRejectsPathSeparatorKeys(t *testing.T) {
	path := writeTemp(t, "refs.csv", []byte("Bib Key,DOI\nbad/key,10.1/xyz\ngood,10.1/abc\n"))
	tbl, report, err := Load(path, types.LoaderConfig{}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Loaded)
	require.Len(t, report.Skipped, 1)
	assert.Contains(t, report.Skipped[0].Reason, "path separator")
	assert.Equal(t, "good", tbl.Entries[0].Key)
}

func TestLoadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Bib Key", "DOI", "Title"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"Smith2023", "10.1/xyz", "Some Title"}))

	path := filepath.Join(t.TempDir(), "refs.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	tbl, report, err := Load(path, types.LoaderConfig{}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "xlsx", report.Encoding)
	require.Len(t, tbl.Entries, 1)
	assert.Equal(t, "Smith2023", tbl.Entries[0].Key)
	assert.Equal(t, "https://doi.org/10.1/xyz", tbl.Entries[0].Link)
}

func TestLoadPrioritizeURL(t *testing.T) {
	csvData := "Bib Key,DOI,URL\nSmith2023,10.1/xyz,http://example.com/paper.pdf\n"
	path := writeTemp(t, "refs.csv", []byte(csvData))

	cfg := types.LoaderConfig{LinkConfig: types.LinkConfig{PrioritizeURL: true}}
	tbl, _, err := Load(path, cfg, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, types.KindURL, tbl.Entries[0].LinkKind)
	assert.Equal(t, "https://example.com/paper.pdf", tbl.Entries[0].Link)
}
