package aligner_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isawnyu/pleiades-wikidata/pkg/aligner"
	"github.com/isawnyu/pleiades-wikidata/pkg/gazetteer"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteReports(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	result := aligner.Align(testLinks(), testExport())

	require.NoError(t, result.WriteReports(dir))

	// Links Pleiades asserts that Wikidata lacks
	onlyPleiades := readCSV(t, filepath.Join(dir, aligner.OnlyPleiadesFile))
	require.Len(t, onlyPleiades, 2)
	assert.Equal(t, []string{"pleiades_uri", "wikidata_uri"}, onlyPleiades[0])
	assert.Equal(t, []string{romeURI, "https://www.wikidata.org/wiki/Q220"}, onlyPleiades[1])

	// Links Wikidata asserts that Pleiades lacks, with corroborating IDs
	onlyWikidata := readCSV(t, filepath.Join(dir, aligner.OnlyWikidataFile))
	require.Len(t, onlyWikidata, 2)
	assert.Equal(t, gazetteer.ReportFields(), onlyWikidata[0])

	row := onlyWikidata[1]
	assert.Equal(t, delphiURI, row[0])
	assert.Equal(t, "https://www.wikidata.org/wiki/Q187798", row[1])
	assert.Equal(t, "Delphi", row[2])
	// Every registry gazetteer gets a column, populated or not
	assert.Len(t, row, len(gazetteer.ReportFields()))
}

func TestWriteReportsCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "deeper")
	result := aligner.Align(map[string]string{}, testExport())

	require.NoError(t, result.WriteReports(dir))
	assert.FileExists(t, filepath.Join(dir, aligner.OnlyPleiadesFile))
	assert.FileExists(t, filepath.Join(dir, aligner.OnlyWikidataFile))
}

func TestSummary(t *testing.T) {
	result := aligner.Align(testLinks(), testExport())
	summary := result.Summary("2026-08-29")

	assert.Contains(t, summary, "updated 2026-08-29")
	assert.Contains(t, summary, "2 Wikidata entities include a Pleiades ID property")
	assert.Contains(t, summary, "2 Pleiades entities include a Wikidata ID property")
	assert.Contains(t, summary, "1 are mutual (bidirectional)")

	// Each count is paired with the report that holds its links
	assert.Contains(t, summary, "1 Pleiades resources to which Wikidata links can be added")
	assert.Contains(t, summary, aligner.OnlyWikidataFile)
	assert.Contains(t, summary, "1 Wikidata items to which Pleiades IDs can be added")
	assert.Contains(t, summary, aligner.OnlyPleiadesFile)

	// Announcements are posted as-is; no trailing whitespace
	assert.Equal(t, strings.TrimSpace(summary), summary)
}
