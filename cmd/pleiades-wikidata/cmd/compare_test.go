package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isawnyu/pleiades-wikidata/pkg/aligner"
)

const testIndex = `{
  "https://pleiades.stoa.org/places/579885": {
    "alignments": ["https://www.wikidata.org/wiki/Q1524"]
  },
  "https://pleiades.stoa.org/places/423025": {
    "alignments": ["https://www.wikidata.org/wiki/Q220"]
  }
}`

const testData = `item,itemLabel,pleiades,geonames_ids
http://www.wikidata.org/entity/Q1524,Athens,579885,264371
http://www.wikidata.org/entity/Q187798,Delphi,540726,264305
`

func writeFixtures(t *testing.T) (indexPath, dataPath, outDir string) {
	t.Helper()
	dir := t.TempDir()

	indexPath = filepath.Join(dir, "wikidata.json")
	require.NoError(t, os.WriteFile(indexPath, []byte(testIndex), 0o644))

	dataPath = filepath.Join(dir, "wd2all.csv")
	require.NoError(t, os.WriteFile(dataPath, []byte(testData), 0o644))

	outDir = filepath.Join(dir, "out")
	return indexPath, dataPath, outDir
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestCompareCommand(t *testing.T) {
	indexPath, dataPath, outDir := writeFixtures(t)

	out, err := runCommand(t,
		"compare",
		"--data", dataPath,
		"--index", indexPath,
		"--output-dir", outDir,
		"--date", "2026-08-29",
		"--output", "text",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "updated 2026-08-29")
	assert.Contains(t, out, "1 are mutual (bidirectional)")
	assert.FileExists(t, filepath.Join(outDir, aligner.OnlyPleiadesFile))
	assert.FileExists(t, filepath.Join(outDir, aligner.OnlyWikidataFile))
}

func TestCompareCommandJSON(t *testing.T) {
	indexPath, dataPath, outDir := writeFixtures(t)

	out, err := runCommand(t,
		"compare",
		"--data", dataPath,
		"--index", indexPath,
		"--output-dir", outDir,
		"--date", "2026-08-29",
		"--output", "json",
	)
	require.NoError(t, err)

	var decoded struct {
		Date  string        `json:"date"`
		Stats aligner.Stats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "2026-08-29", decoded.Date)
	assert.Equal(t, 1, decoded.Stats.Bidirectional)
	assert.Equal(t, 1, decoded.Stats.OnlyPleiades)
	assert.Equal(t, 1, decoded.Stats.OnlyWikidata)
}

func TestCompareCommandMissingIndex(t *testing.T) {
	_, dataPath, outDir := writeFixtures(t)

	_, err := runCommand(t,
		"compare",
		"--data", dataPath,
		"--index", filepath.Join(t.TempDir(), "absent.json"),
		"--output-dir", outDir,
		"--output", "text",
	)
	require.Error(t, err)
}

func TestValidateCommandClean(t *testing.T) {
	indexPath, dataPath, _ := writeFixtures(t)

	out, err := runCommand(t,
		"validate",
		"--data", dataPath,
		"--index", indexPath,
		"--output", "text",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "No problems found")
}

func TestValidateCommandCleanJSON(t *testing.T) {
	indexPath, dataPath, _ := writeFixtures(t)

	out, err := runCommand(t,
		"validate",
		"--data", dataPath,
		"--index", indexPath,
		"--output", "json",
	)
	require.NoError(t, err)

	// Machine consumers get an empty list, not null
	var decoded []any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.NotNil(t, decoded)
	assert.Empty(t, decoded)
}

func TestValidateCommandFindsProblems(t *testing.T) {
	dir := t.TempDir()

	indexPath := filepath.Join(dir, "wikidata.json")
	require.NoError(t, os.WriteFile(indexPath, []byte(`{
  "https://pleiades.stoa.org/places/579885": {
    "alignments": ["https://www.wikidata.org/wiki/NOT-A-QID"]
  }
}`), 0o644))

	dataPath := filepath.Join(dir, "wd2all.csv")
	require.NoError(t, os.WriteFile(dataPath, []byte(
		"item,itemLabel,pleiades\n"+
			"Q1,first,579885\n"+
			"Q2,second,579885\n"+
			"Q3,broken,\n",
	), 0o644))

	out, err := runCommand(t,
		"validate",
		"--data", dataPath,
		"--index", indexPath,
		"--output", "text",
	)
	require.Error(t, err)
	assert.Contains(t, out, "malformed Wikidata alignment")
	assert.Contains(t, out, "claimed by 2 Wikidata items")
	assert.Contains(t, out, "1 rows skipped")
}
