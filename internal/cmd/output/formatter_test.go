package output_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isawnyu/pleiades-wikidata/internal/cmd/output"
)

type testPayload struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

func (p testPayload) Text() string {
	return p.Name
}

func (p testPayload) Table() output.Data {
	return output.Data{
		Headers: []string{"Name", "Count"},
		Rows:    [][]string{{p.Name, "42"}},
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatJSON)
	require.NoError(t, f.Format(&buf, testPayload{Name: "athens", Count: 42}))

	var decoded testPayload
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "athens", decoded.Name)
	assert.Equal(t, 42, decoded.Count)
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatYAML)
	require.NoError(t, f.Format(&buf, testPayload{Name: "athens", Count: 42}))

	assert.Contains(t, buf.String(), "name: athens")
	assert.Contains(t, buf.String(), "count: 42")
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatText)
	require.NoError(t, f.Format(&buf, testPayload{Name: "athens"}))
	assert.Equal(t, "athens\n", buf.String())
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatTable)
	require.NoError(t, f.Format(&buf, testPayload{Name: "athens", Count: 42}))

	out := buf.String()
	assert.Contains(t, out, "athens")
	assert.Contains(t, out, "42")
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatTable)
	require.NoError(t, f.Format(&buf, map[string]int{"links": 3}))

	assert.True(t, strings.HasPrefix(strings.TrimSpace(buf.String()), "{"))
}

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"text", "table", "json", "yaml", "JSON", ""} {
		_, err := output.ParseFormat(valid)
		assert.NoError(t, err, "format %q", valid)
	}

	_, err := output.ParseFormat("xml")
	assert.Error(t, err)
}
