package wikidata_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isawnyu/pleiades-wikidata/pkg/gazetteer"
	"github.com/isawnyu/pleiades-wikidata/pkg/wikidata"
)

func TestBuildQuery(t *testing.T) {
	query := wikidata.BuildQuery()

	// The Pleiades ID property anchors the whole query
	assert.Contains(t, query, "?item wdt:"+gazetteer.PleiadesProperty+" ?pleiades .")

	// Every gazetteer projects into its export column
	for _, g := range gazetteer.All() {
		assert.Contains(t, query, "AS ?"+g.ExportColumn+")", "gazetteer %s", g.ID)
		if !g.Sitelink {
			assert.Contains(t, query, "OPTIONAL { ?item wdt:"+g.Property+" ", "gazetteer %s", g.ID)
		}
	}

	// Sitelinks come from the English Wikipedia, not an item property
	assert.Contains(t, query, "schema:isPartOf <https://en.wikipedia.org/>")

	// Aggregated columns require grouping on the plain ones
	assert.Contains(t, query, "GROUP BY ?item ?itemLabel ?pleiades")
	assert.Contains(t, query, "SERVICE wikibase:label")
}

func TestBuildQueryDeterministic(t *testing.T) {
	require.Equal(t, wikidata.BuildQuery(), wikidata.BuildQuery())
}

func TestBuildQuerySelectBeforeWhere(t *testing.T) {
	query := wikidata.BuildQuery()
	assert.True(t, strings.Index(query, "SELECT") < strings.Index(query, "WHERE"))
	assert.True(t, strings.Index(query, "WHERE") < strings.Index(query, "GROUP BY"))
}
