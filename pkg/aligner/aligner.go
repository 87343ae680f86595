// Package aligner implements the comparison at the heart of this tool:
// given the links Pleiades asserts toward Wikidata and the links Wikidata
// asserts toward Pleiades, partition them into mutual links and the two
// one-sided remainders that curators need to review.
package aligner

import (
	"sort"

	"github.com/isawnyu/pleiades-wikidata/pkg/logging"
	"github.com/isawnyu/pleiades-wikidata/pkg/wikidata"
)

// Result is the outcome of one comparison. All three URI slices are sorted
// by Pleiades URI so repeated runs over the same inputs are diffable.
type Result struct {
	// PleiadesLinks maps Pleiades place URI to the Wikidata page URI the
	// place asserts (the Pleiades side of the comparison).
	PleiadesLinks map[string]string

	// WikidataRecords maps Pleiades place URI to the Wikidata record
	// claiming it (the Wikidata side of the comparison).
	WikidataRecords map[string]wikidata.Record

	// Bidirectional lists the Pleiades URIs linked from both sides.
	Bidirectional []string

	// OnlyPleiades lists the Pleiades URIs whose Wikidata link exists
	// only on the Pleiades side.
	OnlyPleiades []string

	// OnlyWikidata lists the Pleiades URIs claimed only from the
	// Wikidata side.
	OnlyWikidata []string

	// WikidataRows counts the export rows behind WikidataRecords, before
	// duplicate Pleiades claims collapse into one record.
	WikidataRows int

	// SkippedRows counts export rows dropped during decoding.
	SkippedRows int
}

// Align compares the Pleiades-asserted links against a Wikidata export.
// A link counts as bidirectional when both sides reference the same
// Pleiades place, whichever Wikidata item each side names.
func Align(links map[string]string, export *wikidata.Export) *Result {
	result := &Result{
		PleiadesLinks:   links,
		WikidataRecords: export.ByPleiadesURI(),
		WikidataRows:    len(export.Records),
		SkippedRows:     export.Skipped,
	}

	for puri := range result.WikidataRecords {
		if _, ok := links[puri]; ok {
			result.Bidirectional = append(result.Bidirectional, puri)
		} else {
			result.OnlyWikidata = append(result.OnlyWikidata, puri)
		}
	}

	for puri := range links {
		if _, ok := result.WikidataRecords[puri]; !ok {
			result.OnlyPleiades = append(result.OnlyPleiades, puri)
		}
	}

	sort.Strings(result.Bidirectional)
	sort.Strings(result.OnlyPleiades)
	sort.Strings(result.OnlyWikidata)

	logging.Info().
		Int("bidirectional", len(result.Bidirectional)).
		Int("only_pleiades", len(result.OnlyPleiades)).
		Int("only_wikidata", len(result.OnlyWikidata)).
		Msg("Compared alignment link sets")

	return result
}

// Stats summarizes a Result for structured output.
type Stats struct {
	WikidataItems   int `json:"wikidata_items" yaml:"wikidata_items"`
	PleiadesEntries int `json:"pleiades_entries" yaml:"pleiades_entries"`
	Bidirectional   int `json:"bidirectional" yaml:"bidirectional"`
	OnlyPleiades    int `json:"only_pleiades" yaml:"only_pleiades"`
	OnlyWikidata    int `json:"only_wikidata" yaml:"only_wikidata"`
	SkippedRows     int `json:"skipped_rows" yaml:"skipped_rows"`
}

// Stats returns the comparison counts.
func (r *Result) Stats() Stats {
	return Stats{
		WikidataItems:   r.WikidataRows,
		PleiadesEntries: len(r.PleiadesLinks),
		Bidirectional:   len(r.Bidirectional),
		OnlyPleiades:    len(r.OnlyPleiades),
		OnlyWikidata:    len(r.OnlyWikidata),
		SkippedRows:     r.SkippedRows,
	}
}
