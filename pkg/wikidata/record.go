// Package wikidata handles the Wikidata side of the alignment: fetching the
// set of items that carry a Pleiades ID from the Wikidata Query Service and
// reading/writing the CSV export that snapshots them (data/wd2all.csv in the
// published repository).
package wikidata

import (
	"github.com/isawnyu/pleiades-wikidata/pkg/constants"
	"github.com/isawnyu/pleiades-wikidata/pkg/gazetteer"
)

// ValueSeparator joins multiple identifier values inside one export cell
// when a Wikidata item carries more than one ID for the same gazetteer.
const ValueSeparator = "|"

// Record is one Wikidata item carrying a Pleiades ID, with its identifiers
// in the other gazetteers the registry tracks.
type Record struct {
	// Item is the page-form URI of the Wikidata item.
	Item string

	// Label is the English label of the item.
	Label string

	// PleiadesID is the numeric Pleiades place ID asserted on the item.
	PleiadesID string

	// IDs holds the item's identifier in each gazetteer it is aligned
	// with, keyed by gazetteer ID. Absent gazetteers have no entry.
	IDs map[gazetteer.ID]string
}

// PleiadesURI returns the place URI the record's Pleiades ID points at.
func (r Record) PleiadesURI() (string, error) {
	return gazetteer.PleiadesURI(r.PleiadesID)
}

// ID returns the record's identifier in the given gazetteer, or the empty
// string when the item has none.
func (r Record) ID(id gazetteer.ID) string {
	return r.IDs[id]
}

// Export is a decoded Wikidata CSV export.
type Export struct {
	// Records are the usable rows in file order.
	Records []Record

	// Skipped counts rows dropped because their Pleiades ID cell was
	// empty or not numeric.
	Skipped int
}

// ByPleiadesURI indexes the export by Pleiades place URI. When several items
// claim the same Pleiades ID the last row wins, matching how the published
// comparison has always resolved the collision.
func (e *Export) ByPleiadesURI() map[string]Record {
	out := make(map[string]Record, len(e.Records))
	for _, rec := range e.Records {
		out[constants.PleiadesPlacePrefix+rec.PleiadesID] = rec
	}
	return out
}

// DuplicatePleiadesIDs returns the Pleiades IDs claimed by more than one
// Wikidata item, mapped to the claiming item URIs in file order.
func (e *Export) DuplicatePleiadesIDs() map[string][]string {
	claims := make(map[string][]string)
	for _, rec := range e.Records {
		claims[rec.PleiadesID] = append(claims[rec.PleiadesID], rec.Item)
	}

	dupes := make(map[string][]string)
	for id, items := range claims {
		if len(items) > 1 {
			dupes[id] = items
		}
	}
	return dupes
}
