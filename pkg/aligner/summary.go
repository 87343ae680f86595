package aligner

import (
	"fmt"
	"strings"

	"github.com/isawnyu/pleiades-wikidata/pkg/constants"
)

// Summary renders the announcement paragraph posted with each published
// update. date is the update date in YYYY-MM-DD form.
func (r *Result) Summary(date string) string {
	stats := r.Stats()

	var b strings.Builder
	fmt.Fprintf(&b, "Pleiades <-> Wikidata and other gazetteer alignments updated %s:\n\n", date)
	fmt.Fprintf(&b, "%d Wikidata entities include a Pleiades ID property and %d Pleiades entities include a Wikidata ID property. Of these, %d are mutual (bidirectional).\n\n",
		stats.WikidataItems, stats.PleiadesEntries, stats.Bidirectional)
	fmt.Fprintf(&b, "%d Pleiades resources to which Wikidata links can be added after they are checked: %s%s\n\n",
		stats.OnlyWikidata, constants.RepositoryDataURL, OnlyWikidataFile)
	fmt.Fprintf(&b, "%d Wikidata items to which Pleiades IDs can be added after they are checked: %s%s",
		stats.OnlyPleiades, constants.RepositoryDataURL, OnlyPleiadesFile)

	return b.String()
}
