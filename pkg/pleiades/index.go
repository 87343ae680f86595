// Package pleiades reads the alignment index published by the Pleiades
// gazetteer (data/indexes/wikidata.json in the pleiades.datasets
// repository). The index maps subject URIs to the alignments Pleiades
// asserts for them; this tool consumes the Pleiades-place-to-Wikidata-item
// subset.
package pleiades

import (
	"encoding/json"
	"os"

	"github.com/isawnyu/pleiades-wikidata/pkg/errors"
	"github.com/isawnyu/pleiades-wikidata/pkg/gazetteer"
	"github.com/isawnyu/pleiades-wikidata/pkg/logging"
)

// IndexEntry is one subject in the alignment index.
type IndexEntry struct {
	Alignments []string `json:"alignments"`
}

// Index maps subject URIs to their asserted alignments. Subjects include
// Pleiades place URIs and the URIs of aligned resources; only place URIs are
// consulted here.
type Index map[string]IndexEntry

// Load reads and parses an alignment index file.
func Load(path string) (Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var index Index
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}

	logging.Debug().Str("path", path).Int("entries", len(index)).Msg("Loaded alignment index")
	return index, nil
}

// WikidataLinks projects the index to a map of Pleiades place URI to the
// Wikidata page URI the place is aligned with. Places with no Wikidata
// alignment are omitted; when a place asserts several, the first wins.
func (idx Index) WikidataLinks() map[string]string {
	links := make(map[string]string)
	for subject, entry := range idx {
		if !gazetteer.IsPleiadesURI(subject) {
			continue
		}
		for _, alignment := range entry.Alignments {
			normalized, err := gazetteer.NormalizeWikidataURI(alignment)
			if err != nil {
				continue
			}
			links[subject] = normalized
			break
		}
	}
	return links
}
