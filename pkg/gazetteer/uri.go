package gazetteer

import (
	"strings"

	"github.com/isawnyu/pleiades-wikidata/pkg/constants"
	"github.com/isawnyu/pleiades-wikidata/pkg/errors"
)

// wikidataEntityPrefixes are the entity-form URI prefixes the Query Service
// returns. The Pleiades index stores page-form URIs, so entity forms are
// normalized before comparison.
var wikidataEntityPrefixes = []string{
	"http://www.wikidata.org/entity/",
	"https://www.wikidata.org/entity/",
}

// PleiadesURI builds the canonical place URI for a numeric Pleiades ID.
func PleiadesURI(id string) (string, error) {
	id = strings.TrimSpace(id)
	if !isDigits(id) {
		return "", errors.NewValidationError("pleiades", id, "Pleiades IDs are numeric")
	}
	return constants.PleiadesPlacePrefix + id, nil
}

// ParsePleiadesURI extracts the numeric place ID from a Pleiades place URI.
func ParsePleiadesURI(uri string) (string, error) {
	id, ok := strings.CutPrefix(uri, constants.PleiadesPlacePrefix)
	if !ok || !isDigits(strings.TrimSuffix(id, "/")) {
		return "", errors.NewValidationError("pleiades_uri", uri, "not a Pleiades place URI")
	}
	return strings.TrimSuffix(id, "/"), nil
}

// IsPleiadesURI reports whether uri is a Pleiades place URI.
func IsPleiadesURI(uri string) bool {
	_, err := ParsePleiadesURI(uri)
	return err == nil
}

// NormalizeWikidataURI converts any accepted Wikidata item reference (page
// URI, entity URI, or bare QID) to the page form stored in the Pleiades
// index.
func NormalizeWikidataURI(uri string) (string, error) {
	qid, err := QID(uri)
	if err != nil {
		return "", err
	}
	return constants.WikidataPagePrefix + qid, nil
}

// QID extracts the Q-identifier from a Wikidata item reference.
func QID(uri string) (string, error) {
	candidate := strings.TrimSpace(uri)
	if s, ok := strings.CutPrefix(candidate, constants.WikidataPagePrefix); ok {
		candidate = s
	} else {
		for _, prefix := range wikidataEntityPrefixes {
			if s, ok := strings.CutPrefix(candidate, prefix); ok {
				candidate = s
				break
			}
		}
	}

	if !isQID(candidate) {
		return "", errors.NewValidationError("wikidata_uri", uri, "not a Wikidata item reference")
	}
	return candidate, nil
}

// IsWikidataURI reports whether uri is a recognizable Wikidata item
// reference.
func IsWikidataURI(uri string) bool {
	_, err := QID(uri)
	return err == nil
}

func isQID(s string) bool {
	return len(s) > 1 && s[0] == 'Q' && isDigits(s[1:])
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
