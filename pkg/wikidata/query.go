package wikidata

import (
	"fmt"
	"strings"

	"github.com/isawnyu/pleiades-wikidata/pkg/gazetteer"
)

// BuildQuery generates the SPARQL SELECT that produces the export: every
// item carrying a Pleiades ID, its English label, and its identifiers in
// each registry gazetteer. Identifier columns are GROUP_CONCAT aggregates
// because nothing stops a Wikidata item from carrying several IDs in the
// same gazetteer.
func BuildQuery() string {
	var b strings.Builder

	b.WriteString("SELECT ?item ?itemLabel ?pleiades")
	for _, g := range gazetteer.All() {
		fmt.Fprintf(&b, "\n  (GROUP_CONCAT(DISTINCT ?%s; SEPARATOR=%q) AS ?%s)",
			bindingName(g), ValueSeparator, g.ExportColumn)
	}

	b.WriteString("\nWHERE {\n")
	fmt.Fprintf(&b, "  ?item wdt:%s ?pleiades .\n", gazetteer.PleiadesProperty)

	for _, g := range gazetteer.All() {
		if g.Sitelink {
			fmt.Fprintf(&b, "  OPTIONAL {\n"+
				"    ?article schema:about ?item ;\n"+
				"             schema:isPartOf <https://en.wikipedia.org/> ;\n"+
				"             schema:name ?%s .\n"+
				"  }\n", bindingName(g))
			continue
		}
		fmt.Fprintf(&b, "  OPTIONAL { ?item wdt:%s ?%s . }\n", g.Property, bindingName(g))
	}

	b.WriteString("  SERVICE wikibase:label { bd:serviceParam wikibase:language \"en\". }\n")
	b.WriteString("}\nGROUP BY ?item ?itemLabel ?pleiades")

	return b.String()
}

// bindingName is the per-row SPARQL variable a gazetteer's values bind to
// before aggregation.
func bindingName(g gazetteer.Gazetteer) string {
	return "v_" + string(g.ID)
}
