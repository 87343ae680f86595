// Package gazetteer defines the gazetteers this tool aligns and the
// identifier forms they use. The registry drives both the SPARQL query sent
// to the Wikidata Query Service and the column layout of the CSV exports and
// reports, so adding a gazetteer here is the single change needed to carry
// it through the whole pipeline.
package gazetteer

import (
	"github.com/isawnyu/pleiades-wikidata/pkg/errors"
)

// ID identifies a gazetteer this tool knows about.
type ID string

// Known gazetteer IDs.
const (
	IDChronique    ID = "chronique"
	IDDARE         ID = "dare"
	IDGeoNames     ID = "geonames"
	IDGettyTGN     ID = "gettytgn"
	IDiDAI         ID = "idaigaz"
	IDLoC          ID = "loc"
	IDMANTO        ID = "manto"
	IDNomisma      ID = "nomisma"
	IDToposText    ID = "topostext"
	IDTrismegistos ID = "trismegistos"
	IDVIAF         ID = "viaf"
	IDVici         ID = "vici"
	IDWikipediaEN  ID = "wikipedia_en"
)

// Gazetteer describes one alignment target reachable through Wikidata.
type Gazetteer struct {
	// ID is the short identifier used in flags and logs.
	ID ID

	// Name is the human-readable name of the gazetteer.
	Name string

	// Property is the Wikidata property holding this gazetteer's
	// identifier. Empty for sitelink pseudo-gazetteers.
	Property string

	// ExportColumn is the column name in the Wikidata CSV export
	// (wd2all.csv). Identifier columns use the plural form because a
	// Wikidata item may carry several values, concatenated by the query.
	ExportColumn string

	// ReportField is the column name used in comparison reports.
	ReportField string

	// Sitelink marks pseudo-gazetteers sourced from Wikipedia sitelinks
	// rather than item properties.
	Sitelink bool
}

// registry lists every gazetteer in the fixed order used by exports and
// reports.
var registry = []Gazetteer{
	{ID: IDChronique, Name: "Chronique des fouilles en ligne", Property: "P9373", ExportColumn: "chronique_ids", ReportField: "chronique_id"},
	{ID: IDDARE, Name: "Digital Atlas of the Roman Empire", Property: "P1936", ExportColumn: "dare_ids", ReportField: "dare_id"},
	{ID: IDGeoNames, Name: "GeoNames", Property: "P1566", ExportColumn: "geonames_ids", ReportField: "geonames_id"},
	{ID: IDGettyTGN, Name: "Getty Thesaurus of Geographic Names", Property: "P1667", ExportColumn: "gettytgn_ids", ReportField: "gettytgn_id"},
	{ID: IDiDAI, Name: "iDAI.gazetteer", Property: "P4658", ExportColumn: "idaigaz_ids", ReportField: "idaigaz_id"},
	{ID: IDLoC, Name: "Library of Congress authority", Property: "P244", ExportColumn: "loc_ids", ReportField: "loc_id"},
	{ID: IDMANTO, Name: "MANTO", Property: "P9736", ExportColumn: "manto_ids", ReportField: "manto_id"},
	{ID: IDNomisma, Name: "Nomisma", Property: "P2950", ExportColumn: "nomisma_ids", ReportField: "nomisma_id"},
	{ID: IDToposText, Name: "ToposText", Property: "P8068", ExportColumn: "topostext_ids", ReportField: "topostext_id"},
	{ID: IDTrismegistos, Name: "Trismegistos Geo", Property: "P1958", ExportColumn: "trismegistos_ids", ReportField: "trismegistos_id"},
	{ID: IDVIAF, Name: "VIAF", Property: "P214", ExportColumn: "viaf_ids", ReportField: "viaf_id"},
	{ID: IDVici, Name: "Vici.org", Property: "P3616", ExportColumn: "vici_ids", ReportField: "vici_id"},
	{ID: IDWikipediaEN, Name: "English Wikipedia", ExportColumn: "wikipedia_en", ReportField: "wikipedia_en", Sitelink: true},
}

// PleiadesProperty is the Wikidata property that anchors the whole pipeline:
// every fetched item carries a Pleiades ID through it.
const PleiadesProperty = "P1584"

// All returns every known gazetteer in registry order. The returned slice is
// a copy and safe to modify.
func All() []Gazetteer {
	out := make([]Gazetteer, len(registry))
	copy(out, registry)
	return out
}

// Get returns the gazetteer with the given ID.
func Get(id ID) (Gazetteer, error) {
	for _, g := range registry {
		if g.ID == id {
			return g, nil
		}
	}
	return Gazetteer{}, errors.NewValidationError("gazetteer", string(id), "unknown gazetteer ID")
}

// ExportColumns returns the full column set of the Wikidata CSV export in
// order: item, itemLabel, pleiades, then one column per gazetteer.
func ExportColumns() []string {
	cols := []string{"item", "itemLabel", "pleiades"}
	for _, g := range registry {
		cols = append(cols, g.ExportColumn)
	}
	return cols
}

// ReportFields returns the column set of the wikidata_not_in_pleiades report
// in order: pleiades_uri, wikidata_uri, wikidata_label, then one field per
// gazetteer.
func ReportFields() []string {
	fields := []string{"pleiades_uri", "wikidata_uri", "wikidata_label"}
	for _, g := range registry {
		fields = append(fields, g.ReportField)
	}
	return fields
}
