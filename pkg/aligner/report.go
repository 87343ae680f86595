package aligner

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/isawnyu/pleiades-wikidata/pkg/constants"
	"github.com/isawnyu/pleiades-wikidata/pkg/errors"
	"github.com/isawnyu/pleiades-wikidata/pkg/gazetteer"
	"github.com/isawnyu/pleiades-wikidata/pkg/logging"
)

// Report file names, fixed because downstream curation workflows link to
// them in the published data directory.
const (
	OnlyPleiadesFile = "pleiades_not_in_wikidata.csv"
	OnlyWikidataFile = "wikidata_not_in_pleiades.csv"
)

// WriteReports writes both review reports into dir, creating it if needed.
func (r *Result) WriteReports(dir string) error {
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	if err := r.writeOnlyPleiades(filepath.Join(dir, OnlyPleiadesFile)); err != nil {
		return err
	}
	return r.writeOnlyWikidata(filepath.Join(dir, OnlyWikidataFile))
}

// writeOnlyPleiades reports links asserted by Pleiades that Wikidata lacks:
// Wikidata items that could gain a Pleiades ID once checked.
func (r *Result) writeOnlyPleiades(path string) error {
	rows := make([][]string, 0, len(r.OnlyPleiades))
	for _, puri := range r.OnlyPleiades {
		rows = append(rows, []string{puri, r.PleiadesLinks[puri]})
	}

	if err := writeCSV(path, []string{"pleiades_uri", "wikidata_uri"}, rows); err != nil {
		return err
	}

	logging.Info().Int("links", len(rows)).Str("path", path).Msg("Wrote Pleiades-to-Wikidata report")
	return nil
}

// writeOnlyWikidata reports links asserted by Wikidata that Pleiades lacks:
// Pleiades places that could gain Wikidata references once checked. The
// extra identifier columns give reviewers the item's other gazetteer IDs as
// corroborating evidence.
func (r *Result) writeOnlyWikidata(path string) error {
	rows := make([][]string, 0, len(r.OnlyWikidata))
	for _, puri := range r.OnlyWikidata {
		rec := r.WikidataRecords[puri]
		row := []string{puri, rec.Item, rec.Label}
		for _, g := range gazetteer.All() {
			row = append(row, rec.ID(g.ID))
		}
		rows = append(rows, row)
	}

	if err := writeCSV(path, gazetteer.ReportFields(), rows); err != nil {
		return err
	}

	logging.Info().Int("links", len(rows)).Str("path", path).Msg("Wrote Wikidata-to-Pleiades report")
	return nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logging.Warn().Err(cerr).Str("path", path).Msg("Failed to close report file")
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return errors.WrapIO("write", path, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return errors.WrapIO("write", path, err)
		}
	}

	w.Flush()
	return errors.WrapIO("write", path, w.Error())
}
