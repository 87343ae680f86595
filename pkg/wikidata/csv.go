package wikidata

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/isawnyu/pleiades-wikidata/pkg/errors"
	"github.com/isawnyu/pleiades-wikidata/pkg/gazetteer"
	"github.com/isawnyu/pleiades-wikidata/pkg/logging"
)

// LoadCSV reads a Wikidata export file. Exports have passed through enough
// spreadsheet tools over the years that the charset cannot be trusted, so
// the file is sniffed: BOMs decide first, then UTF-8 validity, with Latin-1
// as the fallback for anything else.
func LoadCSV(path string) (*Export, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	reader, name := sniffCharset(data)
	if name != "utf-8" {
		logging.Debug().Str("path", path).Str("charset", name).Msg("Transcoding export")
	}

	export, err := Decode(reader, path)
	if err != nil {
		return nil, err
	}

	logging.Debug().
		Str("path", path).
		Int("records", len(export.Records)).
		Int("skipped", export.Skipped).
		Msg("Loaded Wikidata export")
	return export, nil
}

// sniffCharset picks a decoder for raw export bytes and names the charset it
// chose.
func sniffCharset(data []byte) (io.Reader, string) {
	var enc encoding.Encoding
	var name string

	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		enc, name = unicode.UTF8BOM, "utf-8-bom"
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		enc, name = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), "utf-16le"
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		enc, name = unicode.UTF16(unicode.BigEndian, unicode.UseBOM), "utf-16be"
	case utf8.Valid(data):
		return bytes.NewReader(data), "utf-8"
	default:
		enc, name = charmap.ISO8859_1, "latin-1"
	}

	return transform.NewReader(bytes.NewReader(data), enc.NewDecoder()), name
}

// Decode parses export CSV content. Columns are resolved from the header
// against the gazetteer registry; unknown columns are ignored so older or
// richer exports still load. Rows without a usable Pleiades ID are skipped
// and counted.
func Decode(r io.Reader, name string) (*Export, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, errors.NewParseError("csv", name, "missing header row", err)
	}

	columns := make(map[string]int, len(header))
	for i, col := range header {
		columns[col] = i
	}
	for _, required := range []string{"item", "itemLabel", "pleiades"} {
		if _, ok := columns[required]; !ok {
			return nil, errors.NewParseError("csv", name, "missing required column "+required, nil)
		}
	}

	export := &Export{}
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, errors.NewParseError("csv", name, "malformed row", err)
		}

		cell := func(col string) string {
			if i, ok := columns[col]; ok && i < len(row) {
				return row[i]
			}
			return ""
		}

		item, err := gazetteer.NormalizeWikidataURI(cell("item"))
		if err != nil {
			return nil, &errors.ParseError{Format: "csv", File: name, Line: line, Message: "item column is not a Wikidata URI", Err: err}
		}

		rec := Record{
			Item:  item,
			Label: cell("itemLabel"),
			IDs:   make(map[gazetteer.ID]string),
		}

		if _, err := gazetteer.PleiadesURI(cell("pleiades")); err != nil {
			export.Skipped++
			logging.Warn().
				Str("item", item).
				Str("pleiades", cell("pleiades")).
				Int("line", line).
				Msg("Skipping row without usable Pleiades ID")
			continue
		}
		rec.PleiadesID = cell("pleiades")

		for _, g := range gazetteer.All() {
			if v := cell(g.ExportColumn); v != "" {
				rec.IDs[g.ID] = v
			}
		}

		export.Records = append(export.Records, rec)
	}

	return export, nil
}

// WriteCSV writes records as an export in registry column order.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(gazetteer.ExportColumns()); err != nil {
		return errors.WrapIO("write", "export header", err)
	}

	for _, rec := range records {
		row := []string{rec.Item, rec.Label, rec.PleiadesID}
		for _, g := range gazetteer.All() {
			row = append(row, rec.IDs[g.ID])
		}
		if err := cw.Write(row); err != nil {
			return errors.WrapIO("write", "export row", err)
		}
	}

	cw.Flush()
	return errors.WrapIO("write", "export", cw.Error())
}
