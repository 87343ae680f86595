package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/isawnyu/pleiades-wikidata/internal/cmd/globals"
	"github.com/isawnyu/pleiades-wikidata/internal/cmd/output"
	"github.com/isawnyu/pleiades-wikidata/pkg/gazetteer"
	"github.com/isawnyu/pleiades-wikidata/pkg/pleiades"
	"github.com/isawnyu/pleiades-wikidata/pkg/wikidata"
)

var (
	validateData  string
	validateIndex string
)

// validateCmd represents the validate command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check comparison inputs for structural problems",
	Long: `Validate loads the Pleiades alignment index and the Wikidata CSV export
the way compare would, and reports structural problems instead of writing
reports: malformed alignment URIs, export rows without usable Pleiades
IDs, and Pleiades IDs claimed by more than one Wikidata item.

The exit code is non-zero when problems are found.`,
	Example: `  pleiades-wikidata validate
  pleiades-wikidata validate -d data/wd2all.csv -i ~/pleiades.datasets/data/indexes/wikidata.json`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateData, "data", "d", "data/wd2all.csv", "Path to the Wikidata CSV export")
	validateCmd.Flags().StringVarP(&validateIndex, "index", "i", defaultIndexPath(), "Path to the Pleiades wikidata.json alignment index")
}

// finding is one problem detected in an input file.
type finding struct {
	Source  string `json:"source" yaml:"source"`
	Subject string `json:"subject" yaml:"subject"`
	Problem string `json:"problem" yaml:"problem"`
}

// findings adapts validation results to the output formatters.
type findings []finding

// Text renders findings one per line.
func (f findings) Text() string {
	if len(f) == 0 {
		return "No problems found."
	}
	lines := make([]string, 0, len(f))
	for _, item := range f {
		lines = append(lines, fmt.Sprintf("%s: %s: %s", item.Source, item.Subject, item.Problem))
	}
	return strings.Join(lines, "\n")
}

// Table renders findings as a table.
func (f findings) Table() output.Data {
	data := output.Data{Headers: []string{"Source", "Subject", "Problem"}}
	for _, item := range f {
		data.Rows = append(data.Rows, []string{item.Source, item.Subject, item.Problem})
	}
	return data
}

func runValidate(cmd *cobra.Command, _ []string) error {
	// Non-nil so a clean run serializes as an empty list, not null
	found := findings{}

	index, err := pleiades.Load(validateIndex)
	if err != nil {
		return err
	}
	found = append(found, validateIndexEntries(index)...)

	export, err := wikidata.LoadCSV(validateData)
	if err != nil {
		return err
	}
	found = append(found, validateExport(export)...)

	formatter := output.NewFormatter(output.Format(globals.Parse(cmd).Output))
	if err := formatter.Format(cmd.OutOrStdout(), found); err != nil {
		return err
	}

	if len(found) > 0 {
		cmd.SilenceUsage = true
		return fmt.Errorf("validation found %d problems", len(found))
	}
	return nil
}

// validateIndexEntries flags Pleiades places whose alignment list mentions
// Wikidata in a form the comparison cannot use.
func validateIndexEntries(index pleiades.Index) findings {
	var found findings
	for subject, entry := range index {
		if !gazetteer.IsPleiadesURI(subject) {
			continue
		}
		for _, alignment := range entry.Alignments {
			if !strings.Contains(alignment, "wikidata.org") {
				continue
			}
			if !gazetteer.IsWikidataURI(alignment) {
				found = append(found, finding{
					Source:  "index",
					Subject: subject,
					Problem: fmt.Sprintf("malformed Wikidata alignment %q", alignment),
				})
			}
		}
	}
	sortFindings(found)
	return found
}

// validateExport flags skipped rows and contested Pleiades IDs in the
// Wikidata export.
func validateExport(export *wikidata.Export) findings {
	var found findings

	if export.Skipped > 0 {
		found = append(found, finding{
			Source:  "export",
			Subject: "(rows)",
			Problem: fmt.Sprintf("%d rows skipped for missing or non-numeric Pleiades IDs", export.Skipped),
		})
	}

	var dupes findings
	for id, items := range export.DuplicatePleiadesIDs() {
		dupes = append(dupes, finding{
			Source:  "export",
			Subject: id,
			Problem: fmt.Sprintf("Pleiades ID claimed by %d Wikidata items: %s", len(items), strings.Join(items, ", ")),
		})
	}
	sortFindings(dupes)

	return append(found, dupes...)
}

func sortFindings(f findings) {
	sort.Slice(f, func(i, j int) bool {
		if f[i].Subject != f[j].Subject {
			return f[i].Subject < f[j].Subject
		}
		return f[i].Problem < f[j].Problem
	})
}
