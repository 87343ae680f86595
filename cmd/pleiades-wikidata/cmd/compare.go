package cmd

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/isawnyu/pleiades-wikidata/internal/cmd/globals"
	"github.com/isawnyu/pleiades-wikidata/internal/cmd/output"
	"github.com/isawnyu/pleiades-wikidata/pkg/aligner"
	"github.com/isawnyu/pleiades-wikidata/pkg/logging"
	"github.com/isawnyu/pleiades-wikidata/pkg/pleiades"
	"github.com/isawnyu/pleiades-wikidata/pkg/wikidata"
)

var (
	compareData      string
	compareIndex     string
	compareOutputDir string
	compareDate      string
)

// compareCmd represents the compare command.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare Pleiades citations of Wikidata and vice versa",
	Long: `Compare loads the Pleiades alignment index and a Wikidata CSV export,
determines which links are mutual and which exist on one side only, and
writes two review reports:

  pleiades_not_in_wikidata.csv  links Pleiades asserts that Wikidata lacks
  wikidata_not_in_pleiades.csv  links Wikidata asserts that Pleiades lacks

A summary suitable for an update announcement is printed to stdout.`,
	Example: `  pleiades-wikidata compare
  pleiades-wikidata compare -d data/wd2all.csv -i ~/pleiades.datasets/data/indexes/wikidata.json
  pleiades-wikidata compare --output-dir data/ -o json`,
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVarP(&compareData, "data", "d", "data/wd2all.csv", "Path to the Wikidata CSV export")
	compareCmd.Flags().StringVarP(&compareIndex, "index", "i", defaultIndexPath(), "Path to the Pleiades wikidata.json alignment index")
	compareCmd.Flags().StringVar(&compareOutputDir, "output-dir", "data", "Directory to write the report CSVs into")
	compareCmd.Flags().StringVarP(&compareDate, "date", "x", time.Now().Format("2006-01-02"), "Date of the update, used in the summary")
}

// defaultIndexPath points at the conventional pleiades.datasets checkout
// location under the user's home directory.
func defaultIndexPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "wikidata.json"
	}
	return filepath.Join(home, "pleiades.datasets", "data", "indexes", "wikidata.json")
}

func runCompare(cmd *cobra.Command, _ []string) error {
	index, err := pleiades.Load(compareIndex)
	if err != nil {
		return err
	}

	links := index.WikidataLinks()
	logging.Info().
		Str("path", compareIndex).
		Int("entries", len(index)).
		Int("wikidata_links", len(links)).
		Msg("Loaded Pleiades index")

	export, err := wikidata.LoadCSV(compareData)
	if err != nil {
		return err
	}
	logging.Info().
		Str("path", compareData).
		Int("entries", len(export.Records)).
		Msg("Loaded Wikidata export")

	result := aligner.Align(links, export)

	if err := result.WriteReports(compareOutputDir); err != nil {
		return err
	}

	formatter := output.NewFormatter(output.Format(globals.Parse(cmd).Output))
	return formatter.Format(cmd.OutOrStdout(), &compareSummary{
		Date:   compareDate,
		Stats:  result.Stats(),
		result: result,
	})
}

// compareSummary adapts a comparison result to the output formatters.
type compareSummary struct {
	Date   string        `json:"date" yaml:"date"`
	Stats  aligner.Stats `json:"stats" yaml:"stats"`
	result *aligner.Result
}

// Text renders the update announcement paragraph.
func (s *compareSummary) Text() string {
	return s.result.Summary(s.Date)
}

// Table renders the comparison counts as a two-column table.
func (s *compareSummary) Table() output.Data {
	return output.Data{
		Headers: []string{"Measure", "Count"},
		Rows: [][]string{
			{"Wikidata items with Pleiades IDs", strconv.Itoa(s.Stats.WikidataItems)},
			{"Pleiades entries with Wikidata links", strconv.Itoa(s.Stats.PleiadesEntries)},
			{"Bidirectional links", strconv.Itoa(s.Stats.Bidirectional)},
			{"Only in Pleiades", strconv.Itoa(s.Stats.OnlyPleiades)},
			{"Only in Wikidata", strconv.Itoa(s.Stats.OnlyWikidata)},
			{"Skipped export rows", strconv.Itoa(s.Stats.SkippedRows)},
		},
	}
}
