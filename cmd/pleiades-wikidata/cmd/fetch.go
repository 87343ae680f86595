package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/isawnyu/pleiades-wikidata/internal/cmd/globals"
	"github.com/isawnyu/pleiades-wikidata/pkg/constants"
	"github.com/isawnyu/pleiades-wikidata/pkg/errors"
	"github.com/isawnyu/pleiades-wikidata/pkg/wikidata"
)

var (
	fetchEndpoint string
	fetchOutput   string
	fetchTimeout  int
	fetchPrint    bool
)

// fetchCmd represents the fetch command.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch Pleiades-aligned items from the Wikidata Query Service",
	Long: `Fetch queries the Wikidata Query Service for every item that carries a
Pleiades ID (P1584), together with the item's identifiers in the other
gazetteers this tool tracks, and writes the result as a CSV export.

The export is the Wikidata-side input of the compare command.`,
	Example: `  pleiades-wikidata fetch
  pleiades-wikidata fetch --output data/wd2all.csv
  pleiades-wikidata fetch --endpoint https://query.example.org/sparql --timeout 300
  pleiades-wikidata fetch --print-query`,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVar(&fetchEndpoint, "endpoint", constants.WikidataQueryEndpoint, "SPARQL endpoint to query")
	fetchCmd.Flags().StringVar(&fetchOutput, "output", "data/wd2all.csv", "Path to write the CSV export")
	fetchCmd.Flags().IntVar(&fetchTimeout, "timeout", int(constants.FetchTimeout.Seconds()), "Overall fetch timeout in seconds")
	fetchCmd.Flags().BoolVar(&fetchPrint, "print-query", false, "Print the SPARQL query and exit without fetching")
}

func runFetch(cmd *cobra.Command, _ []string) error {
	if fetchPrint {
		fmt.Fprintln(cmd.OutOrStdout(), wikidata.BuildQuery())
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(fetchTimeout)*time.Second)
	defer cancel()

	client := wikidata.NewClient(
		wikidata.WithEndpoint(fetchEndpoint),
		wikidata.WithHTTPTimeout(time.Duration(fetchTimeout)*time.Second),
	)

	export, err := client.Fetch(ctx)
	if err != nil {
		if errors.IsRateLimited(err) || errors.IsEndpointUnavailable(err) {
			cmd.SilenceUsage = true
		}
		return err
	}

	f, err := os.OpenFile(fetchOutput, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("create", fetchOutput, err)
	}
	defer f.Close() //nolint:errcheck // WriteCSV flushes; close is best-effort

	if err := wikidata.WriteCSV(f, export.Records); err != nil {
		return err
	}

	if !globals.Parse(cmd).Quiet {
		fmt.Fprintf(os.Stderr, "Wrote %d records to %s\n", len(export.Records), fetchOutput)
	}
	return nil
}
