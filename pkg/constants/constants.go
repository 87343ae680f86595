// Package constants provides shared constants used throughout the
// pleiades-wikidata codebase: timeouts, retry policy, file permissions, and
// other values that should be consistent across the application.
package constants

import "time"

// Timeout constants define the timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to the
	// Wikidata Query Service
	DefaultHTTPTimeout = 60 * time.Second

	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// FetchTimeout is the overall timeout for a full SPARQL export fetch;
	// the Pleiades ID query returns tens of thousands of rows
	FetchTimeout = 5 * time.Minute

	// RetryBackoff is the base backoff duration for retries
	RetryBackoff = 1 * time.Second

	// MaxRetryBackoff is the maximum backoff duration for retries
	MaxRetryBackoff = 30 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants define various limits and capacities
const (
	// MaxRetries is the maximum number of retry attempts for failed requests
	MaxRetries = 3

	// MaxResponseBytes bounds how much of an error response body is read
	// back for diagnostics
	MaxResponseBytes = 1 << 20
)

// URL constants for the services this tool aligns
const (
	// WikidataQueryEndpoint is the public SPARQL endpoint of the Wikidata
	// Query Service
	WikidataQueryEndpoint = "https://query.wikidata.org/sparql"

	// PleiadesPlacePrefix is the URI prefix shared by all Pleiades place
	// resources
	PleiadesPlacePrefix = "https://pleiades.stoa.org/places/"

	// WikidataPagePrefix is the page-form URI prefix for Wikidata items,
	// the form stored in the Pleiades index
	WikidataPagePrefix = "https://www.wikidata.org/wiki/"

	// RepositoryDataURL is where published report CSVs live; used in the
	// summary message
	RepositoryDataURL = "https://github.com/isawnyu/pleiades_wikidata/blob/main/data/"
)
