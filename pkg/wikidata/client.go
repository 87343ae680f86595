package wikidata

import (
	"bytes"
	"context"
	"net/url"
	"time"

	"github.com/isawnyu/pleiades-wikidata/internal/transport"
	"github.com/isawnyu/pleiades-wikidata/pkg/constants"
	"github.com/isawnyu/pleiades-wikidata/pkg/logging"
)

// Client fetches the Pleiades-aligned item set from a Wikidata Query
// Service endpoint.
type Client struct {
	endpoint  string
	transport *transport.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithEndpoint points the client at a non-default SPARQL endpoint.
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithTransport replaces the underlying transport client.
func WithTransport(t *transport.Client) ClientOption {
	return func(c *Client) {
		if t != nil {
			c.transport = t
		}
	}
}

// WithHTTPTimeout sets the per-request timeout on the default transport.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.transport = transport.New(transport.WithTimeout(d))
	}
}

// NewClient creates a query service client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		endpoint:  constants.WikidataQueryEndpoint,
		transport: transport.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch runs the export query and decodes the result. The query is POSTed
// because it exceeds comfortable GET URL lengths, and results are requested
// as CSV so the decode path is shared with file loading.
func (c *Client) Fetch(ctx context.Context) (*Export, error) {
	query := BuildQuery()

	logging.Ctx(ctx).Info().Str("endpoint", c.endpoint).Msg("Querying Wikidata for Pleiades-aligned items")

	start := time.Now()
	resp, err := c.transport.PostForm(ctx, c.endpoint, url.Values{"query": {query}}, "text/csv")
	if err != nil {
		return nil, err
	}

	body, err := transport.ReadResponse(resp)
	if err != nil {
		return nil, err
	}

	export, err := Decode(bytes.NewReader(body), c.endpoint)
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().
		Int("records", len(export.Records)).
		Int("skipped", export.Skipped).
		Dur("elapsed", time.Since(start)).
		Msg("Fetched Wikidata export")

	return export, nil
}
