// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provider fetches raw bibliographic records from the upstream
// metadata services: Crossref for DOIs, arxiv2bibtex.org for arXiv IDs,
// the ADS API for bibcodes, Google Books for ISBNs, and dblp for venue
// cross-matching.
package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/pdiddy/doi2bibtex/internal/httputil"
)

// Provider names used in StatusError.
const (
	Crossref    = "crossref"
	ArxivMirror = "arxiv"
	ADS         = "ads"
	GoogleBooks = "googlebooks"
	DBLP        = "dblp"
)

// ErrNotFound is returned when an upstream answered but had no entry.
var ErrNotFound = errors.New("no BibTeX entry found")

// ErrNoADSToken is returned when an ADS call is needed and no token is
// configured.
var ErrNoADSToken = errors.New("No ADS token found! Please set the ADS_TOKEN environment " +
	"variable, or create a file at ~/.doi2bibtex/ads_token " +
	"containing your ADS token.")

// StatusError reports a non-200 answer from an upstream.
type StatusError struct {
	Provider   string
	Identifier string
	StatusCode int
}

func (e *StatusError) Error() string {
	switch e.Provider {
	case Crossref:
		return fmt.Sprintf("Error %d resolving DOI \"%s\": no BibTeX entry found", e.StatusCode, e.Identifier)
	case ArxivMirror:
		return fmt.Sprintf("Error %d resolving %s", e.StatusCode, e.Identifier)
	case DBLP:
		return fmt.Sprintf("Could not get data from dblp. Status code: %d.", e.StatusCode)
	default:
		return fmt.Sprintf("Error %d resolving \"%s\": no BibTeX entry found", e.StatusCode, e.Identifier)
	}
}

func notFound(identifier string) error {
	return fmt.Errorf("Error resolving \"%s\": %w", identifier, ErrNotFound)
}

// Client talks to every upstream through one rate-limited HTTP client.
// The zero value is usable and falls back to http.DefaultClient.
type Client struct {
	HTTP *http.Client

	// ADSToken authorizes ADS requests. Bibcode resolution fails with
	// ErrNoADSToken when it is empty; bibcode lookup returns "".
	ADSToken string

	Logger zerolog.Logger
}

// New returns a Client using hc.
func New(hc *http.Client, adsToken string, logger zerolog.Logger) *Client {
	return &Client{HTTP: hc, ADSToken: adsToken, Logger: logger}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

// fetch performs req and returns the body of a 200 response. Any other
// status becomes a StatusError for provider and identifier.
func (c *Client) fetch(req *http.Request, provider, identifier string) ([]byte, error) {
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request for %s: %w", provider, identifier, err)
	}
	defer httputil.Drain(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Provider: provider, Identifier: identifier, StatusCode: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response for %s: %w", provider, identifier, err)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, url, provider, identifier string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating %s request: %w", provider, err)
	}
	return c.fetch(req, provider, identifier)
}
