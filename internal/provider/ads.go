// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/segmentio/encoding/json"

	"github.com/pdiddy/doi2bibtex/internal/bibtex"
	"github.com/pdiddy/doi2bibtex/pkg/types"
)

var (
	adsExportURL = "https://api.adsabs.harvard.edu/v1/export/bibtex"
	adsSearchURL = "https://api.adsabs.harvard.edu/v1/search/query"
)

type adsExportRequest struct {
	Bibcode []string `json:"bibcode"`
}

type adsExportResponse struct {
	Export string `json:"export"`
}

type adsSearchResponse struct {
	Response struct {
		Docs []struct {
			Bibcode string `json:"bibcode"`
		} `json:"docs"`
	} `json:"response"`
}

// ResolveBibcode exports the BibTeX entry ADS holds for bibcode.
func (c *Client) ResolveBibcode(ctx context.Context, bibcode string) (types.Record, error) {
	if c.ADSToken == "" {
		return nil, ErrNoADSToken
	}

	payload, err := json.Marshal(adsExportRequest{Bibcode: []string{bibcode}})
	if err != nil {
		return nil, fmt.Errorf("encoding ADS request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, adsExportURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating ADS request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.ADSToken)
	req.Header.Set("Content-Type", "application/json")

	body, err := c.fetch(req, ADS, bibcode)
	if err != nil {
		return nil, err
	}

	var out adsExportResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("parsing ADS response for %s: %w", bibcode, err)
	}
	if out.Export == "" {
		return nil, notFound(bibcode)
	}
	rec, err := bibtex.Decode(out.Export)
	if err != nil {
		return nil, fmt.Errorf("parsing ADS entry for %s: %w", bibcode, err)
	}
	return rec, nil
}

// FindBibcode searches ADS for identifier and returns the bibcode of the
// first hit. Every failure, including a missing token, yields "".
func (c *Client) FindBibcode(ctx context.Context, identifier string) string {
	bibcode, err := c.searchBibcode(ctx, identifier)
	if err != nil {
		c.Logger.Debug().Err(err).Str("identifier", identifier).Msg("ADS bibcode lookup failed")
		return ""
	}
	return bibcode
}

func (c *Client) searchBibcode(ctx context.Context, identifier string) (string, error) {
	if c.ADSToken == "" {
		return "", ErrNoADSToken
	}

	q := url.Values{}
	q.Set("q", identifier)
	q.Set("fl", "bibcode")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, adsSearchURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("creating ADS search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.ADSToken)

	body, err := c.fetch(req, ADS, identifier)
	if err != nil {
		return "", err
	}

	var out adsSearchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("parsing ADS search response: %w", err)
	}
	if len(out.Response.Docs) == 0 {
		return "", nil
	}
	return out.Response.Docs[0].Bibcode, nil
}
