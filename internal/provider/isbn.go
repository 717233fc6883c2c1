// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/segmentio/encoding/json"

	"github.com/pdiddy/doi2bibtex/internal/process"
	"github.com/pdiddy/doi2bibtex/pkg/types"
)

// googleBooksURL is the Google Books volumes search endpoint.
var googleBooksURL = "https://www.googleapis.com/books/v1/volumes"

type volumesResponse struct {
	Items []struct {
		VolumeInfo volumeInfo `json:"volumeInfo"`
	} `json:"items"`
}

type volumeInfo struct {
	Title         string   `json:"title"`
	Subtitle      string   `json:"subtitle"`
	Authors       []string `json:"authors"`
	Publisher     string   `json:"publisher"`
	PublishedDate string   `json:"publishedDate"`
}

// ResolveISBN builds a book entry from the first Google Books volume
// matching isbn. The citekey is generated from the first author and year
// when both are known; otherwise the ISBN is the key.
func (c *Client) ResolveISBN(ctx context.Context, isbn string) (types.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleBooksURL+"?q=isbn:"+isbn, nil)
	if err != nil {
		return nil, fmt.Errorf("creating Google Books request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	body, err := c.fetch(req, GoogleBooks, isbn)
	if err != nil {
		return nil, err
	}

	var out volumesResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("parsing Google Books response for %s: %w", isbn, err)
	}
	if len(out.Items) == 0 {
		return nil, notFound(isbn)
	}

	info := out.Items[0].VolumeInfo
	title := info.Title
	if info.Subtitle != "" {
		title += ": " + info.Subtitle
	}
	year := info.PublishedDate
	if len(year) > 4 {
		year = year[:4]
	}

	rec := types.Record{
		types.FieldEntryType: "book",
		types.FieldID:        isbn,
		"author":             strings.Join(info.Authors, " and "),
		"title":              title,
		"publisher":          info.Publisher,
		"year":               year,
		"isbn":               isbn,
	}
	if err := process.GenerateCitekey(rec, "_"); err != nil && !errors.Is(err, process.ErrMissingField) {
		return nil, fmt.Errorf("generating citekey for %s: %w", isbn, err)
	}
	return rec, nil
}
