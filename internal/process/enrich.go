// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package process

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/doi2bibtex/internal/bibtex"
	"github.com/pdiddy/doi2bibtex/internal/latex"
	"github.com/pdiddy/doi2bibtex/pkg/types"
)

// BibcodeFinder looks up the ADS bibcode of an identifier. Lookups are
// best effort: any failure, including a missing token, yields "".
type BibcodeFinder interface {
	FindBibcode(ctx context.Context, identifier string) string
}

// VenueQuery describes the record to cross-match.
type VenueQuery struct {
	Title      string
	LastName   []string
	Identifier string
}

// Venue is where a paper was published.
type Venue struct {
	Name string
	Year string
}

// VenueFinder finds the conference version of a paper. It returns nil
// and no error when nothing matches, and an error when the lookup itself
// fails.
type VenueFinder interface {
	FindVenue(ctx context.Context, q VenueQuery) (*Venue, error)
}

// AttachADSURL sets adsurl from the bibcode ADS knows for identifier.
// Records that already carry an adsurl are left alone.
func AttachADSURL(ctx context.Context, rec types.Record, identifier string, finder BibcodeFinder) {
	if rec.Has("adsurl") {
		return
	}
	if bibcode := finder.FindBibcode(ctx, identifier); bibcode != "" {
		rec["adsurl"] = adsURLBase + bibcode
	}
}

// Crossmatch appends "Published at {venue}~{year}." to addendum when the
// finder knows a conference version. Records without title or author are
// left alone.
func Crossmatch(ctx context.Context, rec types.Record, identifier string, finder VenueFinder) error {
	title, hasTitle := rec["title"]
	authors := bibtex.SplitAuthors(rec["author"])
	if !hasTitle || len(authors) == 0 {
		return nil
	}
	first, err := bibtex.SplitName(authors[0])
	if err != nil {
		return fmt.Errorf("splitting first author: %w", err)
	}

	last := make([]string, len(first.Last))
	for i, tok := range first.Last {
		last[i] = latex.ToUnicode(tok)
	}

	venue, err := finder.FindVenue(ctx, VenueQuery{
		Title:      title,
		LastName:   last,
		Identifier: identifier,
	})
	if err != nil {
		return err
	}
	if venue == nil || venue.Name == "" || venue.Year == "" {
		return nil
	}
	rec["addendum"] = strings.TrimSpace(rec["addendum"] + " " + fmt.Sprintf("Published at %s~%s.", venue.Name, venue.Year))
	return nil
}
