// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/pdiddy/doi2bibtex/internal/process"
)

// dblpSearchURL is the dblp publication search API.
var dblpSearchURL = "https://dblp.org/search/publ/api"

const conferencePaper = "Conference and Workshop Papers"

// FindVenue searches dblp for the conference version of a paper. A hit
// matches when it is a conference paper and either its title (minus the
// trailing dot) equals q.Title or q.Identifier occurs in its ee or volume.
func (c *Client) FindVenue(ctx context.Context, q process.VenueQuery) (*process.Venue, error) {
	var terms []string
	for _, t := range append(append([]string{}, q.LastName...), strings.Fields(q.Title)...) {
		terms = append(terms, url.QueryEscape(t))
	}
	query := strings.Join(terms, "+")

	body, err := c.get(ctx, dblpSearchURL+"?q="+query+"&format=json&h=1000", DBLP, q.Identifier)
	if err != nil {
		return nil, err
	}

	var venue *process.Venue
	gjson.GetBytes(body, "result.hits.hit").ForEach(func(_, hit gjson.Result) bool {
		info := hit.Get("info")
		if info.Get("type").String() != conferencePaper || !hitMatches(info, q) {
			return true
		}
		name, year := info.Get("venue"), info.Get("year")
		if name.Exists() && year.Exists() {
			venue = &process.Venue{Name: joined(name), Year: year.String()}
		}
		return false
	})
	return venue, nil
}

func hitMatches(info gjson.Result, q process.VenueQuery) bool {
	if t := info.Get("title"); t.Exists() && q.Title == strings.TrimSuffix(t.String(), ".") {
		return true
	}
	if q.Identifier == "" {
		return false
	}
	return contains(info.Get("ee"), q.Identifier) || contains(info.Get("volume"), q.Identifier)
}

// contains reports whether needle occurs in v: as a substring when v is
// a string, or as an element when v is an array.
func contains(v gjson.Result, needle string) bool {
	if !v.Exists() {
		return false
	}
	if v.IsArray() {
		for _, e := range v.Array() {
			if e.String() == needle {
				return true
			}
		}
		return false
	}
	return strings.Contains(v.String(), needle)
}

// joined flattens a string-or-array venue into one string.
func joined(v gjson.Result) string {
	if !v.IsArray() {
		return v.String()
	}
	parts := make([]string, 0, len(v.Array()))
	for _, e := range v.Array() {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, ", ")
}
