// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"fmt"

	"github.com/pdiddy/doi2bibtex/internal/bibtex"
	"github.com/pdiddy/doi2bibtex/pkg/types"
)

// crossrefAPIBase is the Crossref works endpoint. Declared as a var so
// tests can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org/works/"

// ResolveDOI fetches the BibTeX entry Crossref renders for doi.
func (c *Client) ResolveDOI(ctx context.Context, doi string) (types.Record, error) {
	body, err := c.get(ctx, crossrefAPIBase+doi+"/transform/application/x-bibtex", Crossref, doi)
	if err != nil {
		return nil, err
	}
	rec, err := bibtex.Decode(string(body))
	if err != nil {
		return nil, fmt.Errorf("parsing Crossref entry for %s: %w", doi, err)
	}
	return rec, nil
}
