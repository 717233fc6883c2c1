// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/doi2bibtex/internal/bibtex"
	"github.com/pdiddy/doi2bibtex/pkg/types"
)

// arxivMirrorBase serves BibLaTeX for arXiv IDs as an HTML page.
var arxivMirrorBase = "https://arxiv2bibtex.org/"

// ResolveArxiv scrapes the BibLaTeX entry for id from arxiv2bibtex.org.
func (c *Client) ResolveArxiv(ctx context.Context, id string) (types.Record, error) {
	q := url.Values{}
	q.Set("q", id)
	q.Set("format", "biblatex")

	body, err := c.get(ctx, arxivMirrorBase+"?"+q.Encode(), ArxivMirror, id)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing arXiv mirror page for %s: %w", id, err)
	}
	sel := doc.Find("#biblatex textarea.wikiinfo").First()
	if sel.Length() == 0 {
		return nil, notFound(id)
	}

	rec, err := bibtex.Decode(sel.Text())
	if err != nil {
		return nil, fmt.Errorf("parsing arXiv entry for %s: %w", id, err)
	}
	return rec, nil
}
