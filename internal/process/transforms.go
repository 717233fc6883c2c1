// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package process normalizes resolved records. Each transform addresses
// one concern and mutates the record in place; Pipeline runs them in a
// fixed, configuration-gated order.
package process

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/doi2bibtex/internal/bibtex"
	"github.com/pdiddy/doi2bibtex/internal/latex"
	"github.com/pdiddy/doi2bibtex/pkg/types"
)

// ErrMissingField is returned by transforms whose input field is absent.
var ErrMissingField = errors.New("missing field")

const (
	arxivJournal = "arXiv preprints"
	doiURLBase   = "https://doi.org/"
	adsURLBase   = "https://adsabs.harvard.edu/abs/"
	etAl         = "others"
)

func missing(field string) error {
	return fmt.Errorf("%w %q", ErrMissingField, field)
}

// FixBrokenAmpersand repairs two HTML-escaped ampersand forms Crossref
// sometimes returns in journal names.
func FixBrokenAmpersand(rec types.Record) {
	j, ok := rec["journal"]
	if !ok {
		return
	}
	j = strings.ReplaceAll(j, `{\&}amp$\mathsemicolon$`, `\&`)
	j = strings.ReplaceAll(j, "&amp;", `\&`)
	rec["journal"] = j
}

// ConvertLatexChars converts LaTeX escapes in author and title to Unicode.
// The journal is left alone so abbreviations stay macros.
func ConvertLatexChars(rec types.Record) {
	for _, field := range []string{"author", "title"} {
		if v, ok := rec[field]; ok {
			rec[field] = latex.ToUnicode(v)
		}
	}
}

// FixArxivEntryType turns a preprint into an article published in
// "arXiv preprints".
func FixArxivEntryType(rec types.Record) {
	rec[types.FieldEntryType] = "article"
	rec["journal"] = arxivJournal
	delete(rec, "eprinttype")
}

// AbbreviateJournal replaces a known journal name with its macro.
func AbbreviateJournal(rec types.Record) {
	if abbr, ok := JournalAbbreviation(rec["journal"]); ok {
		rec["journal"] = abbr
	}
}

// Citekey derives "{von}{Last}{delim}{year}" from the first author.
// Accents are folded to ASCII; spaces, hyphens and braces are dropped.
func Citekey(rec types.Record, delim string) (string, error) {
	authors := bibtex.SplitAuthors(rec["author"])
	if len(authors) == 0 {
		return "", missing("author")
	}
	year, ok := rec["year"]
	if !ok || year == "" {
		return "", missing("year")
	}
	name, err := bibtex.SplitName(authors[0])
	if err != nil {
		return "", fmt.Errorf("splitting first author: %w", err)
	}

	var von strings.Builder
	for _, tok := range name.Von {
		von.WriteString(cases.Title(language.Und).String(keyPart(tok)))
	}
	return von.String() + keyPart(strings.Join(name.Last, "")) + delim + year, nil
}

// keyPart folds one name fragment to the characters allowed in a key.
func keyPart(s string) string {
	s = latex.RemoveAccents(latex.ToUnicode(s))
	return strings.NewReplacer("-", "", " ", "").Replace(s)
}

// GenerateCitekey overwrites ID with Citekey.
func GenerateCitekey(rec types.Record, delim string) error {
	key, err := Citekey(rec, delim)
	if err != nil {
		return err
	}
	rec[types.FieldID] = key
	return nil
}

// TruncateAuthors keeps the first limit authors and appends " and others".
// A limit of zero leaves only "others". A negative limit disables
// truncation.
func TruncateAuthors(rec types.Record, limit int) {
	authors := bibtex.SplitAuthors(rec["author"])
	if limit < 0 || len(authors) <= limit {
		return
	}
	rec["author"] = bibtex.JoinAuthors(append(authors[:limit:limit], etAl))
}

// FormatAuthorNames rewrites every author as "{von Last}, First" (with
// ", Jr" before First when present). The "others" placeholder stays bare.
func FormatAuthorNames(rec types.Record) error {
	field, ok := rec["author"]
	if !ok {
		return nil
	}
	authors := bibtex.SplitAuthors(field)
	for i, a := range authors {
		if a == etAl {
			continue
		}
		name, err := bibtex.SplitName(a)
		if err != nil {
			return fmt.Errorf("formatting author %q: %w", a, err)
		}
		authors[i] = formatName(name)
	}
	rec["author"] = bibtex.JoinAuthors(authors)
	return nil
}

func formatName(n bibtex.Name) string {
	last := unwrapBraces(strings.Join(n.Last, " "))
	if len(n.Von) > 0 {
		last = strings.Join(n.Von, " ") + " " + last
	}
	parts := []string{"{" + last + "}"}
	if len(n.Jr) > 0 {
		parts = append(parts, strings.Join(n.Jr, " "))
	}
	if len(n.First) > 0 {
		parts = append(parts, strings.Join(n.First, " "))
	}
	return strings.Join(parts, ", ")
}

// unwrapBraces removes one brace group enclosing all of s, so formatting
// an already formatted name does not add another layer. Special
// characters such as {\"O} keep their braces.
func unwrapBraces(s string) string {
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' || s[1] == '\\' {
		return s
	}
	depth := 0
	for i := 0; i < len(s)-1; i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
		}
		if depth == 0 {
			return s
		}
	}
	return s[1 : len(s)-1]
}

// ConvertMonth rewrites English month names and abbreviations as "1"
// through "12". Anything else is left unchanged.
func ConvertMonth(rec types.Record) {
	m, ok := rec["month"]
	if !ok {
		return
	}
	if n, ok := months[strings.ToLower(strings.TrimSpace(m))]; ok {
		rec["month"] = n
	}
}

// RemoveFields deletes fields[all] and then fields[ENTRYTYPE].
func RemoveFields(rec types.Record, fields map[string][]string) {
	for _, key := range []string{"all", rec.EntryType()} {
		for _, f := range fields[key] {
			delete(rec, f)
		}
	}
}

// DOIToURL returns the doi.org link for doi with every reserved
// character percent-encoded ("10.1234/5678" -> "https://doi.org/10.1234%2F5678").
func DOIToURL(doi string) string {
	return doiURLBase + strings.ReplaceAll(url.QueryEscape(doi), "+", "%20")
}

// RemoveURLIfDOI drops url when it is exactly DOIToURL(doi).
func RemoveURLIfDOI(rec types.Record) {
	doi, ok := rec["doi"]
	if !ok {
		return
	}
	if u, ok := rec["url"]; ok && u == DOIToURL(doi) {
		delete(rec, "url")
	}
}
