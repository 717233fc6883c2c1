// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package identify classifies raw identifier strings as DOI, arXiv ID,
// ADS bibcode or ISBN. Classification is pure: no I/O, no errors.
package identify

import (
	"regexp"
	"strings"
)

// Kind classifies an input identifier.
type Kind int

const (
	KindUnknown Kind = iota
	KindDOI
	KindArxiv
	KindBibcode
	KindISBN
)

func (k Kind) String() string {
	switch k {
	case KindDOI:
		return "doi"
	case KindArxiv:
		return "arxiv"
	case KindBibcode:
		return "bibcode"
	case KindISBN:
		return "isbn"
	default:
		return "unknown"
	}
}

// doiPatterns cover the general Crossref form plus legacy Wiley, SICI-style,
// ACS and Lawrence Erlbaum DOIs. All are anchored and case-sensitive.
var doiPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^10.\d{4,9}/[-.;()/:\w]+$`),
	regexp.MustCompile(`^10.1002/[^\s]+$`),
	regexp.MustCompile(`^10.\d{4}/\d+-\d+X?(\d+)\d+<[\d\w]+:[\d\w]*>\d+.\d+.\w+;\d$`),
	regexp.MustCompile(`^10.1021/\w\w\d+$`),
	regexp.MustCompile(`^10.1207/[\w\d]+\&\d+_\d+$`),
}

// arxivPatterns match "2301.07041", "2301.07041v2" and the legacy
// "math.GT/0309136" form.
var arxivPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}.\d{4,5}(v\d+)?$`),
	regexp.MustCompile(`^[a-z\-]+(\.[A-Z]{2})?/\d{7}(v\d+)?$`),
}

// bibcodePattern is the 19-character ADS layout:
// YYYY JJJJJ VVVV M PPPP A.
var bibcodePattern = regexp.MustCompile(`^(\d{4})([\w.&]{5})([\w.]{4})(\S)([\d.]{4})([A-Z])$`)

// isbnPrefix strips a leading "isbn" token such as "isbn 0-8264-9752-7"
// or "ISBN:978...".
var isbnPrefix = regexp.MustCompile(`(?i)^isbn[:\s]*`)

// Preprocess trims whitespace and strips one "doi:" prefix and then one
// "arxiv:" prefix, both case-insensitive.
func Preprocess(identifier string) string {
	identifier = strings.TrimSpace(identifier)
	for _, prefix := range []string{"doi:", "arxiv:"} {
		if len(identifier) >= len(prefix) && strings.EqualFold(identifier[:len(prefix)], prefix) {
			identifier = identifier[len(prefix):]
		}
	}
	return identifier
}

// IsDOI reports whether s matches one of the accepted DOI forms.
func IsDOI(s string) bool {
	for _, p := range doiPatterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// IsArxiv reports whether s is a new-style or legacy arXiv identifier.
func IsArxiv(s string) bool {
	for _, p := range arxivPatterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// IsBibcode reports whether s is an ADS bibcode.
func IsBibcode(s string) bool {
	return bibcodePattern.MatchString(s)
}

// NormalizeISBN drops an "isbn" prefix, hyphens and spaces. It does not
// validate the result.
func NormalizeISBN(s string) string {
	s = isbnPrefix.ReplaceAllString(strings.TrimSpace(s), "")
	return strings.NewReplacer("-", "", " ", "").Replace(s)
}

// IsISBN reports whether s is a valid ISBN-10 or ISBN-13 after
// normalization. ISBN-13 must carry the 978 or 979 prefix.
func IsISBN(s string) bool {
	n := NormalizeISBN(s)
	switch len(n) {
	case 10:
		return validISBN10(n)
	case 13:
		return validISBN13(n)
	default:
		return false
	}
}

func validISBN10(n string) bool {
	sum := 0
	for i := 0; i < 10; i++ {
		c := n[i]
		var d int
		switch {
		case c >= '0' && c <= '9':
			d = int(c - '0')
		case i == 9 && (c == 'X' || c == 'x'):
			d = 10
		default:
			return false
		}
		sum += (10 - i) * d
	}
	return sum%11 == 0
}

func validISBN13(n string) bool {
	if !strings.HasPrefix(n, "978") && !strings.HasPrefix(n, "979") {
		return false
	}
	sum := 0
	for i := 0; i < 13; i++ {
		c := n[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return sum%10 == 0
}

// Classify returns the kind of an already preprocessed identifier. The
// patterns are not provably disjoint, so the check order is fixed:
// DOI, arXiv, bibcode, ISBN. A ten-digit ISBN such as "0826497527" also
// has the shape of a new-style arXiv ID and classifies as arXiv.
func Classify(identifier string) Kind {
	switch {
	case IsDOI(identifier):
		return KindDOI
	case IsArxiv(identifier):
		return KindArxiv
	case IsBibcode(identifier):
		return KindBibcode
	case IsISBN(identifier):
		return KindISBN
	default:
		return KindUnknown
	}
}
