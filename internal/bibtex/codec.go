// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bibtex converts between BibTeX text and types.Record and splits
// author lists and names the way BibTeX does.
package bibtex

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/pdiddy/doi2bibtex/pkg/types"
)

// ErrNoEntry is returned by Decode when the text contains no entry.
var ErrNoEntry = errors.New("no BibTeX entry found")

// Decode parses text and returns its first entry.
func Decode(text string) (types.Record, error) {
	entries, err := Parse(text)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoEntry
	}
	return entries[0], nil
}

// Parse returns every regular entry in text. @comment and @preamble blocks
// are skipped; @string definitions are expanded wherever their name is
// used as a bare value. Field names and entry types are lowercased, values
// lose one level of delimiters and have whitespace runs collapsed.
func Parse(text string) ([]types.Record, error) {
	p := &parser{src: text, macros: map[string]string{}}
	var entries []types.Record
	for {
		at := strings.IndexByte(p.src[p.pos:], '@')
		if at < 0 {
			return entries, nil
		}
		p.pos += at + 1
		rec, err := p.entry()
		if err != nil {
			return nil, err
		}
		if rec != nil {
			entries = append(entries, rec)
		}
	}
}

type parser struct {
	src    string
	pos    int
	macros map[string]string
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) skipSpace() {
	for !p.eof() && isSpace(p.src[p.pos]) {
		p.pos++
	}
}

// ident reads a run of characters allowed in entry types, field names and
// macro names.
func (p *parser) ident() string {
	start := p.pos
	for !p.eof() {
		c := p.src[p.pos]
		if isSpace(c) || strings.IndexByte("{}(),=#\"", c) >= 0 {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

// entry parses one block after its '@'. It returns nil for blocks that
// are not bibliographic entries.
func (p *parser) entry() (types.Record, error) {
	kind := strings.ToLower(p.ident())
	if kind == "" {
		return nil, nil
	}
	p.skipSpace()
	var closer byte
	switch p.peek() {
	case '{':
		closer = '}'
	case '(':
		closer = ')'
	default:
		return nil, nil
	}
	p.pos++

	switch kind {
	case "comment", "preamble":
		return nil, p.skipBlock(closer)
	case "string":
		return nil, p.stringDef(closer)
	}

	start := p.pos
	for !p.eof() && p.src[p.pos] != ',' && p.src[p.pos] != closer {
		p.pos++
	}
	if p.eof() {
		return nil, fmt.Errorf("bibtex: unterminated @%s entry at offset %d", kind, start)
	}
	rec := types.Record{
		types.FieldEntryType: kind,
		types.FieldID:        strings.TrimSpace(p.src[start:p.pos]),
	}

	for {
		p.skipSpace()
		for p.peek() == ',' {
			p.pos++
			p.skipSpace()
		}
		if p.eof() {
			return nil, fmt.Errorf("bibtex: unterminated entry %q", rec.Key())
		}
		if p.peek() == closer {
			p.pos++
			return rec, nil
		}
		name := strings.ToLower(p.ident())
		if name == "" {
			return nil, fmt.Errorf("bibtex: expected field name in entry %q at offset %d", rec.Key(), p.pos)
		}
		p.skipSpace()
		if p.peek() != '=' {
			return nil, fmt.Errorf("bibtex: expected '=' after field %q in entry %q", name, rec.Key())
		}
		p.pos++
		value, err := p.value()
		if err != nil {
			return nil, fmt.Errorf("bibtex: field %q in entry %q: %w", name, rec.Key(), err)
		}
		rec[name] = value
	}
}

// value reads one field value: braced or quoted strings and bare tokens
// joined by '#'.
func (p *parser) value() (string, error) {
	var sb strings.Builder
	for {
		p.skipSpace()
		switch c := p.peek(); {
		case c == '{':
			s, err := p.delimited('}')
			if err != nil {
				return "", err
			}
			sb.WriteString(s)
		case c == '"':
			s, err := p.delimited('"')
			if err != nil {
				return "", err
			}
			sb.WriteString(s)
		case c == 0:
			return "", errors.New("unexpected end of input")
		default:
			tok := p.ident()
			if tok == "" {
				return "", fmt.Errorf("unexpected %q at offset %d", c, p.pos)
			}
			if expansion, ok := p.macros[strings.ToLower(tok)]; ok {
				tok = expansion
			}
			sb.WriteString(tok)
		}
		p.skipSpace()
		if p.peek() != '#' {
			break
		}
		p.pos++
	}
	return collapseSpace(sb.String()), nil
}

// delimited reads a value enclosed in its opening character and closer,
// honouring nested braces, and returns the content without the outer
// delimiters.
func (p *parser) delimited(closer byte) (string, error) {
	start := p.pos
	p.pos++
	depth := 0
	for !p.eof() {
		c := p.src[p.pos]
		switch {
		case c == closer && depth == 0:
			s := p.src[start+1 : p.pos]
			p.pos++
			return s, nil
		case c == '{':
			depth++
		case c == '}':
			depth--
		}
		p.pos++
	}
	return "", fmt.Errorf("unbalanced delimiters starting at offset %d", start)
}

func (p *parser) skipBlock(closer byte) error {
	start := p.pos
	depth := 0
	for !p.eof() {
		c := p.src[p.pos]
		p.pos++
		switch {
		case c == '{':
			depth++
		case c == closer && depth == 0:
			return nil
		case c == '}':
			depth--
		}
	}
	return fmt.Errorf("bibtex: unterminated block at offset %d", start)
}

func (p *parser) stringDef(closer byte) error {
	p.skipSpace()
	name := strings.ToLower(p.ident())
	p.skipSpace()
	if name == "" || p.peek() != '=' {
		return fmt.Errorf("bibtex: malformed @string at offset %d", p.pos)
	}
	p.pos++
	value, err := p.value()
	if err != nil {
		return fmt.Errorf("bibtex: @string %q: %w", name, err)
	}
	p.macros[name] = value
	p.skipSpace()
	if p.peek() != closer {
		return fmt.Errorf("bibtex: unterminated @string %q", name)
	}
	p.pos++
	return nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func collapseSpace(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// Writer renders records as BibTeX text.
type Writer struct {
	// Indent precedes every field line.
	Indent string

	// Align caps the column width of field names. The column is as wide
	// as the longest key, counting the ENTRYTYPE header key, up to Align.
	// Longer names overflow. Zero means no cap.
	Align int

	// TrailingComma adds a comma after the last field too.
	TrailingComma bool
}

// DefaultWriter is the layout d2b prints: two-space indent, names padded
// to at most 13 columns, trailing comma.
var DefaultWriter = Writer{Indent: "  ", Align: 13, TrailingComma: true}

// Encode renders rec with DefaultWriter.
func Encode(rec types.Record) string {
	return DefaultWriter.Encode(rec)
}

// Encode renders rec. Fields are sorted alphabetically; ENTRYTYPE and ID
// form the header.
func (w Writer) Encode(rec types.Record) string {
	fields := rec.Fields()
	sort.Strings(fields)

	width := len(types.FieldEntryType)
	for _, f := range fields {
		if len(f) > width {
			width = len(f)
		}
	}
	if w.Align > 0 && width > w.Align {
		width = w.Align
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "@%s{%s", rec.EntryType(), rec.Key())
	for _, f := range fields {
		fmt.Fprintf(&sb, ",\n%s%-*s = {%s}", w.Indent, width, f, rec[f])
	}
	if w.TrailingComma && len(fields) > 0 {
		sb.WriteByte(',')
	}
	sb.WriteString("\n}\n")
	return sb.String()
}
