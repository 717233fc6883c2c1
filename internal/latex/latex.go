// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package latex converts the LaTeX escapes found in bibliographic metadata
// to Unicode and folds accented text to ASCII for citekeys.
package latex

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// accents maps accent control sequences to Unicode combining marks.
// \t (tie) has no mark: its argument is kept as is.
var accents = map[string]string{
	`"`: "\u0308",
	`'`: "\u0301",
	"`": "\u0300",
	"^": "\u0302",
	"~": "\u0303",
	"=": "\u0304",
	".": "\u0307",
	"H": "\u030B",
	"c": "\u0327",
	"k": "\u0328",
	"u": "\u0306",
	"v": "\u030C",
	"d": "\u0323",
	"b": "\u0331",
	"r": "\u030A",
	"t": "",
}

// letters maps control sequences that stand for a single character.
var letters = map[string]string{
	"o": "ø", "O": "Ø",
	"l": "ł", "L": "Ł",
	"i": "ı", "j": "ȷ",
	"aa": "å", "AA": "Å",
	"ae": "æ", "AE": "Æ",
	"oe": "œ", "OE": "Œ",
	"ss": "ß",
	"S": "§", "P": "¶",
	"dag": "†", "ddag": "‡",
	"copyright": "©",
	"textendash": "–", "textemdash": "—",
	"ldots": "…", "dots": "…",
	"LaTeX": "LaTeX", "TeX": "TeX",
}

// ToUnicode converts LaTeX escapes in s to Unicode. Math ($...$) is copied
// verbatim; grouping braces are dropped; formatting commands such as \it
// or \emph are dropped while their content is kept.
func ToUnicode(s string) string {
	c := &converter{src: []rune(s)}
	c.run()
	return norm.NFC.String(c.out.String())
}

type converter struct {
	src []rune
	pos int
	out strings.Builder
}

func (c *converter) eof() bool { return c.pos >= len(c.src) }

func (c *converter) run() {
	for !c.eof() {
		r := c.src[c.pos]
		switch {
		case r == '$':
			c.math()
		case r == '\\':
			c.pos++
			c.command()
		case r == '{' || r == '}':
			c.pos++
		case r == '~':
			c.out.WriteRune(' ')
			c.pos++
		case r == '-':
			c.dash()
		default:
			c.out.WriteRune(r)
			c.pos++
		}
	}
}

// math copies $...$ or $$...$$ through unchanged. An unterminated $
// copies the rest of the input.
func (c *converter) math() {
	delim := 1
	if c.pos+1 < len(c.src) && c.src[c.pos+1] == '$' {
		delim = 2
	}
	start := c.pos
	for i := start + delim; i < len(c.src); i++ {
		switch {
		case c.src[i] == '\\':
			i++
		case c.src[i] == '$' && (delim == 1 || (i+1 < len(c.src) && c.src[i+1] == '$')):
			c.pos = i + delim
			c.out.WriteString(string(c.src[start:c.pos]))
			return
		}
	}
	c.out.WriteString(string(c.src[start:]))
	c.pos = len(c.src)
}

func (c *converter) dash() {
	n := 0
	for !c.eof() && c.src[c.pos] == '-' && n < 3 {
		n++
		c.pos++
	}
	switch n {
	case 3:
		c.out.WriteRune('—')
	case 2:
		c.out.WriteRune('–')
	default:
		c.out.WriteRune('-')
	}
}

// command handles the text after a backslash.
func (c *converter) command() {
	if c.eof() {
		c.out.WriteRune('\\')
		return
	}
	r := c.src[c.pos]
	if !isLetter(r) {
		c.pos++
		name := string(r)
		if mark, ok := accents[name]; ok {
			c.accent(mark)
			return
		}
		switch r {
		case '\\':
			c.out.WriteRune(' ')
		case ' ':
			c.out.WriteRune(' ')
		default:
			// \& \% \$ \# \_ \{ \} and friends
			c.out.WriteRune(r)
		}
		return
	}

	start := c.pos
	for !c.eof() && isLetter(c.src[c.pos]) {
		c.pos++
	}
	name := string(c.src[start:c.pos])
	c.skipSpaces()

	if mark, ok := accents[name]; ok {
		c.accent(mark)
		return
	}
	if ch, ok := letters[name]; ok {
		c.out.WriteString(ch)
		c.skipEmptyGroup()
		return
	}
	// Unknown and formatting commands vanish; their argument, if any,
	// is converted by the main loop.
}

// accent reads one argument (a brace group or a single character) and
// writes it with mark attached to its first character.
func (c *converter) accent(mark string) {
	c.skipSpaces()
	if c.eof() {
		return
	}
	var arg string
	if c.src[c.pos] == '{' {
		end := c.matchingBrace(c.pos)
		inner := string(c.src[c.pos+1 : end])
		c.pos = min(end+1, len(c.src))
		arg = ToUnicode(inner)
	} else if c.src[c.pos] == '\\' {
		// \'\i
		sub := &converter{src: c.src, pos: c.pos + 1}
		sub.command()
		arg = sub.out.String()
		c.pos = sub.pos
	} else {
		arg = string(c.src[c.pos])
		c.pos++
	}
	if arg == "" {
		c.out.WriteString(mark)
		return
	}
	runes := []rune(arg)
	if runes[0] == 'ı' && mark != "" {
		runes[0] = 'i'
	}
	c.out.WriteRune(runes[0])
	c.out.WriteString(mark)
	c.out.WriteString(string(runes[1:]))
}

// matchingBrace returns the index of the brace closing the one at open,
// or len(src) when unbalanced.
func (c *converter) matchingBrace(open int) int {
	depth := 0
	for i := open; i < len(c.src); i++ {
		switch c.src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(c.src)
}

func (c *converter) skipSpaces() {
	for !c.eof() && unicode.IsSpace(c.src[c.pos]) {
		c.pos++
	}
}

func (c *converter) skipEmptyGroup() {
	if c.pos+1 < len(c.src) && c.src[c.pos] == '{' && c.src[c.pos+1] == '}' {
		c.pos += 2
	}
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
