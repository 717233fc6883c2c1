// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibtex

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// authorSep joins individual names inside an author field.
const authorSep = " and "

// Name is one author name split into BibTeX's four parts. Each part is a
// sequence of whitespace-separated tokens, braces preserved.
type Name struct {
	First []string
	Von   []string
	Last  []string
	Jr    []string
}

// SplitAuthors splits an author field on " and " outside braces, so
// "{Barnes and Noble}" stays one name.
func SplitAuthors(field string) []string {
	if strings.TrimSpace(field) == "" {
		return nil
	}
	var names []string
	depth, start := 0, 0
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case '{':
			depth++
		case '}':
			depth--
		case ' ':
			if depth == 0 && strings.HasPrefix(field[i:], authorSep) {
				names = append(names, strings.TrimSpace(field[start:i]))
				start = i + len(authorSep)
				i += len(authorSep) - 1
			}
		}
	}
	return append(names, strings.TrimSpace(field[start:]))
}

// JoinAuthors is the inverse of SplitAuthors.
func JoinAuthors(names []string) string {
	return strings.Join(names, authorSep)
}

// SplitName decomposes a single name. It accepts "First von Last",
// "von Last, First" and "von Last, Jr, First". A token is lowercase when
// its first letter at brace depth 0 is lowercase; tokens starting with a
// special character such as {\"o} take the case of the letter inside.
func SplitName(name string) (Name, error) {
	sections, err := nameSections(name)
	if err != nil {
		return Name{}, err
	}

	var n Name
	switch len(sections) {
	case 1:
		words := sections[0]
		if len(words) == 0 {
			return n, nil
		}
		last := len(words) - 1
		vonStart := -1
		for i := 0; i < last; i++ {
			if isLowerToken(words[i]) {
				vonStart = i
				break
			}
		}
		if vonStart < 0 {
			n.First = words[:last]
			n.Last = words[last:]
			break
		}
		vonEnd := vonStart
		for i := last - 1; i > vonStart; i-- {
			if isLowerToken(words[i]) {
				vonEnd = i
				break
			}
		}
		n.First = words[:vonStart]
		n.Von = words[vonStart : vonEnd+1]
		n.Last = words[vonEnd+1:]
	case 2, 3:
		words := sections[0]
		if len(words) == 0 {
			return Name{}, fmt.Errorf("bibtex: empty last name in %q", name)
		}
		vonEnd := -1
		for i := len(words) - 2; i >= 0; i-- {
			if isLowerToken(words[i]) {
				vonEnd = i
				break
			}
		}
		n.Von = words[:vonEnd+1]
		n.Last = words[vonEnd+1:]
		if len(sections) == 3 {
			n.Jr = sections[1]
		}
		n.First = sections[len(sections)-1]
	default:
		return Name{}, fmt.Errorf("bibtex: too many commas in name %q", name)
	}

	if len(n.Von) == 0 {
		n.Von = nil
	}
	if len(n.First) == 0 {
		n.First = nil
	}
	return n, nil
}

// nameSections splits name on commas at brace depth 0 and each section
// on whitespace or '~' at depth 0.
func nameSections(name string) ([][]string, error) {
	var (
		sections [][]string
		words    []string
		word     strings.Builder
		depth    int
	)
	flushWord := func() {
		if word.Len() > 0 {
			words = append(words, word.String())
			word.Reset()
		}
	}
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r == '{':
			depth++
			word.WriteRune(r)
		case r == '}':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("bibtex: unbalanced braces in name %q", name)
			}
			word.WriteRune(r)
		case depth == 0 && r == ',':
			flushWord()
			sections = append(sections, words)
			words = nil
		case depth == 0 && (unicode.IsSpace(r) || r == '~'):
			flushWord()
		default:
			word.WriteRune(r)
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("bibtex: unbalanced braces in name %q", name)
	}
	flushWord()
	return append(sections, words), nil
}

// letterCommands are control sequences that stand for a letter, so their
// own name carries the case ({\AE}, {\o}).
var letterCommands = map[string]bool{
	"o": true, "O": true, "l": true, "L": true, "i": true, "j": true,
	"aa": true, "AA": true, "ae": true, "AE": true, "oe": true, "OE": true, "ss": true,
}

// isLowerToken reports whether a token starts with a lowercase letter.
// Tokens with no letter at depth 0 and plain brace groups are caseless
// and count as not lowercase.
func isLowerToken(tok string) bool {
	depth := 0
	for i := 0; i < len(tok); {
		r, size := utf8.DecodeRuneInString(tok[i:])
		switch {
		case r == '{':
			if depth == 0 && strings.HasPrefix(tok[i+1:], `\`) {
				return specialCharIsLower(tok[i+2:])
			}
			depth++
		case r == '}':
			depth--
		case depth == 0 && unicode.IsLetter(r):
			return unicode.IsLower(r)
		}
		i += size
	}
	return false
}

// specialCharIsLower inspects the text after "{\" of a special character.
func specialCharIsLower(s string) bool {
	cmdLen := 0
	for cmdLen < len(s) && isASCIILetter(s[cmdLen]) {
		cmdLen++
	}
	if cmdLen > 0 && letterCommands[s[:cmdLen]] {
		return unicode.IsLower(rune(s[0]))
	}
	if cmdLen == 0 && len(s) > 0 {
		cmdLen = 1
	}
	for _, r := range s[cmdLen:] {
		if r == '}' {
			break
		}
		if unicode.IsLetter(r) {
			return unicode.IsLower(r)
		}
	}
	return false
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
