// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const banner = "\nd2b: Resolve DOIs and arXiv IDs to BibTeX\n"

// palette colors the parts of an entry in fancy output.
type palette struct {
	banner    *color.Color
	entryType *color.Color
	key       *color.Color
	field     *color.Color
	value     *color.Color
}

var palettes = map[string]palette{
	"dracula": {
		banner:    color.New(color.Bold),
		entryType: color.New(color.FgHiMagenta, color.Bold),
		key:       color.New(color.FgHiGreen),
		field:     color.New(color.FgHiCyan),
		value:     color.New(color.FgHiYellow),
	},
	"monokai": {
		banner:    color.New(color.Bold),
		entryType: color.New(color.FgRed, color.Bold),
		key:       color.New(color.FgGreen),
		field:     color.New(color.FgHiGreen),
		value:     color.New(color.FgYellow),
	},
	"solarized": {
		banner:    color.New(color.Bold),
		entryType: color.New(color.FgBlue, color.Bold),
		key:       color.New(color.FgCyan),
		field:     color.New(color.FgGreen),
		value:     color.New(color.FgYellow),
	},
}

// paletteFor returns the palette named by theme. "none" disables color;
// unknown themes fall back to dracula.
func paletteFor(theme string) palette {
	if theme == "none" {
		plain := func() *color.Color {
			c := color.New()
			c.DisableColor()
			return c
		}
		return palette{banner: plain(), entryType: plain(), key: plain(), field: plain(), value: plain()}
	}
	if p, ok := palettes[theme]; ok {
		return p
	}
	return palettes["dracula"]
}

// printEntry writes entry either bare or wrapped in the banner with
// highlighted fields.
func printEntry(w io.Writer, identifier, entry string, plain bool, theme string) {
	if plain {
		fmt.Fprintln(w, entry)
		return
	}
	p := paletteFor(theme)
	p.banner.Fprint(w, banner+"\n")
	fmt.Fprintf(w, "BibTeX entry for identifier \"%s\":\n\n", identifier)
	fmt.Fprintln(w, highlight(entry, p))
	fmt.Fprint(w, "\n\n")
}

// highlight colors the header line and the field lines of an encoded
// entry. Anything else, such as an error block, passes through.
func highlight(entry string, p palette) string {
	lines := strings.Split(entry, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "@"):
			typ, rest, ok := strings.Cut(line[1:], "{")
			if !ok {
				continue
			}
			key := strings.TrimSuffix(rest, ",")
			lines[i] = "@" + p.entryType.Sprint(typ) + "{" + p.key.Sprint(key) + ","
		case strings.HasPrefix(line, " "):
			name, value, ok := strings.Cut(line, " = ")
			if !ok {
				continue
			}
			lines[i] = p.field.Sprint(name) + " = " + p.value.Sprint(value)
		}
	}
	return strings.Join(lines, "\n")
}
