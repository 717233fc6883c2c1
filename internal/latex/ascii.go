// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package latex

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// germanFolds takes precedence over generic transliteration so that
// "Müller" becomes "Mueller" rather than "Muller".
var germanFolds = strings.NewReplacer(
	"Ä", "Ae", "Ö", "Oe", "Ü", "Ue",
	"ä", "ae", "ö", "oe", "ü", "ue",
	"ß", "ss",
)

// RemoveAccents folds s to plain ASCII.
func RemoveAccents(s string) string {
	return unidecode.Unidecode(germanFolds.Replace(s))
}
