// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package latex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToUnicode(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`$\alpha$`, `$\alpha$`},
		{`M{\"o}bius`, "Möbius"},
		{"\\`{o}\\^{o}\\'{o}", "òôó"},
		{`Erd\H{o}s`, "Erdős"},
		{`Sa\~{o} Paulo`, "Saõ Paulo"},
		{`Troms\o{}`, "Tromsø"},
		{`\t{oo}`, "oo"},
		{`\c{c}`, "ç"},
		{`{\it Gaia}`, "Gaia"},
		{`Lyman-$\alpha$ forests in the {\it Gaia} era`, `Lyman-$\alpha$ forests in the Gaia era`},
		{"Thomas M{\\\"u}ller and H\\'el\\`ene Martin", "Thomas Müller and Hélène Martin"},
		{`Software Quality Control at Belle {II}`, "Software Quality Control at Belle II"},
		{`Sch{\"o}lkopf`, "Schölkopf"},
		{`Ber{\ss}ler`, "Berßler"},
		{`Pi{\~n}a`, "Piña"},
		{`\v{S}koda`, "Škoda"},
		{`Gau{\ss}`, "Gauß"},
		{`Mart\'{\i}nez`, "Martínez"},
		{`Ram\'\i rez`, "Ramírez"},
		{`Research \& Development`, "Research & Development"},
		{`50\% off`, "50% off"},
		{`pages 1--10`, "pages 1–10"},
		{`yes---no`, "yes—no"},
		{`Tanaka~T.`, "Tanaka T."},
		{`\textbf{Bold} claim`, "Bold claim"},
		{`$$E = mc^2$$ holds`, `$$E = mc^2$$ holds`},
		{`costs \$5`, "costs $5"},
		{`unterminated $x`, `unterminated $x`},
		{"plain ASCII", "plain ASCII"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ToUnicode(tt.input))
		})
	}
}

func TestToUnicodeIdempotent(t *testing.T) {
	once := ToUnicode(`{Gebhard}, Timothy D. and Sch{\"o}lkopf, Bernhard`)
	assert.Equal(t, "Gebhard, Timothy D. and Schölkopf, Bernhard", once)
	assert.Equal(t, once, ToUnicode(once))
}

func TestRemoveAccents(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ÄÖÜäöüß", "AeOeUeaeoeuess"},
		{"àáèéïîõøūú", "aaeeiioouu"},
		{"Müller", "Mueller"},
		{"Gauß", "Gauss"},
		{"Erdős", "Erdos"},
		{"Łukasz", "Lukasz"},
		{"Kingma", "Kingma"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, RemoveAccents(tt.input))
		})
	}
}
