// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibtex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/doi2bibtex/pkg/types"
)

// crossrefRitter is Crossref's transform output for 10.1088/1742-6596/898/7/072029.
const crossrefRitter = ` @article{Ritter_2017, title={Software Quality Control at Belle {II}}, volume={898}, ISSN={1742-6596}, url={http://dx.doi.org/10.1088/1742-6596/898/7/072029}, DOI={10.1088/1742-6596/898/7/072029}, number={7}, journal={Journal of Physics: Conference Series}, publisher={IOP Publishing}, author={Ritter, M and Kuhr, T and Hauth, T and Gebard, T and Kristof, M and Pulvermacher, C}, year={2017}, month=oct, pages={072029} }
`

func TestDecodeCrossref(t *testing.T) {
	rec, err := Decode(crossrefRitter)
	require.NoError(t, err)

	assert.Equal(t, "article", rec.EntryType())
	assert.Equal(t, "Ritter_2017", rec.Key())
	assert.Equal(t, "Software Quality Control at Belle {II}", rec["title"])
	assert.Equal(t, "10.1088/1742-6596/898/7/072029", rec["doi"])
	assert.Equal(t, "1742-6596", rec["issn"])
	assert.Equal(t, "oct", rec["month"])
	assert.Equal(t, "Journal of Physics: Conference Series", rec["journal"])
	assert.Equal(t, "Ritter, M and Kuhr, T and Hauth, T and Gebard, T and Kristof, M and Pulvermacher, C", rec["author"])
	assert.Len(t, rec, 14)
}

func TestDecodeMultiline(t *testing.T) {
	text := `@ONLINE{1312.6114,
    Author = "Kingma, Diederik P and
              Welling, Max",
    title  = {Auto-Encoding {Variational} Bayes},
    year   = 2013,
    eprint = {1312.6114},
    eprinttype = {arXiv},
}`
	rec, err := Decode(text)
	require.NoError(t, err)

	assert.Equal(t, types.Record{
		"ENTRYTYPE":  "online",
		"ID":         "1312.6114",
		"author":     "Kingma, Diederik P and Welling, Max",
		"title":      "Auto-Encoding {Variational} Bayes",
		"year":       "2013",
		"eprint":     "1312.6114",
		"eprinttype": "arXiv",
	}, rec)
}

func TestParseStringsAndComments(t *testing.T) {
	text := `@comment{ignored {nested} block}
@string{apj = "The Astrophysical Journal"}
@preamble{"\newcommand{\noop}[1]{}"}
@article{a, journal = apj, note = "Vol. " # {12}}
@book(b, title = {Second})`
	entries, err := Parse(text)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "The Astrophysical Journal", entries[0]["journal"])
	assert.Equal(t, "Vol. 12", entries[0]["note"])
	assert.Equal(t, "book", entries[1].EntryType())
	assert.Equal(t, "Second", entries[1]["title"])
}

func TestDecodeErrors(t *testing.T) {
	t.Run("no entry", func(t *testing.T) {
		_, err := Decode("just some text")
		assert.ErrorIs(t, err, ErrNoEntry)
	})

	t.Run("unbalanced braces", func(t *testing.T) {
		_, err := Decode("@article{x, title = {Open {brace}")
		assert.Error(t, err)
	})

	t.Run("missing equals", func(t *testing.T) {
		_, err := Decode("@article{x, title {T}}")
		assert.Error(t, err)
	})
}

func TestEncode(t *testing.T) {
	rec := types.Record{
		"ENTRYTYPE": "article",
		"ID":        "Ritter_2017",
		"author":    "{Ritter}, M and {Kuhr}, T and others",
		"doi":       "10.1088/1742-6596/898/7/072029",
		"journal":   "Journal of Physics: Conference Series",
		"month":     "10",
		"year":      "2017",
	}
	want := `@article{Ritter_2017,
  author    = {{Ritter}, M and {Kuhr}, T and others},
  doi       = {10.1088/1742-6596/898/7/072029},
  journal   = {Journal of Physics: Conference Series},
  month     = {10},
  year      = {2017},
}
`
	assert.Equal(t, want, Encode(rec))
}

func TestEncodeColumnWidth(t *testing.T) {
	tests := []struct {
		name  string
		extra string
		want  string
	}{
		{"short keys pad to the header key", "doi", "  author    = {A},\n  doi       = {X},\n"},
		{"longest key sets the column", "editortype", "  author     = {A},\n  editortype = {X},\n"},
		{"column stops at thirteen", "archiveprefix", "  archiveprefix = {X},\n  author        = {A},\n"},
		{"longer keys overflow", "primaryclassname", "  author        = {A},\n  primaryclassname = {X},\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := types.Record{"ENTRYTYPE": "misc", "ID": "k", "author": "A", tt.extra: "X"}
			assert.Equal(t, "@misc{k,\n"+tt.want+"}\n", Encode(rec))
		})
	}
}

func TestEncodeWideField(t *testing.T) {
	rec := types.Record{
		"ENTRYTYPE":        "article",
		"ID":               "x",
		"archiveprefix":    "arXiv",
		"primaryclassname": "astro-ph",
	}
	want := `@article{x,
  archiveprefix = {arXiv},
  primaryclassname = {astro-ph},
}
`
	assert.Equal(t, want, Encode(rec))
}

func TestWriterOptions(t *testing.T) {
	rec := types.Record{"ENTRYTYPE": "misc", "ID": "k", "title": "T", "year": "2020"}
	w := Writer{Indent: "\t", Align: 0}
	assert.Equal(t, "@misc{k,\n\ttitle     = {T},\n\tyear      = {2020}\n}\n", w.Encode(rec))

	empty := types.Record{"ENTRYTYPE": "misc", "ID": "k"}
	assert.Equal(t, "@misc{k\n}\n", Encode(empty))
}

func TestRoundTrip(t *testing.T) {
	rec := types.Record{
		"ENTRYTYPE": "article",
		"ID":        "Gebhard_2019",
		"author":    "{Gebhard}, Timothy D. and Sch{\\\"o}lkopf, Bernhard",
		"title":     "Convolutional neural networks: A magic bullet for gravitational-wave detection?",
		"journal":   `\prd`,
	}
	got, err := Decode(Encode(rec))
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}
