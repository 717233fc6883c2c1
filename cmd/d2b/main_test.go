// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/doi2bibtex/internal/process"
	"github.com/pdiddy/doi2bibtex/pkg/types"
)

type fakeUpstream struct {
	arxiv map[string]types.Record
	isbns map[string]types.Record
}

func (f *fakeUpstream) find(m map[string]types.Record, id string) (types.Record, error) {
	if rec, ok := m[id]; ok {
		return rec.Clone(), nil
	}
	return nil, errors.New(`Error resolving "` + id + `": no BibTeX entry found`)
}

func (f *fakeUpstream) ResolveDOI(_ context.Context, doi string) (types.Record, error) {
	return f.find(nil, doi)
}

func (f *fakeUpstream) ResolveArxiv(_ context.Context, id string) (types.Record, error) {
	return f.find(f.arxiv, id)
}

func (f *fakeUpstream) ResolveBibcode(_ context.Context, bibcode string) (types.Record, error) {
	return f.find(nil, bibcode)
}

func (f *fakeUpstream) ResolveISBN(_ context.Context, isbn string) (types.Record, error) {
	return f.find(f.isbns, isbn)
}

func (f *fakeUpstream) FindBibcode(context.Context, string) string { return "" }

func (f *fakeUpstream) FindVenue(context.Context, process.VenueQuery) (*process.Venue, error) {
	return nil, nil
}

const kingmaEntry = "@article{Kingma_2013,\n" +
	"  author    = {{Kingma}, Diederik P and {Welling}, Max},\n" +
	"  eprint    = {1312.6114},\n" +
	"  journal   = {arXiv preprints},\n" +
	"  title     = {Auto-Encoding Variational Bayes},\n" +
	"  year      = {2013},\n" +
	"}"

// resetFlags restores every flag of cmd and its children to its default,
// since rootCmd is shared between tests.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the CLI with a fake upstream and an isolated home and
// returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	orig := newUpstream
	newUpstream = func(types.Config) (upstream, error) {
		return &fakeUpstream{
			arxiv: map[string]types.Record{"1312.6114": {
				"ENTRYTYPE":  "online",
				"ID":         "1312.6114",
				"author":     "Diederik P Kingma and Max Welling",
				"title":      "Auto-Encoding Variational Bayes",
				"eprint":     "1312.6114",
				"eprinttype": "arXiv",
				"year":       "2013",
			}},
			isbns: map[string]types.Record{"9781400078776": {
				"ENTRYTYPE": "book",
				"ID":        "Ishiguro_2006",
				"author":    "Kazuo Ishiguro",
				"title":     "Never Let Me Go",
				"year":      "2006",
				"isbn":      "9781400078776",
			}},
		}, nil
	}
	t.Cleanup(func() { newUpstream = orig })

	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootPlain(t *testing.T) {
	out, err := execute(t, "--plain", "arXiv:1312.6114")
	require.NoError(t, err)
	assert.Equal(t, kingmaEntry+"\n", out)
}

func TestRootFancy(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("pygments_theme: none\nresolve_adsurl: false\n"), 0o644))

	out, err := execute(t, "--config", cfgPath, "1312.6114")
	require.NoError(t, err)
	assert.Equal(t, banner+"\n"+
		"BibTeX entry for identifier \"1312.6114\":\n\n"+
		kingmaEntry+"\n\n\n", out)
}

func TestRootSoftFailure(t *testing.T) {
	out, err := execute(t, "--plain", "not-an-id")
	require.NoError(t, err, "resolution failures keep exit code 0")
	assert.Equal(t, "\n  There was an error:\n  Unrecognized identifier: not-an-id\n\n", out)
}

func TestRootMissingIdentifier(t *testing.T) {
	_, err := execute(t, "--plain")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provide an identifier")
}

func TestRootVersionFlag(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, version+"\n", out)
}

func TestRootMetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "d2b.prom")
	_, err := execute(t, "--plain", "--metrics-file", path, "1312.6114")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `d2b_resolutions_total{kind="arxiv",outcome="ok"} 1`)
}

func TestISBNCommand(t *testing.T) {
	out, err := execute(t, "isbn", "--plain", "978-1-4000-7877-6")
	require.NoError(t, err)
	assert.Contains(t, out, "@book{Ishiguro_2006,")
	assert.Contains(t, out, "{Ishiguro}, Kazuo")
}

func TestConfigCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("limit_authors: 4\n"), 0o644))

	out, err := execute(t, "config", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "# "+cfgPath+"\n")
	assert.Contains(t, out, "limit_authors: 4\n")
	assert.Contains(t, out, "http_timeout: 30s\n")
	assert.Contains(t, out, "user_agent: d2b/"+version+"\n")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "d2b "+version+"\n", out)
}

func TestHighlight(t *testing.T) {
	orig := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = orig })

	got := highlight(kingmaEntry, paletteFor("dracula"))
	assert.NotEqual(t, kingmaEntry, got)
	assert.Contains(t, got, "\x1b[")
	assert.Contains(t, got, "Kingma_2013")
	assert.Contains(t, got, "{arXiv preprints},")

	assert.Equal(t, kingmaEntry, highlight(kingmaEntry, paletteFor("none")))

	errBlock := "\n  There was an error:\n  boom\n"
	assert.Equal(t, errBlock, highlight(errBlock, paletteFor("dracula")))
}

func TestPaletteFallback(t *testing.T) {
	assert.Equal(t, palettes["dracula"], paletteFor("no-such-theme"))
	assert.Equal(t, palettes["monokai"], paletteFor("monokai"))
}
