// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package process

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pdiddy/doi2bibtex/internal/identify"
	"github.com/pdiddy/doi2bibtex/pkg/types"
)

// Step is one stage of the pipeline. Enabled decides, from the identifier
// the record was resolved from, whether Apply runs; a nil Enabled always
// runs.
type Step struct {
	Name    string
	Enabled func(identifier string) bool
	Apply   func(ctx context.Context, rec types.Record, identifier string) error
}

// Pipeline applies its steps in order. A step that fails with
// ErrMissingField is skipped; any other error stops the run.
type Pipeline struct {
	steps  []Step
	logger zerolog.Logger
}

// Option configures a Pipeline.
type Option func(*options)

type options struct {
	bibcodes BibcodeFinder
	venues   VenueFinder
	logger   zerolog.Logger
}

// WithBibcodeFinder enables the adsurl step when resolve_adsurl is set.
func WithBibcodeFinder(f BibcodeFinder) Option {
	return func(o *options) { o.bibcodes = f }
}

// WithVenueFinder enables the dblp step when crossmatch_with_dblp is set.
func WithVenueFinder(f VenueFinder) Option {
	return func(o *options) { o.venues = f }
}

// WithLogger sets the logger for skipped steps.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// NewPipeline builds the fixed sequence of normalization steps for cfg.
// The order matters: LaTeX conversion precedes citekey generation, the
// citekey reads the author list before truncation, and field removal
// runs after the entry type is final.
func NewPipeline(cfg types.Config, opts ...Option) *Pipeline {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	always := func(string) bool { return true }
	flag := func(on bool) func(string) bool {
		return func(string) bool { return on }
	}
	simple := func(f func(types.Record)) func(context.Context, types.Record, string) error {
		return func(_ context.Context, rec types.Record, _ string) error {
			f(rec)
			return nil
		}
	}

	steps := []Step{
		{Name: "fix_broken_ampersand", Enabled: always, Apply: simple(FixBrokenAmpersand)},
		{Name: "convert_latex_chars", Enabled: flag(cfg.ConvertLatexChars), Apply: simple(ConvertLatexChars)},
		{
			Name: "fix_arxiv_entrytype",
			Enabled: func(id string) bool {
				return cfg.FixArxivEntryType && identify.IsArxiv(id)
			},
			Apply: simple(FixArxivEntryType),
		},
		{Name: "abbreviate_journal_names", Enabled: flag(cfg.AbbreviateJournalNames), Apply: simple(AbbreviateJournal)},
		{
			Name:    "generate_citekey",
			Enabled: flag(cfg.GenerateCitekey),
			Apply: func(_ context.Context, rec types.Record, _ string) error {
				return GenerateCitekey(rec, cfg.CitekeyDelimiter)
			},
		},
		{
			Name:    "limit_authors",
			Enabled: always,
			Apply: simple(func(rec types.Record) {
				TruncateAuthors(rec, cfg.LimitAuthors)
			}),
		},
		{
			Name:    "format_author_names",
			Enabled: flag(cfg.FormatAuthorNames),
			Apply: func(_ context.Context, rec types.Record, _ string) error {
				return FormatAuthorNames(rec)
			},
		},
		{Name: "convert_month_to_number", Enabled: flag(cfg.ConvertMonthToNumber), Apply: simple(ConvertMonth)},
		{
			Name:    "resolve_adsurl",
			Enabled: flag(cfg.ResolveADSURL && o.bibcodes != nil),
			Apply: func(ctx context.Context, rec types.Record, id string) error {
				AttachADSURL(ctx, rec, id, o.bibcodes)
				return nil
			},
		},
		{
			Name:    "remove_fields",
			Enabled: always,
			Apply: simple(func(rec types.Record) {
				RemoveFields(rec, cfg.RemoveFields)
			}),
		},
		{Name: "remove_url_if_doi", Enabled: flag(cfg.RemoveURLIfDOI), Apply: simple(RemoveURLIfDOI)},
		{
			Name:    "crossmatch_with_dblp",
			Enabled: flag(cfg.CrossmatchWithDBLP && o.venues != nil),
			Apply: func(ctx context.Context, rec types.Record, id string) error {
				return Crossmatch(ctx, rec, id, o.venues)
			},
		},
	}

	return &Pipeline{steps: steps, logger: o.logger}
}

// Steps returns the step names in execution order.
func (p *Pipeline) Steps() []string {
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.Name
	}
	return names
}

// Run normalizes rec in place. identifier is the one rec was finally
// resolved from, after any arXiv-to-DOI substitution.
func (p *Pipeline) Run(ctx context.Context, rec types.Record, identifier string) error {
	for _, s := range p.steps {
		if s.Enabled != nil && !s.Enabled(identifier) {
			continue
		}
		err := s.Apply(ctx, rec, identifier)
		if errors.Is(err, ErrMissingField) {
			p.logger.Debug().Str("step", s.Name).Err(err).Msg("step skipped")
			continue
		}
		if err != nil {
			return fmt.Errorf("%s: %w", s.Name, err)
		}
	}
	return nil
}
