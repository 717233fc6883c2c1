// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve turns a raw identifier into normalized BibTeX text. It
// classifies the identifier, fetches the record from the matching
// source, runs the post-processing pipeline and encodes the result. The
// router is the only place where errors become output text.
package resolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/doi2bibtex/internal/bibtex"
	"github.com/pdiddy/doi2bibtex/internal/identify"
	"github.com/pdiddy/doi2bibtex/internal/process"
	"github.com/pdiddy/doi2bibtex/pkg/types"
)

// Sources fetches raw records. Each method fails when the upstream
// reports a non-success status or has no entry.
type Sources interface {
	ResolveDOI(ctx context.Context, doi string) (types.Record, error)
	ResolveArxiv(ctx context.Context, id string) (types.Record, error)
	ResolveBibcode(ctx context.Context, bibcode string) (types.Record, error)
	ResolveISBN(ctx context.Context, isbn string) (types.Record, error)
}

// Recorder counts resolutions by identifier kind and outcome.
type Recorder interface {
	ObserveResolution(kind, outcome string)
}

// Outcomes passed to Recorder.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Router dispatches identifiers to their source.
type Router struct {
	sources  Sources
	pipeline *process.Pipeline
	cfg      types.Config
	writer   bibtex.Writer
	logger   zerolog.Logger
	recorder Recorder
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the router's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Router) { r.logger = l }
}

// WithRecorder counts every resolution on rec.
func WithRecorder(rec Recorder) Option {
	return func(r *Router) { r.recorder = rec }
}

// WithWriter replaces the default BibTeX layout.
func WithWriter(w bibtex.Writer) Option {
	return func(r *Router) { r.writer = w }
}

// NewRouter returns a Router fetching from sources and normalizing with
// pipeline under cfg.
func NewRouter(sources Sources, pipeline *process.Pipeline, cfg types.Config, opts ...Option) *Router {
	r := &Router{
		sources:  sources,
		pipeline: pipeline,
		cfg:      cfg,
		writer:   bibtex.DefaultWriter,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the BibTeX entry for a DOI, arXiv ID or ADS bibcode.
// It never fails: any error is returned as a formatted error block.
func (r *Router) Resolve(ctx context.Context, raw string) string {
	identifier := identify.Preprocess(raw)
	kind := identify.Classify(identifier)

	out, err := guard(func() (string, error) { return r.resolve(ctx, identifier, kind) })
	r.observe(kind, err)
	if err != nil {
		r.logger.Debug().Err(err).Str("identifier", identifier).Msg("resolution failed")
		return FormatError(err)
	}
	return out
}

func (r *Router) resolve(ctx context.Context, identifier string, kind identify.Kind) (string, error) {
	var (
		rec types.Record
		err error
	)
	switch kind {
	case identify.KindDOI:
		rec, err = r.sources.ResolveDOI(ctx, identifier)
	case identify.KindArxiv:
		rec, err = r.sources.ResolveArxiv(ctx, identifier)
	case identify.KindBibcode:
		rec, err = r.sources.ResolveBibcode(ctx, identifier)
	default:
		// ISBNs have their own entry point.
		return "", fmt.Errorf("Unrecognized identifier: %s", identifier)
	}
	if err != nil {
		return "", err
	}

	if kind == identify.KindArxiv && r.cfg.UpdateArxivIfDOI {
		if doi, ok := rec["doi"]; ok {
			r.logger.Info().Str("arxiv", identifier).Str("doi", doi).Msg("resolving published version")
			identifier = doi
			if rec, err = r.sources.ResolveDOI(ctx, doi); err != nil {
				return "", err
			}
		}
	}

	return r.finish(ctx, rec, identifier)
}

// ResolveISBN returns the BibTeX entry for an ISBN-10 or ISBN-13, with
// or without hyphens and an "isbn" prefix. Like Resolve it never fails.
func (r *Router) ResolveISBN(ctx context.Context, raw string) string {
	isbn := identify.NormalizeISBN(strings.TrimSpace(raw))

	out, err := guard(func() (string, error) { return r.resolveISBN(ctx, raw, isbn) })
	r.observe(identify.KindISBN, err)
	if err != nil {
		r.logger.Debug().Err(err).Str("identifier", isbn).Msg("resolution failed")
		return FormatError(err)
	}
	return out
}

func (r *Router) resolveISBN(ctx context.Context, raw, isbn string) (string, error) {
	if !identify.IsISBN(isbn) {
		return "", fmt.Errorf("Invalid ISBN: %s", strings.TrimSpace(raw))
	}
	rec, err := r.sources.ResolveISBN(ctx, isbn)
	if err != nil {
		return "", err
	}
	// The prefix keeps ten-digit ISBNs from passing as old-style arXiv IDs
	// in the pipeline.
	return r.finish(ctx, rec, "isbn:"+isbn)
}

func (r *Router) finish(ctx context.Context, rec types.Record, identifier string) (string, error) {
	if err := r.pipeline.Run(ctx, rec, identifier); err != nil {
		return "", err
	}
	return strings.TrimRight(r.writer.Encode(rec), " \t\r\n"), nil
}

func (r *Router) observe(kind identify.Kind, err error) {
	if r.recorder == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	r.recorder.ObserveResolution(kind.String(), outcome)
}

// guard turns a panic in fn into an error so callers always get a
// printable result.
func guard(fn func() (string, error)) (out string, err error) {
	defer func() {
		if p := recover(); p != nil {
			out, err = "", fmt.Errorf("internal error: %v", p)
		}
	}()
	return fn()
}

// FormatError renders err as the indented block printed in place of an
// entry.
func FormatError(err error) string {
	return "\n  There was an error:\n  " + err.Error() + "\n"
}
