// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/pdiddy/doi2bibtex/internal/httputil"
	"github.com/pdiddy/doi2bibtex/internal/process"
	"github.com/pdiddy/doi2bibtex/internal/provider"
	"github.com/pdiddy/doi2bibtex/internal/resolve"
	"github.com/pdiddy/doi2bibtex/internal/secrets"
	"github.com/pdiddy/doi2bibtex/pkg/types"
)

// upstream is everything the router and pipeline fetch from the network.
type upstream interface {
	resolve.Sources
	process.BibcodeFinder
	process.VenueFinder
}

// newUpstream returns the live provider client. Tests replace it.
var newUpstream = func(cfg types.Config) (upstream, error) {
	token, err := secrets.ADSToken(secrets.DefaultDir(), logger)
	if err != nil {
		return nil, err
	}
	hc := httputil.NewClient(cfg.HTTPConfig, metrics)
	return provider.New(hc, token, logger), nil
}

func buildRouter() (*resolve.Router, error) {
	up, err := newUpstream(loadedConfig)
	if err != nil {
		return nil, err
	}
	pipeline := process.NewPipeline(loadedConfig,
		process.WithBibcodeFinder(up),
		process.WithVenueFinder(up),
		process.WithLogger(logger),
	)
	return resolve.NewRouter(up, pipeline, loadedConfig,
		resolve.WithLogger(logger),
		resolve.WithRecorder(metrics),
	), nil
}
