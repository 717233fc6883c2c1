package types

import "time"

// HTTPConfig holds shared HTTP settings for every upstream provider.
type HTTPConfig struct {
	// Timeout is the per-request timeout. Zero means no timeout.
	Timeout time.Duration `json:"http_timeout" yaml:"http_timeout" mapstructure:"http_timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "d2b/0.3").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// RateLimit caps outgoing requests per second across all providers.
	// Zero or negative disables limiting.
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit" mapstructure:"rate_limit"`
}

// Config is the per-run configuration snapshot. It is built once at
// startup from DefaultConfig plus an optional YAML file and treated as
// read-only afterwards.
type Config struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// AbbreviateJournalNames replaces known journal names with their
	// AAS-style macro (e.g. "Nature" -> "\nat").
	AbbreviateJournalNames bool `json:"abbreviate_journal_names" yaml:"abbreviate_journal_names" mapstructure:"abbreviate_journal_names"`

	// CitekeyDelimiter separates last name and year in generated citekeys.
	CitekeyDelimiter string `json:"citekey_delimiter" yaml:"citekey_delimiter" mapstructure:"citekey_delimiter"`

	// ConvertLatexChars converts LaTeX escapes in author and title to Unicode.
	ConvertLatexChars bool `json:"convert_latex_chars" yaml:"convert_latex_chars" mapstructure:"convert_latex_chars"`

	// ConvertMonthToNumber rewrites month names as "1" through "12".
	ConvertMonthToNumber bool `json:"convert_month_to_number" yaml:"convert_month_to_number" mapstructure:"convert_month_to_number"`

	// CrossmatchWithDBLP looks the record up on dblp and appends the
	// conference venue to addendum.
	CrossmatchWithDBLP bool `json:"crossmatch_with_dblp" yaml:"crossmatch_with_dblp" mapstructure:"crossmatch_with_dblp"`

	// FixArxivEntryType turns arXiv records into articles in "arXiv preprints".
	FixArxivEntryType bool `json:"fix_arxiv_entrytype" yaml:"fix_arxiv_entrytype" mapstructure:"fix_arxiv_entrytype"`

	// FormatAuthorNames rewrites every author as "{von Last}, First".
	FormatAuthorNames bool `json:"format_author_names" yaml:"format_author_names" mapstructure:"format_author_names"`

	// GenerateCitekey overwrites ID with "{Last}{delimiter}{year}".
	GenerateCitekey bool `json:"generate_citekey" yaml:"generate_citekey" mapstructure:"generate_citekey"`

	// LimitAuthors is the number of authors kept before " and others".
	LimitAuthors int `json:"limit_authors" yaml:"limit_authors" mapstructure:"limit_authors"`

	// PygmentsTheme selects the palette of the fancy CLI output.
	PygmentsTheme string `json:"pygments_theme" yaml:"pygments_theme" mapstructure:"pygments_theme"`

	// RemoveFields maps an entry type (or "all") to field names to delete.
	RemoveFields map[string][]string `json:"remove_fields" yaml:"remove_fields" mapstructure:"remove_fields"`

	// RemoveURLIfDOI drops url when it is just the doi.org link for doi.
	RemoveURLIfDOI bool `json:"remove_url_if_doi" yaml:"remove_url_if_doi" mapstructure:"remove_url_if_doi"`

	// ResolveADSURL attaches an adsurl when ADS knows the identifier.
	ResolveADSURL bool `json:"resolve_adsurl" yaml:"resolve_adsurl" mapstructure:"resolve_adsurl"`

	// UpdateArxivIfDOI re-resolves arXiv preprints that carry a DOI.
	UpdateArxivIfDOI bool `json:"update_arxiv_if_doi" yaml:"update_arxiv_if_doi" mapstructure:"update_arxiv_if_doi"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		HTTPConfig: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "d2b/dev",
			RateLimit: 5,
		},
		AbbreviateJournalNames: true,
		CitekeyDelimiter:       "_",
		ConvertLatexChars:      true,
		ConvertMonthToNumber:   true,
		CrossmatchWithDBLP:     false,
		FixArxivEntryType:      true,
		FormatAuthorNames:      true,
		GenerateCitekey:        true,
		LimitAuthors:           1000,
		PygmentsTheme:          "dracula",
		RemoveFields: map[string][]string{
			"all":     {"abstract"},
			"article": {"publisher"},
		},
		RemoveURLIfDOI:   true,
		ResolveADSURL:    true,
		UpdateArxivIfDOI: true,
	}
}
