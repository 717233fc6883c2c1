// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API credentials from the environment and from a
// directory of plain-text files. Each file in the directory is one
// secret: the filename is the key name and the trimmed contents are the
// value.
//
// Supported key files: ads_token.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// ADSTokenKey is both the secret file name and, uppercased, the
// environment variable holding the ADS API token.
const ADSTokenKey = "ads_token"

// DefaultDir returns ~/.doi2bibtex, the directory holding key files.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".doi2bibtex"
	}
	return filepath.Join(home, ".doi2bibtex")
}

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files are logged and skipped.
func Load(dir string, logger zerolog.Logger) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		// Config files share the directory.
		if ext := filepath.Ext(name); ext == ".yaml" || ext == ".yml" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn().Err(err).Str("secret", name).Msg("could not read secret")
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// ADSToken returns the ADS token from the ADS_TOKEN environment variable,
// falling back to the ads_token file in dir. It returns "" when neither
// is set.
func ADSToken(dir string, logger zerolog.Logger) (string, error) {
	if token, ok := os.LookupEnv(strings.ToUpper(ADSTokenKey)); ok {
		return strings.TrimSpace(token), nil
	}
	secrets, err := Load(dir, logger)
	if err != nil {
		return "", err
	}
	return secrets[ADSTokenKey], nil
}
