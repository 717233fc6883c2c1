// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config builds the per-run configuration from the built-in
// defaults, an optional YAML file and D2B_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/pdiddy/doi2bibtex/pkg/types"
)

// EnvPrefix prefixes environment overrides, e.g. D2B_LIMIT_AUTHORS=3.
const EnvPrefix = "D2B"

// fileName is the config file looked up in ~/.doi2bibtex and under the
// XDG config directories.
const fileName = "config.yaml"

// Options controls Load.
type Options struct {
	// Path is an explicit config file. When set it must exist.
	Path string

	Logger zerolog.Logger
}

// Load returns the effective configuration and the config file it read,
// which is "" when no file was found. Unknown keys in the file are
// logged and ignored. A remove_fields mapping in the file replaces the
// default mapping instead of merging with it.
func Load(opts Options) (types.Config, string, error) {
	defaults := types.DefaultConfig()

	v := viper.New()
	setDefaults(v, defaults)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := opts.Path
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return types.Config{}, "", fmt.Errorf("reading config file %s: %w", path, err)
		}
		opts.Logger.Debug().Str("path", path).Msg("using config file")
		warnUnknown(v, opts.Logger)
	}

	cfg := defaults
	if v.InConfig("remove_fields") {
		cfg.RemoveFields = nil
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, "", fmt.Errorf("decoding config: %w", err)
	}
	return cfg, path, nil
}

// findConfigFile returns ~/.doi2bibtex/config.yaml if it exists, else
// the first doi2bibtex/config.yaml under the XDG config directories.
func findConfigFile() string {
	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, ".doi2bibtex", fileName)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	if p, err := xdg.SearchConfigFile(filepath.Join("doi2bibtex", fileName)); err == nil {
		return p
	}
	return ""
}

// setDefaults registers every scalar key so environment overrides apply.
// remove_fields is left out: a default map would merge with the file's.
func setDefaults(v *viper.Viper, cfg types.Config) {
	for key, value := range scalarSettings(cfg) {
		v.SetDefault(key, value)
	}
}

func scalarSettings(cfg types.Config) map[string]any {
	out := map[string]any{}
	walkFields(reflect.ValueOf(cfg), func(key string, value reflect.Value) {
		if value.Kind() == reflect.Map {
			return
		}
		out[key] = value.Interface()
	})
	return out
}

// KnownKeys returns the recognized configuration keys, sorted.
func KnownKeys() []string {
	var keys []string
	walkFields(reflect.ValueOf(types.Config{}), func(key string, _ reflect.Value) {
		keys = append(keys, key)
	})
	sort.Strings(keys)
	return keys
}

// walkFields calls fn for every mapstructure-tagged field of v, descending
// into squashed embedded structs.
func walkFields(v reflect.Value, fn func(key string, value reflect.Value)) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("mapstructure")
		if strings.Contains(tag, "squash") {
			walkFields(v.Field(i), fn)
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "" || name == "-" {
			continue
		}
		fn(name, v.Field(i))
	}
}

func warnUnknown(v *viper.Viper, logger zerolog.Logger) {
	known := map[string]bool{}
	for _, k := range KnownKeys() {
		known[k] = true
	}
	seen := map[string]bool{}
	for _, k := range v.AllKeys() {
		top, _, _ := strings.Cut(k, ".")
		if known[top] || seen[top] || !v.InConfig(top) {
			continue
		}
		seen[top] = true
		logger.Warn().Str("key", top).Msg("ignoring unknown configuration key")
	}
}
