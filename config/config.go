/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides configuration loading for the identify CLI.
package config

import (
	"path/filepath"

	"bennypowers.dev/identify/options"
)

// Config represents the resolution configuration.
type Config struct {
	// Type is the asset type: js, css or html.
	Type string `yaml:"type" json:"type" mapstructure:"type"`

	// Extensions are tried before the asset type's defaults.
	Extensions []string `yaml:"extensions" json:"extensions" mapstructure:"extensions"`

	// Sources are searched before the asset type's defaults.
	Sources []string `yaml:"sources" json:"sources" mapstructure:"sources"`

	// CaseSensitive rejects files whose on-disk case differs.
	CaseSensitive bool `yaml:"caseSensitive" json:"caseSensitive" mapstructure:"caseSensitive"`

	// AllAncestors searches every ancestor node_modules directory.
	AllAncestors bool `yaml:"allAncestors" json:"allAncestors" mapstructure:"allAncestors"`

	// Aliases maps ids to file paths. Relative paths are taken from the
	// directory the config was loaded for.
	Aliases map[string]string `yaml:"aliases" json:"aliases" mapstructure:"aliases"`
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{
		Type:          options.Script.String(),
		Extensions:    nil,
		Sources:       nil,
		CaseSensitive: false,
		AllAncestors:  false,
		Aliases:       nil,
	}
}

// Options converts the config into resolution options.
func (c *Config) Options() (*options.Options, error) {
	assetType, err := options.ParseAssetType(c.Type)
	if err != nil {
		return nil, err
	}
	return &options.Options{
		AssetType:      assetType,
		FileExtensions: c.Extensions,
		Sources:        c.Sources,
		CaseSensitive:  c.CaseSensitive,
		AllAncestors:   c.AllAncestors,
	}, nil
}

// AliasPaths returns the aliases with paths made absolute against rootDir.
func (c *Config) AliasPaths(rootDir string) map[string]string {
	if len(c.Aliases) == 0 {
		return nil
	}
	out := make(map[string]string, len(c.Aliases))
	for id, path := range c.Aliases {
		if !filepath.IsAbs(path) {
			path = filepath.Join(rootDir, path)
		}
		out[id] = path
	}
	return out
}
