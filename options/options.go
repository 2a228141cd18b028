/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package options holds resolution options and their per-asset-type defaults.
package options

import (
	"fmt"
	"path/filepath"
	"strings"
)

// AssetType selects the extension and source-root defaults used during resolution.
type AssetType int

const (
	// Script is a JavaScript module. It is the zero value.
	Script AssetType = iota
	// Style is a stylesheet.
	Style
	// Markup is an HTML document.
	Markup
)

// ScriptExtension is the extension appended to package entry points
// and used for package index files.
const ScriptExtension = "js"

// PackageRoot is the directory name that holds installed packages.
const PackageRoot = "node_modules"

// String returns the canonical short name of the asset type.
func (t AssetType) String() string {
	switch t {
	case Style:
		return "css"
	case Markup:
		return "html"
	default:
		return "js"
	}
}

// ParseAssetType parses an asset type name.
// Accepted values: js, script, css, style, html, markup.
func ParseAssetType(s string) (AssetType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "js", "script":
		return Script, nil
	case "css", "style":
		return Style, nil
	case "html", "markup":
		return Markup, nil
	}
	return Script, fmt.Errorf("unknown asset type: %q", s)
}

// AssetTypeForPath infers the asset type from a file's extension.
func AssetTypeForPath(path string) AssetType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".css":
		return Style
	case ".html", ".htm":
		return Markup
	default:
		return Script
	}
}

// Options configures a single Resolve or Identify call.
type Options struct {
	// AssetType selects the defaults merged into FileExtensions and Sources.
	AssetType AssetType

	// FileExtensions are tried in order, without the leading dot.
	FileExtensions []string

	// Sources are the directories bare specifiers and ids are relative to.
	// After Normalize they are absolute.
	Sources []string

	// CaseSensitive rejects files whose on-disk name differs in case
	// from the requested name.
	CaseSensitive bool

	// AllAncestors searches every ancestor node_modules directory
	// instead of stopping at the nearest one.
	AllAncestors bool
}

type defaults struct {
	extensions []string
	sources    []string
}

var assetDefaults = map[AssetType]defaults{
	Script: {extensions: []string{"js"}, sources: []string{PackageRoot, "."}},
	Style:  {extensions: []string{"css"}, sources: []string{"."}},
	Markup: {extensions: []string{"html"}, sources: []string{"."}},
}

// Normalize merges opts with the defaults for its asset type.
// Caller-supplied extensions and sources come first; sources are made
// absolute against cwd. A nil opts yields the Script defaults.
func Normalize(opts *Options, cwd string) Options {
	var o Options
	if opts != nil {
		o = *opts
	}

	d, ok := assetDefaults[o.AssetType]
	if !ok {
		o.AssetType = Script
		d = assetDefaults[Script]
	}

	exts := make([]string, 0, len(o.FileExtensions)+len(d.extensions))
	for _, ext := range o.FileExtensions {
		exts = append(exts, strings.TrimPrefix(ext, "."))
	}
	o.FileExtensions = union(exts, d.extensions)

	sources := make([]string, 0, len(o.Sources)+len(d.sources))
	for _, src := range append(append([]string{}, o.Sources...), d.sources...) {
		sources = append(sources, absPath(src, cwd))
	}
	o.Sources = union(sources)

	return o
}

// HasExtension reports whether ext (with or without a leading dot)
// is one of the configured file extensions.
func (o Options) HasExtension(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return false
	}
	for _, e := range o.FileExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

func absPath(p, cwd string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(cwd, p)
}

// union concatenates lists, keeping the first occurrence of each entry.
func union(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, s := range list {
			if s == "" || seen[s] {
				continue
			}
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
