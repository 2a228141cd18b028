/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package manifest reads the entry point a package declares in its package.json.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"

	idfs "bennypowers.dev/identify/fs"
)

// FileName is the manifest file looked up in each package directory.
const FileName = "package.json"

// ErrMalformed indicates that a manifest exists but is not valid JSON,
// or that its main field is not a string.
var ErrMalformed = errors.New("malformed package manifest")

// Manifest is the part of package.json that resolution consumes.
type Manifest struct {
	// Main is the entry point relative to the package directory.
	// Empty when the field is absent.
	Main string `json:"main"`
}

// Read reads the manifest in pkgDir.
// Returns nil, nil when the package has no manifest (not an error).
func Read(fsys idfs.FileSystem, pkgDir string) (*Manifest, error) {
	path := filepath.Join(pkgDir, FileName)
	if !fsys.Exists(path) {
		return nil, nil
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var raw struct {
		Main any `json:"main"`
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}

	m := &Manifest{}
	switch main := raw.Main.(type) {
	case nil:
	case string:
		m.Main = main
	default:
		return nil, fmt.Errorf("%w: %s: main must be a string, got %T", ErrMalformed, path, raw.Main)
	}
	return m, nil
}

// HasMain returns true if the manifest declares an entry point.
func (m *Manifest) HasMain() bool {
	return m != nil && strings.TrimSpace(m.Main) != ""
}

// EntryPoint returns the absolute path of the declared entry point in pkgDir.
// When the path does not end in "."+ext, ext is appended.
func (m *Manifest) EntryPoint(pkgDir, ext string) string {
	entry := filepath.Join(pkgDir, m.Main)
	if filepath.Ext(entry) != "."+ext {
		entry += "." + ext
	}
	return entry
}
