/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"path/filepath"

	"golang.org/x/text/cases"

	"bennypowers.dev/identify/internal/logger"
	"bennypowers.dev/identify/options"
)

// locateFile returns the first existing file for base, spelled as it
// is on disk, or "".
//
// A base that already has a configured extension is checked as is.
// Otherwise each extension is tried in order, first as a sibling file
// (base.ext) and then as a directory index (base/index.ext).
func (r *Resolver) locateFile(base string, o options.Options) string {
	if o.HasExtension(filepath.Ext(base)) {
		return r.lookup(base, o, 1)
	}

	for _, ext := range o.FileExtensions {
		if path := r.lookup(base+"."+ext, o, 1); path != "" {
			return path
		}
		if path := r.lookup(filepath.Join(base, "index."+ext), o, 2); path != "" {
			return path
		}
	}

	return ""
}

// lookup returns p with its last segments components spelled as listed on
// disk, or "" when p does not exist. With o.CaseSensitive those components
// must already match the on-disk names exactly.
func (r *Resolver) lookup(p string, o options.Options, segments int) string {
	if !r.fs.Exists(p) {
		return ""
	}

	var names []string
	dir := p
	for i := 0; i < segments; i++ {
		parent, name := filepath.Dir(dir), filepath.Base(dir)
		if parent == dir {
			break
		}
		onDisk, ok := r.entryName(parent, name, o.CaseSensitive)
		if !ok {
			return ""
		}
		names = append(names, onDisk)
		dir = parent
	}

	for i := len(names) - 1; i >= 0; i-- {
		dir = filepath.Join(dir, names[i])
	}
	return dir
}

// entryName returns the name dir lists for name. An exact spelling wins;
// otherwise a case-folded match is accepted unless exact is set.
func (r *Resolver) entryName(dir, name string, exact bool) (string, bool) {
	entries, err := r.fs.ReadDir(dir)
	if err != nil {
		return name, !exact
	}

	fold := cases.Fold()
	want := fold.String(name)
	match := ""
	for _, entry := range entries {
		if entry.Name() == name {
			return name, true
		}
		if match == "" && fold.String(entry.Name()) == want {
			match = entry.Name()
		}
	}

	switch {
	case match == "":
		return name, !exact
	case exact:
		logger.Debug("case mismatch: requested %s, found %s", filepath.Join(dir, name), filepath.Join(dir, match))
		return "", false
	default:
		return match, true
	}
}
