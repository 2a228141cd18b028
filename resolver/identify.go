/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"path/filepath"
	"strings"

	"bennypowers.dev/identify/manifest"
	"bennypowers.dev/identify/options"
)

const indexName = "index"

// identify computes the id of an absolute path without consulting the cache.
func (r *Resolver) identify(path string, o options.Options) (string, error) {
	if !r.fs.Exists(path) {
		return "", nil
	}

	segments := strings.Split(filepath.ToSlash(path), "/")
	if i := lastIndex(segments, options.PackageRoot); i >= 0 && i+1 < len(segments) {
		return r.identifyPackaged(path, segments, i, o)
	}

	for _, src := range o.Sources {
		rel, ok := relativeTo(src, path)
		if !ok {
			continue
		}
		id := stripExt(filepath.ToSlash(rel))
		if id == indexName && o.AssetType != options.Markup {
			return filepath.Base(src), nil
		}
		return collapseIndex(id, o), nil
	}

	return "", nil
}

// identifyPackaged computes the id of a path below node_modules.
// segments[i] is the last node_modules segment.
func (r *Resolver) identifyPackaged(path string, segments []string, i int, o options.Options) (string, error) {
	n := 1
	if strings.HasPrefix(segments[i+1], "@") && i+2 < len(segments) {
		n = 2
	}

	root := filepath.FromSlash(strings.Join(segments[:i+1], "/"))
	name := strings.Join(segments[i+1:i+1+n], "/")
	pkgDir := filepath.Join(root, filepath.FromSlash(name))

	m, err := manifest.Read(r.fs, pkgDir)
	if err != nil {
		return "", err
	}
	if m.HasMain() && m.EntryPoint(pkgDir, options.ScriptExtension) == path {
		return name, nil
	}
	if path == filepath.Join(pkgDir, indexName+"."+options.ScriptExtension) {
		return name, nil
	}

	// Deep import: keep the sub-path below node_modules
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", nil
	}
	return collapseIndex(stripExt(filepath.ToSlash(rel)), o), nil
}

// collapseIndex strips a trailing /index so the id names the directory
// that resolves to it. Markup ids keep their index segment.
func collapseIndex(id string, o options.Options) string {
	if o.AssetType == options.Markup {
		return id
	}
	return strings.TrimSuffix(id, "/"+indexName)
}

// relativeTo returns path relative to root when root contains it.
func relativeTo(root, path string) (string, bool) {
	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	if !strings.HasPrefix(path, prefix) || len(path) == len(prefix) {
		return "", false
	}
	return path[len(prefix):], true
}

func stripExt(p string) string {
	return strings.TrimSuffix(p, filepath.Ext(p))
}

func lastIndex(segments []string, s string) int {
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] == s {
			return i
		}
	}
	return -1
}
