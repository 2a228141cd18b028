/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"fmt"
	"path/filepath"
	"strings"

	idfs "bennypowers.dev/identify/fs"
	"bennypowers.dev/identify/manifest"
	"bennypowers.dev/identify/options"
	"bennypowers.dev/identify/specifier"
)

// resolveBare resolves a specifier with no leading dot or slash.
// Script packages are looked up in node_modules first; then each source
// root is tried in order.
func (r *Resolver) resolveBare(ref string, s *specifier.Specifier, o options.Options) (string, error) {
	foundRoot := false
	if o.AssetType == options.Script && s.Package != "" {
		path, found, err := r.resolvePackage(ref, s, o)
		if err != nil || path != "" {
			return path, err
		}
		foundRoot = found
	}

	for _, src := range o.Sources {
		isPackageRoot := filepath.Base(src) == options.PackageRoot
		// The nearest node_modules already answered for this package
		if isPackageRoot && foundRoot {
			continue
		}

		candidate := filepath.Join(src, filepath.FromSlash(s.Value))
		if isPackageRoot && s.IsPackageName() {
			if pkgDir := r.lookup(candidate, o, packageDepth(s.Package)); pkgDir != "" {
				path, err := r.resolvePackageDir(pkgDir, o)
				if err != nil || path != "" {
					return path, err
				}
			}
		}
		if path := r.locateFile(candidate, o); path != "" {
			return path, nil
		}
	}

	return "", nil
}

// resolvePackage looks s up in the node_modules directories above ref.
// found reports whether any node_modules directory was seen.
func (r *Resolver) resolvePackage(ref string, s *specifier.Specifier, o options.Options) (path string, found bool, err error) {
	for _, root := range r.packageRoots(r.dirOf(ref), o.AllAncestors) {
		found = true

		pkgDir := r.lookup(filepath.Join(root, filepath.FromSlash(s.Package)), o, packageDepth(s.Package))
		if pkgDir == "" {
			continue
		}

		if s.SubPath != "" {
			path = r.locateFile(filepath.Join(pkgDir, filepath.FromSlash(s.SubPath)), o)
		} else {
			path, err = r.resolvePackageDir(pkgDir, o)
			if err != nil {
				return "", found, err
			}
		}
		if path != "" {
			return path, found, nil
		}
	}

	return "", found, nil
}

// packageRoots walks up from dir collecting node_modules directories,
// nearest first. Unless all is set it stops at the first one.
func (r *Resolver) packageRoots(dir string, all bool) []string {
	var roots []string

	for {
		candidate := filepath.Join(dir, options.PackageRoot)
		if idfs.IsDir(r.fs, candidate) {
			roots = append(roots, candidate)
			if !all {
				break
			}
		}

		// Move up one directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return roots
}

// resolvePackageDir returns the entry point of the package in pkgDir: the
// manifest's main field when declared, otherwise index.js. A declared main
// that does not exist is not-found; it does not fall back to the index.
func (r *Resolver) resolvePackageDir(pkgDir string, o options.Options) (string, error) {
	m, err := manifest.Read(r.fs, pkgDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve package %s: %w", filepath.Base(pkgDir), err)
	}

	if m.HasMain() {
		return r.lookup(m.EntryPoint(pkgDir, options.ScriptExtension), o, 1), nil
	}

	return r.lookup(filepath.Join(pkgDir, "index."+options.ScriptExtension), o, 1), nil
}

// packageDepth is the number of path segments in a package name.
func packageDepth(pkg string) int {
	return strings.Count(pkg, "/") + 1
}
