/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolver maps dependency specifiers to files and files back to
// module identifiers, using Node-style extension, index and package lookup.
package resolver

import (
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"bennypowers.dev/identify/cache"
	idfs "bennypowers.dev/identify/fs"
	"bennypowers.dev/identify/internal/logger"
	"bennypowers.dev/identify/options"
	"bennypowers.dev/identify/specifier"
)

// Resolver resolves specifiers to paths and paths to ids.
// It is not safe for concurrent use unless callers serialize access;
// the cache store it shares is.
type Resolver struct {
	fs    idfs.FileSystem
	cache *cache.Store
	cwd   string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCwd sets the directory relative sources and empty referencing paths
// are resolved against. Defaults to the process working directory.
func WithCwd(dir string) Option {
	return func(r *Resolver) {
		r.cwd = dir
	}
}

// New creates a resolver reading from fsys and memoizing into store.
// A nil store gets a private one.
func New(fsys idfs.FileSystem, store *cache.Store, opts ...Option) *Resolver {
	r := &Resolver{
		fs:    fsys,
		cache: store,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.cache == nil {
		r.cache = cache.New()
	}
	if r.cwd == "" {
		if wd, err := os.Getwd(); err == nil {
			r.cwd = wd
		} else {
			r.cwd = string(filepath.Separator)
		}
	}
	r.cwd = filepath.Clean(r.cwd)

	return r
}

// Cache returns the store backing this resolver.
func (r *Resolver) Cache() *cache.Store {
	return r.cache
}

// Resolve returns the absolute path spec refers to when imported from ref,
// or "" when nothing matches. ref may be empty for absolute specifiers and
// is otherwise taken as the working directory.
//
// An error is returned only for a package manifest that cannot be parsed.
func (r *Resolver) Resolve(ref, spec string, opts *options.Options) (string, error) {
	if spec == "" {
		return "", nil
	}

	o := options.Normalize(opts, r.cwd)
	s := specifier.Classify(spec, o.AssetType)

	if path, ok := r.cached(ref, s, o); ok {
		logger.Debug("cache hit: %s -> %s", spec, path)
		return path, nil
	}

	var path string
	var err error
	switch {
	case s.IsAbsolute():
		path = r.locateFile(filepath.Clean(s.Value), o)
	case s.IsRelative():
		path = r.locateFile(filepath.Join(r.dirOf(ref), s.Value), o)
	default:
		path, err = r.resolveBare(ref, s, o)
	}
	if err != nil {
		return "", err
	}
	if path == "" {
		logger.Debug("not found: %s (from %s)", spec, ref)
		return "", nil
	}

	id, err := r.identify(path, o)
	if err != nil {
		return "", err
	}
	r.cache.Put(o.AssetType, path, id)

	return path, nil
}

// Identify returns the module id for the file at path, or "" when the
// file does not exist or lies outside every source root.
//
// An error is returned only for a package manifest that cannot be parsed.
func (r *Resolver) Identify(path string, opts *options.Options) (string, error) {
	if path == "" {
		return "", nil
	}

	o := options.Normalize(opts, r.cwd)
	path = r.abs(path)

	if id, ok := r.cache.Get(o.AssetType, path); ok {
		logger.Debug("cache hit: %s -> %s", path, id)
		return id, nil
	}

	// Cache under the on-disk spelling
	path = r.lookup(path, o, 1)
	if path == "" {
		return "", nil
	}

	id, err := r.identify(path, o)
	if err != nil {
		return "", err
	}
	r.cache.Put(o.AssetType, path, id)

	return id, nil
}

// Alias registers each id as a name for its path. Aliases outlive ClearCache.
// Relative paths are taken from the working directory.
func (r *Resolver) Alias(mapping map[string]string) {
	for _, id := range slices.Sorted(maps.Keys(mapping)) {
		r.cache.Alias(id, r.abs(mapping[id]))
	}
}

// ClearCache drops every memoized result. Registered aliases are kept.
func (r *Resolver) ClearCache() {
	r.cache.Clear()
}

// cached answers from the cache without touching the filesystem.
// Path keys are stored with their on-disk spelling, so a candidate that
// differs in case misses and is looked up afresh.
func (r *Resolver) cached(ref string, s *specifier.Specifier, o options.Options) (string, bool) {
	var candidate string
	switch {
	case s.IsBare():
		// Ids, including aliases, are looked up as the caller wrote them
		return r.cache.Get(o.AssetType, s.Raw)
	case s.IsAbsolute():
		candidate = filepath.Clean(s.Value)
	case s.IsRelative():
		// A stylesheet sibling written without ./ may still name an alias
		if !strings.HasPrefix(s.Raw, ".") {
			if path, ok := r.cache.AliasPath(o.AssetType, s.Raw); ok {
				return path, true
			}
		}
		candidate = filepath.Join(r.dirOf(ref), s.Value)
	}

	if _, ok := r.cache.Get(o.AssetType, candidate); ok {
		return candidate, true
	}
	return "", false
}

// dirOf returns the directory relative specifiers in ref are resolved from.
func (r *Resolver) dirOf(ref string) string {
	if ref == "" {
		return r.cwd
	}
	return filepath.Dir(r.abs(ref))
}

func (r *Resolver) abs(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(r.cwd, p)
}
