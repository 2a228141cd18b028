/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"errors"
	"testing"

	"bennypowers.dev/identify/cache"
	"bennypowers.dev/identify/internal/mapfs"
	"bennypowers.dev/identify/options"
)

func TestIdentify(t *testing.T) {
	src := &options.Options{Sources: []string{"src"}}

	tests := []struct {
		name string
		path string
		opts *options.Options
		want string
	}{
		{"default source directory", "/project/foo.js", &options.Options{Sources: []string{"."}}, "foo"},
		{"nested in default source directory", "/project/nested/bar.js", nil, "nested/bar"},
		{"specified source directory", "/project/src/bat.js", src, "bat"},
		{"nested in specified source directory", "/project/src/package/foo.js", src, "package/foo"},
		{"index in source root", "/project/src/index.js", src, "src"},
		{"nested index", "/project/style/theme/index.css", &options.Options{AssetType: options.Style}, "style/theme"},
		{"markup index is kept", "/project/pages/index.html", &options.Options{AssetType: options.Markup}, "pages/index"},
		{"markup page", "/project/pages/about.html", &options.Options{AssetType: options.Markup}, "pages/about"},
		{"package index", "/project/node_modules/bar/index.js", nil, "bar"},
		{"package main", "/project/node_modules/foo/lib/foo.js", nil, "foo"},
		{"scoped package main", "/project/node_modules/@scope/pkg/dist/pkg.js", nil, "@scope/pkg"},
		{"package deep import", "/project/node_modules/foo/lib/util/index.js", nil, "foo/lib/util"},
		{"package index when main is missing", "/project/node_modules/missing-main/index.js", nil, "missing-main"},
		{"relative path", "nested/foo.js", nil, "nested/foo"},
		{"missing file", "/project/blah.js", nil, ""},
		{"empty path", "", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newFixtureResolver(t)
			got, err := r.Identify(tt.path, tt.opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Identify(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestIdentify_OutsideSources(t *testing.T) {
	r, mfs := newFixtureResolver(t)
	mfs.AddFile("/other/x.js", "", 0644)

	got, err := r.Identify("/other/x.js", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("Identify() = %q, want empty for a path outside every source", got)
	}
	if n := r.Cache().Len(options.Script); n != 0 {
		t.Errorf("empty result was cached (%d entries)", n)
	}
}

func TestIdentify_MalformedManifest(t *testing.T) {
	r, _ := newFixtureResolver(t)

	_, err := r.Identify("/project/node_modules/broken/index.js", nil)
	if !errors.Is(err, ErrMalformedManifest) {
		t.Fatalf("err = %v, want ErrMalformedManifest", err)
	}
}

func TestIdentify_NotFoundIsNotCached(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddDir("/project", 0755)
	r := New(mfs, cache.New(), WithCwd("/project"))

	if got, _ := r.Identify("/project/late.js", nil); got != "" {
		t.Fatalf("Identify() = %q before the file exists", got)
	}

	mfs.AddFile("/project/late.js", "", 0644)

	got, err := r.Identify("/project/late.js", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "late" {
		t.Errorf("Identify() = %q, want late", got)
	}
}

func TestIdentify_FirstSourceWins(t *testing.T) {
	r, _ := newFixtureResolver(t)

	got, err := r.Identify("/project/src/package/foo.js", &options.Options{Sources: []string{".", "src"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "src/package/foo" {
		t.Errorf("Identify() = %q, want src/package/foo", got)
	}
}

// Identify then Resolve on the produced id returns the original path for
// package entry points and ordinary source files.
func TestRoundTrip(t *testing.T) {
	src := &options.Options{Sources: []string{"src"}}
	style := &options.Options{AssetType: options.Style}

	tests := []struct {
		path string
		opts *options.Options
	}{
		{"/project/node_modules/foo/lib/foo.js", nil},
		{"/project/node_modules/bar/index.js", nil},
		{"/project/node_modules/@scope/pkg/dist/pkg.js", nil},
		{"/project/baz.js", nil},
		{"/project/nested/bar.js", nil},
		{"/project/lib/x.js", nil},
		{"/project/src/bat.js", src},
		{"/project/src/package/foo.js", src},
		{"/project/src/index.js", src},
		{"/project/pkgdir/index.js", nil},
		{"/project/foo.css", style},
		{"/project/style/theme/index.css", style},
		{"/project/pages/about.html", &options.Options{AssetType: options.Markup}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			identifier, _ := newFixtureResolver(t)
			id, err := identifier.Identify(tt.path, tt.opts)
			if err != nil {
				t.Fatalf("Identify: %v", err)
			}
			if id == "" {
				t.Fatalf("Identify(%q) returned no id", tt.path)
			}

			// A fresh resolver so the answer comes from the filesystem
			resolver, _ := newFixtureResolver(t)
			got, err := resolver.Resolve("", id, tt.opts)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if got != tt.path {
				t.Errorf("Resolve(%q) = %q, want %q", id, got, tt.path)
			}
		})
	}
}
