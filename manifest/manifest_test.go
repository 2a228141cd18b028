/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package manifest

import (
	"errors"
	"testing"

	"bennypowers.dev/identify/internal/mapfs"
)

func TestRead(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		noFile   bool
		wantNil  bool
		wantMain string
		wantErr  error
	}{
		{name: "no manifest", noFile: true, wantNil: true},
		{name: "main field", content: `{"name":"foo","main":"lib/foo"}`, wantMain: "lib/foo"},
		{name: "no main field", content: `{"name":"foo"}`, wantMain: ""},
		{name: "comments tolerated", content: "{\n  // entry\n  \"main\": \"index.js\",\n}", wantMain: "index.js"},
		{name: "malformed", content: `{"main": `, wantErr: ErrMalformed},
		{name: "empty file", content: ``, wantErr: ErrMalformed},
		{name: "main not a string", content: `{"main": 42}`, wantErr: ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mfs := mapfs.New()
			mfs.AddDir("/project/node_modules/foo", 0755)
			if !tt.noFile {
				mfs.AddFile("/project/node_modules/foo/package.json", tt.content, 0644)
			}

			m, err := Read(mfs, "/project/node_modules/foo")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantNil {
				if m != nil {
					t.Errorf("expected nil manifest, got %+v", m)
				}
				return
			}
			if m.Main != tt.wantMain {
				t.Errorf("Main = %q, want %q", m.Main, tt.wantMain)
			}
		})
	}
}

func TestManifest_EntryPoint(t *testing.T) {
	tests := []struct {
		main string
		want string
	}{
		{"lib/foo", "/nm/foo/lib/foo.js"},
		{"lib/foo.js", "/nm/foo/lib/foo.js"},
		{"./lib/foo.js", "/nm/foo/lib/foo.js"},
		{"dist/foo.min", "/nm/foo/dist/foo.min.js"},
		{"index.mjs", "/nm/foo/index.mjs.js"},
	}

	for _, tt := range tests {
		t.Run(tt.main, func(t *testing.T) {
			m := &Manifest{Main: tt.main}
			if got := m.EntryPoint("/nm/foo", "js"); got != tt.want {
				t.Errorf("EntryPoint() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestManifest_HasMain(t *testing.T) {
	var nilManifest *Manifest
	if nilManifest.HasMain() {
		t.Error("nil manifest should not have main")
	}
	if (&Manifest{}).HasMain() {
		t.Error("empty main should not count")
	}
	if !(&Manifest{Main: "lib/foo"}).HasMain() {
		t.Error("expected HasMain for lib/foo")
	}
}
