/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolve

import (
	"bytes"
	"strings"
	"testing"

	"bennypowers.dev/identify/cmd/session"
	"bennypowers.dev/identify/config"
	"bennypowers.dev/identify/testutil"
)

func TestResolveTo(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/project", "/project")
	cfg := config.Default()
	cfg.Aliases = map[string]string{"vendor-foo": "node_modules/foo/lib/foo.js"}

	s, err := session.FromConfig(mfs, "/project", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name    string
		from    string
		spec    string
		want    string
		wantErr string
	}{
		{"relative from file", "/project/foo.js", "./nested/foo", "/project/nested/foo.js\n", ""},
		{"relative from root", "", "./baz", "/project/baz.js\n", ""},
		{"package", "/project/baz.js", "bar", "/project/node_modules/bar/index.js\n", ""},
		{"configured alias", "", "vendor-foo", "/project/node_modules/foo/lib/foo.js\n", ""},
		{"missing from file", "/project/foo.js", "./nope", "", `cannot resolve "./nope" from /project/foo.js`},
		{"missing from root", "", "./nope", "", `cannot resolve "./nope"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := resolveTo(&buf, s, tt.from, tt.spec)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}
