/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package id

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/identify/cmd/session"
	"bennypowers.dev/identify/config"
	"bennypowers.dev/identify/internal/logger"
	"bennypowers.dev/identify/testutil"
)

func newSession(t *testing.T, cfg *config.Config) *session.Session {
	t.Helper()
	mfs := testutil.NewFixtureFS(t, "fixtures/project", "/project")
	s, err := session.FromConfig(mfs, "/project", cfg)
	require.NoError(t, err)
	return s
}

func TestIdentifyAll(t *testing.T) {
	logger.SetOutput(io.Discard)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })

	s := newSession(t, config.Default())

	results, err := identifyAll(s, []string{"nested/*.js", "node_modules/foo/lib/foo.js", "missing.js"})
	require.NoError(t, err)

	assert.Equal(t, []Result{
		{Path: "/project/nested/bar.js", ID: "nested/bar"},
		{Path: "/project/nested/foo.js", ID: "nested/foo"},
		{Path: "/project/node_modules/foo/lib/foo.js", ID: "foo"},
	}, results)
}

func TestIdentifyAll_ConfiguredSources(t *testing.T) {
	s := newSession(t, &config.Config{Type: "js", Sources: []string{"src"}})

	results, err := identifyAll(s, []string{"src/**/*.js"})
	require.NoError(t, err)

	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"bat", "src", "package/foo"}, ids)
}

func TestIdentifyAll_MalformedManifest(t *testing.T) {
	s := newSession(t, config.Default())

	_, err := identifyAll(s, []string{"node_modules/broken/index.js"})
	assert.Error(t, err)
}

func TestWrite(t *testing.T) {
	results := []Result{{Path: "/project/foo.js", ID: "foo"}}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, write(&buf, results, "text"))
		assert.Equal(t, "foo\t/project/foo.js\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, write(&buf, results, "json"))

		var got []Result
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, results, got)
	})

	t.Run("unknown format", func(t *testing.T) {
		assert.Error(t, write(io.Discard, results, "yaml"))
	})
}
