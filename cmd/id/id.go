/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package id provides the id command for identify.
package id

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bennypowers.dev/identify/cmd/session"
	"bennypowers.dev/identify/config"
	"bennypowers.dev/identify/fs"
	"bennypowers.dev/identify/internal/logger"
)

// errNoIDs is returned when none of the given paths could be identified.
var errNoIDs = errors.New("no module ids found")

// Cmd is the id cobra command.
var Cmd = &cobra.Command{
	Use:   "id <paths...>",
	Short: "Print the module id of each file",
	Long: `Print the module id other files would import each file by.

Paths may be globs (quoted), e.g. 'src/**/*.js'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "text", "Output format: text, json")
}

// Result pairs a file with its module id.
type Result struct {
	Path string `json:"path"`
	ID   string `json:"id"`
}

func run(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("error reading format flag: %w", err)
	}

	s, err := session.New(fs.NewOSFileSystem())
	if err != nil {
		return err
	}

	results, err := identifyAll(s, args)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return errNoIDs
	}

	if err := write(cmd.OutOrStdout(), results, format); err != nil {
		return err
	}
	return s.WriteMetrics(cmd.ErrOrStderr())
}

// identifyAll expands globs and identifies every matching file.
// Files without an id are skipped with a warning.
func identifyAll(s *session.Session, patterns []string) ([]Result, error) {
	paths, err := config.ExpandPaths(s.FS, s.Root, patterns)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(paths))
	for _, path := range paths {
		id, err := s.Resolver.Identify(path, s.Options)
		if err != nil {
			return nil, err
		}
		if id == "" {
			logger.Warn("no id for %s", path)
			continue
		}
		results = append(results, Result{Path: path, ID: id})
	}
	return results, nil
}

func write(w io.Writer, results []Result, format string) error {
	switch format {
	case "json":
		out, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshaling results: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case "text":
		for _, r := range results {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", r.ID, r.Path); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
