/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolve provides the resolve command for identify.
package resolve

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bennypowers.dev/identify/cmd/session"
	"bennypowers.dev/identify/fs"
)

// Cmd is the resolve cobra command.
var Cmd = &cobra.Command{
	Use:   "resolve [from] <specifier>",
	Short: "Print the file a specifier refers to",
	Long: `Resolve a dependency specifier to an absolute file path.

With two arguments the specifier is resolved as if imported from the
first; with one, relative specifiers are taken from the project root.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	s, err := session.New(fs.NewOSFileSystem())
	if err != nil {
		return err
	}

	from, spec := "", args[0]
	if len(args) == 2 {
		from, spec = args[0], args[1]
	}

	if err := resolveTo(cmd.OutOrStdout(), s, from, spec); err != nil {
		return err
	}
	return s.WriteMetrics(cmd.ErrOrStderr())
}

func resolveTo(w io.Writer, s *session.Session, from, spec string) error {
	path, err := s.Resolver.Resolve(from, spec, s.Options)
	if err != nil {
		return err
	}
	if path == "" {
		if from == "" {
			return fmt.Errorf("cannot resolve %q", spec)
		}
		return fmt.Errorf("cannot resolve %q from %s", spec, from)
	}

	_, err = fmt.Fprintln(w, path)
	return err
}
