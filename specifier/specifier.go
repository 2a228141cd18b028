/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package specifier classifies dependency specifiers.
package specifier

import (
	"regexp"
	"strings"

	"bennypowers.dev/identify/options"
)

// Kind indicates how a specifier is located.
type Kind int

const (
	// KindBare is resolved through packages and source roots.
	KindBare Kind = iota
	// KindRelative is resolved against the referencing file's directory.
	KindRelative
	// KindAbsolute is an absolute filesystem path.
	KindAbsolute
)

func (k Kind) String() string {
	switch k {
	case KindRelative:
		return "relative"
	case KindAbsolute:
		return "absolute"
	default:
		return "bare"
	}
}

// Specifier represents a classified dependency specifier.
type Specifier struct {
	// Kind is the specifier class.
	Kind Kind

	// Raw is the string supplied by the caller.
	Raw string

	// Value is the specifier after rewriting, e.g. "./foo" for a
	// stylesheet's "foo", or "foo" for "npm:foo".
	Value string

	// Package is the package name of a bare specifier ("@scope/pkg" or "pkg").
	Package string

	// SubPath is the path within the package, without a leading slash.
	SubPath string
}

// NPMProtocol is stripped from bare specifiers.
const NPMProtocol = "npm:"

// packagePattern matches @scope/pkg/path, pkg/path, or bare pkg
var packagePattern = regexp.MustCompile(`^(@[^/]+/[^/]+|[^/]+)(/.*)?$`)

// Classify classifies spec for the given asset type.
func Classify(spec string, assetType options.AssetType) *Specifier {
	s := &Specifier{Raw: spec, Value: spec}

	// Stylesheets reference siblings without a leading ./
	if assetType == options.Style &&
		!strings.Contains(spec, "/") &&
		!strings.HasPrefix(spec, ".") {
		s.Value = "./" + spec
	}

	switch {
	case strings.HasPrefix(s.Value, "/"):
		s.Kind = KindAbsolute
	case strings.HasPrefix(s.Value, "."):
		s.Kind = KindRelative
	default:
		s.Kind = KindBare
		s.Value = strings.TrimPrefix(s.Value, NPMProtocol)
		s.Package, s.SubPath = SplitPackage(s.Value)
	}

	return s
}

// SplitPackage splits a bare specifier into package name and sub-path.
func SplitPackage(spec string) (pkg, subPath string) {
	matches := packagePattern.FindStringSubmatch(spec)
	if len(matches) != 3 {
		return "", ""
	}
	return matches[1], strings.Trim(matches[2], "/")
}

// IsBare returns true if this specifier is resolved through packages and source roots.
func (s *Specifier) IsBare() bool {
	return s.Kind == KindBare
}

// IsRelative returns true if this specifier starts with a dot.
func (s *Specifier) IsRelative() bool {
	return s.Kind == KindRelative
}

// IsAbsolute returns true if this specifier is an absolute path.
func (s *Specifier) IsAbsolute() bool {
	return s.Kind == KindAbsolute
}

// IsPackageName returns true if the specifier names a package with no sub-path.
func (s *Specifier) IsPackageName() bool {
	return s.Kind == KindBare && s.Package != "" && s.SubPath == ""
}
