/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package session builds the resolver shared by the CLI commands from the
// config file and command-line flags.
package session

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/viper"

	"bennypowers.dev/identify/cache"
	"bennypowers.dev/identify/config"
	idfs "bennypowers.dev/identify/fs"
	"bennypowers.dev/identify/options"
	"bennypowers.dev/identify/resolver"
)

// Session is a configured resolver plus the options each call uses.
type Session struct {
	Root     string
	FS       idfs.FileSystem
	Resolver *resolver.Resolver
	Options  *options.Options

	// Metrics collects the cache counters when enabled.
	Metrics *prometheus.Registry
}

// New loads .config/identify.* from the project root and layers the
// command-line flags over it. Flags win when set.
func New(filesystem idfs.FileSystem) (*Session, error) {
	root, err := rootDir(viper.GetString("root"))
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(filesystem, root)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.Default()
	}

	v := viper.GetViper()
	v.SetDefault("type", cfg.Type)
	v.SetDefault("ext", cfg.Extensions)
	v.SetDefault("source", cfg.Sources)
	v.SetDefault("case-sensitive", cfg.CaseSensitive)
	v.SetDefault("all-ancestors", cfg.AllAncestors)

	merged := &config.Config{
		Type:          v.GetString("type"),
		Extensions:    v.GetStringSlice("ext"),
		Sources:       v.GetStringSlice("source"),
		CaseSensitive: v.GetBool("case-sensitive"),
		AllAncestors:  v.GetBool("all-ancestors"),
		Aliases:       cfg.Aliases,
	}

	s, err := FromConfig(filesystem, root, merged)
	if err != nil {
		return nil, err
	}
	if viper.GetBool("metrics") {
		if err := s.EnableMetrics(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// FromConfig builds a session from an already merged config.
func FromConfig(filesystem idfs.FileSystem, root string, cfg *config.Config) (*Session, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}

	r := resolver.New(filesystem, cache.New(), resolver.WithCwd(root))
	r.Alias(cfg.AliasPaths(root))

	return &Session{
		Root:     root,
		FS:       filesystem,
		Resolver: r,
		Options:  opts,
	}, nil
}

// EnableMetrics registers the resolver's cache counters with a fresh registry.
func (s *Session) EnableMetrics() error {
	reg := prometheus.NewRegistry()
	if err := s.Resolver.Cache().Register(reg); err != nil {
		return fmt.Errorf("failed to register cache metrics: %w", err)
	}
	s.Metrics = reg
	return nil
}

// WriteMetrics writes the collected counters in the Prometheus text format.
// It does nothing unless metrics are enabled.
func (s *Session) WriteMetrics(w io.Writer) error {
	if s.Metrics == nil {
		return nil
	}
	families, err := s.Metrics.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func rootDir(flag string) (string, error) {
	if flag == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(flag)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %s: %w", flag, err)
	}
	return abs, nil
}
