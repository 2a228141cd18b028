/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cache memoizes id/path pairs per asset type and keeps a durable
// alias table that survives cache resets.
package cache

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"bennypowers.dev/identify/options"
)

// Alias is an explicitly registered id/path pair.
type Alias struct {
	ID   string
	Path string
}

type table struct {
	pathToID map[string]string
	idToPath map[string]string
}

func newTable() *table {
	return &table{
		pathToID: make(map[string]string),
		idToPath: make(map[string]string),
	}
}

// Store is a symmetric id<->path cache keyed by asset type.
// The zero value is not usable; call New.
type Store struct {
	mu      sync.RWMutex
	tables  map[options.AssetType]*table
	aliases []Alias

	hits   *prometheus.CounterVec
	misses *prometheus.CounterVec
	stores *prometheus.CounterVec
}

// New creates an empty store.
func New() *Store {
	labelNames := []string{"asset_type"}
	return &Store{
		tables: make(map[options.AssetType]*table),
		hits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "identify_cache_hits_total",
				Help: "Total number of cache lookups answered from the cache",
			},
			labelNames,
		),
		misses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "identify_cache_misses_total",
				Help: "Total number of cache lookups that fell through to the filesystem",
			},
			labelNames,
		),
		stores: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "identify_cache_stores_total",
				Help: "Total number of id/path pairs stored",
			},
			labelNames,
		),
	}
}

// Register adds the store's counters to reg.
// Registering the same store twice is not an error.
func (s *Store) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{s.hits, s.misses, s.stores} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}

// Get looks up key for the asset type. An absolute path key returns its
// id; any other key is treated as an id and returns its path.
func (s *Store) Get(t options.AssetType, key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	var ok bool
	if tbl := s.tables[t]; tbl != nil {
		if filepath.IsAbs(key) {
			value, ok = tbl.pathToID[key]
		} else {
			value, ok = tbl.idToPath[key]
		}
	}

	if ok {
		s.hits.WithLabelValues(t.String()).Inc()
	} else {
		s.misses.WithLabelValues(t.String()).Inc()
	}
	return value, ok
}

// Put stores path and id in both directions. Empty values are ignored.
func (s *Store) Put(t options.AssetType, path, id string) {
	if path == "" || id == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.putLocked(t, path, id)
}

func (s *Store) putLocked(t options.AssetType, path, id string) {
	tbl := s.tables[t]
	if tbl == nil {
		tbl = newTable()
		s.tables[t] = tbl
	}
	tbl.pathToID[path] = id
	tbl.idToPath[id] = path
	s.stores.WithLabelValues(t.String()).Inc()
}

// Alias registers id as a name for path. The asset type is inferred from
// the path's extension. Aliases are replayed after every Clear.
func (s *Store) Alias(id, path string) {
	if path == "" || id == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.aliases = append(s.aliases, Alias{ID: id, Path: path})
	s.putLocked(options.AssetTypeForPath(path), path, id)
}

// AliasPath returns the path most recently aliased as id for the asset
// type. Ids stored by Put are not consulted.
func (s *Store) AliasPath(t options.AssetType, id string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.aliases) - 1; i >= 0; i-- {
		a := s.aliases[i]
		if a.ID == id && options.AssetTypeForPath(a.Path) == t {
			s.hits.WithLabelValues(t.String()).Inc()
			return a.Path, true
		}
	}
	s.misses.WithLabelValues(t.String()).Inc()
	return "", false
}

// Aliases returns the registered aliases in registration order.
func (s *Store) Aliases() []Alias {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Alias, len(s.aliases))
	copy(out, s.aliases)
	return out
}

// Clear empties the cache for every asset type, then replays the aliases.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tables = make(map[options.AssetType]*table)
	for _, a := range s.aliases {
		s.putLocked(options.AssetTypeForPath(a.Path), a.Path, a.ID)
	}
}

// Len returns the number of cached paths for the asset type.
func (s *Store) Len(t options.AssetType) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if tbl := s.tables[t]; tbl != nil {
		return len(tbl.pathToID)
	}
	return 0
}
