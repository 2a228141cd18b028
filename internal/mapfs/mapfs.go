/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package mapfs provides an in-memory filesystem implementation for testing.
package mapfs

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"
	"testing/fstest"
	"time"
)

// MapFileSystem implements FileSystem using an in-memory fstest.MapFS.
// This is useful for testing without touching the real filesystem.
type MapFileSystem struct {
	mu              sync.RWMutex
	mapFS           fstest.MapFS
	modTime         time.Time
	caseInsensitive bool
	reads           int
}

// Option configures a MapFileSystem.
type Option func(*MapFileSystem)

// CaseInsensitive makes lookups ignore case while ReadDir keeps the
// stored names, the way default macOS and Windows volumes behave.
func CaseInsensitive() Option {
	return func(mfs *MapFileSystem) {
		mfs.caseInsensitive = true
	}
}

// New creates a new in-memory filesystem for testing.
func New(opts ...Option) *MapFileSystem {
	mfs := &MapFileSystem{
		mapFS:   make(fstest.MapFS),
		modTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(mfs)
	}
	return mfs
}

// AddFile adds a file to the in-memory filesystem.
func (mfs *MapFileSystem) AddFile(p string, content string, mode fs.FileMode) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	p = cleanPath(p)
	mfs.mapFS[p] = &fstest.MapFile{
		Data:    []byte(content),
		Mode:    mode,
		ModTime: mfs.modTime,
	}
}

// AddDir adds a directory to the in-memory filesystem.
func (mfs *MapFileSystem) AddDir(p string, mode fs.FileMode) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	p = cleanPath(p)
	mfs.mapFS[p] = &fstest.MapFile{
		Mode:    fs.ModeDir | mode.Perm(),
		ModTime: mfs.modTime,
	}
}

// Remove deletes the named file or directory entry.
func (mfs *MapFileSystem) Remove(name string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	name = cleanPath(name)

	if _, exists := mfs.mapFS[name]; !exists {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}

	delete(mfs.mapFS, name)
	return nil
}

// ReadFile implements FileSystem.
func (mfs *MapFileSystem) ReadFile(name string) ([]byte, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.reads++
	return fs.ReadFile(mfs.mapFS, mfs.lookup(name))
}

// Stat implements FileSystem.
func (mfs *MapFileSystem) Stat(name string) (fs.FileInfo, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.reads++
	return fs.Stat(mfs.mapFS, mfs.lookup(name))
}

// Exists implements FileSystem.
func (mfs *MapFileSystem) Exists(p string) bool {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.reads++
	p = mfs.lookup(p)
	if p == "." {
		return true
	}

	if _, exists := mfs.mapFS[p]; exists {
		return true
	}

	prefix := p + "/"
	for filePath := range mfs.mapFS {
		if strings.HasPrefix(filePath, prefix) {
			return true
		}
	}

	return false
}

// ReadDir implements FileSystem.
func (mfs *MapFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.reads++
	return fs.ReadDir(mfs.mapFS, mfs.lookup(name))
}

// Open implements FileSystem.
func (mfs *MapFileSystem) Open(name string) (fs.File, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.reads++
	return mfs.mapFS.Open(mfs.lookup(name))
}

// Reads returns the number of filesystem queries served so far.
// Tests use it to assert that a lookup was answered without I/O.
func (mfs *MapFileSystem) Reads() int {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	return mfs.reads
}

// ListFiles returns all files in the MapFS for debugging.
func (mfs *MapFileSystem) ListFiles() map[string]string {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	result := make(map[string]string)
	for p, file := range mfs.mapFS {
		if file.Mode.IsDir() {
			result["/"+p] = "directory"
		} else {
			result["/"+p] = fmt.Sprintf("file (%d bytes)", len(file.Data))
		}
	}
	return result
}

// lookup maps a requested path to its stored spelling.
// In case-sensitive mode it only cleans the path.
func (mfs *MapFileSystem) lookup(p string) string {
	p = cleanPath(p)
	if !mfs.caseInsensitive || p == "." {
		return p
	}
	if _, exists := mfs.mapFS[p]; exists {
		return p
	}

	for stored := range mfs.mapFS {
		if strings.EqualFold(stored, p) {
			return stored
		}
		// Implicit directory: a stored path below p
		if len(stored) > len(p) && stored[len(p)] == '/' && strings.EqualFold(stored[:len(p)], p) {
			return stored[:len(p)]
		}
	}
	return p
}

func cleanPath(p string) string {
	cleaned := path.Clean(p)
	if !path.IsAbs(cleaned) {
		cleaned = "/" + cleaned
	}
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" {
		return "."
	}
	return cleaned
}
