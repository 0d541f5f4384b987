// Copyright 2026 The Cerca Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/jcodagnone/cerca/spatial"
)

// FileCache is a persistent name→coordinates cache stored as a single
// JSON document. Entries never expire.
type FileCache struct {
	path string

	mu      sync.Mutex
	entries map[string]spatial.Point
}

// NewFileCache creates a cache backed by the given file. The file is
// loaded lazily on first use; a missing or corrupt file starts empty.
func NewFileCache(path string) *FileCache {
	return &FileCache{
		path:    path,
		entries: nil,
	}
}

// Path returns the backing file location.
func (c *FileCache) Path() string {
	return c.path
}

// Caller must hold c.mu.
func (c *FileCache) loadLocked() {
	if c.entries != nil {
		return
	}

	c.entries = make(map[string]spatial.Point)

	data, err := os.ReadFile(filepath.Clean(c.path))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("reading geocode cache %s: %v", c.path, err)
		}

		return
	}

	if len(data) == 0 {
		return
	}

	if err := json.Unmarshal(data, &c.entries); err != nil {
		log.Printf("geocode cache %s is corrupt, starting empty: %v", c.path, err)
		c.entries = make(map[string]spatial.Point)
	}
}

// Caller must hold c.mu.
func (c *FileCache) persistLocked() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("setting up cache directory: %w", err)
	}

	output, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling geocode cache: %w", err)
	}

	if err := os.WriteFile(c.path, output, 0o600); err != nil {
		return fmt.Errorf("writing geocode cache: %w", err)
	}

	return nil
}

// Get looks up a place name. The key is matched exactly as given.
func (c *FileCache) Get(name string) (spatial.Point, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.loadLocked()

	pt, ok := c.entries[name]

	return pt, ok
}

// Put stores a resolution and persists the cache immediately. Invalid
// points are skipped. Write failures are logged but do not fail the
// caller: the resolution is still usable for this run.
func (c *FileCache) Put(name string, pt spatial.Point) {
	if !pt.Valid() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.loadLocked()
	c.entries[name] = pt

	if err := c.persistLocked(); err != nil {
		log.Printf("persisting geocode cache: %v", err)
	}
}

// Len returns the number of cached entries.
func (c *FileCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.loadLocked()

	return len(c.entries)
}

// Clear removes every entry and persists the empty cache.
func (c *FileCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]spatial.Point)

	return c.persistLocked()
}
