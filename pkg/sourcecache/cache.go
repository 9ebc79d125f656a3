// Package sourcecache reads source files referenced by documentation blocks.
//
// Example and inclusion markup can pull the same file into many pages; the
// cache keeps recently read contents so each file is read from disk once per
// run while it stays hot.
package sourcecache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize is the number of files kept when no size is configured
const DefaultSize = 256

// Stats reports cache effectiveness
type Stats struct {
	Hits   int
	Misses int
}

// Cache is an LRU of file contents keyed by path
type Cache struct {
	root  string
	files *lru.Cache[string, string]
	stats Stats
}

// New creates a cache holding up to size files
func New(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	files, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create source cache: %w", err)
	}
	return &Cache{files: files}, nil
}

// SetRoot makes relative paths resolve against root instead of the working
// directory
func (c *Cache) SetRoot(root string) {
	c.root = root
}

// ReadSource returns the contents of path. ok is false when the file does not exist.
func (c *Cache) ReadSource(path string) (content string, ok bool, err error) {
	if c.root != "" && !filepath.IsAbs(path) {
		path = filepath.Join(c.root, path)
	}
	if content, ok := c.files.Get(path); ok {
		c.stats.Hits++
		return content, true, nil
	}
	c.stats.Misses++

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read source %s: %w", path, err)
	}

	content = string(data)
	c.files.Add(path, content)
	return content, true, nil
}

// Stats returns the hit and miss counts so far
func (c *Cache) Stats() Stats {
	return c.stats
}
