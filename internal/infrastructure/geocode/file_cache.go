package geocode

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
)

// FileCache keeps lookups in a JSON file. Every Set rewrites the file.
type FileCache struct {
	mu      sync.Mutex
	path    string
	entries map[string]Lookup
}

var _ CoordinateCache = (*FileCache)(nil)

func OpenFileCache(path string) (*FileCache, error) {
	c := &FileCache{path: path, entries: make(map[string]Lookup)}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return c, nil
	case err != nil:
		return nil, fmt.Errorf("read coordinate cache: %w", err)
	}
	if len(raw) == 0 {
		return c, nil
	}
	if err := sonic.Unmarshal(raw, &c.entries); err != nil {
		return nil, fmt.Errorf("decode coordinate cache %s: %w", path, err)
	}
	return c, nil
}

func (c *FileCache) Get(_ context.Context, key string) (Lookup, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok, nil
}

func (c *FileCache) Set(_ context.Context, key string, value Lookup) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return c.writeLocked()
}

func (c *FileCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *FileCache) writeLocked() error {
	raw, err := sonic.ConfigStd.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode coordinate cache: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write coordinate cache: %w", err)
	}
	return os.Rename(tmp, c.path)
}
