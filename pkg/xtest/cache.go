package xtest

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/xlg-lang/xlg/pkg/hash"
)

// Status is the outcome of exercising one test (test_runner.rs's
// TestResult, collapsed to the three cases that survive dropping actual
// execution: Pass/Fail come from type-checking the definition, Skipped
// from its Attributes).
type Status string

const (
	StatusPass    Status = "pass"
	StatusFail    Status = "fail"
	StatusSkipped Status = "skipped"
)

// Outcome is one cached or fresh test result (test_runner.rs's
// TestResult::{Pass,Fail,Skipped}, minus the Cached wrapper variant —
// this cache reports staleness through CachedFrom instead of nesting the
// prior result).
type Outcome struct {
	Status     Status    `toml:"status"`
	Message    string    `toml:"message,omitempty"`
	DurationMs int64     `toml:"duration_ms"`
	RanAt      time.Time `toml:"ran_at"`
}

func (o Outcome) IsPass() bool { return o.Status == StatusPass }

// cacheFile is the on-disk shape of a Cache directory's single ledger
// file, hex hash to Outcome (test_cache.rs's TestCache persistence,
// swapped from the original's per-hash JSON blobs to one TOML table, in
// the config-file style pkg/namespace/config.go already uses elsewhere
// in this codebase).
type cacheFile struct {
	Results map[string]Outcome `toml:"results"`
}

// Cache is a content-hash-keyed store of test outcomes, persisted at one
// TOML file under dir (test_cache.rs's TestCache::new(cache_dir)).
type Cache struct {
	mu   sync.Mutex
	path string
	data cacheFile
}

// OpenCache loads (or initializes empty) the cache ledger at
// dir/results.toml.
func OpenCache(dir string) (*Cache, error) {
	path := filepath.Join(dir, "results.toml")
	c := &Cache{path: path, data: cacheFile{Results: map[string]Outcome{}}}
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &c.data); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}
	if c.data.Results == nil {
		c.data.Results = map[string]Outcome{}
	}
	return c, nil
}

// Lookup returns the cached Outcome for h, if any (test_cache.rs's
// get_cached_result).
func (c *Cache) Lookup(h hash.Hash) (Outcome, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	o, ok := c.data.Results[h.String()]
	return o, ok
}

// Record stores o under h, overwriting any prior entry (test_cache.rs's
// store_result); a definition's content hash changes whenever its body
// does, so a stale entry under the same hash never happens.
func (c *Cache) Record(h hash.Hash, o Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.Results[h.String()] = o
}

// Save writes the cache back to disk, creating dir if needed.
func (c *Cache) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(c.path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(c.data)
}
