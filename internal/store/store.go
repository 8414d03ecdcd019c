package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"RateVault/internal/model"
)

const (
	cacheFileName      = "exchange_rates.json"
	favoritesFileName  = "favorites.json"
	currenciesFileName = "currencies.json"
	historicalDirName  = "historical"
)

// Store persists the rolling rate cache, daily historical snapshots, the
// favorites list, and the known-currency list under a single storage root.
// All file access is serialized by an internal mutex; concurrent writers
// from separate processes are not supported.
type Store struct {
	mu              sync.Mutex
	root            string
	cacheTimeout    time.Duration
	currencyTimeout time.Duration
}

// NewStore creates a Store rooted at the given directory, creating it and
// the historical subdirectory if needed.
func NewStore(root string, cacheTimeout, currencyTimeout time.Duration) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(root, historicalDirName), 0755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &Store{
		root:            root,
		cacheTimeout:    cacheTimeout,
		currencyTimeout: currencyTimeout,
	}, nil
}

func (s *Store) cachePath() string      { return filepath.Join(s.root, cacheFileName) }
func (s *Store) favoritesPath() string  { return filepath.Join(s.root, favoritesFileName) }
func (s *Store) currenciesPath() string { return filepath.Join(s.root, currenciesFileName) }

func (s *Store) snapshotPath(base string, date time.Time) string {
	name := fmt.Sprintf("%s_%s.json", base, date.Format("2006-01-02"))
	return filepath.Join(s.root, historicalDirName, name)
}

// GetCached returns the cached rate table for a base currency if the entry
// is younger than the cache timeout. Stale entries are reported absent but
// left on disk until overwritten.
func (s *Store) GetCached(base string) (model.RateTable, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cache := s.loadCache()
	entry, ok := cache[base]
	if !ok {
		return nil, false
	}
	age := epochSeconds(time.Now()) - entry.Timestamp
	if age >= s.cacheTimeout.Seconds() {
		return nil, false
	}
	return entry.Rates, true
}

// PutCached upserts the cache entry for a base currency with the current
// timestamp. The whole cache file is rewritten; other bases' entries are
// preserved.
func (s *Store) PutCached(base string, table model.RateTable) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cache := s.loadCache()
	cache[base] = model.CacheEntry{
		Timestamp: epochSeconds(time.Now()),
		Rates:     table,
	}
	return writeJSONFile(s.cachePath(), cache)
}

// loadCache reads the whole cache file. A missing, unreadable, or corrupt
// file is treated as an empty cache. Caller must hold s.mu.
func (s *Store) loadCache() map[string]model.CacheEntry {
	cache := make(map[string]model.CacheEntry)
	data, err := os.ReadFile(s.cachePath())
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[WARN] read rate cache: %v, treating as empty", err)
		}
		return cache
	}
	if err := json.Unmarshal(data, &cache); err != nil {
		log.Printf("[WARN] corrupt rate cache: %v, treating as empty", err)
		return make(map[string]model.CacheEntry)
	}
	return cache
}

// GetSnapshot returns the historical snapshot for (base, date) if one
// exists and is readable.
func (s *Store) GetSnapshot(base string, date time.Time) (model.RateTable, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.snapshotPath(base, date))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[WARN] read snapshot %s %s: %v", base, date.Format("2006-01-02"), err)
		}
		return nil, false
	}
	var entry model.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		log.Printf("[WARN] corrupt snapshot %s %s: %v", base, date.Format("2006-01-02"), err)
		return nil, false
	}
	return entry.Rates, true
}

// PutSnapshotIfAbsent writes the snapshot for (base, date) only when none
// exists yet. Snapshots are immutable once written.
func (s *Store) PutSnapshotIfAbsent(base string, date time.Time, table model.RateTable) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.snapshotPath(base, date)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	entry := model.CacheEntry{
		Timestamp: epochSeconds(time.Now()),
		Rates:     table,
	}
	return writeJSONFile(path, entry)
}

func epochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

// writeJSONFile marshals v and writes it through a temp file + rename so a
// concurrent reader never observes a torn file.
func writeJSONFile(path string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
