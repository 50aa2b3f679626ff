// Package store persists the four independent key/value slots: settings,
// favorites, history, and the performance map. Every slot follows the same
// contract: a read returns the typed default on missing or corrupt data and
// a write is an unconditional overwrite. The session credential is
// deliberately NOT handled here; it never touches disk.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"adforge/internal/history"
	"adforge/internal/types"
)

var (
	bucketSettings    = []byte("settings")
	bucketFavorites   = []byte("favorites")
	bucketHistory     = []byte("history")
	bucketPerformance = []byte("performance")
)

// Each slot is one JSON blob under a fixed key inside its bucket; the
// contract is whole-slot overwrite, not per-entry mutation.
var slotKey = []byte("data")

// Store implements the persistent store contract on BoltDB.
type Store struct {
	db     *bolt.DB
	logger *zap.Logger
}

// Open creates or opens the store at path.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketSettings, bucketFavorites, bucketHistory, bucketPerformance} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, logger: logger}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// read loads one slot into out; ok is false when the slot is missing or
// corrupt, in which case the caller keeps its typed default.
func (s *Store) read(bucket []byte, out interface{}) bool {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucket).Get(slotKey); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil || data == nil {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn("slot is corrupt, falling back to default",
			zap.String("slot", string(bucket)), zap.Error(err))
		return false
	}
	return true
}

// write overwrites one slot. Writes are fire-and-forget from the caller's
// perspective; failures are logged, never propagated into the orchestrator.
func (s *Store) write(bucket []byte, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("failed to marshal slot", zap.String("slot", string(bucket)), zap.Error(err))
		return
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put(slotKey, data)
	})
	if err != nil {
		s.logger.Warn("failed to write slot", zap.String("slot", string(bucket)), zap.Error(err))
	}
}

// LoadSettings returns the stored settings, or the defaults.
func (s *Store) LoadSettings() types.Settings {
	settings := types.DefaultSettings()
	if !s.read(bucketSettings, &settings) {
		return types.DefaultSettings()
	}
	// Partial blobs keep their defaults for the missing fields.
	def := types.DefaultSettings()
	if settings.Locale == "" {
		settings.Locale = def.Locale
	}
	if settings.DefaultPlatform == "" {
		settings.DefaultPlatform = def.DefaultPlatform
	}
	if settings.DefaultVibe == "" {
		settings.DefaultVibe = def.DefaultVibe
	}
	if settings.VariantCount == 0 {
		settings.VariantCount = def.VariantCount
	}
	if settings.DefaultModel == "" {
		settings.DefaultModel = def.DefaultModel
	}
	return settings
}

// SaveSettings overwrites the settings slot wholesale.
func (s *Store) SaveSettings(settings types.Settings) {
	s.write(bucketSettings, settings)
}

// LoadFavorites returns the stored favorites, newest first, or an empty list.
func (s *Store) LoadFavorites() []types.FavoriteVariant {
	var favorites []types.FavoriteVariant
	if !s.read(bucketFavorites, &favorites) {
		return nil
	}
	return favorites
}

// SaveFavorites overwrites the favorites slot wholesale.
func (s *Store) SaveFavorites(favorites []types.FavoriteVariant) {
	s.write(bucketFavorites, favorites)
}

// LoadHistory returns the stored history entries, newest first, truncated to
// the history bound, or an empty list.
func (s *Store) LoadHistory() []history.Entry {
	var entries []history.Entry
	if !s.read(bucketHistory, &entries) {
		return nil
	}
	if len(entries) > history.MaxEntries {
		entries = entries[:history.MaxEntries]
	}
	return entries
}

// SaveHistory overwrites the history slot wholesale.
func (s *Store) SaveHistory(entries []history.Entry) {
	s.write(bucketHistory, entries)
}

// LoadPerformance returns the stored identity-to-metrics map, or an empty
// map. The map persists independently of variants so metrics survive
// regeneration of the variant that originally bore them.
func (s *Store) LoadPerformance() map[string]types.PerformanceMetrics {
	perf := map[string]types.PerformanceMetrics{}
	if !s.read(bucketPerformance, &perf) {
		return map[string]types.PerformanceMetrics{}
	}
	return perf
}

// SavePerformance overwrites the performance slot wholesale.
func (s *Store) SavePerformance(perf map[string]types.PerformanceMetrics) {
	s.write(bucketPerformance, perf)
}
