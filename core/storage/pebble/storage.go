package pebble

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/cockroachdb/pebble"

	"github.com/konradgierczak7/SD-projekt-2/core/serialization"
	"github.com/konradgierczak7/SD-projekt-2/core/storage"
)

// Storage implements storage.Storage using Pebble
type Storage struct {
	db            *pebble.DB
	keySerializer *serialization.KeySerializer
	runSerializer serialization.TypeSerializer[storage.Run]
	sync          bool
}

var _ storage.Storage = (*Storage)(nil)

// StorageOptions configures the storage
type StorageOptions struct {
	Path         string
	CacheSize    int64
	MaxOpenFiles int
	Sync         bool // fsync every write
}

func NewStorage(opts StorageOptions) (*Storage, error) {
	if err := os.MkdirAll(opts.Path, 0o755); err != nil {
		return nil, err
	}

	cache := pebble.NewCache(opts.CacheSize)
	defer cache.Unref()

	db, err := pebble.Open(opts.Path, &pebble.Options{
		Cache:        cache,
		MaxOpenFiles: opts.MaxOpenFiles,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open pebble at %s: %w", opts.Path, err)
	}

	return &Storage{
		db:            db,
		keySerializer: &serialization.KeySerializer{},
		runSerializer: serialization.NewGobSerializer[storage.Run](),
		sync:          opts.Sync,
	}, nil
}

func (p *Storage) Close() error {
	return p.db.Close()
}

func (p *Storage) writeOptions() *pebble.WriteOptions {
	if p.sync {
		return pebble.Sync
	}
	return pebble.NoSync
}

func (p *Storage) SaveRun(_ context.Context, run storage.Run) error {
	data, err := p.runSerializer.SerializeValue(run)
	if err != nil {
		return fmt.Errorf("failed to serialize run: %w", err)
	}

	key := p.keySerializer.SerializeKey(string(RunNamespace), run.Started)
	if err := p.db.Set(key, data, p.writeOptions()); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

func (p *Storage) LoadRun(_ context.Context, started time.Time) (storage.Run, error) {
	key := p.keySerializer.SerializeKey(string(RunNamespace), started)

	data, closer, err := p.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return storage.Run{}, fmt.Errorf("%w: %s", storage.ErrRunNotFound, started)
		}
		return storage.Run{}, fmt.Errorf("failed to load run: %w", err)
	}
	defer closer.Close()

	run, err := p.runSerializer.DeserializeValue(data)
	if err != nil {
		return storage.Run{}, fmt.Errorf("failed to deserialize run: %w", err)
	}
	return run, nil
}

func (p *Storage) DeleteRun(_ context.Context, started time.Time) error {
	key := p.keySerializer.SerializeKey(string(RunNamespace), started)
	return p.db.Delete(key, p.writeOptions())
}

func (p *Storage) ListRuns(_ context.Context, start, end time.Time) ([]time.Time, error) {
	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: p.keySerializer.SerializeKey(string(RunNamespace), start),
		UpperBound: p.keySerializer.SerializeKey(string(RunNamespace), end),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var runs []time.Time
	for iter.First(); iter.Valid(); iter.Next() {
		_, ts, err := p.keySerializer.DeserializeKey(iter.Key())
		if err != nil {
			return nil, err
		}
		runs = append(runs, ts)
	}
	return runs, iter.Error()
}
