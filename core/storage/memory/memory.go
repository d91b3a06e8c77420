package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/konradgierczak7/SD-projekt-2/core/storage"
)

// MemoryStorage provides in-memory storage implementation
type MemoryStorage struct {
	runs map[int64]storage.Run
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		runs: make(map[int64]storage.Run),
	}
}

func (m *MemoryStorage) SaveRun(_ context.Context, run storage.Run) error {
	m.runs[run.Started.UnixNano()] = run
	return nil
}

func (m *MemoryStorage) LoadRun(_ context.Context, started time.Time) (storage.Run, error) {
	run, ok := m.runs[started.UnixNano()]
	if !ok {
		return storage.Run{}, fmt.Errorf("%w: %s", storage.ErrRunNotFound, started)
	}
	return run, nil
}

func (m *MemoryStorage) DeleteRun(_ context.Context, started time.Time) error {
	delete(m.runs, started.UnixNano())
	return nil
}

func (m *MemoryStorage) ListRuns(_ context.Context, start, end time.Time) ([]time.Time, error) {
	var runs []time.Time
	for _, run := range m.runs {
		t := run.Started
		if !t.Before(start) && t.Before(end) {
			runs = append(runs, t)
		}
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Before(runs[j])
	})
	return runs, nil
}
