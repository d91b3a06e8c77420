package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/konradgierczak7/SD-projekt-2/bench"
	"github.com/konradgierczak7/SD-projekt-2/core/storage/memory"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{name: "defaults", args: nil},
		{name: "heap only", args: []string{"-impl", "heap"}},
		{name: "unknown impl", args: []string{"-impl", "tree"}, wantErr: true},
		{name: "negative size", args: []string{"-size", "-1"}, wantErr: true},
		{name: "negative runs", args: []string{"-runs", "-3"}, wantErr: true},
		{name: "history without db", args: []string{"-history"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			fs := newFlagSet(&c)
			require.NoError(t, fs.Parse(tt.args))
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConfig_Apply(t *testing.T) {
	var c Config
	fs := newFlagSet(&c)
	require.NoError(t, fs.Parse([]string{"-impl", "list", "-size", "300", "-runs", "4", "-seed", "7", "-format", "json"}))

	cfg := bench.DefaultConfig()
	c.apply(&cfg, time.Unix(0, 42))

	require.Len(t, cfg.Suites, 1)
	s := cfg.Suites[0]
	assert.Equal(t, "list-300", s.Name)
	assert.Equal(t, bench.ImplList, s.Impl)
	assert.Equal(t, 300, s.BaseSize)
	assert.Equal(t, 300, s.PriorityRange)
	assert.Equal(t, 4, s.Runs)
	assert.Equal(t, uint64(7), s.Seed)
	assert.Equal(t, bench.FormatJSON, cfg.Format)
}

func TestConfig_ApplySeedsListFromClock(t *testing.T) {
	var c Config
	fs := newFlagSet(&c)
	require.NoError(t, fs.Parse(nil))

	cfg := bench.DefaultConfig()
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	c.apply(&cfg, now)

	require.Len(t, cfg.Suites, 2)
	for _, s := range cfg.Suites {
		switch s.Impl {
		case bench.ImplHeap:
			assert.Zero(t, s.Seed, s.Name)
		case bench.ImplList:
			assert.Equal(t, uint64(now.UnixNano()), s.Seed, s.Name)
		}
	}
}

func TestRun_Metrics(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), []string{
		"-impl", "heap", "-size", "600", "-runs", "2", "-metrics", "-log-level", "error",
	}, &stdout))

	out := stdout.String()
	require.Contains(t, out, "METRIC")
	metricsTable := out[strings.Index(out, "METRIC"):]

	var durations, totals int
	for _, line := range strings.Split(strings.TrimSpace(metricsTable), "\n")[1:] {
		fields := strings.Fields(line)
		require.Len(t, fields, 4, line)
		switch fields[0] {
		case "pq_operation_duration_nanoseconds":
			durations++
			assert.Equal(t, "2", fields[2], line)
		case "pq_operations_total":
			totals++
			assert.Equal(t, "2", fields[3], line)
		}
		assert.Contains(t, fields[1], "impl=heap", line)
	}
	assert.Equal(t, 5, durations)
	assert.Equal(t, 5, totals)
}

func TestRun_HistoryWithoutDB(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), []string{
		"-impl", "list", "-size", "40", "-runs", "2", "-history", "-log-level", "error",
	}, &stdout))

	out := stdout.String()
	require.Contains(t, out, "STARTED")
	history := strings.Split(strings.TrimSpace(out[strings.Index(out, "STARTED"):]), "\n")
	require.Len(t, history, 6)
	for _, line := range history[1:] {
		assert.Contains(t, line, "list-40")
	}
}

func TestPrintHistory(t *testing.T) {
	ctx := context.Background()
	store := memory.NewMemoryStorage()
	started := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	heap := bench.Result{
		Suite:     "heap-25000",
		Impl:      bench.ImplHeap,
		BaseSize:  25000,
		Runs:      2,
		Completed: 2,
		Ops:       bench.OperationsFor(bench.ImplHeap),
		Totals:    map[string]time.Duration{bench.OpInsert: 300 * time.Nanosecond},
	}
	require.NoError(t, store.SaveRun(ctx, bench.ToRun(started, []bench.Result{heap})))

	var buf bytes.Buffer
	require.NoError(t, printHistory(ctx, store, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "STARTED"))
	assert.Contains(t, lines[1], "2024-06-01T08:00:00Z")
	assert.Contains(t, lines[1], bench.OpInsert)
	assert.Contains(t, lines[1], "150ns")
}

func TestRun_ReportHistoryAndFiles(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "history")
	out := filepath.Join(dir, "reports")
	ctx := context.Background()

	var stdout bytes.Buffer
	err := run(ctx, []string{
		"-impl", "list", "-size", "40", "-runs", "2",
		"-format", "json", "-db", db, "-out", out, "-log-level", "error",
	}, &stdout)
	require.NoError(t, err)

	var rep bench.Report
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &rep))
	require.Len(t, rep.Suites, 1)
	assert.Equal(t, "list-40", rep.Suites[0].Name)
	assert.Equal(t, 2, rep.Suites[0].Runs)

	files, err := os.ReadDir(out)
	require.NoError(t, err)
	var published []string
	for _, f := range files {
		if !f.IsDir() {
			published = append(published, f.Name())
		}
	}
	require.Len(t, published, 1)
	assert.True(t, strings.HasSuffix(published[0], ".json"))

	stdout.Reset()
	require.NoError(t, run(ctx, []string{"-history", "-db", db, "-log-level", "error"}, &stdout))
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[1], "list-40")
}

func TestRun_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
suites:
  - impl: heap
    base_size: 600
    runs: 2
    priority_range: 50
format: yaml
log_level: error
`), 0o600))

	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-config", path}, &stdout))
	assert.Contains(t, stdout.String(), "name: heap-600")
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "bad flag", args: []string{"-nope"}},
		{name: "missing config", args: []string{"-config", "/does/not/exist.yaml"}},
		{name: "bad format", args: []string{"-format", "xml", "-log-level", "error"}},
		{name: "bad log level", args: []string{"-log-level", "loud"}},
		{name: "heap without value 500", args: []string{"-impl", "heap", "-size", "10", "-runs", "1", "-log-level", "error"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, run(context.Background(), tt.args, &bytes.Buffer{}))
		})
	}
}
