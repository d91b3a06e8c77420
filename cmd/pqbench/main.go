// Command pqbench times single operations of the heap and sorted-list
// priority queues after bulk loading them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/konradgierczak7/SD-projekt-2/bench"
	"github.com/konradgierczak7/SD-projekt-2/core/metrics"
	"github.com/konradgierczak7/SD-projekt-2/core/monitoring"
	"github.com/konradgierczak7/SD-projekt-2/core/storage"
	"github.com/konradgierczak7/SD-projekt-2/core/storage/local"
	"github.com/konradgierczak7/SD-projekt-2/core/storage/memory"
	"github.com/konradgierczak7/SD-projekt-2/core/storage/pebble"
)

// Config holds the command line. Zero values leave the file or default
// configuration untouched.
type Config struct {
	configFile string
	impl       string
	size       int
	runs       int
	seed       uint64
	format     string
	dbPath     string
	outDir     string
	logLevel   string
	parallel   bool
	history    bool
	metrics    bool
}

func (c *Config) RegisterFlags(f *flag.FlagSet) {
	f.StringVar(&c.configFile, "config", "", "YAML benchmark configuration")
	f.StringVar(&c.impl, "impl", "all", "implementation to run: heap, list or all")
	f.IntVar(&c.size, "size", 0, "override the base size of every suite")
	f.IntVar(&c.runs, "runs", 0, "override the number of runs of every suite")
	f.Uint64Var(&c.seed, "seed", 0, "override the random seed of every suite")
	f.StringVar(&c.format, "format", "", "report format: table, yaml or json")
	f.StringVar(&c.dbPath, "db", "", "directory of the run history database")
	f.StringVar(&c.outDir, "out", "", "directory to publish report files to")
	f.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn or error")
	f.BoolVar(&c.parallel, "parallel", false, "run suites concurrently")
	f.BoolVar(&c.history, "history", false, "with -db, list stored runs and exit; without, list this run after the report")
	f.BoolVar(&c.metrics, "metrics", false, "print the collected operation metrics after the report")
}

// Validate checks the flags that do not depend on the loaded configuration.
func (c *Config) Validate() error {
	switch bench.Impl(c.impl) {
	case "all", "", bench.ImplHeap, bench.ImplList:
	default:
		return fmt.Errorf("unknown impl %q", c.impl)
	}
	if c.size < 0 {
		return errors.New("size must not be negative")
	}
	if c.runs < 0 {
		return errors.New("runs must not be negative")
	}
	return nil
}

// apply merges the flags over cfg. List suites left without a seed are
// seeded from now.
func (c *Config) apply(cfg *bench.Config, now time.Time) {
	if impl := bench.Impl(c.impl); impl == bench.ImplHeap || impl == bench.ImplList {
		var kept []bench.Suite
		for _, s := range cfg.Suites {
			if s.Impl == impl {
				kept = append(kept, s)
			}
		}
		cfg.Suites = kept
	}

	for i := range cfg.Suites {
		s := &cfg.Suites[i]
		if c.size > 0 {
			s.BaseSize = c.size
			s.Name = fmt.Sprintf("%s-%d", s.Impl, c.size)
			if s.Impl == bench.ImplList {
				s.PriorityRange = c.size
			}
		}
		if c.runs > 0 {
			s.Runs = c.runs
		}
		if c.seed > 0 {
			s.Seed = c.seed
		}
		if s.Seed == 0 && s.Impl == bench.ImplList {
			s.Seed = uint64(now.UnixNano())
		}
	}

	if c.format != "" {
		cfg.Format = bench.Format(c.format)
	}
	if c.dbPath != "" {
		cfg.DBPath = c.dbPath
	}
	if c.outDir != "" {
		cfg.OutDir = c.outDir
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}
	if c.parallel {
		cfg.Parallel = true
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "pqbench:", err)
		os.Exit(1)
	}
}

func newFlagSet(c *Config) *flag.FlagSet {
	fs := flag.NewFlagSet("pqbench", flag.ContinueOnError)
	c.RegisterFlags(fs)
	return fs
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	var flags Config
	fs := newFlagSet(&flags)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := flags.Validate(); err != nil {
		return err
	}

	cfg := bench.DefaultConfig()
	if flags.configFile != "" {
		var err error
		if cfg, err = bench.LoadConfig(flags.configFile); err != nil {
			return err
		}
	}
	flags.apply(&cfg, time.Now())

	logger, err := monitoring.NewLogger("pqbench", cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // stderr sync fails on some terminals

	store, closeStore, err := openStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer closeStore() //nolint:errcheck // read side only after SaveRun

	if flags.history && cfg.DBPath != "" {
		return printHistory(ctx, store, stdout)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	registry := metrics.NewRegistry()
	runner := bench.NewRunner(
		bench.WithLogger(logger),
		bench.WithStats(monitoring.NewStats(registry, logger)),
		bench.WithParallel(cfg.Parallel),
	)

	started := time.Now().UTC()
	results, err := runner.RunAll(ctx, cfg.Suites...)
	if err != nil {
		return err
	}

	if err := bench.WriteReport(stdout, cfg.Format, started, results); err != nil {
		return err
	}

	if err := store.SaveRun(ctx, bench.ToRun(started, results)); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	if cfg.DBPath != "" {
		logger.Info("run saved", zap.String("db", cfg.DBPath), zap.Time("started", started))
	}

	if flags.metrics {
		if err := printMetrics(registry, stdout); err != nil {
			return err
		}
	}

	if flags.history {
		if err := printHistory(ctx, store, stdout); err != nil {
			return err
		}
	}

	if cfg.OutDir != "" {
		name, published, err := publishReport(ctx, cfg, started, results)
		if err != nil {
			return err
		}
		logger.Info("report published", zap.String("file", name), zap.Int("published", published))
	}
	return nil
}

// openStore opens the pebble history at path, or an in-memory store holding
// only this invocation when path is empty.
func openStore(path string) (storage.Storage, func() error, error) {
	if path == "" {
		return memory.NewMemoryStorage(), func() error { return nil }, nil
	}

	store, err := pebble.NewStorage(pebble.StorageOptions{
		Path:         path,
		CacheSize:    8 << 20,
		MaxOpenFiles: 64,
		Sync:         true,
	})
	if err != nil {
		return nil, nil, err
	}
	return store, store.Close, nil
}

// publishReport writes the report under cfg.OutDir and returns its name and
// the number of reports published there so far.
func publishReport(ctx context.Context, cfg bench.Config, started time.Time, results []bench.Result) (string, int, error) {
	reports, err := local.NewReports(filepath.Join(cfg.OutDir, ".pending"), cfg.OutDir)
	if err != nil {
		return "", 0, err
	}

	ext := string(cfg.Format)
	if cfg.Format == bench.FormatTable || cfg.Format == "" {
		ext = "txt"
	}
	name := fmt.Sprintf("pqbench-%d.%s", started.UnixNano(), ext)

	w, err := reports.Create(ctx, name)
	if err != nil {
		return "", 0, err
	}
	if err := bench.WriteReport(w, cfg.Format, started, results); err != nil {
		w.Close()
		return "", 0, err
	}
	if err := w.Close(); err != nil {
		return "", 0, err
	}
	if err := reports.Publish(ctx, name); err != nil {
		return "", 0, err
	}

	published, err := reports.List(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("failed to list reports: %w", err)
	}
	return name, len(published), nil
}

// printMetrics writes the registry snapshot: sample count and sum per
// histogram series, value per counter series.
func printMetrics(registry *metrics.Registry, w io.Writer) error {
	snapshot, err := registry.GetMetrics()
	if err != nil {
		return err
	}

	names := make([]string, 0, len(snapshot))
	for name := range snapshot {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tLABELS\tCOUNT\tVALUE")
	for _, name := range names {
		for _, v := range snapshot[name] {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%g\n", name, formatLabels(v.Labels), v.Count, v.Value)
		}
	}
	return tw.Flush()
}

func formatLabels(labels map[string]string) string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + labels[k]
	}
	return strings.Join(parts, ",")
}

func printHistory(ctx context.Context, store storage.Storage, w io.Writer) error {
	runs, err := store.ListRuns(ctx, time.Unix(0, 0), time.Now().Add(time.Hour))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tSUITE\tIMPL\tSIZE\tRUNS\tOPERATION\tAVERAGE")
	for _, started := range runs {
		r, err := store.LoadRun(ctx, started)
		if err != nil {
			return err
		}
		for _, m := range r.Results {
			for _, op := range bench.OperationsFor(bench.Impl(m.Impl)) {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
					started.Format(time.RFC3339), m.Suite, m.Impl, m.BaseSize, m.Runs, op, m.Averages[op])
			}
		}
	}
	return tw.Flush()
}
