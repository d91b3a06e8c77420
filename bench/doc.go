// Package bench measures the cost of individual priority queue operations.
//
// A Suite names an implementation and a load size. For every run the Runner
// fills a queue with BaseSize entries of pseudo-random priority and then
// times exactly one call of each operation against the loaded queue: insert,
// change priority, peek, remove and size. Timings are summed across runs and
// reported as per-operation averages.
//
// The two implementations are prepared the way their cost profiles are meant
// to be observed:
//   - heap suites reuse a single priority.Heap and Clear it between runs, so
//     only the first run pays for storage growth
//   - list suites build a fresh sortedlist.List for every run
//
// Basic usage:
//
//	r := bench.NewRunner(bench.WithLogger(logger))
//	results, err := r.RunAll(ctx, bench.DefaultSuites()...)
//	if err != nil {
//	    return err
//	}
//	bench.WriteReport(os.Stdout, bench.FormatTable, time.Now(), results)
//
// Every timed call is also handed to a monitoring.Stats so that latencies end
// up in the prometheus histograms of core/metrics.
package bench
