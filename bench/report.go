package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"
)

// Format selects the report encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
)

// ParseFormat validates a format name. The empty string selects FormatTable.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatYAML, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("bench: unknown format %q", s)
}

// Report is the encoded form of a set of results.
type Report struct {
	Started time.Time     `yaml:"started" json:"started"`
	Suites  []SuiteReport `yaml:"suites" json:"suites"`
}

// SuiteReport is one suite in a Report. Averages are in nanoseconds.
type SuiteReport struct {
	Name     string           `yaml:"name" json:"name"`
	Impl     Impl             `yaml:"impl" json:"impl"`
	BaseSize int              `yaml:"base_size" json:"base_size"`
	Runs     int              `yaml:"runs" json:"runs"`
	Seed     uint64           `yaml:"seed" json:"seed"`
	Averages map[string]int64 `yaml:"averages_ns" json:"averages_ns"`
	Misses   map[string]int   `yaml:"misses,omitempty" json:"misses,omitempty"`
}

// NewReport builds a report from results.
func NewReport(started time.Time, results []Result) Report {
	rep := Report{Started: started}
	for _, r := range results {
		sr := SuiteReport{
			Name:     r.Suite,
			Impl:     r.Impl,
			BaseSize: r.BaseSize,
			Runs:     r.Completed,
			Seed:     r.Seed,
			Averages: make(map[string]int64, len(r.Ops)),
		}
		for _, op := range r.Ops {
			sr.Averages[op] = r.Average(op).Nanoseconds()
		}
		for op, n := range r.Misses {
			if n == 0 {
				continue
			}
			if sr.Misses == nil {
				sr.Misses = make(map[string]int)
			}
			sr.Misses[op] = n
		}
		rep.Suites = append(rep.Suites, sr)
	}
	return rep
}

// WriteReport encodes results to w in the given format.
func WriteReport(w io.Writer, format Format, started time.Time, results []Result) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewReport(started, results)); err != nil {
			return fmt.Errorf("failed to encode yaml report: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewReport(started, results))
	case FormatTable, "":
		return writeTable(w, results)
	}
	return fmt.Errorf("bench: unknown format %q", format)
}

func writeTable(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SUITE\tIMPL\tSIZE\tRUNS\tOPERATION\tAVERAGE\tMISSES")
	for _, r := range results {
		for _, op := range r.Ops {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\t%d\n",
				r.Suite, r.Impl, r.BaseSize, r.Completed, op, r.Average(op), r.Misses[op])
		}
	}
	return tw.Flush()
}
