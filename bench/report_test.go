package bench

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleResults() []Result {
	heap := newResult(Suite{Name: "heap-25000", Impl: ImplHeap, BaseSize: 25000, Runs: 2})
	heap.Completed = 2
	heap.Totals[OpInsert] = 200 * time.Nanosecond
	heap.Totals[OpChangePriority] = 4 * time.Microsecond

	list := newResult(Suite{Name: "list-10000", Impl: ImplList, BaseSize: 10000, Runs: 1, Seed: 1718000000})
	list.Completed = 1
	list.Totals[OpInsert] = 9 * time.Microsecond
	list.Misses[OpChangePriority] = 1

	return []Result{heap, list}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatTable},
		{in: "table", want: FormatTable},
		{in: "yaml", want: FormatYAML},
		{in: "json", want: FormatJSON},
		{in: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteReport_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, FormatTable, time.Now(), sampleResults()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 11)
	assert.True(t, strings.HasPrefix(lines[0], "SUITE"))
	assert.Contains(t, lines[1], "heap-25000")
	assert.Contains(t, lines[1], "100ns")
	assert.Contains(t, lines[2], "2µs")
}

func TestWriteReport_YAML(t *testing.T) {
	started := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, FormatYAML, started, sampleResults()))

	var rep Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &rep))
	assert.True(t, started.Equal(rep.Started))
	require.Len(t, rep.Suites, 2)
	assert.Equal(t, int64(100), rep.Suites[0].Averages[OpInsert])
	assert.Equal(t, int64(2000), rep.Suites[0].Averages[OpChangePriority])
	assert.Nil(t, rep.Suites[0].Misses)
	assert.Equal(t, 1, rep.Suites[1].Misses[OpChangePriority])
	assert.Equal(t, uint64(0), rep.Suites[0].Seed)
	assert.Equal(t, uint64(1718000000), rep.Suites[1].Seed)
}

func TestWriteReport_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, FormatJSON, time.Unix(0, 0).UTC(), sampleResults()))

	var rep Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rep))
	require.Len(t, rep.Suites, 2)
	assert.Equal(t, ImplList, rep.Suites[1].Impl)
	assert.Equal(t, int64(9000), rep.Suites[1].Averages[OpInsert])
}

func TestWriteReport_UnknownFormat(t *testing.T) {
	assert.Error(t, WriteReport(&bytes.Buffer{}, "csv", time.Now(), nil))
}
