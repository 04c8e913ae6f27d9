package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiihann/rtbench/harness"
)

func sampleEntries() []Entry {
	return []Entry{
		FromText("text", &harness.TextResult{
			ElapsedMs: 2, BytesWritten: 1024, BytesRead: 1024, Content: "ignored",
		}),
		FromBasic("basic", &harness.BasicResult{
			ElapsedMs: 1, BytesWritten: 512, BytesRead: 512,
		}),
		FromRaw("fast", &harness.RawResult{
			ElapsedMs: 1000, BytesWritten: 1 << 20, BytesRead: 1 << 20, Checksum: 0xbeef,
		}),
		FromStructured("structured", &harness.StructuredResult{
			ElapsedMs: 3, BytesWritten: 2048, BytesRead: 2048, ItemCount: 42, Encoding: "cbor",
		}),
	}
}

func TestGenerate(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, sampleEntries()))

	output := buf.String()

	assert.Contains(t, output, "all match")
	assert.Contains(t, output, "| fast | fast |")
	assert.Contains(t, output, "structured/cbor")
	assert.Contains(t, output, "0x000000000000beef")
	assert.Contains(t, output, "| 42 |")
	assert.Contains(t, output, "2.0 MB/s")
	assert.Contains(t, output, "1.00s")

	textRow := ""
	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(line, "| text ") {
			textRow = line
		}
	}
	require.NotEmpty(t, textRow)
	assert.True(t, strings.HasSuffix(textRow, "| - | - |"), textRow)
}

func TestGenerateMismatch(t *testing.T) {
	entries := []Entry{
		{Name: "ok", Variant: "basic", BytesWritten: 10, BytesRead: 10, ElapsedMs: 1},
		{Name: "short", Variant: "fast", BytesWritten: 10, BytesRead: 4, ElapsedMs: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, entries))

	output := buf.String()
	assert.Contains(t, output, "MISMATCH")
	assert.Contains(t, output, "short: wrote 10, read 4")
	assert.NotContains(t, output, "ok: wrote")
}

func TestGenerateEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := Generate(&buf, nil)
	if err == nil {
		t.Error("expected error for empty results")
	}
}

func TestGenerateJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, GenerateJSON(&buf, sampleEntries()))

	var parsed []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	require.Len(t, parsed, 4)

	assert.NotContains(t, parsed[0], "checksum")
	assert.NotContains(t, parsed[0], "item_count")
	assert.EqualValues(t, 0xbeef, parsed[2]["checksum"])
	assert.NotContains(t, parsed[2], "item_count")
	assert.EqualValues(t, 42, parsed[3]["item_count"])
	assert.Equal(t, "cbor", parsed[3]["encoding"])
}

func TestFromRawZeroChecksumKept(t *testing.T) {
	e := FromRaw("zero", &harness.RawResult{})

	require.NotNil(t, e.Checksum)
	assert.Equal(t, uint64(0), *e.Checksum)

	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"checksum":0`)
}

func TestThroughput(t *testing.T) {
	tests := []struct {
		entry Entry
		want  float64
	}{
		{Entry{}, 0},
		{Entry{BytesWritten: 1 << 20, BytesRead: 1 << 20, ElapsedMs: 0}, 0},
		{Entry{BytesWritten: 1 << 20, BytesRead: 1 << 20, ElapsedMs: 1000}, 2},
		{Entry{BytesWritten: 1 << 20, BytesRead: 1 << 20, ElapsedMs: 500}, 4},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, tt.entry.Throughput(), 1e-9)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		input uint64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1048576, "1 MB"},
		{1073741824, "1 GB"},
	}

	for _, tt := range tests {
		got := formatBytes(tt.input)
		if got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatMs(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "0.000ms"},
		{0.25, "0.250ms"},
		{999, "999.000ms"},
		{1000, "1.00s"},
		{1500, "1.50s"},
		{60000, "60.00s"},
	}

	for _, tt := range tests {
		got := formatMs(tt.input)
		if got != tt.want {
			t.Errorf("formatMs(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
