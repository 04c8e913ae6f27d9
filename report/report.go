// Package report formats round-trip benchmark results into tables.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/weiihann/rtbench/harness"
)

// Entry is one row of a report. Checksum and Items are nil when the
// variant does not produce them.
type Entry struct {
	Name         string  `json:"name"`
	Variant      string  `json:"variant"`
	Path         string  `json:"path,omitempty"`
	ElapsedMs    float64 `json:"elapsed_ms"`
	BytesWritten int     `json:"bytes_written"`
	BytesRead    int     `json:"bytes_read"`
	Checksum     *uint64 `json:"checksum,omitempty"`
	Items        *int    `json:"item_count,omitempty"`
	Encoding     string  `json:"encoding,omitempty"`
	VerifyMs     float64 `json:"verify_ms,omitempty"`
}

// FromText builds an Entry from a text round trip.
func FromText(name string, r *harness.TextResult) Entry {
	return Entry{
		Name:         name,
		Variant:      string(harness.VariantText),
		ElapsedMs:    r.ElapsedMs,
		BytesWritten: r.BytesWritten,
		BytesRead:    r.BytesRead,
	}
}

// FromBasic builds an Entry from a basic round trip.
func FromBasic(name string, r *harness.BasicResult) Entry {
	return Entry{
		Name:         name,
		Variant:      string(harness.VariantBasic),
		ElapsedMs:    r.ElapsedMs,
		BytesWritten: r.BytesWritten,
		BytesRead:    r.BytesRead,
	}
}

// FromRaw builds an Entry from a synthetic byte round trip.
func FromRaw(name string, r *harness.RawResult) Entry {
	sum := r.Checksum

	return Entry{
		Name:         name,
		Variant:      string(harness.VariantFast),
		ElapsedMs:    r.ElapsedMs,
		BytesWritten: r.BytesWritten,
		BytesRead:    r.BytesRead,
		Checksum:     &sum,
	}
}

// FromStructured builds an Entry from a structured payload round trip.
func FromStructured(name string, r *harness.StructuredResult) Entry {
	items := r.ItemCount

	return Entry{
		Name:         name,
		Variant:      string(harness.VariantStructured),
		ElapsedMs:    r.ElapsedMs,
		BytesWritten: r.BytesWritten,
		BytesRead:    r.BytesRead,
		Items:        &items,
		Encoding:     r.Encoding,
		VerifyMs:     r.VerifyMs,
	}
}

// Throughput returns the combined write and read rate in MB/s, or 0 when
// nothing was timed.
func (e Entry) Throughput() float64 {
	if e.ElapsedMs <= 0 {
		return 0
	}

	mb := float64(e.BytesWritten+e.BytesRead) / (1024 * 1024)

	return mb / (e.ElapsedMs / 1000)
}

// Generate writes a markdown table for the given entries.
func Generate(w io.Writer, entries []Entry) error {
	if len(entries) == 0 {
		return fmt.Errorf("no results to report")
	}

	fmt.Fprintln(w, "## Round-trip Results")
	fmt.Fprintln(w)

	if bad := mismatched(entries); len(bad) > 0 {
		fmt.Fprintln(w, "Byte counts: **MISMATCH**")

		for _, e := range bad {
			fmt.Fprintf(w, "  - %s: wrote %d, read %d\n",
				e.Name, e.BytesWritten, e.BytesRead)
		}
	} else {
		fmt.Fprintln(w, "Byte counts: **all match**")
	}

	fmt.Fprintln(w)

	fmt.Fprintln(w, "| Name | Variant | Elapsed | Written | Read "+
		"| Throughput | Checksum | Items |")
	fmt.Fprintln(w, "|------|---------|---------|---------|------"+
		"|------------|----------|-------|")

	for _, e := range entries {
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			e.Name,
			variantLabel(e),
			formatMs(e.ElapsedMs),
			formatBytes(uint64(e.BytesWritten)),
			formatBytes(uint64(e.BytesRead)),
			formatThroughput(e.Throughput()),
			formatChecksum(e.Checksum),
			formatItems(e.Items),
		)
	}

	return nil
}

// GenerateJSON writes entries as JSON to w.
func GenerateJSON(w io.Writer, entries []Entry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(entries)
}

func mismatched(entries []Entry) []Entry {
	var bad []Entry

	for _, e := range entries {
		if e.BytesWritten != e.BytesRead {
			bad = append(bad, e)
		}
	}

	return bad
}

func variantLabel(e Entry) string {
	if e.Encoding == "" {
		return e.Variant
	}

	return e.Variant + "/" + e.Encoding
}

func formatMs(ms float64) string {
	if ms < 1000 {
		return fmt.Sprintf("%.3fms", ms)
	}

	return fmt.Sprintf("%.2fs", ms/1000)
}

func formatBytes(b uint64) string {
	if b == 0 {
		return "0 B"
	}

	units := []string{"B", "KB", "MB", "GB", "TB"}
	size := float64(b)
	unit := 0

	for size >= 1024 && unit < len(units)-1 {
		size /= 1024
		unit++
	}

	formatted := fmt.Sprintf("%.1f", size)
	formatted = strings.TrimRight(formatted, "0")
	formatted = strings.TrimRight(formatted, ".")

	return formatted + " " + units[unit]
}

func formatThroughput(mbps float64) string {
	if mbps == 0 {
		return "-"
	}

	return fmt.Sprintf("%.1f MB/s", mbps)
}

func formatChecksum(sum *uint64) string {
	if sum == nil {
		return "-"
	}

	return fmt.Sprintf("0x%016x", *sum)
}

func formatItems(n *int) string {
	if n == nil {
		return "-"
	}

	return fmt.Sprintf("%d", *n)
}
