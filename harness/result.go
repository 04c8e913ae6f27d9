// Package harness runs the timed write-then-read round trips and returns one
// fixed result shape per benchmark variant.
package harness

import "time"

// TextResult holds the outcome of a text round trip, including the content
// read back from disk.
type TextResult struct {
	ElapsedMs    float64 `json:"elapsed_ms"`
	BytesWritten int     `json:"bytes_written"`
	BytesRead    int     `json:"bytes_read"`
	Content      string  `json:"content"`
}

// BasicResult holds the outcome of a caller-supplied content round trip.
type BasicResult struct {
	ElapsedMs    float64 `json:"elapsed_ms"`
	BytesWritten int     `json:"bytes_written"`
	BytesRead    int     `json:"bytes_read"`
}

// RawResult holds the outcome of a synthetic byte buffer round trip.
type RawResult struct {
	ElapsedMs    float64 `json:"elapsed_ms"`
	BytesWritten int     `json:"bytes_written"`
	BytesRead    int     `json:"bytes_read"`
	Checksum     uint64  `json:"checksum"`
}

// StructuredResult holds the outcome of a structured payload round trip.
// VerifyMs is only set when the read-back bytes were parsed again.
type StructuredResult struct {
	ElapsedMs    float64 `json:"elapsed_ms"`
	BytesWritten int     `json:"bytes_written"`
	BytesRead    int     `json:"bytes_read"`
	ItemCount    int     `json:"item_count"`
	Encoding     string  `json:"encoding"`
	VerifyMs     float64 `json:"verify_ms,omitempty"`
}

func millis(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / float64(time.Millisecond)
}
