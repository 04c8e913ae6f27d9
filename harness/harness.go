package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/weiihann/rtbench/checksum"
	"github.com/weiihann/rtbench/workload"
)

var (
	// ErrNegativeSize is returned when a size or count argument is negative.
	ErrNegativeSize = errors.New("size must not be negative")

	// ErrInvalidUTF8 is returned when a text round trip reads back bytes
	// that are not valid UTF-8.
	ErrInvalidUTF8 = errors.New("content read back is not valid UTF-8")
)

// StructuredOptions holds parameters for a structured payload round trip.
type StructuredOptions struct {
	// Path is the benchmark file. Empty selects DefaultPath.
	Path          string
	Items         int
	ValuesPerItem int
	// Encoding defaults to JSON.
	Encoding workload.Encoding
	// Verify parses the read-back bytes again after the timed window and
	// checks the item count.
	Verify bool
}

// Harness runs single-trial file round trips. Each call is independent and
// runs to completion on the caller's goroutine; the context only carries
// logging values and never interrupts I/O.
type Harness struct {
	// Dir holds the default benchmark files. Empty means os.TempDir().
	Dir    string
	Logger *slog.Logger

	// now stamps structured payloads.
	now func() time.Time
}

// New creates a Harness writing default files under dir.
// A nil logger discards all output.
func New(dir string, logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Harness{
		Dir:    dir,
		Logger: logger,
		now:    time.Now,
	}
}

func (h *Harness) resolve(path string, v Variant, enc workload.Encoding) string {
	if path != "" {
		return path
	}

	return DefaultPath(h.Dir, v, enc)
}

// SaveAndLoadText writes content to path, reads it back as text and returns
// the round-tripped content along with the timings. The elapsed time and
// byte count are also logged.
func (h *Harness) SaveAndLoadText(
	ctx context.Context,
	path, content string,
) (*TextResult, error) {
	path = h.resolve(path, VariantText, "")
	logger := h.Logger.With(
		slog.String("variant", string(VariantText)),
		slog.String("path", path),
	)

	t, err := roundTrip(path, []byte(content))
	if err != nil {
		return nil, err
	}

	if !utf8.Valid(t.readBack) {
		return nil, fmt.Errorf("read %s: %w", path, ErrInvalidUTF8)
	}

	res := &TextResult{
		ElapsedMs:    millis(t.elapsed),
		BytesWritten: t.bytesWritten,
		BytesRead:    len(t.readBack),
		Content:      string(t.readBack),
	}

	logger.InfoContext(ctx, "write+read finished",
		slog.Int("bytes", res.BytesRead),
		slog.Float64("elapsed_ms", res.ElapsedMs),
	)
	checkCounts(ctx, logger, res.BytesWritten, res.BytesRead)

	return res, nil
}

// SaveAndLoadBasic writes content to path and reads the raw bytes back,
// returning only the timings and byte counts.
func (h *Harness) SaveAndLoadBasic(
	ctx context.Context,
	path, content string,
) (*BasicResult, error) {
	path = h.resolve(path, VariantBasic, "")
	logger := h.Logger.With(
		slog.String("variant", string(VariantBasic)),
		slog.String("path", path),
	)

	t, err := roundTrip(path, []byte(content))
	if err != nil {
		return nil, err
	}

	res := &BasicResult{
		ElapsedMs:    millis(t.elapsed),
		BytesWritten: t.bytesWritten,
		BytesRead:    len(t.readBack),
	}

	logger.DebugContext(ctx, "write+read finished",
		slog.Int("bytes", res.BytesRead),
		slog.Float64("elapsed_ms", res.ElapsedMs),
	)
	checkCounts(ctx, logger, res.BytesWritten, res.BytesRead)

	return res, nil
}

// SaveAndLoadFast generates sizeBytes of patterned data, round-trips it
// through path and returns the timings with an XOR-fold checksum of the
// bytes read back.
func (h *Harness) SaveAndLoadFast(
	ctx context.Context,
	path string,
	sizeBytes int,
) (*RawResult, error) {
	if sizeBytes < 0 {
		return nil, fmt.Errorf("size %d: %w", sizeBytes, ErrNegativeSize)
	}

	path = h.resolve(path, VariantFast, "")
	logger := h.Logger.With(
		slog.String("variant", string(VariantFast)),
		slog.String("path", path),
	)

	data := workload.Bytes(sizeBytes)

	t, err := roundTrip(path, data)
	if err != nil {
		return nil, err
	}

	res := &RawResult{
		ElapsedMs:    millis(t.elapsed),
		BytesWritten: t.bytesWritten,
		BytesRead:    len(t.readBack),
		Checksum:     checksum.XOR64(t.readBack),
	}

	logger.DebugContext(ctx, "write+read finished",
		slog.Int("bytes", res.BytesRead),
		slog.Float64("elapsed_ms", res.ElapsedMs),
		slog.Uint64("checksum", res.Checksum),
	)
	checkCounts(ctx, logger, res.BytesWritten, res.BytesRead)

	return res, nil
}

// SaveAndLoadStructured generates a structured payload, serializes it and
// round-trips the encoded bytes through the benchmark file. Generation and
// serialization happen before the timed window.
func (h *Harness) SaveAndLoadStructured(
	ctx context.Context,
	opts StructuredOptions,
) (*StructuredResult, error) {
	if opts.Items < 0 || opts.ValuesPerItem < 0 {
		return nil, fmt.Errorf("items %d, values per item %d: %w",
			opts.Items, opts.ValuesPerItem, ErrNegativeSize)
	}

	enc, err := workload.ParseEncoding(string(opts.Encoding))
	if err != nil {
		return nil, err
	}

	path := h.resolve(opts.Path, VariantStructured, enc)
	logger := h.Logger.With(
		slog.String("variant", string(VariantStructured)),
		slog.String("path", path),
		slog.String("encoding", string(enc)),
	)

	payload := workload.NewGenerator(workload.Config{
		Items:         opts.Items,
		ValuesPerItem: opts.ValuesPerItem,
		Now:           h.now,
	}).Generate()

	data, err := workload.Marshal(enc, payload)
	if err != nil {
		return nil, fmt.Errorf("serialize payload: %w", err)
	}

	t, err := roundTrip(path, data)
	if err != nil {
		return nil, err
	}

	res := &StructuredResult{
		ElapsedMs:    millis(t.elapsed),
		BytesWritten: t.bytesWritten,
		BytesRead:    len(t.readBack),
		ItemCount:    len(payload.Items),
		Encoding:     string(enc),
	}

	if opts.Verify {
		start := time.Now()

		n, err := workload.CountItems(enc, t.readBack)
		if err != nil {
			return nil, fmt.Errorf("verify %s: %w", path, err)
		}

		if n != res.ItemCount {
			return nil, fmt.Errorf(
				"verify %s: read back %d items, wrote %d",
				path, n, res.ItemCount,
			)
		}

		res.VerifyMs = millis(time.Since(start))
	}

	logger.DebugContext(ctx, "write+read finished",
		slog.Int("bytes", res.BytesRead),
		slog.Int("items", res.ItemCount),
		slog.Float64("elapsed_ms", res.ElapsedMs),
	)
	checkCounts(ctx, logger, res.BytesWritten, res.BytesRead)

	return res, nil
}

// checkCounts warns when the file did not read back at the size it was
// written. Another writer on the same path is the usual cause.
func checkCounts(ctx context.Context, logger *slog.Logger, written, read int) {
	if written == read {
		return
	}

	logger.WarnContext(ctx, "byte count mismatch",
		slog.Int("bytes_written", written),
		slog.Int("bytes_read", read),
	)
}
