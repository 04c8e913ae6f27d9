package harness

import (
	"bytes"
	"fmt"
	"os"
	"time"
)

// trial is the raw outcome of one timed write and read-back pass.
type trial struct {
	elapsed      time.Duration
	bytesWritten int
	readBack     []byte
}

// roundTrip truncates path, writes data to it and reads the whole file back.
// Only the write and read passes are timed. Nothing is synced to stable
// storage, so the figure reflects page cache throughput.
func roundTrip(path string, data []byte) (*trial, error) {
	start := time.Now()

	// Write pass.
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}

	n, err := f.Write(data)
	if err != nil {
		f.Close()

		return nil, fmt.Errorf("write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", path, err)
	}

	// Read pass.
	f, err = os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	buf.Grow(len(data) + bytes.MinRead)

	if _, err := buf.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return &trial{
		elapsed:      time.Since(start),
		bytesWritten: n,
		readBack:     buf.Bytes(),
	}, nil
}
