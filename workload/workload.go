// Package workload generates the deterministic payloads written by the
// round-trip benchmarks: flat byte buffers, printable text, and a tree of
// structured records.
package workload

import (
	"fmt"
	"math"
	"time"
)

// PayloadVersion is the version tag stamped on every generated Payload.
const PayloadVersion = "1.0"

// Tags is the fixed tag list stored in every item's metadata.
var Tags = []string{"perf", "bench", "json"}

// Item is a single record of the structured payload.
type Item struct {
	ID     uint64         `json:"id" cbor:"id"`
	Name   string         `json:"name" cbor:"name"`
	Values []float64      `json:"values" cbor:"values"`
	Flags  []bool         `json:"flags" cbor:"flags"`
	Meta   map[string]any `json:"meta" cbor:"meta"`
}

// Payload is the structured document serialized by the structured benchmark.
type Payload struct {
	Version   string `json:"version" cbor:"version"`
	Timestamp uint64 `json:"timestamp" cbor:"timestamp"`
	Items     []Item `json:"items" cbor:"items"`
}

// Config controls structured payload generation.
type Config struct {
	Items         int
	ValuesPerItem int

	// Now supplies the payload timestamp. Defaults to time.Now.
	Now func() time.Time
}

// Generator produces structured payloads from a Config.
type Generator struct {
	cfg Config
}

// NewGenerator creates a Generator from the given Config.
// Negative counts are treated as zero.
func NewGenerator(cfg Config) *Generator {
	cfg.Items = max(cfg.Items, 0)
	cfg.ValuesPerItem = max(cfg.ValuesPerItem, 0)

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Generator{cfg: cfg}
}

// Generate builds a fresh Payload. Item values are a pure function of the
// item and value indices; only the timestamp depends on the clock.
func (g *Generator) Generate() Payload {
	items := make([]Item, 0, g.cfg.Items)

	for i := 0; i < g.cfg.Items; i++ {
		items = append(items, g.item(i))
	}

	return Payload{
		Version:   PayloadVersion,
		Timestamp: uint64(g.cfg.Now().Unix()),
		Items:     items,
	}
}

func (g *Generator) item(i int) Item {
	n := g.cfg.ValuesPerItem
	values := make([]float64, n)
	flags := make([]bool, n)

	for j := 0; j < n; j++ {
		values[j] = Value(i, j)
		flags[j] = (i+j)%3 == 0
	}

	category := "odd"
	if i%2 == 0 {
		category = "even"
	}

	tags := make([]string, len(Tags))
	copy(tags, Tags)

	return Item{
		ID:     uint64(i),
		Name:   fmt.Sprintf("Item-%d", i),
		Values: values,
		Flags:  flags,
		Meta: map[string]any{
			"category": category,
			"index":    i,
			"tags":     tags,
		},
	}
}

// Value returns the pseudo-random looking value stored at values[j] of item i.
func Value(i, j int) float64 {
	return math.Sin(float64(i+1)*(float64(j)+3.14159)) * 1000
}

// Bytes returns n bytes following the repeating pattern data[i] = i mod 256.
func Bytes(n int) []byte {
	data := make([]byte, max(n, 0))
	for i := range data {
		data[i] = byte(i)
	}

	return data
}

const textAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789 "

// Text returns n bytes of printable ASCII, one newline every 80 bytes.
func Text(n int) string {
	buf := make([]byte, max(n, 0))
	for i := range buf {
		if i%80 == 79 {
			buf[i] = '\n'

			continue
		}

		buf[i] = textAlphabet[i%len(textAlphabet)]
	}

	return string(buf)
}
