package harness

import (
	"os"
	"path/filepath"

	"github.com/weiihann/rtbench/workload"
)

// Variant names one of the benchmark operations.
type Variant string

const (
	VariantText       Variant = "text"
	VariantBasic      Variant = "basic"
	VariantFast       Variant = "fast"
	VariantStructured Variant = "structured"
)

// KnownVariants returns the list of supported variants.
func KnownVariants() []Variant {
	return []Variant{
		VariantText, VariantBasic, VariantFast, VariantStructured,
	}
}

// DefaultPath returns the fixed file used by a variant when the caller does
// not supply one. Every run of the same variant in the same dir reuses the
// file, so concurrent runs against a default path corrupt each other.
// An empty dir means os.TempDir().
func DefaultPath(dir string, v Variant, enc workload.Encoding) string {
	if dir == "" {
		dir = os.TempDir()
	}

	switch v {
	case VariantText:
		return filepath.Join(dir, "rtbench_text.txt")
	case VariantBasic:
		return filepath.Join(dir, "rtbench_basic.txt")
	case VariantFast:
		return filepath.Join(dir, "rtbench_fast.bin")
	case VariantStructured:
		if enc == "" {
			enc = workload.EncodingJSON
		}

		return filepath.Join(dir, "rtbench_structured"+enc.Ext())
	default:
		return filepath.Join(dir, "rtbench_"+string(v)+".dat")
	}
}
