// Package config loads rtbench suite files: an ordered list of benchmarks
// that `rtbench run` executes once each.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/weiihann/rtbench/harness"
	"github.com/weiihann/rtbench/workload"
)

// DefaultFiles are searched in the working directory when no path is given.
var DefaultFiles = []string{"rtbench.yaml", "rtbench.yml"}

// Benchmark describes one invocation in a suite.
type Benchmark struct {
	Name    string `yaml:"name"`
	Variant string `yaml:"variant"`
	// Path overrides the variant's default file.
	Path string `yaml:"path"`

	// Text and basic variants write Content, the contents of ContentFile,
	// or SizeBytes of generated text, in that order of preference.
	// The fast variant uses SizeBytes only.
	Content     string `yaml:"content"`
	ContentFile string `yaml:"content_file"`
	SizeBytes   int    `yaml:"size_bytes"`

	Items         int    `yaml:"items"`
	ValuesPerItem int    `yaml:"values_per_item"`
	Encoding      string `yaml:"encoding"`
	Verify        bool   `yaml:"verify"`
}

// Suite is the top level of a suite file.
type Suite struct {
	// Dir holds default benchmark files. Empty means the OS temp dir.
	Dir        string      `yaml:"dir"`
	Benchmarks []Benchmark `yaml:"benchmarks"`
}

// DefaultSuite returns one benchmark per variant sized like the desktop
// host's defaults.
func DefaultSuite() *Suite {
	return &Suite{
		Benchmarks: []Benchmark{
			{Name: "text", Variant: string(harness.VariantText), SizeBytes: 1600000},
			{Name: "basic", Variant: string(harness.VariantBasic), SizeBytes: 1600000},
			{Name: "fast", Variant: string(harness.VariantFast), SizeBytes: 1600000},
			{
				Name:          "structured",
				Variant:       string(harness.VariantStructured),
				Items:         5000,
				ValuesPerItem: 20,
				Encoding:      string(workload.EncodingJSON),
			},
		},
	}
}

// Load reads a suite from path. An empty path searches DefaultFiles and
// returns DefaultSuite when none exists.
func Load(path string) (*Suite, error) {
	var (
		data []byte
		err  error
	)

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read suite %s: %w", path, err)
		}
	} else {
		found := false

		for _, name := range DefaultFiles {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				found = true

				break
			}
		}

		if !found {
			return DefaultSuite(), nil
		}
	}

	return Parse(path, data)
}

// Parse decodes and validates suite YAML. name is only used in errors.
func Parse(name string, data []byte) (*Suite, error) {
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse suite %s: %w", name, err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid suite %s: %w", name, err)
	}

	return &s, nil
}

// Validate checks that every benchmark can be run.
func (s *Suite) Validate() error {
	if len(s.Benchmarks) == 0 {
		return errors.New("no benchmarks")
	}

	seen := make(map[string]bool, len(s.Benchmarks))

	for i, b := range s.Benchmarks {
		if b.Name == "" {
			return fmt.Errorf("benchmark %d: name is required", i)
		}

		if seen[b.Name] {
			return fmt.Errorf("benchmark %q: duplicate name", b.Name)
		}

		seen[b.Name] = true

		if !knownVariant(b.Variant) {
			return fmt.Errorf("benchmark %q: unknown variant %q", b.Name, b.Variant)
		}

		if b.SizeBytes < 0 || b.Items < 0 || b.ValuesPerItem < 0 {
			return fmt.Errorf("benchmark %q: %w", b.Name, harness.ErrNegativeSize)
		}

		if _, err := workload.ParseEncoding(b.Encoding); err != nil {
			return fmt.Errorf("benchmark %q: %w", b.Name, err)
		}
	}

	return nil
}

func knownVariant(v string) bool {
	for _, k := range harness.KnownVariants() {
		if string(k) == v {
			return true
		}
	}

	return false
}

// ResolveContent returns the text written by the text and basic variants.
func (b Benchmark) ResolveContent() (string, error) {
	if b.Content != "" {
		return b.Content, nil
	}

	if b.ContentFile != "" {
		data, err := os.ReadFile(b.ContentFile)
		if err != nil {
			return "", fmt.Errorf("read content file %s: %w", b.ContentFile, err)
		}

		return string(data), nil
	}

	return workload.Text(b.SizeBytes), nil
}
