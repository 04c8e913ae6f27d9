package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/weiihann/rtbench/config"
	"github.com/weiihann/rtbench/harness"
	"github.com/weiihann/rtbench/report"
	"github.com/weiihann/rtbench/workload"
)

// runOne dispatches a single benchmark to the matching harness operation.
func runOne(
	ctx context.Context,
	h *harness.Harness,
	b config.Benchmark,
) (report.Entry, error) {
	path := b.Path

	switch harness.Variant(b.Variant) {
	case harness.VariantText:
		content, err := b.ResolveContent()
		if err != nil {
			return report.Entry{}, err
		}

		res, err := h.SaveAndLoadText(ctx, path, content)
		if err != nil {
			return report.Entry{}, err
		}

		return withPath(report.FromText(b.Name, res), h, b), nil

	case harness.VariantBasic:
		content, err := b.ResolveContent()
		if err != nil {
			return report.Entry{}, err
		}

		res, err := h.SaveAndLoadBasic(ctx, path, content)
		if err != nil {
			return report.Entry{}, err
		}

		return withPath(report.FromBasic(b.Name, res), h, b), nil

	case harness.VariantFast:
		res, err := h.SaveAndLoadFast(ctx, path, b.SizeBytes)
		if err != nil {
			return report.Entry{}, err
		}

		return withPath(report.FromRaw(b.Name, res), h, b), nil

	case harness.VariantStructured:
		res, err := h.SaveAndLoadStructured(ctx, harness.StructuredOptions{
			Path:          path,
			Items:         b.Items,
			ValuesPerItem: b.ValuesPerItem,
			Encoding:      workload.Encoding(b.Encoding),
			Verify:        b.Verify,
		})
		if err != nil {
			return report.Entry{}, err
		}

		return withPath(report.FromStructured(b.Name, res), h, b), nil

	default:
		return report.Entry{}, fmt.Errorf("unknown variant %q", b.Variant)
	}
}

func withPath(e report.Entry, h *harness.Harness, b config.Benchmark) report.Entry {
	if b.Path != "" {
		e.Path = b.Path

		return e
	}

	enc, err := workload.ParseEncoding(b.Encoding)
	if err != nil {
		enc = workload.EncodingJSON
	}

	e.Path = harness.DefaultPath(h.Dir, harness.Variant(b.Variant), enc)

	return e
}

// runSuite runs every benchmark once, in order. A failed benchmark is
// logged and skipped; its error is joined into the returned error.
func runSuite(
	ctx context.Context,
	logger *slog.Logger,
	h *harness.Harness,
	suite *config.Suite,
) ([]report.Entry, error) {
	entries := make([]report.Entry, 0, len(suite.Benchmarks))

	var errs []error

	for _, b := range suite.Benchmarks {
		logger.InfoContext(ctx, "running benchmark",
			slog.String("name", b.Name),
			slog.String("variant", b.Variant),
		)

		entry, err := runOne(ctx, h, b)
		if err != nil {
			logger.ErrorContext(ctx, "benchmark failed",
				slog.String("name", b.Name),
				slog.String("error", err.Error()),
			)

			errs = append(errs, fmt.Errorf("%s: %w", b.Name, err))

			continue
		}

		entries = append(entries, entry)
	}

	return entries, errors.Join(errs...)
}
