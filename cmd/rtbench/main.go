// Package main provides the CLI entry point for rtbench, a file write-then-read
// round-trip benchmark.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/weiihann/rtbench/config"
	"github.com/weiihann/rtbench/harness"
	"github.com/weiihann/rtbench/report"
	"github.com/weiihann/rtbench/workload"
)

func main() {
	root := newRootCmd(os.Stdout)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app holds state shared by all subcommands once flags are parsed.
type app struct {
	out        io.Writer
	dir        string
	logLevel   string
	logJSON    bool
	outputJSON bool

	logger  *slog.Logger
	harness *harness.Harness
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:   "rtbench",
		Short: "File write-then-read round-trip benchmark",
		Long: `Rtbench measures how long it takes to write a payload to a file and read
it straight back, for raw bytes, text, and serialized structured records.
Every invocation runs exactly one timed trial.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.dir, "dir", "",
		"Directory for default benchmark files (default: OS temp dir)")
	flags.StringVar(&a.logLevel, "log-level", "info",
		"Log level: debug, info, warn, error")
	flags.BoolVar(&a.logJSON, "log-json", false,
		"Write logs as JSON")
	flags.BoolVar(&a.outputJSON, "json", false,
		"Output results as JSON instead of table")

	root.AddCommand(
		newTextCmd(a),
		newBasicCmd(a),
		newFastCmd(a),
		newStructuredCmd(a),
		newRunCmd(a),
	)

	return root
}

func (a *app) init(stderr io.Writer) error {
	level, err := parseLevel(a.logLevel)
	if err != nil {
		return err
	}

	if f, ok := stderr.(*os.File); ok && f == os.Stderr {
		a.logger = newLogger(level, a.logJSON)
	} else {
		a.logger = slog.New(newHandler(stderr, level, a.logJSON, false))
	}

	a.harness = harness.New(a.dir, a.logger)

	return nil
}

func (a *app) write(entries []report.Entry) error {
	if a.outputJSON {
		if err := report.GenerateJSON(a.out, entries); err != nil {
			return fmt.Errorf("generate JSON report: %w", err)
		}

		return nil
	}

	if err := report.Generate(a.out, entries); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	return nil
}

func (a *app) runSingle(ctx context.Context, b config.Benchmark) error {
	entry, err := runOne(ctx, a.harness, b)
	if err != nil {
		return fmt.Errorf("%s: %w", b.Variant, err)
	}

	return a.write([]report.Entry{entry})
}

// contentFlags registers the flags shared by the text and basic variants.
func contentFlags(cmd *cobra.Command, b *config.Benchmark) {
	flags := cmd.Flags()
	flags.StringVar(&b.Path, "path", "",
		"Benchmark file (default: fixed name in --dir)")
	flags.StringVar(&b.Content, "content", "",
		"Content to write")
	flags.StringVar(&b.ContentFile, "content-file", "",
		"Read the content to write from this file")
	flags.IntVar(&b.SizeBytes, "size", 1600000,
		"Bytes of generated text when no content is given")
}

func newTextCmd(a *app) *cobra.Command {
	var (
		b            = config.Benchmark{Name: "text", Variant: string(harness.VariantText)}
		printContent bool
	)

	cmd := &cobra.Command{
		Use:   "text",
		Short: "Round-trip text content and read it back as a string",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !printContent {
				return a.runSingle(cmd.Context(), b)
			}

			content, err := b.ResolveContent()
			if err != nil {
				return err
			}

			res, err := a.harness.SaveAndLoadText(cmd.Context(), b.Path, content)
			if err != nil {
				return fmt.Errorf("text: %w", err)
			}

			_, err = io.WriteString(a.out, res.Content)

			return err
		},
	}

	contentFlags(cmd, &b)
	cmd.Flags().BoolVar(&printContent, "print-content", false,
		"Print the content read back instead of the report")

	return cmd
}

func newBasicCmd(a *app) *cobra.Command {
	b := config.Benchmark{Name: "basic", Variant: string(harness.VariantBasic)}

	cmd := &cobra.Command{
		Use:   "basic",
		Short: "Round-trip content as raw bytes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSingle(cmd.Context(), b)
		},
	}

	contentFlags(cmd, &b)

	return cmd
}

func newFastCmd(a *app) *cobra.Command {
	b := config.Benchmark{Name: "fast", Variant: string(harness.VariantFast)}

	cmd := &cobra.Command{
		Use:   "fast",
		Short: "Round-trip generated bytes and checksum the read-back data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSingle(cmd.Context(), b)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&b.Path, "path", "",
		"Benchmark file (default: fixed name in --dir)")
	flags.IntVar(&b.SizeBytes, "size", 1600000,
		"Number of bytes to write")

	return cmd
}

func newStructuredCmd(a *app) *cobra.Command {
	b := config.Benchmark{Name: "structured", Variant: string(harness.VariantStructured)}

	cmd := &cobra.Command{
		Use:     "structured",
		Aliases: []string{"json"},
		Short:   "Round-trip a serialized tree of structured records",
		Long: `Generate a payload of --items records with --values floats and flags
each, serialize it, and time writing and reading back the encoded bytes.
Generation and serialization are not part of the timed window.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSingle(cmd.Context(), b)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&b.Path, "path", "",
		"Benchmark file (default: fixed name in --dir)")
	flags.IntVar(&b.Items, "items", 5000,
		"Number of records")
	flags.IntVar(&b.ValuesPerItem, "values", 20,
		"Floats and flags per record")
	flags.StringVar(&b.Encoding, "encoding", string(workload.EncodingJSON),
		"Encoding: json, cbor")
	flags.BoolVar(&b.Verify, "verify", false,
		"Parse the read-back data and check the item count")

	return cmd
}

func newRunCmd(a *app) *cobra.Command {
	var suitePath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every benchmark in a suite file once",
		Long: `Load a suite file (default: ./rtbench.yaml or ./rtbench.yml, or a built-in
suite covering each variant) and run each benchmark once, in order.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			suite, err := config.Load(suitePath)
			if err != nil {
				return err
			}

			h := a.harness
			if suite.Dir != "" && !cmd.Flags().Changed("dir") {
				h = harness.New(suite.Dir, a.logger)
			}

			entries, runErr := runSuite(ctx, a.logger, h, suite)
			if len(entries) > 0 {
				if err := a.write(entries); err != nil {
					return err
				}
			}

			if runErr != nil {
				return runErr
			}

			a.logger.InfoContext(ctx, "suite complete",
				slog.Int("benchmarks", len(entries)),
			)

			return nil
		},
	}

	cmd.Flags().StringVarP(&suitePath, "suite", "s", "",
		"Suite file (YAML)")

	return cmd
}
