package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/a11yscan/a11yscan/internal/config"
	"github.com/a11yscan/a11yscan/internal/dom"
	applog "github.com/a11yscan/a11yscan/internal/log"
	"github.com/a11yscan/a11yscan/internal/model"
	"github.com/a11yscan/a11yscan/internal/overlay"
	"github.com/a11yscan/a11yscan/internal/report"
	"github.com/a11yscan/a11yscan/internal/scan"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [file...]",
		Short: "Audit HTML documents for accessibility defects",
		Long: `Scan audits one or more HTML documents for accessibility defects.

It walks each document tree in budgeted chunks and evaluates the rule
catalog against every element:
- Images without alternative text, or with uninformative alt values
- Buttons and links without accessible content
- Unlabeled form controls and fieldsets without legends
- Tables without headers, nested tables, layout tables
- Frames without titles, media without captions or with autoplay
- ARIA misuse, tab-order problems, and undersized text

Examples:
  # Audit a single document
  a11yscan scan page.html

  # Audit a whole directory
  a11yscan scan 'site/**.html'

  # Output JSON report
  a11yscan scan --json page.html

  # Write a Markdown report to a file, summary to the terminal
  a11yscan scan --markdown --output report.md page.html

  # Use a custom configuration file
  a11yscan scan -c myconfig.yml page.html`,
		Args: cobra.MinimumNArgs(1),
		RunE: runScanCmd,
	}

	// Scan behavior flags
	cmd.Flags().DurationP("max-duration", "t", config.DefaultMaxDuration,
		"Wall-clock budget for each document scan")
	cmd.Flags().IntP("chunk-size", "n", config.DefaultChunkSize,
		"Maximum elements evaluated between yields")

	// Batch scanning flags
	cmd.Flags().IntP("batch", "b", 1,
		"Number of concurrent document scans")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .a11yscan.yml in current or XDG config directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("show-errors", true,
		"Include error findings in the report")
	cmd.Flags().Bool("show-warnings", true,
		"Include warning findings in the report")

	return cmd
}

// scanOptions carries the resolved scan command flags.
type scanOptions struct {
	targets      []string
	maxDuration  time.Duration
	chunkSize    int
	batchSize    int
	configPath   string
	jsonReport   bool
	markdown     bool
	outputFile   string
	showErrors   bool
	showWarnings bool
	verbose      bool
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	opts, err := buildScanOptions(cmd, args)
	if err != nil {
		return err
	}
	if opts.jsonReport && opts.markdown {
		return errors.New("--json and --markdown are mutually exclusive")
	}

	// Set up structured logging
	logger := applog.NewLogger(os.Stderr, opts.verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScan(ctx, cmd.OutOrStdout(), opts, logger)
}

// buildScanOptions creates scanOptions from cobra command flags.
func buildScanOptions(cmd *cobra.Command, args []string) (*scanOptions, error) {
	opts := &scanOptions{verbose: getVerboseFlag(cmd)}

	var err error
	if opts.maxDuration, err = cmd.Flags().GetDuration("max-duration"); err != nil {
		return nil, err
	}
	if opts.chunkSize, err = cmd.Flags().GetInt("chunk-size"); err != nil {
		return nil, err
	}
	if opts.batchSize, err = cmd.Flags().GetInt("batch"); err != nil {
		return nil, err
	}
	if opts.configPath, err = cmd.Flags().GetString("config"); err != nil {
		return nil, err
	}
	if opts.jsonReport, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, err
	}
	if opts.markdown, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, err
	}
	if opts.outputFile, err = cmd.Flags().GetString("output"); err != nil {
		return nil, err
	}
	if opts.showErrors, err = cmd.Flags().GetBool("show-errors"); err != nil {
		return nil, err
	}
	if opts.showWarnings, err = cmd.Flags().GetBool("show-warnings"); err != nil {
		return nil, err
	}

	// An explicitly specified config file must exist.
	if opts.configPath != "" && config.FindConfigFile(opts.configPath) == "" {
		return nil, fmt.Errorf("configuration file not found: %s", opts.configPath)
	}

	opts.targets, err = expandTargets(args)
	if err != nil {
		return nil, err
	}
	return opts, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// expandTargets resolves glob patterns in the positional arguments.
// Plain paths pass through untouched so a missing file still surfaces
// as a per-document error instead of silently matching nothing.
func expandTargets(args []string) ([]string, error) {
	var targets []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[") {
			targets = append(targets, arg)
			continue
		}
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("pattern %q matched no files", arg)
		}
		targets = append(targets, matches...)
	}
	return targets, nil
}

// runScan executes the scan against all targets.
func runScan(ctx context.Context, stdout io.Writer, opts *scanOptions, logger *slog.Logger) error {
	logger.Info("starting scan",
		"targets", opts.targets,
		"batchSize", opts.batchSize,
		"maxDuration", opts.maxDuration,
	)

	loader := config.NewLoader(
		config.WithPath(opts.configPath),
		config.WithLoaderLogger(logger),
	)

	if len(opts.targets) > 1 && opts.batchSize > 1 {
		return runBatchScan(ctx, stdout, opts, loader, logger)
	}
	return runSequentialScan(ctx, stdout, opts, loader, logger)
}

// runSequentialScan audits targets one at a time through the engine.
func runSequentialScan(ctx context.Context, stdout io.Writer, opts *scanOptions, loader *config.Loader, logger *slog.Logger) error {
	var errs []error
	for _, target := range opts.targets {
		engine := scan.NewEngine(
			fileProvider(target), loader, overlay.NewMemoryRenderer(),
			scan.WithEngineLogger(logger),
			scan.WithDocumentName(target),
			scan.WithConfigMutator(opts.applyBudgets),
		)
		rep, err := engine.Trigger(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", target, err))
			continue
		}
		if rep == nil {
			continue
		}
		if err := writeReport(stdout, opts, rep); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", target, err))
		}
	}
	return errors.Join(errs...)
}

// runBatchScan audits targets concurrently.
func runBatchScan(ctx context.Context, stdout io.Writer, opts *scanOptions, loader *config.Loader, logger *slog.Logger) error {
	batch := scan.NewBatchProcessor(loader,
		scan.WithBatchLogger(logger),
		scan.WithConcurrency(opts.batchSize),
	)
	results, err := batch.Run(ctx, opts.targets)
	if err != nil {
		return err
	}

	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.Path, res.Err))
			continue
		}
		if err := writeReport(stdout, opts, res.Report); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.Path, err))
		}
	}
	return errors.Join(errs...)
}

// fileProvider returns a DocumentProvider reading one HTML file.
func fileProvider(path string) scan.DocumentProvider {
	return scan.DocumentProviderFunc(func(ctx context.Context) (*dom.Document, error) {
		f, err := os.Open(path) //nolint:gosec // User-provided document path is intentional
		if err != nil {
			return nil, err
		}
		defer f.Close() //nolint:errcheck
		return dom.Parse(f)
	})
}

// applyBudgets overlays the scan command's budget flags onto the
// resolved configuration.
func (o *scanOptions) applyBudgets(cfg *config.RuleConfig) {
	if o.maxDuration > 0 {
		cfg.Scan.MaxDurationMS = int(o.maxDuration / time.Millisecond)
	}
	if o.chunkSize > 0 {
		cfg.Scan.ChunkSize = o.chunkSize
	}
}

// writeReport renders one report according to the output flags. When
// both a format flag and --output are given, the file receives the
// formatted report and the terminal a plain summary.
func writeReport(stdout io.Writer, opts *scanOptions, rep *model.AuditReport) error {
	rep = filterReport(rep, opts.showErrors, opts.showWarnings)

	if opts.outputFile == "" {
		_, err := formatWriter(stdout, opts).Write(rep)
		return err
	}

	if dir := filepath.Dir(opts.outputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(opts.outputFile) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	mw := report.NewMultiWriter(
		report.NewSimpleWriter(stdout),
		formatWriter(f, opts),
	)
	_, err = mw.Write(rep)
	return err
}

// formatWriter selects the report writer for the chosen format.
func formatWriter(w io.Writer, opts *scanOptions) report.Writer {
	switch {
	case opts.jsonReport:
		return report.NewJSONWriter(w, report.WithPrettyPrint())
	case opts.markdown:
		return report.NewMarkdownWriter(w)
	default:
		return report.NewSimpleWriter(w, report.WithVerbose(opts.verbose))
	}
}

// filterReport drops findings of suppressed severities, recomputing the
// report totals. The underlying finding log is never touched; this is a
// presentation concern.
func filterReport(rep *model.AuditReport, showErrors, showWarnings bool) *model.AuditReport {
	if showErrors && showWarnings {
		return rep
	}
	var kept []model.Finding
	for _, f := range rep.Findings {
		if f.Severity == model.SeverityError && !showErrors {
			continue
		}
		if f.Severity == model.SeverityWarning && !showWarnings {
			continue
		}
		kept = append(kept, f)
	}
	filtered := model.NewAuditReport(rep.Document, model.StateCompleted, rep.ElementsScanned, kept)
	filtered.SessionState = rep.SessionState
	filtered.ScannedAt = rep.ScannedAt
	return filtered
}
