// =============================================================================
// Backer CSV to Shopify Orders - Import Command
// =============================================================================
//
// This file defines the 'import' command, the main command of the tool. It
// orchestrates the import pipeline for each export file:
//
//   1. Load configuration and open the import ledger
//   2. Discover export files (or take the one given with --file)
//   3. Parse the export into flat records (CSV or XLSX)
//   4. Aggregate records into one order per customer email
//   5. Upload pending orders sequentially with pacing
//   6. Write a failed-order log and archive fully imported exports
//
// A rejected or failed order never aborts the run; an unreadable export
// file does, before any upload is attempted.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/backercamp/csv-to-shopify-orders/internal/config"
	"github.com/backercamp/csv-to-shopify-orders/internal/csvparser"
	"github.com/backercamp/csv-to-shopify-orders/internal/importer"
	"github.com/backercamp/csv-to-shopify-orders/internal/ledger"
	"github.com/backercamp/csv-to-shopify-orders/internal/logger"
	"github.com/backercamp/csv-to-shopify-orders/internal/order"
	"github.com/backercamp/csv-to-shopify-orders/internal/shopify"
	"github.com/backercamp/csv-to-shopify-orders/internal/types"
	"github.com/backercamp/csv-to-shopify-orders/internal/xlsxparser"
	"github.com/backercamp/csv-to-shopify-orders/pkg/utils"
)

// dryRun aggregates and filters but skips uploads, ledger writes, and
// archival.
var dryRun bool

// importFile limits the run to a single export file.
var importFile string

// importCmd represents the 'import' command.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import backer exports as Shopify orders",
	Long: `The import command reads backer export files, consolidates rows into one
order per customer email, and uploads each order to the configured Shopify
store.

Orders already recorded in the import ledger are skipped. Uploads are strictly
sequential with a configurable pause after every attempt. A rejected order is
logged and the run continues; its export file stays in the input directory so
the run can be repeated after fixing the data.

On success:
  - Each uploaded order is appended to the import ledger
  - A fully imported export file is moved to the archive directory

On per-order failure:
  - The error payload from Shopify is logged
  - A failed-order log is written to the output directory`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Aggregate and report without uploading anything",
	)

	importCmd.Flags().StringVar(
		&importFile,
		"file",
		"",
		"Path to a single export file to import (skips input directory discovery)",
	)
}

// runImport orchestrates the import pipeline.
func runImport(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()

	fm := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.ArchiveDir)
	if err := fm.EnsureDirectories(); err != nil {
		return err
	}

	files, err := resolveInputFiles(fm, importFile)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		log.Info("no export files found", zap.String("input_dir", cfg.InputDir))
		return nil
	}

	led, err := ledger.Open(cfg.LedgerPath())
	if err != nil {
		return err
	}
	if led != nil {
		log.Info("opened import ledger",
			zap.String("file", cfg.LedgerPath()),
			zap.Int("imported_keys", led.Len()),
		)
	}

	client := shopify.NewClient(shopify.ClientConfig{
		Credentials: shopify.Credentials{
			StoreHandle: cfg.Shopify.StoreHandle,
			APIKey:      cfg.Shopify.APIKey,
			APIPassword: cfg.Shopify.APIPassword,
		},
		APIVersion: cfg.Shopify.APIVersion,
		Timeout:    cfg.Shopify.Timeout(),
	})

	im := importer.New(
		client,
		led,
		&importer.FixedDelayPacer{Delay: cfg.Upload.Delay()},
		log,
		dryRun,
	)

	for _, file := range files {
		if err := importExport(ctx, file, cfg, im, fm, log); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return fmt.Errorf("import interrupted: %w", ctx.Err())
		}
	}

	return nil
}

// importExport runs the pipeline for one export file.
func importExport(ctx context.Context, file string, cfg *config.Config, im *importer.Importer, fm *utils.FileManager, log *zap.Logger) error {
	export, err := parseExport(file, cfg)
	if err != nil {
		return fmt.Errorf("failed to read export %s: %w", file, err)
	}

	log.Info("read export",
		zap.String("file", file),
		zap.Int("records", export.RowCount()),
	)

	agg := order.NewAggregator()
	for i, rec := range export.Rows {
		if err := agg.Add(rec); err != nil {
			// Lenient: the line item stays with an unusable quantity and
			// the store decides whether to reject the order.
			log.Warn("malformed record",
				zap.Int("row", i+2),
				zap.Error(err),
			)
		}
	}

	orders := agg.Orders()
	log.Info("aggregated orders",
		zap.String("file", file),
		zap.Int("orders", len(orders)),
	)

	results, stats := im.Run(ctx, orders)
	printSummary(file, stats)

	var failures []utils.FailedOrder
	for _, res := range results {
		if !res.Success {
			failures = append(failures, utils.FailedOrder{
				Key:   res.Key,
				Email: res.Email,
				Err:   res.Err,
			})
		}
	}

	if logPath, err := fm.WriteFailedOrderLog(file, failures); err != nil {
		log.Warn("failed to write failed-order log", zap.Error(err))
	} else if logPath != "" {
		log.Info("wrote failed-order log", zap.String("file", logPath))
	}

	if shouldArchive(stats, ctx.Err() != nil, dryRun, importFile) {
		archived, err := fm.ArchiveInputFile(file)
		if err != nil {
			log.Warn("failed to archive export", zap.Error(err))
		} else {
			log.Info("archived export", zap.String("file", archived))
		}
	}

	return nil
}

// shouldArchive reports whether an export file may be moved to the archive
// directory after a run. Any failed order, an interrupted run, a dry run,
// or an explicit --file target keeps the file in place so the run can be
// repeated.
func shouldArchive(stats importer.Stats, interrupted, dry bool, single string) bool {
	return !dry && !interrupted && stats.Failed == 0 && single == ""
}

// resolveInputFiles returns the single --file target or the discovered
// contents of the input directory.
func resolveInputFiles(fm *utils.FileManager, single string) ([]string, error) {
	if single != "" {
		if !utils.FileExists(single) {
			return nil, fmt.Errorf("export file %s does not exist", single)
		}
		return []string{single}, nil
	}
	return fm.DiscoverInputFiles()
}

// parseExport picks the parser by file extension.
func parseExport(file string, cfg *config.Config) (*types.Export, error) {
	if utils.HasExtension(file, ".xlsx") {
		return xlsxparser.Parse(file)
	}
	return csvparser.Parse(file, cfg.CSV)
}

// printSummary prints the per-file run summary.
func printSummary(file string, stats importer.Stats) {
	fmt.Println("\n=== Import Complete ===")
	fmt.Printf("Export file:      %s\n", file)
	fmt.Printf("Orders:           %d\n", stats.Orders)
	fmt.Printf("Already imported: %d\n", stats.Skipped)
	fmt.Printf("Uploaded:         %d\n", stats.Uploaded)
	fmt.Printf("Failed:           %d\n", stats.Failed)
	fmt.Printf("Time elapsed:     %s\n", stats.Elapsed)
}
