// =============================================================================
// Backer CSV to Shopify Orders - Validate Command
// =============================================================================
//
// This file defines the 'validate' command: a pre-flight check that parses
// the export files and reports what an import run would work with, without
// touching the network or the ledger file.
//
// CHECKS:
//   - Export files parse and carry the expected columns
//   - Record and distinct-order counts
//   - Records with an empty email or a non-numeric quantity
//   - Presence of the store credentials (warning only; the remote API is
//     the authority on whether they work)
//
// =============================================================================

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/backercamp/csv-to-shopify-orders/internal/config"
	"github.com/backercamp/csv-to-shopify-orders/internal/order"
	"github.com/backercamp/csv-to-shopify-orders/pkg/utils"
)

// validateFile limits validation to a single export file.
var validateFile string

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check export files and configuration without uploading",
	Long: `The validate command parses the export files an import run would process
and reports record counts, distinct orders, missing columns, and records an
import would upload with an unusable quantity. Nothing is uploaded and the
import ledger is not consulted or written.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate()
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(
		&validateFile,
		"file",
		"",
		"Path to a single export file to validate",
	)
}

// runValidate checks every export file and the credentials.
func runValidate() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	fm := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.ArchiveDir)

	files, err := resolveInputFiles(fm, validateFile)
	if err != nil {
		return err
	}

	fmt.Println("=== Validation ===")

	if !cfg.Shopify.HasCredentials() {
		fmt.Println("WARNING: store credentials are incomplete; set " + strings.Join(
			[]string{config.EnvStoreHandle, config.EnvAPIKey, config.EnvAPIPassword}, ", "))
	}

	if len(files) == 0 {
		fmt.Printf("No export files found in %s\n", cfg.InputDir)
		return nil
	}

	problems := 0
	for _, file := range files {
		problems += validateExport(file, cfg)
	}

	if problems > 0 {
		return fmt.Errorf("validation found %d problem(s)", problems)
	}

	fmt.Println("\nAll export files are ready to import.")
	return nil
}

// validateExport checks one export file and returns the problem count.
func validateExport(file string, cfg *config.Config) int {
	fmt.Printf("\n%s\n", file)

	export, err := parseExport(file, cfg)
	if err != nil {
		fmt.Printf("  ✗ unreadable: %v\n", err)
		return 1
	}

	problems := 0

	if missing := export.MissingColumns(order.RequiredFields); len(missing) > 0 {
		fmt.Printf("  ✗ missing columns: %s\n", strings.Join(missing, ", "))
		problems++
	}

	agg := order.NewAggregator()
	badQuantity := 0
	emptyEmail := 0
	for _, rec := range export.Rows {
		if strings.TrimSpace(rec[order.FieldEmail]) == "" {
			emptyEmail++
		}
		if err := agg.Add(rec); err != nil {
			badQuantity++
		}
	}

	fmt.Printf("  records:         %d\n", export.RowCount())
	fmt.Printf("  distinct orders: %d\n", agg.Len())

	if emptyEmail > 0 {
		fmt.Printf("  ✗ records with empty email: %d\n", emptyEmail)
		problems++
	}
	if badQuantity > 0 {
		fmt.Printf("  ✗ records with non-numeric quantity: %d\n", badQuantity)
		problems++
	}

	if problems == 0 {
		fmt.Println("  ✓ ok")
	}

	return problems
}
