// =============================================================================
// Backer CSV to Shopify Orders - Main Entry Point
// =============================================================================
//
// This is the main entry point for the backer export importer CLI. It
// initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   csv-to-shopify-orders import    - Import backer exports as Shopify orders
//   csv-to-shopify-orders validate  - Check exports and configuration without uploading
//   csv-to-shopify-orders version   - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Core import pipeline (not for external import)
//   - pkg/       : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/backercamp/csv-to-shopify-orders/cmd"
)

func main() {
	cmd.Execute()
}
