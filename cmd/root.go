// =============================================================================
// Backer CSV to Shopify Orders - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that the other commands ('import', 'validate',
// 'version') are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (csv-to-shopify-orders)
//   ├── importCmd   (csv-to-shopify-orders import)
//   ├── validateCmd (csv-to-shopify-orders validate)
//   └── versionCmd  (csv-to-shopify-orders version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile holds the path to the configuration file.
// Overridden with the --config flag.
var cfgFile string

// verbose raises the log level to debug.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "csv-to-shopify-orders",
	Short: "Import crowdfunding backer exports as Shopify orders",
	Long: `csv-to-shopify-orders reads backer list exports from crowdfunding
platforms (Kickstarter, Indiegogo), consolidates the rows into one order per
customer, and uploads each order to a Shopify store through the order-creation
API.

Key behavior:
  - Rows sharing a customer email become a single order with multiple line items
  - Orders recorded in the import ledger are skipped, so runs can be repeated
  - Uploads run strictly sequentially with a pause between calls to respect
    Shopify's rate limits
  - A rejected order is logged and the run continues with the next one

Store credentials come from the environment:
  SHOPIFY_STORE_HANDLE, SHOPIFY_API_KEY, SHOPIFY_API_PASSWORD

Example Usage:
  csv-to-shopify-orders import                      # Import every export in the input directory
  csv-to-shopify-orders import --file ./orders.csv  # Import one export file
  csv-to-shopify-orders import --dry-run            # Show what would be uploaded
  csv-to-shopify-orders validate                    # Check exports and configuration without uploading`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
