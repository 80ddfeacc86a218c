// =============================================================================
// Backer CSV to Shopify Orders - Order Domain Types
// =============================================================================
//
// This package contains the order domain model and the logic that turns flat
// backer export records into per-customer order aggregates:
//   - Identity key derivation from the customer email
//   - Record normalization into line items and aggregate seed fields
//   - Aggregation of records into one order per distinct identity key
//
// Records are the flat map[string]string rows produced by the csvparser and
// xlsxparser packages. Field names follow the Kickstarter/Indiegogo export
// layout (email, billing_*, lineitem_*, shipping_method, note_attributes).
//
// =============================================================================

package order

import (
	"github.com/shopspring/decimal"
)

// Tag is attached to every imported order so they can be found in the store
// admin afterwards.
const Tag = "IMPORTED"

// NotePrefix is prepended to the note_attributes value when building the
// order note.
const NotePrefix = "Kickstarter/Indiegogo order ID: "

// LineItem is one backer reward line within an order.
// Price is always zero; backer exports carry no per-line pricing that the
// store should re-charge, and the zero price is a deliberate simplification.
type LineItem struct {
	Title    string
	SKU      string
	Price    decimal.Decimal
	Quantity int
}

// Order is the consolidated order for one customer, built from every export
// record that shares the customer's identity key.
//
// Aggregate-level fields are fixed from the first record seen for the key
// and never overwritten by later records. Line items are appended in file
// order.
type Order struct {
	// Key is the normalized identity key derived from Email.
	Key string

	// Imported marks orders already present in the import ledger.
	// Orders with Imported set are skipped by the upload driver.
	Imported bool

	Email string
	Phone string

	BillingName     string
	BillingCompany  string
	BillingAddress1 string
	BillingAddress2 string
	BillingCity     string
	BillingZip      string
	// BillingProvince is kept only when the export value is exactly two
	// characters after trimming, otherwise empty.
	BillingProvince string
	BillingCountry  string

	LineItems []LineItem

	ShippingMethod string
	Tags           string

	// Note is the raw note_attributes value from the export. The upload
	// payload prepends NotePrefix when it is non-empty.
	Note string
}
