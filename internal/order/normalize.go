// =============================================================================
// Backer CSV to Shopify Orders - Record Normalizer
// =============================================================================
//
// Converts one flat export record into an identity key, a line-item
// fragment, and the aggregate seed fields used when the record is the first
// one seen for its key.
//
// =============================================================================

package order

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Record field names expected in the backer export.
const (
	FieldEmail           = "email"
	FieldPhone           = "phone"
	FieldBillingName     = "billing_name"
	FieldCompany         = "company"
	FieldBillingAddress1 = "billing_address1"
	FieldBillingAddress2 = "billing_address2"
	FieldBillingCity     = "billing_city"
	FieldBillingZip      = "billing_zip"
	FieldBillingProvince = "billing_province"
	FieldBillingCountry  = "billing_country"
	FieldLineItemTitle   = "lineitem_title"
	FieldLineItemSKU     = "lineitem_sku"
	FieldLineItemQty     = "lineitem_quantity"
	FieldShippingMethod  = "shipping_method"
	FieldNoteAttributes  = "note_attributes"
)

// RequiredFields lists the record fields the importer expects to be present.
// Used by the validate command for field-presence checks.
var RequiredFields = []string{
	FieldEmail,
	FieldPhone,
	FieldBillingName,
	FieldCompany,
	FieldBillingAddress1,
	FieldBillingAddress2,
	FieldBillingCity,
	FieldBillingZip,
	FieldBillingProvince,
	FieldBillingCountry,
	FieldLineItemTitle,
	FieldLineItemSKU,
	FieldLineItemQty,
	FieldShippingMethod,
	FieldNoteAttributes,
}

// nonWord matches every maximal run of characters outside [A-Za-z0-9_].
var nonWord = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// IdentityKey derives the grouping key for a customer email: a leading
// underscore followed by the email with each run of non-word characters
// collapsed to a single underscore.
//
// The derivation is a pure function of the email and is idempotent:
// applying it to an already-normalized suffix changes nothing. Two distinct
// emails collide only if they normalize identically, which is an accepted
// limitation.
func IdentityKey(email string) string {
	return "_" + nonWord.ReplaceAllString(email, "_")
}

// NewLineItem builds the line-item fragment for one record.
//
// The price is always decimal zero regardless of any price-like field in the
// record. A non-numeric quantity is not fatal: the returned line item gets
// quantity zero and the error reports the bad value so the caller can log
// it. The remote API is the actual arbiter of line-item validity.
func NewLineItem(rec map[string]string) (LineItem, error) {
	item := LineItem{
		Title: rec[FieldLineItemTitle],
		SKU:   rec[FieldLineItemSKU],
		Price: decimal.Zero,
	}

	qty, err := strconv.Atoi(strings.TrimSpace(rec[FieldLineItemQty]))
	if err != nil {
		return item, fmt.Errorf("invalid lineitem_quantity %q for %s", rec[FieldLineItemQty], rec[FieldEmail])
	}
	item.Quantity = qty

	return item, nil
}

// Seed builds a new order aggregate from the first record seen for a key.
// The line-item sequence starts empty; the caller appends the record's
// fragment.
func Seed(key string, rec map[string]string) *Order {
	return &Order{
		Key:             key,
		Imported:        false,
		Email:           rec[FieldEmail],
		Phone:           rec[FieldPhone],
		BillingName:     rec[FieldBillingName],
		BillingCompany:  rec[FieldCompany],
		BillingAddress1: rec[FieldBillingAddress1],
		BillingAddress2: rec[FieldBillingAddress2],
		BillingCity:     rec[FieldBillingCity],
		BillingZip:      rec[FieldBillingZip],
		BillingProvince: normalizeProvince(rec[FieldBillingProvince]),
		BillingCountry:  rec[FieldBillingCountry],
		ShippingMethod:  rec[FieldShippingMethod],
		Tags:            Tag,
		Note:            rec[FieldNoteAttributes],
	}
}

// normalizeProvince keeps the province only when it is exactly two
// characters after trimming; anything else becomes empty. Shopify rejects
// orders whose province_code is not a two-letter subdivision code.
func normalizeProvince(s string) string {
	t := strings.TrimSpace(s)
	if len(t) == 2 {
		return t
	}
	return ""
}
