package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityKey(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{
			name:  "plain email",
			email: "jane.doe@example.com",
			want:  "_jane_doe_example_com",
		},
		{
			name:  "run of non-word characters collapses to one underscore",
			email: "jane+doe!!@example--shop.com",
			want:  "_jane_doe_example_shop_com",
		},
		{
			name:  "already word characters untouched",
			email: "janedoe123",
			want:  "_janedoe123",
		},
		{
			name:  "empty email",
			email: "",
			want:  "_",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IdentityKey(tt.email))
		})
	}
}

func TestIdentityKeyIdempotent(t *testing.T) {
	key := IdentityKey("jane.doe@example.com")

	// Normalizing the normalized suffix again must not change it.
	assert.Equal(t, key, "_"+nonWord.ReplaceAllString(key[1:], "_"))
}

func TestNewLineItem(t *testing.T) {
	rec := map[string]string{
		FieldLineItemTitle: "Deluxe Pledge",
		FieldLineItemSKU:   "DLX-01",
		FieldLineItemQty:   "3",
	}

	item, err := NewLineItem(rec)
	require.NoError(t, err)

	assert.Equal(t, "Deluxe Pledge", item.Title)
	assert.Equal(t, "DLX-01", item.SKU)
	assert.Equal(t, 3, item.Quantity)
	assert.True(t, item.Price.IsZero())
}

func TestNewLineItemInvalidQuantity(t *testing.T) {
	rec := map[string]string{
		FieldLineItemTitle: "Deluxe Pledge",
		FieldLineItemQty:   "three",
	}

	item, err := NewLineItem(rec)
	require.Error(t, err)

	// Non-fatal: the fragment is still usable apart from the quantity.
	assert.Equal(t, 0, item.Quantity)
	assert.Equal(t, "Deluxe Pledge", item.Title)
	assert.True(t, item.Price.IsZero())
}

func TestNewLineItemPriceAlwaysZero(t *testing.T) {
	rec := map[string]string{
		FieldLineItemTitle: "Pledge",
		FieldLineItemQty:   "1",
		"lineitem_price":   "49.99",
	}

	item, err := NewLineItem(rec)
	require.NoError(t, err)
	assert.True(t, item.Price.IsZero())
}

func TestSeedProvinceRules(t *testing.T) {
	tests := []struct {
		name     string
		province string
		want     string
	}{
		{"two characters kept", "CA", "CA"},
		{"two characters after trim kept", " NY ", "NY"},
		{"three characters dropped", "ABC", ""},
		{"one character dropped", "C", ""},
		{"empty dropped", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Seed("_k", map[string]string{FieldBillingProvince: tt.province})
			assert.Equal(t, tt.want, o.BillingProvince)
		})
	}
}

func TestSeedFields(t *testing.T) {
	rec := map[string]string{
		FieldEmail:           "jane@example.com",
		FieldPhone:           "+1 555 0100",
		FieldBillingName:     "Jane Doe",
		FieldCompany:         "Doe LLC",
		FieldBillingAddress1: "1 Main St",
		FieldBillingAddress2: "Apt 2",
		FieldBillingCity:     "Springfield",
		FieldBillingZip:      "12345",
		FieldBillingProvince: "IL",
		FieldBillingCountry:  "US",
		FieldShippingMethod:  "Standard",
		FieldNoteAttributes:  "KS-1001",
	}

	o := Seed(IdentityKey(rec[FieldEmail]), rec)

	assert.Equal(t, "_jane_example_com", o.Key)
	assert.False(t, o.Imported)
	assert.Equal(t, "jane@example.com", o.Email)
	assert.Equal(t, "Jane Doe", o.BillingName)
	assert.Equal(t, "Doe LLC", o.BillingCompany)
	assert.Equal(t, "IL", o.BillingProvince)
	assert.Equal(t, "US", o.BillingCountry)
	assert.Equal(t, "Standard", o.ShippingMethod)
	assert.Equal(t, Tag, o.Tags)
	assert.Equal(t, "KS-1001", o.Note)
	assert.Empty(t, o.LineItems)
}
