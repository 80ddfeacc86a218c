package shopify

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backercamp/csv-to-shopify-orders/internal/order"
)

func sampleOrder() *order.Order {
	return &order.Order{
		Key:             "_jane_example_com",
		Email:           "jane@example.com",
		Phone:           "+1 555 0100",
		BillingName:     "Jane Doe",
		BillingCompany:  "Doe LLC",
		BillingAddress1: "1 Main St",
		BillingAddress2: "Apt 2",
		BillingCity:     "Springfield",
		BillingZip:      "12345",
		BillingProvince: "IL",
		BillingCountry:  "US",
		LineItems: []order.LineItem{
			{Title: "Base Pledge", SKU: "BASE-01", Quantity: 1},
			{Title: "Add-on Poster", SKU: "POST-01", Quantity: 2},
		},
		ShippingMethod: "Standard",
		Tags:           order.Tag,
		Note:           "KS-1001",
	}
}

func TestBuildPayloadMapping(t *testing.T) {
	req := BuildPayload(sampleOrder())
	o := req.Order

	assert.Equal(t, "Jane Doe", o.Customer.Name)
	assert.Equal(t, "jane@example.com", o.Customer.Email)
	assert.Equal(t, "+1 555 0100", o.Customer.Phone)

	// Billing and shipping address are the same address.
	assert.Equal(t, o.BillingAddress, o.ShippingAddress)
	assert.Equal(t, "Jane Doe", o.BillingAddress.Name)
	assert.Equal(t, "IL", o.BillingAddress.ProvinceCode)
	assert.Equal(t, "US", o.BillingAddress.CountryCode)

	assert.Equal(t, "paid", o.FinancialStatus)
	assert.Nil(t, o.FulfillmentStatus)
	assert.Equal(t, "manual", o.ProcessingMethod)
	assert.False(t, o.SendReceipt)
	assert.False(t, o.SendFulfillmentReceipt)

	require.Len(t, o.LineItems, 2)
	assert.Equal(t, "Base Pledge", o.LineItems[0].Title)
	assert.Equal(t, 2, o.LineItems[1].Quantity)
	assert.True(t, o.LineItems[0].Price.IsZero())
	assert.True(t, o.LineItems[1].Price.IsZero())

	require.Len(t, o.ShippingLines, 1)
	assert.Equal(t, "Standard", o.ShippingLines[0].Title)
	assert.Equal(t, "Standard", o.ShippingLines[0].Code)
	assert.True(t, o.ShippingLines[0].Price.IsZero())

	assert.Equal(t, "IMPORTED", o.Tags)
	assert.Equal(t, order.NotePrefix+"KS-1001", o.Note)
}

func TestBuildPayloadEmptyNote(t *testing.T) {
	o := sampleOrder()
	o.Note = ""

	req := BuildPayload(o)
	assert.Equal(t, "", req.Order.Note)
}

func TestBuildPayloadProvinceOmittedWhenEmpty(t *testing.T) {
	o := sampleOrder()
	o.BillingProvince = ""

	data, err := json.Marshal(BuildPayload(o))
	require.NoError(t, err)

	assert.NotContains(t, string(data), "province_code")
}

func TestBuildPayloadJSONShape(t *testing.T) {
	data, err := json.Marshal(BuildPayload(sampleOrder()))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	o, ok := decoded["order"].(map[string]any)
	require.True(t, ok)

	// fulfillment_status is present and null, not omitted.
	v, present := o["fulfillment_status"]
	assert.True(t, present)
	assert.Nil(t, v)

	assert.Equal(t, "paid", o["financial_status"])
	assert.Equal(t, "manual", o["processing_method"])
	assert.Contains(t, string(data), `"province_code":"IL"`)
}
