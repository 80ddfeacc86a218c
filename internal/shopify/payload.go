// =============================================================================
// Backer CSV to Shopify Orders - Order Payload Mapping
// =============================================================================
//
// Translates an order aggregate into the body shape expected by the Shopify
// order-creation endpoint (POST /admin/api/{version}/orders.json).
//
// Fixed values in every payload:
//   - financial_status: "paid" (backers already paid on the platform)
//   - fulfillment_status: null
//   - processing_method: "manual"
//   - send_receipt / send_fulfillment_receipt: false (no emails to backers)
//   - every price: 0.00
//
// =============================================================================

package shopify

import (
	"github.com/shopspring/decimal"

	"github.com/backercamp/csv-to-shopify-orders/internal/order"
)

// Customer identifies the buyer on the created order.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Address is used for both the billing and the shipping address; backer
// exports only carry one address.
type Address struct {
	Name     string `json:"name"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2,omitempty"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
	Zip      string `json:"zip"`
	// ProvinceCode is omitted unless it is a two-character subdivision code.
	ProvinceCode string `json:"province_code,omitempty"`
	CountryCode  string `json:"country_code"`
}

// LineItem is one order line. Price is always zero.
type LineItem struct {
	Title    string          `json:"title"`
	SKU      string          `json:"sku"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// ShippingLine carries the export's shipping method as both title and code.
type ShippingLine struct {
	Title string          `json:"title"`
	Code  string          `json:"code"`
	Price decimal.Decimal `json:"price"`
}

// OrderPayload is the order member of the request body.
type OrderPayload struct {
	Customer               Customer       `json:"customer"`
	BillingAddress         Address        `json:"billing_address"`
	ShippingAddress        Address        `json:"shipping_address"`
	FinancialStatus        string         `json:"financial_status"`
	FulfillmentStatus      *string        `json:"fulfillment_status"`
	ProcessingMethod       string         `json:"processing_method"`
	SendReceipt            bool           `json:"send_receipt"`
	SendFulfillmentReceipt bool           `json:"send_fulfillment_receipt"`
	LineItems              []LineItem     `json:"line_items"`
	ShippingLines          []ShippingLine `json:"shipping_lines"`
	Tags                   string         `json:"tags"`
	Note                   string         `json:"note"`
}

// CreateOrderRequest is the full request body.
type CreateOrderRequest struct {
	Order OrderPayload `json:"order"`
}

// BuildPayload maps an order aggregate to the creation request body.
func BuildPayload(o *order.Order) CreateOrderRequest {
	address := Address{
		Name:         o.BillingName,
		Address1:     o.BillingAddress1,
		Address2:     o.BillingAddress2,
		Phone:        o.Phone,
		City:         o.BillingCity,
		Zip:          o.BillingZip,
		ProvinceCode: o.BillingProvince,
		CountryCode:  o.BillingCountry,
	}

	items := make([]LineItem, len(o.LineItems))
	for i, item := range o.LineItems {
		items[i] = LineItem{
			Title:    item.Title,
			SKU:      item.SKU,
			Price:    decimal.Zero,
			Quantity: item.Quantity,
		}
	}

	note := ""
	if o.Note != "" {
		note = order.NotePrefix + o.Note
	}

	return CreateOrderRequest{
		Order: OrderPayload{
			Customer: Customer{
				Name:  o.BillingName,
				Email: o.Email,
				Phone: o.Phone,
			},
			BillingAddress:         address,
			ShippingAddress:        address,
			FinancialStatus:        "paid",
			FulfillmentStatus:      nil,
			ProcessingMethod:       "manual",
			SendReceipt:            false,
			SendFulfillmentReceipt: false,
			LineItems:              items,
			ShippingLines: []ShippingLine{
				{
					Title: o.ShippingMethod,
					Code:  o.ShippingMethod,
					Price: decimal.Zero,
				},
			},
			Tags: o.Tags,
			Note: note,
		},
	}
}
