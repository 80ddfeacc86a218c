// =============================================================================
// Backer CSV to Shopify Orders - Order Aggregator
// =============================================================================
//
// Folds normalized export records into one order aggregate per distinct
// identity key. The aggregates keep the insertion order of their keys, since
// the upload driver processes orders in first-seen file order.
//
// =============================================================================

package order

// Aggregator builds the identity key -> order mapping from export records.
// Records must be fed in file order; the zero value is not usable, use
// NewAggregator.
type Aggregator struct {
	orders map[string]*Order

	// keyOrder records keys in order of first appearance so that Orders()
	// returns aggregates in file-encounter order.
	keyOrder []string

	records int
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		orders: make(map[string]*Order),
	}
}

// Add folds one export record into the mapping.
//
// The first record for a key creates its aggregate, seeded with every
// aggregate-level field from that record. Later records with the same key
// contribute only their line item; aggregate-level fields are never
// updated after creation.
//
// The returned error reports a malformed quantity and is non-fatal: the
// line item is still appended (with quantity zero) and processing should
// continue.
func (a *Aggregator) Add(rec map[string]string) error {
	a.records++

	key := IdentityKey(rec[FieldEmail])
	item, err := NewLineItem(rec)

	existing, ok := a.orders[key]
	if !ok {
		o := Seed(key, rec)
		o.LineItems = append(o.LineItems, item)
		a.orders[key] = o
		a.keyOrder = append(a.keyOrder, key)
		return err
	}

	existing.LineItems = append(existing.LineItems, item)
	return err
}

// Orders returns all aggregates in order of first appearance in the input.
func (a *Aggregator) Orders() []*Order {
	out := make([]*Order, 0, len(a.keyOrder))
	for _, key := range a.keyOrder {
		out = append(out, a.orders[key])
	}
	return out
}

// Get returns the aggregate for a key, or nil if no record produced it.
func (a *Aggregator) Get(key string) *Order {
	return a.orders[key]
}

// Len is the number of distinct orders aggregated so far.
func (a *Aggregator) Len() int {
	return len(a.keyOrder)
}

// Records is the number of records fed into the aggregator.
func (a *Aggregator) Records() int {
	return a.records
}
