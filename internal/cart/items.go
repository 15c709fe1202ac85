package cart

import "storefront/internal/model"

// Join matches cart records against a catalogue snapshot and returns
// the resulting line items plus the product ids of records whose
// product is missing from the snapshot. Orphaned records are dropped
// from the result rather than joined into partial items; the caller
// decides how to report them.
//
// Join does not filter quantity-zero records. Visibility is a render
// concern, and a zero-quantity record still matters for duplicate
// detection.
func Join(records []model.CartRecord, products []model.Product) ([]model.LineItem, []string) {
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]model.LineItem, 0, len(records))
	var orphans []string
	for _, record := range records {
		product, ok := byID[record.ProductID]
		if !ok {
			orphans = append(orphans, record.ProductID)
			continue
		}
		items = append(items, model.NewLineItem(record, product))
	}

	return items, orphans
}

// ComputeTotal returns the total value of the given line items. A
// non-positive cost contributes nothing to the sum.
func ComputeTotal(items []model.LineItem) float64 {
	var total float64
	for _, item := range items {
		if item.Cost <= 0 {
			continue
		}
		total += float64(item.Quantity) * item.Cost
	}
	return total
}

// HasRecord reports whether a raw cart record exists for the product,
// regardless of quantity. Duplicate detection goes through the raw
// records rather than joined items, since a record whose product is
// missing from the current snapshot is still held.
func HasRecord(records []model.CartRecord, productID string) bool {
	for _, record := range records {
		if record.ProductID == productID {
			return true
		}
	}
	return false
}

// IsInCart reports whether any item references the given product,
// regardless of quantity. Zero-quantity stale records still count, so
// an "add to cart" for a hidden item is routed to the quantity controls
// instead of creating a duplicate.
func IsInCart(items []model.LineItem, productID string) bool {
	for _, item := range items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// Visible returns only the line items that should be rendered, i.e.
// those with a positive quantity.
func Visible(items []model.LineItem) []model.LineItem {
	out := make([]model.LineItem, 0, len(items))
	for _, item := range items {
		if item.Quantity > 0 {
			out = append(out, item)
		}
	}
	return out
}
