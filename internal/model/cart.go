package model

// CartRecord is the backend's minimal representation of a cart entry.
// A record with quantity 0 is considered absent from the cart; the
// backend may still return it.
type CartRecord struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"qty"`
}

// LineItem is the display-ready join of a CartRecord with its product.
// Derived, never persisted.
type LineItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Cost      float64 `json:"cost"`
	Rating    int     `json:"rating"`
	ImageURL  string  `json:"image"`
	Quantity  int     `json:"qty"`
}

// NewLineItem joins a cart record with its matching product.
func NewLineItem(record CartRecord, product Product) LineItem {
	return LineItem{
		ProductID: record.ProductID,
		Name:      product.Name,
		Category:  product.Category,
		Cost:      product.Cost,
		Rating:    product.Rating,
		ImageURL:  product.ImageURL,
		Quantity:  record.Quantity,
	}
}
