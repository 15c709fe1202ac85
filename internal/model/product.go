package model

// Product represents a product available to buy, as returned by the
// store backend's catalogue endpoints. Immutable per fetch.
type Product struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Cost     float64 `json:"cost"`
	Rating   int     `json:"rating"`
	ImageURL string  `json:"image"`
}
