package model

// Order is one point-of-sale purchase event as written to the raw orders feed.
type Order struct {
	OrderID   string     `json:"order_id"`
	PosID     string     `json:"pos_id"`
	Timestamp string     `json:"timestamp"` // YYYY-MM-DDTHH:MM:SS, no zone
	Items     []LineItem `json:"items"`
}

// LineItem is a single SKU line of an Order. Price is the unit price in
// currency units, rounded to two decimals.
type LineItem struct {
	SKU      string  `json:"sku"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}
