package model

import "strconv"

// StockHeader is the fixed column header of every stock snapshot file.
var StockHeader = []string{"warehouse_id", "date", "sku", "quantity_on_hand"}

// StockRow is the quantity on hand of one SKU in one warehouse on one day.
type StockRow struct {
	WarehouseID    string `json:"warehouse_id"`
	Date           string `json:"date"`
	SKU            string `json:"sku"`
	QuantityOnHand int    `json:"quantity_on_hand"`
}

// Record returns the row in StockHeader column order.
func (r StockRow) Record() []string {
	return []string{r.WarehouseID, r.Date, r.SKU, strconv.Itoa(r.QuantityOnHand)}
}
