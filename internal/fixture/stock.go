package fixture

import (
	"bytes"
	"encoding/csv"
	"time"

	"go-procurement-fixtures/internal/model"
)

// StockParams bounds the quantity on hand, inclusive.
type StockParams struct {
	Min, Max int
}

// ProduceStock returns one row per pool SKU, in pool order, for one
// warehouse on one day.
func ProduceStock(pool Pool, src *Source, p StockParams, warehouseIndex int, date time.Time) []model.StockRow {
	whID := FormatWarehouseID(warehouseIndex)
	day := Day(date).Format(DateLayout)

	rows := make([]model.StockRow, len(pool))
	for i, sku := range pool {
		rows[i] = model.StockRow{
			WarehouseID:    whID,
			Date:           day,
			SKU:            sku,
			QuantityOnHand: src.IntRange(p.Min, p.Max),
		}
	}
	return rows
}

// EncodeStock renders the rows as CSV under model.StockHeader.
func EncodeStock(rows []model.StockRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(model.StockHeader); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row.Record()); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
