package fixture

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-procurement-fixtures/internal/model"

	"github.com/shopspring/decimal"
)

var ErrEmptyPool = errors.New("fixture: pool is empty")

// OrderParams bounds every random draw of the order producer. All ranges are
// inclusive. Prices are expressed in whole cents.
type OrderParams struct {
	OrdersMin, OrdersMax     int
	ItemsMin, ItemsMax       int
	QuantityMin, QuantityMax int
	PriceMinCents            int64
	PriceMaxCents            int64
}

// CentsRange converts an inclusive price range to the whole cents it contains.
// ok is false when no whole-cent price lies inside the range.
func CentsRange(minPrice, maxPrice float64) (lo, hi int64, ok bool) {
	lo = decimal.NewFromFloat(minPrice).Shift(2).Ceil().IntPart()
	hi = decimal.NewFromFloat(maxPrice).Shift(2).Floor().IntPart()
	return lo, hi, lo <= hi
}

// ProduceOrders builds the orders of one store for one calendar day.
func ProduceOrders(pool Pool, src *Source, p OrderParams, storeIndex int, date time.Time) ([]model.Order, error) {
	if len(pool) == 0 && p.ItemsMax > 0 {
		return nil, ErrEmptyPool
	}

	day := Day(date)
	posID := FormatPosID(storeIndex)

	orders := make([]model.Order, src.IntRange(p.OrdersMin, p.OrdersMax))
	for i := range orders {
		id, err := src.UUID()
		if err != nil {
			return nil, fmt.Errorf("order id: %w", err)
		}
		at := day.Add(time.Duration(src.IntRange(0, 86399)) * time.Second)

		items := make([]model.LineItem, src.IntRange(p.ItemsMin, p.ItemsMax))
		for j := range items {
			items[j] = model.LineItem{
				SKU:      pool.Draw(src),
				Quantity: src.IntRange(p.QuantityMin, p.QuantityMax),
				Price:    decimal.New(src.Int64Range(p.PriceMinCents, p.PriceMaxCents), -2).InexactFloat64(),
			}
		}

		orders[i] = model.Order{
			OrderID:   id.String(),
			PosID:     posID,
			Timestamp: at.Format(TimestampLayout),
			Items:     items,
		}
	}
	return orders, nil
}

// EncodeOrders renders an order collection as an indented JSON array.
func EncodeOrders(orders []model.Order) ([]byte, error) {
	if orders == nil {
		orders = []model.Order{}
	}
	return json.MarshalIndent(orders, "", "  ")
}
