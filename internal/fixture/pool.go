package fixture

import "fmt"

// Pool is the ordered set of product SKUs shared by every producer of a run.
type Pool []string

// NewPool returns SKU-0001 through SKU-n. n <= 0 yields an empty pool.
func NewPool(n int) Pool {
	if n <= 0 {
		return Pool{}
	}
	pool := make(Pool, n)
	for i := range pool {
		pool[i] = FormatSKU(i + 1)
	}
	return pool
}

func (p Pool) Contains(sku string) bool {
	for _, s := range p {
		if s == sku {
			return true
		}
	}
	return false
}

// Draw picks a SKU uniformly, with replacement.
func (p Pool) Draw(src *Source) string {
	return p[src.Pick(len(p))]
}

func FormatSKU(n int) string {
	return fmt.Sprintf("SKU-%04d", n)
}

func FormatPosID(storeIndex int) string {
	return fmt.Sprintf("POS-%03d", storeIndex)
}

func FormatWarehouseID(warehouseIndex int) string {
	return fmt.Sprintf("WH-%03d", warehouseIndex)
}
