package fixture

import (
	"fmt"
	"path/filepath"
	"time"
)

const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02T15:04:05"
)

// Day truncates t to midnight UTC of its calendar date in t's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD date.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// DateRange returns the days contiguous calendar dates ending at end,
// oldest first.
func DateRange(end time.Time, days int) []time.Time {
	if days <= 0 {
		return nil
	}
	end = Day(end)
	dates := make([]time.Time, days)
	for i := range dates {
		dates[i] = end.AddDate(0, 0, i-days+1)
	}
	return dates
}

func OrdersPath(dir string, storeIndex int, date time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("pos_%d_%s.json", storeIndex, date.Format(DateLayout)))
}

func StockPath(dir string, warehouseIndex int, date time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("wh_%d_%s.csv", warehouseIndex, date.Format(DateLayout)))
}
