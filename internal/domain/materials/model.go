package materials

import "time"

type Material struct {
	ID           int64
	Name         string
	Category     string
	UnitID       int64
	UnitSymbol   string // joined for display
	PricePerUnit float64
	Active       bool
	CreatedAt    time.Time
}

// StockEntry records received material in whatever unit the delivery
// note used; aggregation normalizes through the unit registry.
type StockEntry struct {
	ID         int64
	ProjectID  int64
	MaterialID int64
	Qty        float64
	UnitID     int64
	Note       string
	CreatedAt  time.Time
}
