package apu

import "time"

// ItemKind splits a recipe line into the three classic APU sections.
type ItemKind string

const (
	KindMaterial  ItemKind = "material"
	KindLabor     ItemKind = "labor"
	KindEquipment ItemKind = "equipment"
)

// RecipeItem is one line of an analysis: Qty of the resource per unit
// of work, priced at UnitPrice.
type RecipeItem struct {
	ID          int64
	Kind        ItemKind
	Description string
	Qty         float64
	UnitID      int64
	UnitSymbol  string // joined for display
	UnitPrice   float64
}

// Recipe is an APU (análisis de precios unitarios): the priced resource
// breakdown for one unit of a work item.
type Recipe struct {
	ID         int64
	Name       string
	WorkUnitID int64
	WorkSymbol string
	Items      []RecipeItem
	CreatedAt  time.Time
}

// UnitCost is the recipe's direct cost per unit of work.
func (r Recipe) UnitCost() float64 {
	var total float64
	for _, it := range r.Items {
		total += it.Qty * it.UnitPrice
	}
	return total
}

// Subtotals breaks the unit cost down by item kind.
func (r Recipe) Subtotals() map[ItemKind]float64 {
	out := make(map[ItemKind]float64, 3)
	for _, it := range r.Items {
		out[it.Kind] += it.Qty * it.UnitPrice
	}
	return out
}
