package materials

import (
	"context"
	"fmt"

	"github.com/jmsalcedo/obrakit/internal/domain/units"
)

// Catalog is the slice of the repo the service needs; *Repo satisfies it.
type Catalog interface {
	GetByID(ctx context.Context, id int64) (*Material, error)
	ListStock(ctx context.Context, materialID int64) ([]StockEntry, error)
}

// Service layers unit normalization over the raw catalog. Stock may be
// recorded in any unit of the material's category (bags, kg, m3...);
// totals are always reported in the category's base unit.
type Service struct {
	catalog  Catalog
	registry *units.Registry
}

func NewService(catalog Catalog, registry *units.Registry) *Service {
	return &Service{catalog: catalog, registry: registry}
}

// TotalInBaseUnit sums every stock entry of the material, converted to
// the base unit of the material's own category. An entry recorded in a
// unit of another category surfaces the registry's ValidationError
// untouched rather than silently producing a number.
func (s *Service) TotalInBaseUnit(ctx context.Context, materialID int64) (float64, string, error) {
	m, err := s.catalog.GetByID(ctx, materialID)
	if err != nil {
		return 0, "", err
	}
	if m == nil {
		return 0, "", fmt.Errorf("material %d not found", materialID)
	}

	unit, err := s.registry.Get(ctx, m.UnitID)
	if err != nil {
		return 0, "", err
	}
	if unit == nil {
		return 0, "", fmt.Errorf("material %d references unknown unit %d", materialID, m.UnitID)
	}
	base, err := s.registry.BaseUnit(ctx, unit.Category)
	if err != nil {
		return 0, "", err
	}
	if base == nil {
		return 0, "", fmt.Errorf("category %q has no base unit", unit.Category)
	}

	entries, err := s.catalog.ListStock(ctx, materialID)
	if err != nil {
		return 0, "", err
	}
	var total float64
	for _, e := range entries {
		q, err := s.registry.Convert(ctx, e.Qty, e.UnitID, base.ID)
		if err != nil {
			return 0, "", err
		}
		total += q
	}
	return total, base.Symbol, nil
}
