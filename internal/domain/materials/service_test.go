package materials

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmsalcedo/obrakit/internal/domain/units"
)

type fakeCatalog struct {
	materials map[int64]Material
	stock     map[int64][]StockEntry
}

func (f *fakeCatalog) GetByID(_ context.Context, id int64) (*Material, error) {
	m, ok := f.materials[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (f *fakeCatalog) ListStock(_ context.Context, materialID int64) ([]StockEntry, error) {
	return f.stock[materialID], nil
}

type noUsage struct{}

func (noUsage) InUse(context.Context, int64) (bool, error) { return false, nil }

func TestTotalInBaseUnit_MixedUnits(t *testing.T) {
	ctx := context.Background()
	reg := units.NewRegistry(units.NewMemStore(), noUsage{})

	kg, err := reg.Create(ctx, units.Unit{Name: "Kilogram", Symbol: "kg", Category: units.CategoryMass, IsBase: true})
	require.NoError(t, err)
	bag, err := reg.Create(ctx, units.Unit{Name: "Bag(25kg)", Symbol: "bolsa", Category: units.CategoryMass, Factor: 25})
	require.NoError(t, err)

	cat := &fakeCatalog{
		materials: map[int64]Material{
			1: {ID: 1, Name: "Cemento gris", UnitID: kg.ID},
		},
		stock: map[int64][]StockEntry{
			1: {
				{MaterialID: 1, Qty: 10, UnitID: kg.ID},
				{MaterialID: 1, Qty: 2, UnitID: bag.ID}, // 50 kg
			},
		},
	}

	svc := NewService(cat, reg)
	total, symbol, err := svc.TotalInBaseUnit(ctx, 1)
	require.NoError(t, err)
	assert.InDelta(t, 60.0, total, 1e-9)
	assert.Equal(t, "kg", symbol)
}

func TestTotalInBaseUnit_CrossCategoryEntryRejected(t *testing.T) {
	ctx := context.Background()
	reg := units.NewRegistry(units.NewMemStore(), noUsage{})

	kg, err := reg.Create(ctx, units.Unit{Name: "Kilogram", Symbol: "kg", Category: units.CategoryMass, IsBase: true})
	require.NoError(t, err)
	m3, err := reg.Create(ctx, units.Unit{Name: "Cubic meter", Symbol: "m3", Category: units.CategoryVolume, IsBase: true})
	require.NoError(t, err)

	cat := &fakeCatalog{
		materials: map[int64]Material{
			1: {ID: 1, Name: "Cemento gris", UnitID: kg.ID},
		},
		stock: map[int64][]StockEntry{
			1: {{MaterialID: 1, Qty: 3, UnitID: m3.ID}},
		},
	}

	svc := NewService(cat, reg)
	_, _, err = svc.TotalInBaseUnit(ctx, 1)
	var ve *units.ValidationError
	require.ErrorAs(t, err, &ve, "mixed-category stock must not silently aggregate")
}

func TestTotalInBaseUnit_NoStock(t *testing.T) {
	ctx := context.Background()
	reg := units.NewRegistry(units.NewMemStore(), noUsage{})

	kg, err := reg.Create(ctx, units.Unit{Name: "Kilogram", Symbol: "kg", Category: units.CategoryMass, IsBase: true})
	require.NoError(t, err)

	cat := &fakeCatalog{
		materials: map[int64]Material{1: {ID: 1, UnitID: kg.ID}},
		stock:     map[int64][]StockEntry{},
	}
	svc := NewService(cat, reg)
	total, symbol, err := svc.TotalInBaseUnit(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Equal(t, "kg", symbol)
}
