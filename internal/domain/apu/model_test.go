package apu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleRecipe() Recipe {
	return Recipe{
		Name: "Muro en bloque e=15cm",
		Items: []RecipeItem{
			{Kind: KindMaterial, Description: "Bloque No.5", Qty: 12.5, UnitPrice: 2100},
			{Kind: KindMaterial, Description: "Mortero 1:4", Qty: 0.02, UnitPrice: 420000},
			{Kind: KindLabor, Description: "Cuadrilla AA", Qty: 0.4, UnitPrice: 65000},
			{Kind: KindEquipment, Description: "Andamio", Qty: 0.1, UnitPrice: 12000},
		},
	}
}

func TestRecipeUnitCost(t *testing.T) {
	r := sampleRecipe()
	// 12.5*2100 + 0.02*420000 + 0.4*65000 + 0.1*12000
	assert.InDelta(t, 26250+8400+26000+1200, r.UnitCost(), 1e-9)
}

func TestRecipeSubtotals(t *testing.T) {
	got := sampleRecipe().Subtotals()
	assert.InDelta(t, 34650, got[KindMaterial], 1e-9)
	assert.InDelta(t, 26000, got[KindLabor], 1e-9)
	assert.InDelta(t, 1200, got[KindEquipment], 1e-9)
}

func TestRecipeUnitCost_Empty(t *testing.T) {
	assert.Zero(t, Recipe{Name: "empty"}.UnitCost())
}
