package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jmsalcedo/obrakit/internal/domain/materials"
	"github.com/jmsalcedo/obrakit/internal/domain/takeoff"
)

func TestTakeoffWorkbook(t *testing.T) {
	rec := takeoff.TakeoffRecord{
		Activity:   "Mampostería",
		Dimensions: takeoff.Dimensions{Length: 20, Height: 3},
		Area:       60,
		Items: []takeoff.MaterialLineItem{
			{MaterialName: "brick", Quantity: 750, Unit: "pcs", Status: takeoff.StatusPending},
			{MaterialName: "cement", Quantity: 30, Unit: "bags", Status: takeoff.StatusPending},
		},
	}

	data, err := TakeoffWorkbook(rec)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	get := func(cell string) string {
		v, err := f.GetCellValue(sheet, cell)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "activity", get("A1"))
	assert.Equal(t, "Mampostería", get("B1"))
	assert.Equal(t, "material", get("A8"))
	assert.Equal(t, "brick", get("A9"))
	assert.Equal(t, "750", get("B9"))
	assert.Equal(t, "Pending", get("D9"))
	assert.Equal(t, "cement", get("A10"))
}

func TestMaterialsWorkbook(t *testing.T) {
	data, err := MaterialsWorkbook([]materials.Material{
		{ID: 1, Name: "Cemento gris", Category: "cementantes", UnitSymbol: "bolsa", PricePerUnit: 28500, Active: true},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	v, err := f.GetCellValue(sheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Cemento gris", v)
}
