package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jmsalcedo/obrakit/internal/domain/materials"
	"github.com/jmsalcedo/obrakit/internal/domain/takeoff"
)

// TakeoffWorkbook renders one takeoff record as an xlsx download:
// a header block with the activity and dimensions, then one row per
// material line item.
func TakeoffWorkbook(rec takeoff.TakeoffRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	meta := [][]interface{}{
		{"activity", rec.Activity},
		{"length", rec.Dimensions.Length},
		{"height", rec.Dimensions.Height},
		{"width", rec.Dimensions.Width},
		{"area", rec.Area},
		{"created_at", rec.CreatedAt.Format("2006-01-02 15:04")},
	}
	row := 1
	for _, m := range meta {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &m); err != nil {
			return nil, err
		}
		row++
	}
	row++

	header := []interface{}{"material", "quantity", "unit", "status"}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, cell, &header); err != nil {
		return nil, err
	}
	row++

	for _, it := range rec.Items {
		excelRow := []interface{}{it.MaterialName, it.Quantity, it.Unit, it.Status}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, err
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// MaterialsWorkbook renders the material catalog listing.
func MaterialsWorkbook(items []materials.Material) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"material_id",
		"material_name",
		"category",
		"unit",
		"price_per_unit",
		"active",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	row := 2
	for _, m := range items {
		excelRow := []interface{}{m.ID, m.Name, m.Category, m.UnitSymbol, m.PricePerUnit, m.Active}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, err
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
