package api

import (
	"net/http"

	"github.com/jmsalcedo/obrakit/internal/domain/materials"
	"github.com/jmsalcedo/obrakit/internal/report"
)

type materialDTO struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	UnitID       int64   `json:"unit_id"`
	UnitSymbol   string  `json:"unit_symbol,omitempty"`
	PricePerUnit float64 `json:"price_per_unit"`
	Active       bool    `json:"active"`
}

func toMaterialDTO(m materials.Material) materialDTO {
	return materialDTO{
		ID:           m.ID,
		Name:         m.Name,
		Category:     m.Category,
		UnitID:       m.UnitID,
		UnitSymbol:   m.UnitSymbol,
		PricePerUnit: m.PricePerUnit,
		Active:       m.Active,
	}
}

func (d Deps) listMaterials(w http.ResponseWriter, r *http.Request) {
	onlyActive := r.URL.Query().Get("active") == "true"
	var (
		list []materials.Material
		err  error
	)
	if q := r.URL.Query().Get("q"); q != "" {
		list, err = d.Materials.SearchByName(r.Context(), q, onlyActive)
	} else {
		list, err = d.Materials.List(r.Context(), onlyActive)
	}
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	out := make([]materialDTO, 0, len(list))
	for _, m := range list {
		out = append(out, toMaterialDTO(m))
	}
	respondJSON(w, http.StatusOK, out)
}

type createMaterialReq struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	UnitID       int64   `json:"unit_id"`
	PricePerUnit float64 `json:"price_per_unit"`
}

func (d Deps) createMaterial(w http.ResponseWriter, r *http.Request) {
	var req createMaterialReq
	if err := decode(r, &req); err != nil {
		respondBadRequest(w, "invalid json body")
		return
	}
	if req.Name == "" || req.UnitID <= 0 {
		respondBadRequest(w, "name and unit_id are required")
		return
	}
	created, err := d.Materials.Create(r.Context(), req.Name, req.Category, req.UnitID, req.PricePerUnit)
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	respondJSON(w, http.StatusCreated, toMaterialDTO(*created))
}

func (d Deps) getMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "invalid material id")
		return
	}
	m, err := d.Materials.GetByID(r.Context(), id)
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	if m == nil {
		respondNotFound(w)
		return
	}
	respondJSON(w, http.StatusOK, toMaterialDTO(*m))
}

func (d Deps) updateMaterialPrice(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "invalid material id")
		return
	}
	var req struct {
		PricePerUnit float64 `json:"price_per_unit"`
	}
	if err := decode(r, &req); err != nil {
		respondBadRequest(w, "invalid json body")
		return
	}
	m, err := d.Materials.UpdatePrice(r.Context(), id, req.PricePerUnit)
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	if m == nil {
		respondNotFound(w)
		return
	}
	respondJSON(w, http.StatusOK, toMaterialDTO(*m))
}

func (d Deps) setMaterialActive(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "invalid material id")
		return
	}
	var req struct {
		Active bool `json:"active"`
	}
	if err := decode(r, &req); err != nil {
		respondBadRequest(w, "invalid json body")
		return
	}
	m, err := d.Materials.SetActive(r.Context(), id, req.Active)
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	if m == nil {
		respondNotFound(w)
		return
	}
	respondJSON(w, http.StatusOK, toMaterialDTO(*m))
}

type stockEntryDTO struct {
	ID         int64   `json:"id"`
	ProjectID  int64   `json:"project_id"`
	MaterialID int64   `json:"material_id"`
	Qty        float64 `json:"qty"`
	UnitID     int64   `json:"unit_id"`
	Note       string  `json:"note,omitempty"`
}

func (d Deps) addStock(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "invalid material id")
		return
	}
	var req struct {
		ProjectID int64   `json:"project_id"`
		Qty       float64 `json:"qty"`
		UnitID    int64   `json:"unit_id"`
		Note      string  `json:"note"`
	}
	if err := decode(r, &req); err != nil {
		respondBadRequest(w, "invalid json body")
		return
	}
	if req.Qty <= 0 || req.UnitID <= 0 {
		respondBadRequest(w, "qty and unit_id must be positive")
		return
	}
	e, err := d.Materials.AddStock(r.Context(), materials.StockEntry{
		ProjectID:  req.ProjectID,
		MaterialID: id,
		Qty:        req.Qty,
		UnitID:     req.UnitID,
		Note:       req.Note,
	})
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	respondJSON(w, http.StatusCreated, stockEntryDTO{
		ID:         e.ID,
		ProjectID:  e.ProjectID,
		MaterialID: e.MaterialID,
		Qty:        e.Qty,
		UnitID:     e.UnitID,
		Note:       e.Note,
	})
}

func (d Deps) listStock(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "invalid material id")
		return
	}
	entries, err := d.Materials.ListStock(r.Context(), id)
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	out := make([]stockEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, stockEntryDTO{
			ID:         e.ID,
			ProjectID:  e.ProjectID,
			MaterialID: e.MaterialID,
			Qty:        e.Qty,
			UnitID:     e.UnitID,
			Note:       e.Note,
		})
	}
	respondJSON(w, http.StatusOK, out)
}

func (d Deps) stockTotal(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "invalid material id")
		return
	}
	total, symbol, err := d.Stock.TotalInBaseUnit(r.Context(), id)
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	respondJSON(w, http.StatusOK, struct {
		MaterialID int64   `json:"material_id"`
		Total      float64 `json:"total"`
		Unit       string  `json:"unit"`
	}{MaterialID: id, Total: total, Unit: symbol})
}

func (d Deps) exportMaterials(w http.ResponseWriter, r *http.Request) {
	list, err := d.Materials.List(r.Context(), false)
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	data, err := report.MaterialsWorkbook(list)
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="materials.xlsx"`)
	_, _ = w.Write(data)
}
