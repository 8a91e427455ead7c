package api

import (
	"net/http"

	"github.com/jmsalcedo/obrakit/internal/domain/apu"
)

type recipeItemDTO struct {
	Kind        string  `json:"kind"`
	Description string  `json:"description"`
	Qty         float64 `json:"qty"`
	UnitID      int64   `json:"unit_id"`
	UnitSymbol  string  `json:"unit_symbol,omitempty"`
	UnitPrice   float64 `json:"unit_price"`
}

type recipeDTO struct {
	ID         int64              `json:"id"`
	Name       string             `json:"name"`
	WorkUnitID int64              `json:"work_unit_id"`
	WorkSymbol string             `json:"work_symbol,omitempty"`
	Items      []recipeItemDTO    `json:"items,omitempty"`
	UnitCost   float64            `json:"unit_cost"`
	Subtotals  map[string]float64 `json:"subtotals,omitempty"`
}

func toRecipeDTO(rec apu.Recipe, withItems bool) recipeDTO {
	out := recipeDTO{
		ID:         rec.ID,
		Name:       rec.Name,
		WorkUnitID: rec.WorkUnitID,
		WorkSymbol: rec.WorkSymbol,
		UnitCost:   rec.UnitCost(),
	}
	if !withItems {
		return out
	}
	for _, it := range rec.Items {
		out.Items = append(out.Items, recipeItemDTO{
			Kind:        string(it.Kind),
			Description: it.Description,
			Qty:         it.Qty,
			UnitID:      it.UnitID,
			UnitSymbol:  it.UnitSymbol,
			UnitPrice:   it.UnitPrice,
		})
	}
	out.Subtotals = make(map[string]float64)
	for k, v := range rec.Subtotals() {
		out.Subtotals[string(k)] = v
	}
	return out
}

func (d Deps) listRecipes(w http.ResponseWriter, r *http.Request) {
	list, err := d.Recipes.List(r.Context())
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	out := make([]recipeDTO, 0, len(list))
	for _, rec := range list {
		out = append(out, toRecipeDTO(rec, false))
	}
	respondJSON(w, http.StatusOK, out)
}

type createRecipeReq struct {
	Name       string          `json:"name"`
	WorkUnitID int64           `json:"work_unit_id"`
	Items      []recipeItemDTO `json:"items"`
}

func (d Deps) createRecipe(w http.ResponseWriter, r *http.Request) {
	var req createRecipeReq
	if err := decode(r, &req); err != nil {
		respondBadRequest(w, "invalid json body")
		return
	}
	if req.Name == "" || req.WorkUnitID <= 0 {
		respondBadRequest(w, "name and work_unit_id are required")
		return
	}
	rec := apu.Recipe{Name: req.Name, WorkUnitID: req.WorkUnitID}
	for _, it := range req.Items {
		rec.Items = append(rec.Items, apu.RecipeItem{
			Kind:        apu.ItemKind(it.Kind),
			Description: it.Description,
			Qty:         it.Qty,
			UnitID:      it.UnitID,
			UnitPrice:   it.UnitPrice,
		})
	}
	created, err := d.Recipes.Create(r.Context(), rec)
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	respondJSON(w, http.StatusCreated, toRecipeDTO(*created, true))
}

func (d Deps) getRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "invalid recipe id")
		return
	}
	rec, err := d.Recipes.GetByID(r.Context(), id)
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	if rec == nil {
		respondNotFound(w)
		return
	}
	respondJSON(w, http.StatusOK, toRecipeDTO(*rec, true))
}

func (d Deps) deleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "invalid recipe id")
		return
	}
	if err := d.Recipes.Delete(r.Context(), id); err != nil {
		respondErr(w, d.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
