package api

import (
	"net/http"
	"strconv"

	"github.com/jmsalcedo/obrakit/internal/domain/units"
	"github.com/jmsalcedo/obrakit/internal/infra/metrics"
)

type unitDTO struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Symbol   string  `json:"symbol"`
	Category string  `json:"category"`
	Factor   float64 `json:"factor"`
	IsBase   bool    `json:"is_base"`
}

func toUnitDTO(u units.Unit) unitDTO {
	return unitDTO{
		ID:       u.ID,
		Name:     u.Name,
		Symbol:   u.Symbol,
		Category: string(u.Category),
		Factor:   u.Factor,
		IsBase:   u.IsBase,
	}
}

func (d Deps) listUnits(w http.ResponseWriter, r *http.Request) {
	var (
		list []units.Unit
		err  error
	)
	if cat := r.URL.Query().Get("category"); cat != "" {
		list, err = d.Units.ListByCategory(r.Context(), units.Category(cat))
	} else {
		list, err = d.Units.List(r.Context())
	}
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	out := make([]unitDTO, 0, len(list))
	for _, u := range list {
		out = append(out, toUnitDTO(u))
	}
	respondJSON(w, http.StatusOK, out)
}

type createUnitReq struct {
	Name     string  `json:"name"`
	Symbol   string  `json:"symbol"`
	Category string  `json:"category"`
	Factor   float64 `json:"factor"`
	IsBase   bool    `json:"is_base"`
}

func (d Deps) createUnit(w http.ResponseWriter, r *http.Request) {
	var req createUnitReq
	if err := decode(r, &req); err != nil {
		respondBadRequest(w, "invalid json body")
		return
	}
	created, err := d.Units.Create(r.Context(), units.Unit{
		Name:     req.Name,
		Symbol:   req.Symbol,
		Category: units.Category(req.Category),
		Factor:   req.Factor,
		IsBase:   req.IsBase,
	})
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	respondJSON(w, http.StatusCreated, toUnitDTO(*created))
}

func (d Deps) getUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "invalid unit id")
		return
	}
	u, err := d.Units.Get(r.Context(), id)
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	if u == nil {
		respondNotFound(w)
		return
	}
	respondJSON(w, http.StatusOK, toUnitDTO(*u))
}

type updateUnitReq struct {
	Name     *string  `json:"name"`
	Symbol   *string  `json:"symbol"`
	Category *string  `json:"category"`
	Factor   *float64 `json:"factor"`
	IsBase   *bool    `json:"is_base"`
}

func (d Deps) updateUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "invalid unit id")
		return
	}
	var req updateUnitReq
	if err := decode(r, &req); err != nil {
		respondBadRequest(w, "invalid json body")
		return
	}
	ch := units.Changes{
		Name:   req.Name,
		Symbol: req.Symbol,
		Factor: req.Factor,
		IsBase: req.IsBase,
	}
	if req.Category != nil {
		c := units.Category(*req.Category)
		ch.Category = &c
	}
	u, err := d.Units.Update(r.Context(), id, ch)
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	if u == nil {
		respondNotFound(w)
		return
	}
	respondJSON(w, http.StatusOK, toUnitDTO(*u))
}

func (d Deps) deleteUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "invalid unit id")
		return
	}
	if err := d.Units.Delete(r.Context(), id); err != nil {
		respondErr(w, d.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type convertResp struct {
	Quantity float64 `json:"quantity"`
	FromID   int64   `json:"from_id"`
	ToID     int64   `json:"to_id"`
	Result   float64 `json:"result"`
}

func (d Deps) convertUnits(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	qty, err := strconv.ParseFloat(q.Get("qty"), 64)
	if err != nil {
		respondBadRequest(w, "qty must be a number")
		return
	}
	fromID, err1 := strconv.ParseInt(q.Get("from"), 10, 64)
	toID, err2 := strconv.ParseInt(q.Get("to"), 10, 64)
	if err1 != nil || err2 != nil {
		respondBadRequest(w, "from and to must be unit ids")
		return
	}
	res, err := d.Units.Convert(r.Context(), qty, fromID, toID)
	if err != nil {
		metrics.ConversionFailures.Inc()
		respondErr(w, d.Log, err)
		return
	}
	metrics.UnitConversions.Inc()
	respondJSON(w, http.StatusOK, convertResp{Quantity: qty, FromID: fromID, ToID: toID, Result: res})
}
