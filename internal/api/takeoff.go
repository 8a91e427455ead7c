package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jmsalcedo/obrakit/internal/domain/takeoff"
	"github.com/jmsalcedo/obrakit/internal/infra/metrics"
	"github.com/jmsalcedo/obrakit/internal/report"
)

type ratioDTO struct {
	MaterialName string  `json:"material_name"`
	Ratio        float64 `json:"ratio"`
	Unit         string  `json:"unit"`
}

type profileDTO struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name"`
	WorkUnit string     `json:"work_unit"`
	WorkSym  string     `json:"work_symbol,omitempty"`
	Ratios   []ratioDTO `json:"ratios,omitempty"`
}

func toProfileDTO(p takeoff.ActivityYieldProfile) profileDTO {
	out := profileDTO{
		ID:       p.ID,
		Name:     p.Name,
		WorkUnit: string(p.WorkUnit),
		WorkSym:  p.WorkSym,
	}
	for _, r := range p.Ratios {
		out.Ratios = append(out.Ratios, ratioDTO{MaterialName: r.MaterialName, Ratio: r.Ratio, Unit: r.Unit})
	}
	return out
}

func (d Deps) listProfiles(w http.ResponseWriter, r *http.Request) {
	list, err := d.Takeoffs.ListProfiles(r.Context())
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	out := make([]profileDTO, 0, len(list))
	for _, p := range list {
		out = append(out, toProfileDTO(p))
	}
	respondJSON(w, http.StatusOK, out)
}

type createProfileReq struct {
	Name     string     `json:"name"`
	WorkUnit string     `json:"work_unit"` // "area" or "volume"
	WorkSym  string     `json:"work_symbol"`
	Ratios   []ratioDTO `json:"ratios"`
}

func (d Deps) createProfile(w http.ResponseWriter, r *http.Request) {
	var req createProfileReq
	if err := decode(r, &req); err != nil {
		respondBadRequest(w, "invalid json body")
		return
	}
	if req.Name == "" {
		respondBadRequest(w, "profile name is required")
		return
	}
	// Anything not declared area-class is volume-class; the yield
	// tables only know those two shapes.
	class := takeoff.VolumeClass
	if req.WorkUnit == string(takeoff.AreaClass) {
		class = takeoff.AreaClass
	}
	p := takeoff.ActivityYieldProfile{Name: req.Name, WorkUnit: class, WorkSym: req.WorkSym}
	for _, rt := range req.Ratios {
		p.Ratios = append(p.Ratios, takeoff.MaterialRatio{
			MaterialName: rt.MaterialName,
			Ratio:        rt.Ratio,
			Unit:         rt.Unit,
		})
	}
	created, err := d.Takeoffs.CreateProfile(r.Context(), p)
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	respondJSON(w, http.StatusCreated, toProfileDTO(*created))
}

func (d Deps) getProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "invalid profile id")
		return
	}
	p, err := d.Takeoffs.GetProfile(r.Context(), id)
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	if p == nil {
		respondNotFound(w)
		return
	}
	respondJSON(w, http.StatusOK, toProfileDTO(*p))
}

func (d Deps) deleteProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "invalid profile id")
		return
	}
	if err := d.Takeoffs.DeleteProfile(r.Context(), id); err != nil {
		respondErr(w, d.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type lineItemDTO struct {
	MaterialName string  `json:"material_name"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	Status       string  `json:"status"`
}

type takeoffDTO struct {
	ID        string        `json:"id,omitempty"`
	ProjectID int64         `json:"project_id,omitempty"`
	Activity  string        `json:"activity"`
	Length    float64       `json:"length"`
	Height    float64       `json:"height"`
	Width     float64       `json:"width"`
	Area      float64       `json:"area,omitempty"`
	Items     []lineItemDTO `json:"items"`
}

func toTakeoffDTO(rec takeoff.TakeoffRecord) takeoffDTO {
	out := takeoffDTO{
		ProjectID: rec.ProjectID,
		Activity:  rec.Activity,
		Length:    rec.Dimensions.Length,
		Height:    rec.Dimensions.Height,
		Width:     rec.Dimensions.Width,
		Area:      rec.Area,
		Items:     []lineItemDTO{},
	}
	if rec.ID != uuid.Nil {
		out.ID = rec.ID.String()
	}
	for _, it := range rec.Items {
		out.Items = append(out.Items, lineItemDTO{
			MaterialName: it.MaterialName,
			Quantity:     it.Quantity,
			Unit:         it.Unit,
			Status:       it.Status,
		})
	}
	return out
}

// computeTakeoffReq carries the raw form fields: dimensions arrive as
// strings and bad input coerces to zero instead of failing.
type computeTakeoffReq struct {
	ProfileID int64  `json:"profile_id"`
	ProjectID int64  `json:"project_id"`
	Length    string `json:"length"`
	Height    string `json:"height"`
	Width     string `json:"width"`
	Save      bool   `json:"save"`
}

func (d Deps) computeTakeoff(w http.ResponseWriter, r *http.Request) {
	var req computeTakeoffReq
	if err := decode(r, &req); err != nil {
		respondBadRequest(w, "invalid json body")
		return
	}
	p, err := d.Takeoffs.GetProfile(r.Context(), req.ProfileID)
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	if p == nil {
		respondNotFound(w)
		return
	}

	dims := takeoff.ParseDimensions(req.Length, req.Height, req.Width)
	items := takeoff.ComputeLineItems(*p, dims)
	rec := takeoff.Summarize(*p, dims, items)
	rec.ProjectID = req.ProjectID
	metrics.TakeoffsComputed.Inc()

	if req.Save {
		saved, err := d.Takeoffs.SaveRecord(r.Context(), rec)
		if err != nil {
			respondErr(w, d.Log, err)
			return
		}
		respondJSON(w, http.StatusCreated, toTakeoffDTO(*saved))
		return
	}
	respondJSON(w, http.StatusOK, toTakeoffDTO(rec))
}

func (d Deps) listTakeoffs(w http.ResponseWriter, r *http.Request) {
	projectID, err := strconv.ParseInt(r.URL.Query().Get("project_id"), 10, 64)
	if err != nil {
		respondBadRequest(w, "project_id is required")
		return
	}
	list, err := d.Takeoffs.ListRecordsByProject(r.Context(), projectID)
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	out := make([]takeoffDTO, 0, len(list))
	for _, rec := range list {
		out = append(out, toTakeoffDTO(rec))
	}
	respondJSON(w, http.StatusOK, out)
}

func (d Deps) takeoffByID(w http.ResponseWriter, r *http.Request) (*takeoff.TakeoffRecord, bool) {
	id, err := uuid.Parse(chiURLParamID(r))
	if err != nil {
		respondBadRequest(w, "invalid takeoff id")
		return nil, false
	}
	rec, err := d.Takeoffs.GetRecord(r.Context(), id)
	if err != nil {
		respondErr(w, d.Log, err)
		return nil, false
	}
	if rec == nil {
		respondNotFound(w)
		return nil, false
	}
	return rec, true
}

func (d Deps) getTakeoff(w http.ResponseWriter, r *http.Request) {
	rec, ok := d.takeoffByID(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, toTakeoffDTO(*rec))
}

func (d Deps) exportTakeoff(w http.ResponseWriter, r *http.Request) {
	rec, ok := d.takeoffByID(w, r)
	if !ok {
		return
	}
	data, err := report.TakeoffWorkbook(*rec)
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "takeoff_"+rec.ID.String()+".xlsx"))
	_, _ = w.Write(data)
}
