package api

import (
	"net/http"

	"github.com/jmsalcedo/obrakit/internal/domain/equipment"
)

type equipmentDTO struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Plate      string  `json:"plate,omitempty"`
	HourlyRate float64 `json:"hourly_rate"`
	Status     string  `json:"status"`
	ProjectID  *int64  `json:"project_id,omitempty"`
}

func toEquipmentDTO(e equipment.Equipment) equipmentDTO {
	return equipmentDTO{
		ID:         e.ID,
		Name:       e.Name,
		Plate:      e.Plate,
		HourlyRate: e.HourlyRate,
		Status:     string(e.Status),
		ProjectID:  e.ProjectID,
	}
}

func (d Deps) listEquipment(w http.ResponseWriter, r *http.Request) {
	list, err := d.Equipment.List(r.Context())
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	out := make([]equipmentDTO, 0, len(list))
	for _, e := range list {
		out = append(out, toEquipmentDTO(e))
	}
	respondJSON(w, http.StatusOK, out)
}

func (d Deps) createEquipment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string  `json:"name"`
		Plate      string  `json:"plate"`
		HourlyRate float64 `json:"hourly_rate"`
	}
	if err := decode(r, &req); err != nil {
		respondBadRequest(w, "invalid json body")
		return
	}
	if req.Name == "" {
		respondBadRequest(w, "equipment name is required")
		return
	}
	e, err := d.Equipment.Create(r.Context(), req.Name, req.Plate, req.HourlyRate)
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	respondJSON(w, http.StatusCreated, toEquipmentDTO(*e))
}

func (d Deps) assignEquipment(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "invalid equipment id")
		return
	}
	var req struct {
		ProjectID *int64 `json:"project_id"`
	}
	if err := decode(r, &req); err != nil {
		respondBadRequest(w, "invalid json body")
		return
	}
	e, err := d.Equipment.Assign(r.Context(), id, req.ProjectID)
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	if e == nil {
		respondNotFound(w)
		return
	}
	respondJSON(w, http.StatusOK, toEquipmentDTO(*e))
}

func (d Deps) setEquipmentStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "invalid equipment id")
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := decode(r, &req); err != nil {
		respondBadRequest(w, "invalid json body")
		return
	}
	e, err := d.Equipment.SetStatus(r.Context(), id, equipment.Status(req.Status))
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	if e == nil {
		respondNotFound(w)
		return
	}
	respondJSON(w, http.StatusOK, toEquipmentDTO(*e))
}
