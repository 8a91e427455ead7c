package api

import (
	"net/http"

	"github.com/jmsalcedo/obrakit/internal/domain/personnel"
)

type workerDTO struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Active   bool   `json:"active"`
}

func toWorkerDTO(w personnel.Worker) workerDTO {
	return workerDTO{
		ID:       w.ID,
		FullName: w.FullName,
		Phone:    w.Phone,
		Role:     string(w.Role),
		Active:   w.Active,
	}
}

func (d Deps) listWorkers(w http.ResponseWriter, r *http.Request) {
	onlyActive := r.URL.Query().Get("active") == "true"
	list, err := d.Workers.List(r.Context(), onlyActive)
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	out := make([]workerDTO, 0, len(list))
	for _, wk := range list {
		out = append(out, toWorkerDTO(wk))
	}
	respondJSON(w, http.StatusOK, out)
}

func (d Deps) upsertWorker(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName string `json:"full_name"`
		Phone    string `json:"phone"`
		Role     string `json:"role"`
	}
	if err := decode(r, &req); err != nil {
		respondBadRequest(w, "invalid json body")
		return
	}
	if req.FullName == "" || req.Phone == "" {
		respondBadRequest(w, "full_name and phone are required")
		return
	}
	role := personnel.Role(req.Role)
	if role == "" {
		role = personnel.RoleWorker
	}
	wk, err := d.Workers.UpsertByPhone(r.Context(), req.FullName, req.Phone, role)
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	respondJSON(w, http.StatusCreated, toWorkerDTO(*wk))
}

func (d Deps) setWorkerActive(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "invalid worker id")
		return
	}
	var req struct {
		Active bool `json:"active"`
	}
	if err := decode(r, &req); err != nil {
		respondBadRequest(w, "invalid json body")
		return
	}
	wk, err := d.Workers.SetActive(r.Context(), id, req.Active)
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	if wk == nil {
		respondNotFound(w)
		return
	}
	respondJSON(w, http.StatusOK, toWorkerDTO(*wk))
}
