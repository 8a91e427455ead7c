package api

import (
	"net/http"
	"time"

	"github.com/jmsalcedo/obrakit/internal/domain/projects"
)

type projectDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Client    string `json:"client,omitempty"`
	Location  string `json:"location,omitempty"`
	Status    string `json:"status"`
	StartDate string `json:"start_date,omitempty"`
}

func toProjectDTO(p projects.Project) projectDTO {
	out := projectDTO{
		ID:       p.ID,
		Name:     p.Name,
		Client:   p.Client,
		Location: p.Location,
		Status:   string(p.Status),
	}
	if p.StartDate != nil {
		out.StartDate = p.StartDate.Format("2006-01-02")
	}
	return out
}

func (d Deps) listProjects(w http.ResponseWriter, r *http.Request) {
	list, err := d.Projects.List(r.Context())
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	out := make([]projectDTO, 0, len(list))
	for _, p := range list {
		out = append(out, toProjectDTO(p))
	}
	respondJSON(w, http.StatusOK, out)
}

type createProjectReq struct {
	Name      string `json:"name"`
	Client    string `json:"client"`
	Location  string `json:"location"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
}

func (d Deps) createProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectReq
	if err := decode(r, &req); err != nil {
		respondBadRequest(w, "invalid json body")
		return
	}
	if req.Name == "" {
		respondBadRequest(w, "project name is required")
		return
	}
	p := projects.Project{
		Name:     req.Name,
		Client:   req.Client,
		Location: req.Location,
		Status:   projects.StatusPlanned,
	}
	if req.StartDate != "" {
		t, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			respondBadRequest(w, "start_date must be YYYY-MM-DD")
			return
		}
		p.StartDate = &t
	}
	created, err := d.Projects.Create(r.Context(), p)
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	respondJSON(w, http.StatusCreated, toProjectDTO(*created))
}

func (d Deps) getProject(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "invalid project id")
		return
	}
	p, err := d.Projects.GetByID(r.Context(), id)
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	if p == nil {
		respondNotFound(w)
		return
	}
	respondJSON(w, http.StatusOK, toProjectDTO(*p))
}

func (d Deps) setProjectStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "invalid project id")
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := decode(r, &req); err != nil {
		respondBadRequest(w, "invalid json body")
		return
	}
	p, err := d.Projects.SetStatus(r.Context(), id, projects.Status(req.Status))
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	if p == nil {
		respondNotFound(w)
		return
	}
	respondJSON(w, http.StatusOK, toProjectDTO(*p))
}

type taskDTO struct {
	ID         int64  `json:"id"`
	ProjectID  int64  `json:"project_id"`
	Title      string `json:"title"`
	AssignedTo *int64 `json:"assigned_to,omitempty"`
	Status     string `json:"status"`
	Position   int    `json:"position"`
}

func toTaskDTO(t projects.Task) taskDTO {
	return taskDTO{
		ID:         t.ID,
		ProjectID:  t.ProjectID,
		Title:      t.Title,
		AssignedTo: t.AssignedTo,
		Status:     string(t.Status),
		Position:   t.Position,
	}
}

func (d Deps) listTasks(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "invalid project id")
		return
	}
	list, err := d.Projects.ListTasks(r.Context(), id)
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	out := make([]taskDTO, 0, len(list))
	for _, t := range list {
		out = append(out, toTaskDTO(t))
	}
	respondJSON(w, http.StatusOK, out)
}

func (d Deps) createTask(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "invalid project id")
		return
	}
	var req struct {
		Title      string `json:"title"`
		AssignedTo *int64 `json:"assigned_to"`
	}
	if err := decode(r, &req); err != nil {
		respondBadRequest(w, "invalid json body")
		return
	}
	if req.Title == "" {
		respondBadRequest(w, "task title is required")
		return
	}
	t, err := d.Projects.CreateTask(r.Context(), projects.Task{
		ProjectID:  id,
		Title:      req.Title,
		AssignedTo: req.AssignedTo,
		Status:     projects.TaskPending,
	})
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	respondJSON(w, http.StatusCreated, toTaskDTO(*t))
}

func (d Deps) moveTask(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "invalid task id")
		return
	}
	var req struct {
		Status   string `json:"status"`
		Position int    `json:"position"`
	}
	if err := decode(r, &req); err != nil {
		respondBadRequest(w, "invalid json body")
		return
	}
	t, err := d.Projects.MoveTask(r.Context(), id, projects.TaskStatus(req.Status), req.Position)
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	if t == nil {
		respondNotFound(w)
		return
	}
	respondJSON(w, http.StatusOK, toTaskDTO(*t))
}

func (d Deps) assignTask(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "invalid task id")
		return
	}
	var req struct {
		AssignedTo *int64 `json:"assigned_to"`
	}
	if err := decode(r, &req); err != nil {
		respondBadRequest(w, "invalid json body")
		return
	}
	t, err := d.Projects.AssignTask(r.Context(), id, req.AssignedTo)
	if err != nil {
		respondErr(w, d.Log, err)
		return
	}
	if t == nil {
		respondNotFound(w)
		return
	}
	respondJSON(w, http.StatusOK, toTaskDTO(*t))
}

func (d Deps) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondBadRequest(w, "invalid task id")
		return
	}
	if err := d.Projects.DeleteTask(r.Context(), id); err != nil {
		respondErr(w, d.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
