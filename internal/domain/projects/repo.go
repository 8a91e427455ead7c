package projects

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

/* Projects */

func (r *Repo) Create(ctx context.Context, p Project) (*Project, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO projects (name, client, location, status, start_date)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, name, client, location, status, start_date, created_at
	`, p.Name, p.Client, p.Location, string(p.Status), p.StartDate)
	return scanProject(row)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Project, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, client, location, status, start_date, created_at
		FROM projects WHERE id=$1
	`, id)
	return scanProject(row)
}

func (r *Repo) List(ctx context.Context) ([]Project, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, client, location, status, start_date, created_at
		FROM projects ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Client, &p.Location, &p.Status, &p.StartDate, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) SetStatus(ctx context.Context, id int64, status Status) (*Project, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE projects SET status=$2 WHERE id=$1
		RETURNING id, name, client, location, status, start_date, created_at
	`, id, string(status))
	return scanProject(row)
}

func scanProject(row pgx.Row) (*Project, error) {
	var p Project
	if err := row.Scan(&p.ID, &p.Name, &p.Client, &p.Location, &p.Status, &p.StartDate, &p.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

/* Tasks */

func (r *Repo) CreateTask(ctx context.Context, t Task) (*Task, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (project_id, title, assigned_to, status, position)
		VALUES ($1,$2,$3,$4,
			COALESCE((SELECT MAX(position)+1 FROM tasks WHERE project_id=$1 AND status=$4), 0))
		RETURNING id, project_id, title, assigned_to, status, position, created_at
	`, t.ProjectID, t.Title, t.AssignedTo, string(t.Status))
	return scanTask(row)
}

func (r *Repo) ListTasks(ctx context.Context, projectID int64) ([]Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, project_id, title, assigned_to, status, position, created_at
		FROM tasks WHERE project_id=$1
		ORDER BY status, position
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Title, &t.AssignedTo, &t.Status, &t.Position, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// MoveTask is the board's drag-and-drop: a new status column and a new
// slot in it, both plain field writes.
func (r *Repo) MoveTask(ctx context.Context, id int64, status TaskStatus, position int) (*Task, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE tasks SET status=$2, position=$3 WHERE id=$1
		RETURNING id, project_id, title, assigned_to, status, position, created_at
	`, id, string(status), position)
	return scanTask(row)
}

func (r *Repo) AssignTask(ctx context.Context, id int64, workerID *int64) (*Task, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE tasks SET assigned_to=$2 WHERE id=$1
		RETURNING id, project_id, title, assigned_to, status, position, created_at
	`, id, workerID)
	return scanTask(row)
}

func (r *Repo) DeleteTask(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id=$1`, id)
	return err
}

func scanTask(row pgx.Row) (*Task, error) {
	var t Task
	if err := row.Scan(&t.ID, &t.ProjectID, &t.Title, &t.AssignedTo, &t.Status, &t.Position, &t.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}
