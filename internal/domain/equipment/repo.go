package equipment

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Create(ctx context.Context, name, plate string, hourlyRate float64) (*Equipment, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO equipment (name, plate, hourly_rate, status)
		VALUES ($1,$2,$3,'available')
		RETURNING id, name, plate, hourly_rate, status, project_id, created_at
	`, name, plate, hourlyRate)
	return scanEquipment(row)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Equipment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, plate, hourly_rate, status, project_id, created_at
		FROM equipment WHERE id=$1
	`, id)
	return scanEquipment(row)
}

func (r *Repo) List(ctx context.Context) ([]Equipment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, plate, hourly_rate, status, project_id, created_at
		FROM equipment ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Equipment
	for rows.Next() {
		var e Equipment
		if err := rows.Scan(&e.ID, &e.Name, &e.Plate, &e.HourlyRate, &e.Status, &e.ProjectID, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Assign parks the machine on a project; a nil projectID releases it.
func (r *Repo) Assign(ctx context.Context, id int64, projectID *int64) (*Equipment, error) {
	status := StatusAssigned
	if projectID == nil {
		status = StatusAvailable
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE equipment SET project_id=$2, status=$3 WHERE id=$1
		RETURNING id, name, plate, hourly_rate, status, project_id, created_at
	`, id, projectID, string(status))
	return scanEquipment(row)
}

func (r *Repo) SetStatus(ctx context.Context, id int64, status Status) (*Equipment, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE equipment SET status=$2 WHERE id=$1
		RETURNING id, name, plate, hourly_rate, status, project_id, created_at
	`, id, string(status))
	return scanEquipment(row)
}

func scanEquipment(row pgx.Row) (*Equipment, error) {
	var e Equipment
	if err := row.Scan(&e.ID, &e.Name, &e.Plate, &e.HourlyRate, &e.Status, &e.ProjectID, &e.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}
