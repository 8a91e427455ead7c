package personnel

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) GetByPhone(ctx context.Context, phone string) (*Worker, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, full_name, phone, role, active, created_at, updated_at
		FROM workers WHERE phone = $1
	`, phone)

	var w Worker
	if err := row.Scan(&w.ID, &w.FullName, &w.Phone, &w.Role, &w.Active, &w.CreatedAt, &w.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

// UpsertByPhone creates or refreshes a worker keyed by phone. An
// existing admin keeps the admin role regardless of the incoming one.
func (r *Repo) UpsertByPhone(ctx context.Context, fullName, phone string, role Role) (*Worker, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO workers (full_name, phone, role, active)
		VALUES ($1,$2,$3,TRUE)
		ON CONFLICT (phone)
		DO UPDATE SET
			full_name  = EXCLUDED.full_name,
			role       = CASE WHEN workers.role = 'admin' THEN workers.role ELSE EXCLUDED.role END,
			updated_at = now()
		RETURNING id, full_name, phone, role, active, created_at, updated_at
	`, fullName, phone, string(role))

	var w Worker
	if err := row.Scan(&w.ID, &w.FullName, &w.Phone, &w.Role, &w.Active, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *Repo) List(ctx context.Context, onlyActive bool) ([]Worker, error) {
	q := `
		SELECT id, full_name, phone, role, active, created_at, updated_at
		FROM workers
	`
	if onlyActive {
		q += " WHERE active = TRUE"
	}
	q += " ORDER BY full_name"

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Worker
	for rows.Next() {
		var w Worker
		if err := rows.Scan(&w.ID, &w.FullName, &w.Phone, &w.Role, &w.Active, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *Repo) SetActive(ctx context.Context, id int64, active bool) (*Worker, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE workers SET active=$2, updated_at=now() WHERE id=$1
		RETURNING id, full_name, phone, role, active, created_at, updated_at
	`, id, active)
	var w Worker
	if err := row.Scan(&w.ID, &w.FullName, &w.Phone, &w.Role, &w.Active, &w.CreatedAt, &w.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}
