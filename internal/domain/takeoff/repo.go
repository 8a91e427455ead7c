package takeoff

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

/* Activity yield profiles */

func (r *Repo) CreateProfile(ctx context.Context, p ActivityYieldProfile) (*ActivityYieldProfile, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO activity_profiles (name, work_unit, work_symbol)
		VALUES ($1,$2,$3)
		RETURNING id, name, work_unit, work_symbol, created_at
	`, p.Name, string(p.WorkUnit), p.WorkSym)
	var out ActivityYieldProfile
	if err := row.Scan(&out.ID, &out.Name, &out.WorkUnit, &out.WorkSym, &out.CreatedAt); err != nil {
		return nil, err
	}

	// Position keeps yield rows in authoring order; output ordering of
	// an estimate follows it exactly.
	for i, ratio := range p.Ratios {
		if _, err := tx.Exec(ctx, `
			INSERT INTO activity_profile_ratios (profile_id, position, material_name, ratio, unit)
			VALUES ($1,$2,$3,$4,$5)
		`, out.ID, i, ratio.MaterialName, ratio.Ratio, ratio.Unit); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	out.Ratios = append(out.Ratios, p.Ratios...)
	return &out, nil
}

func (r *Repo) GetProfile(ctx context.Context, id int64) (*ActivityYieldProfile, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, work_unit, work_symbol, created_at
		FROM activity_profiles WHERE id=$1
	`, id)
	var p ActivityYieldProfile
	if err := row.Scan(&p.ID, &p.Name, &p.WorkUnit, &p.WorkSym, &p.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT material_name, ratio, unit
		FROM activity_profile_ratios
		WHERE profile_id=$1
		ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var mr MaterialRatio
		if err := rows.Scan(&mr.MaterialName, &mr.Ratio, &mr.Unit); err != nil {
			return nil, err
		}
		p.Ratios = append(p.Ratios, mr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) ListProfiles(ctx context.Context) ([]ActivityYieldProfile, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, work_unit, work_symbol, created_at
		FROM activity_profiles ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ActivityYieldProfile
	for rows.Next() {
		var p ActivityYieldProfile
		if err := rows.Scan(&p.ID, &p.Name, &p.WorkUnit, &p.WorkSym, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) DeleteProfile(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM activity_profiles WHERE id=$1`, id)
	return err
}

/* Takeoff records */

func (r *Repo) SaveRecord(ctx context.Context, rec TakeoffRecord) (*TakeoffRecord, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO takeoffs (id, project_id, activity, length, height, width, area)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at
	`, rec.ID, rec.ProjectID, rec.Activity,
		rec.Dimensions.Length, rec.Dimensions.Height, rec.Dimensions.Width, rec.Area)
	if err := row.Scan(&rec.CreatedAt); err != nil {
		return nil, err
	}

	for i, it := range rec.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO takeoff_items (takeoff_id, position, material_name, qty, unit, status)
			VALUES ($1,$2,$3,$4,$5,$6)
		`, rec.ID, i, it.MaterialName, it.Quantity, it.Unit, it.Status); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *Repo) GetRecord(ctx context.Context, id uuid.UUID) (*TakeoffRecord, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, project_id, activity, length, height, width, area, created_at
		FROM takeoffs WHERE id=$1
	`, id)
	var rec TakeoffRecord
	if err := row.Scan(&rec.ID, &rec.ProjectID, &rec.Activity,
		&rec.Dimensions.Length, &rec.Dimensions.Height, &rec.Dimensions.Width,
		&rec.Area, &rec.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT material_name, qty, unit, status
		FROM takeoff_items WHERE takeoff_id=$1 ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it MaterialLineItem
		if err := rows.Scan(&it.MaterialName, &it.Quantity, &it.Unit, &it.Status); err != nil {
			return nil, err
		}
		rec.Items = append(rec.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *Repo) ListRecordsByProject(ctx context.Context, projectID int64) ([]TakeoffRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, project_id, activity, length, height, width, area, created_at
		FROM takeoffs WHERE project_id=$1 ORDER BY created_at DESC
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TakeoffRecord
	for rows.Next() {
		var rec TakeoffRecord
		if err := rows.Scan(&rec.ID, &rec.ProjectID, &rec.Activity,
			&rec.Dimensions.Length, &rec.Dimensions.Height, &rec.Dimensions.Width,
			&rec.Area, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
