package apu

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Create(ctx context.Context, rec Recipe) (*Recipe, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO apu_recipes (name, work_unit_id)
		VALUES ($1,$2)
		RETURNING id, name, work_unit_id, created_at
	`, rec.Name, rec.WorkUnitID)
	var out Recipe
	if err := row.Scan(&out.ID, &out.Name, &out.WorkUnitID, &out.CreatedAt); err != nil {
		return nil, err
	}

	for i, it := range rec.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO apu_recipe_items (recipe_id, position, kind, description, qty, unit_id, unit_price)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
		`, out.ID, i, string(it.Kind), it.Description, it.Qty, it.UnitID, it.UnitPrice); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	out.Items = append(out.Items, rec.Items...)
	return &out, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Recipe, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT r.id, r.name, r.work_unit_id, COALESCE(u.symbol,''), r.created_at
		FROM apu_recipes r
		LEFT JOIN measurement_units u ON u.id = r.work_unit_id
		WHERE r.id=$1
	`, id)
	var rec Recipe
	if err := row.Scan(&rec.ID, &rec.Name, &rec.WorkUnitID, &rec.WorkSymbol, &rec.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT i.id, i.kind, i.description, i.qty, i.unit_id, COALESCE(u.symbol,''), i.unit_price
		FROM apu_recipe_items i
		LEFT JOIN measurement_units u ON u.id = i.unit_id
		WHERE i.recipe_id=$1
		ORDER BY i.position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it RecipeItem
		if err := rows.Scan(&it.ID, &it.Kind, &it.Description, &it.Qty, &it.UnitID, &it.UnitSymbol, &it.UnitPrice); err != nil {
			return nil, err
		}
		rec.Items = append(rec.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *Repo) List(ctx context.Context) ([]Recipe, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT r.id, r.name, r.work_unit_id, COALESCE(u.symbol,''), r.created_at
		FROM apu_recipes r
		LEFT JOIN measurement_units u ON u.id = r.work_unit_id
		ORDER BY r.name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Recipe
	for rows.Next() {
		var rec Recipe
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.WorkUnitID, &rec.WorkSymbol, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM apu_recipes WHERE id=$1`, id)
	return err
}
