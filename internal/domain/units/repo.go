package units

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const unitCols = `id, name, symbol, category, factor, is_base, created_at`

func scanUnit(row pgx.Row) (*Unit, error) {
	var u Unit
	if err := row.Scan(&u.ID, &u.Name, &u.Symbol, &u.Category, &u.Factor, &u.IsBase, &u.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repo) Insert(ctx context.Context, u Unit) (*Unit, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO measurement_units (name, symbol, category, factor, is_base)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING `+unitCols+`
	`, u.Name, u.Symbol, string(u.Category), u.Factor, u.IsBase)
	return scanUnit(row)
}

func (r *Repo) Update(ctx context.Context, u Unit) (*Unit, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE measurement_units
		SET name=$2, symbol=$3, factor=$4, is_base=$5
		WHERE id=$1
		RETURNING `+unitCols+`
	`, u.ID, u.Name, u.Symbol, u.Factor, u.IsBase)
	return scanUnit(row)
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM measurement_units WHERE id=$1`, id)
	return err
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Unit, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+unitCols+` FROM measurement_units WHERE id=$1`, id)
	return scanUnit(row)
}

func (r *Repo) List(ctx context.Context) ([]Unit, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+unitCols+` FROM measurement_units ORDER BY category, is_base DESC, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUnits(rows)
}

func (r *Repo) ListByCategory(ctx context.Context, c Category) ([]Unit, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+unitCols+` FROM measurement_units WHERE category=$1 ORDER BY is_base DESC, name
	`, string(c))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUnits(rows)
}

func (r *Repo) ClearBase(ctx context.Context, c Category, keepID int64) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE measurement_units SET is_base=FALSE
		WHERE category=$1 AND is_base=TRUE AND id <> $2
	`, string(c), keepID)
	return err
}

func collectUnits(rows pgx.Rows) ([]Unit, error) {
	var out []Unit
	for rows.Next() {
		var u Unit
		if err := rows.Scan(&u.ID, &u.Name, &u.Symbol, &u.Category, &u.Factor, &u.IsBase, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UsageRepo answers the delete guard against the durable store: a unit
// is in use while any material, stock entry or recipe line references it.
type UsageRepo struct{ pool *pgxpool.Pool }

func NewUsageRepo(pool *pgxpool.Pool) *UsageRepo { return &UsageRepo{pool: pool} }

func (r *UsageRepo) InUse(ctx context.Context, unitID int64) (bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM materials WHERE unit_id=$1)
		    OR EXISTS (SELECT 1 FROM stock_entries WHERE unit_id=$1)
		    OR EXISTS (SELECT 1 FROM apu_recipe_items WHERE unit_id=$1)
		    OR EXISTS (SELECT 1 FROM apu_recipes WHERE work_unit_id=$1)
	`, unitID)
	var used bool
	if err := row.Scan(&used); err != nil {
		return false, err
	}
	return used, nil
}
