package materials

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

/* Materials CRUD */

func (r *Repo) Create(ctx context.Context, name, category string, unitID int64, price float64) (*Material, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO materials (name, category, unit_id, price_per_unit, active)
		VALUES ($1,$2,$3,$4,TRUE)
		RETURNING id, name, category, unit_id, price_per_unit, active, created_at
	`, name, category, unitID, price)

	var m Material
	if err := row.Scan(&m.ID, &m.Name, &m.Category, &m.UnitID, &m.PricePerUnit, &m.Active, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Material, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT m.id, m.name, m.category, m.unit_id, COALESCE(u.symbol,''), m.price_per_unit, m.active, m.created_at
		FROM materials m
		LEFT JOIN measurement_units u ON u.id = m.unit_id
		WHERE m.id = $1
	`, id)
	var m Material
	if err := row.Scan(&m.ID, &m.Name, &m.Category, &m.UnitID, &m.UnitSymbol, &m.PricePerUnit, &m.Active, &m.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *Repo) List(ctx context.Context, onlyActive bool) ([]Material, error) {
	q := `
		SELECT m.id, m.name, m.category, m.unit_id, COALESCE(u.symbol,''), m.price_per_unit, m.active, m.created_at
		FROM materials m
		LEFT JOIN measurement_units u ON u.id = m.unit_id
	`
	if onlyActive {
		q += " WHERE m.active = TRUE"
	}
	q += " ORDER BY m.category, m.name"

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Material
	for rows.Next() {
		var m Material
		if err := rows.Scan(&m.ID, &m.Name, &m.Category, &m.UnitID, &m.UnitSymbol, &m.PricePerUnit, &m.Active, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SearchByName matches materials by name or category, case-insensitive.
func (r *Repo) SearchByName(ctx context.Context, q string, onlyActive bool) ([]Material, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}
	like := "%" + strings.ToLower(q) + "%"

	base := `
		SELECT m.id, m.name, m.category, m.unit_id, COALESCE(u.symbol,''), m.price_per_unit, m.active, m.created_at
		FROM materials m
		LEFT JOIN measurement_units u ON u.id = m.unit_id
		WHERE LOWER(m.name) LIKE $1 OR LOWER(m.category) LIKE $1
	`
	var rows pgx.Rows
	var err error
	if onlyActive {
		rows, err = r.pool.Query(ctx, base+` AND m.active = TRUE ORDER BY m.name`, like)
	} else {
		rows, err = r.pool.Query(ctx, base+` ORDER BY m.name`, like)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Material
	for rows.Next() {
		var m Material
		if err := rows.Scan(&m.ID, &m.Name, &m.Category, &m.UnitID, &m.UnitSymbol, &m.PricePerUnit, &m.Active, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *Repo) UpdatePrice(ctx context.Context, id int64, price float64) (*Material, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE materials SET price_per_unit=$2 WHERE id=$1
		RETURNING id, name, category, unit_id, price_per_unit, active, created_at
	`, id, price)
	var m Material
	if err := row.Scan(&m.ID, &m.Name, &m.Category, &m.UnitID, &m.PricePerUnit, &m.Active, &m.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *Repo) SetActive(ctx context.Context, id int64, active bool) (*Material, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE materials SET active=$2 WHERE id=$1
		RETURNING id, name, category, unit_id, price_per_unit, active, created_at
	`, id, active)
	var m Material
	if err := row.Scan(&m.ID, &m.Name, &m.Category, &m.UnitID, &m.PricePerUnit, &m.Active, &m.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

/* Stock */

func (r *Repo) AddStock(ctx context.Context, e StockEntry) (*StockEntry, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO stock_entries (project_id, material_id, qty, unit_id, note)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, project_id, material_id, qty, unit_id, note, created_at
	`, e.ProjectID, e.MaterialID, e.Qty, e.UnitID, e.Note)
	var out StockEntry
	if err := row.Scan(&out.ID, &out.ProjectID, &out.MaterialID, &out.Qty, &out.UnitID, &out.Note, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Repo) ListStock(ctx context.Context, materialID int64) ([]StockEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, project_id, material_id, qty, unit_id, note, created_at
		FROM stock_entries WHERE material_id=$1 ORDER BY created_at
	`, materialID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StockEntry
	for rows.Next() {
		var e StockEntry
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.MaterialID, &e.Qty, &e.UnitID, &e.Note, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
