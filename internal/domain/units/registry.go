package units

import (
	"context"
	"strings"
)

// Registry owns the catalog invariants: exactly one base unit with
// factor 1.0 per category, positive factors everywhere else. Storage
// is injected, never cached.
type Registry struct {
	store Store
	usage UsageChecker
}

func NewRegistry(store Store, usage UsageChecker) *Registry {
	return &Registry{store: store, usage: usage}
}

func (r *Registry) Create(ctx context.Context, u Unit) (*Unit, error) {
	u.Name = strings.TrimSpace(u.Name)
	u.Symbol = strings.TrimSpace(u.Symbol)
	if u.Name == "" {
		return nil, validationf("unit name is required")
	}
	if u.Category == "" {
		return nil, validationf("unit category is required")
	}
	if u.IsBase {
		// A new base silently takes over base status for its category.
		u.Factor = 1.0
		if err := r.store.ClearBase(ctx, u.Category, 0); err != nil {
			return nil, err
		}
	} else if u.Factor <= 0 {
		return nil, validationf("conversion factor must be positive, got %v", u.Factor)
	}

	created, err := r.store.Insert(ctx, u)
	if err != nil {
		return nil, err
	}
	if u.IsBase {
		if err := r.verifySingleBase(ctx, u.Category); err != nil {
			return nil, err
		}
	}
	return created, nil
}

func (r *Registry) Get(ctx context.Context, id int64) (*Unit, error) {
	return r.store.GetByID(ctx, id)
}

func (r *Registry) List(ctx context.Context) ([]Unit, error) {
	return r.store.List(ctx)
}

func (r *Registry) ListByCategory(ctx context.Context, c Category) ([]Unit, error) {
	return r.store.ListByCategory(ctx, c)
}

// BaseUnit returns the category's base unit, or (nil, nil) when the
// category has no units yet.
func (r *Registry) BaseUnit(ctx context.Context, c Category) (*Unit, error) {
	list, err := r.store.ListByCategory(ctx, c)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].IsBase {
			return &list[i], nil
		}
	}
	return nil, nil
}

func (r *Registry) Update(ctx context.Context, id int64, ch Changes) (*Unit, error) {
	cur, err := r.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, nil
	}
	if ch.Category != nil && *ch.Category != cur.Category {
		return nil, validationf("unit %q cannot migrate from category %q to %q", cur.Symbol, cur.Category, *ch.Category)
	}
	next := *cur
	if ch.Name != nil {
		next.Name = strings.TrimSpace(*ch.Name)
		if next.Name == "" {
			return nil, validationf("unit name is required")
		}
	}
	if ch.Symbol != nil {
		next.Symbol = strings.TrimSpace(*ch.Symbol)
	}
	if ch.IsBase != nil {
		next.IsBase = *ch.IsBase
	}

	switch {
	case next.IsBase:
		if ch.Factor != nil && *ch.Factor != 1.0 {
			return nil, validationf("base unit factor is fixed at 1.0")
		}
		next.Factor = 1.0
	default:
		if cur.IsBase {
			// Demoting the sole base directly would leave the category
			// without a reference point; promote another unit instead.
			return nil, validationf("category %q must keep a base unit; promote another unit instead", cur.Category)
		}
		if ch.Factor != nil {
			next.Factor = *ch.Factor
		}
		if next.Factor <= 0 {
			return nil, validationf("conversion factor must be positive, got %v", next.Factor)
		}
	}

	if next.IsBase && !cur.IsBase {
		if err := r.store.ClearBase(ctx, next.Category, id); err != nil {
			return nil, err
		}
	}
	updated, err := r.store.Update(ctx, next)
	if err != nil {
		return nil, err
	}
	if next.IsBase {
		if err := r.verifySingleBase(ctx, next.Category); err != nil {
			return nil, err
		}
	}
	return updated, nil
}

func (r *Registry) Delete(ctx context.Context, id int64) error {
	u, err := r.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return nil
	}
	inUse, err := r.usage.InUse(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return conflictf("unit %q is still referenced by stored quantities", u.Symbol)
	}
	return r.store.Delete(ctx, id)
}

// Convert reprices qty from one unit into another of the same category.
func (r *Registry) Convert(ctx context.Context, qty float64, fromID, toID int64) (float64, error) {
	from, err := r.store.GetByID(ctx, fromID)
	if err != nil {
		return 0, err
	}
	if from == nil {
		return 0, validationf("unknown unit id %d", fromID)
	}
	to, err := r.store.GetByID(ctx, toID)
	if err != nil {
		return 0, err
	}
	if to == nil {
		return 0, validationf("unknown unit id %d", toID)
	}
	if from.Category != to.Category {
		return 0, validationf("cannot convert %q (%s) to %q (%s): categories differ", from.Symbol, from.Category, to.Symbol, to.Category)
	}
	return qty * from.Factor / to.Factor, nil
}

func (r *Registry) verifySingleBase(ctx context.Context, c Category) error {
	list, err := r.store.ListByCategory(ctx, c)
	if err != nil {
		return err
	}
	bases := 0
	for _, u := range list {
		if u.IsBase && u.Factor == 1.0 {
			bases++
		}
	}
	if bases != 1 {
		return conflictf("category %q has %d base units after write", c, bases)
	}
	return nil
}
