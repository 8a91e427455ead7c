package units

import "context"

// Store persists the unit catalog. Get returns (nil, nil) for a missing id.
// Each call must be individually atomic; the Registry re-checks the
// single-base invariant after base writes and reports a ConflictError
// instead of leaving two bases visible.
type Store interface {
	Insert(ctx context.Context, u Unit) (*Unit, error)
	Update(ctx context.Context, u Unit) (*Unit, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*Unit, error)
	List(ctx context.Context) ([]Unit, error)
	ListByCategory(ctx context.Context, c Category) ([]Unit, error)
	// ClearBase demotes every base unit of the category except keepID
	// (0 keeps nothing). Demoted factors are left untouched.
	ClearBase(ctx context.Context, c Category, keepID int64) error
}

// UsageChecker answers "is this unit still referenced by any stored
// material, stock entry or recipe line". The durable store owns that
// knowledge; the Registry only consults it before a delete.
type UsageChecker interface {
	InUse(ctx context.Context, unitID int64) (bool, error)
}
