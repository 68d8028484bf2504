package position

import "context"

type Repository interface {
	// IDByLabel resolves an exact label; resolve.ErrNotFound when absent.
	IDByLabel(ctx context.Context, label string) (int64, error)
	// Insert appends a new label and returns its key. A duplicate label
	// surfaces as resolve.ErrConflict.
	Insert(ctx context.Context, label string) (int64, error)
}
