package eventtype

import "context"

type Repository interface {
	IDByTypeDetail(ctx context.Context, eventType, detail string) (int64, error)
	// IDsByType lists every key sharing one type, e.g. all "subst" rows.
	IDsByType(ctx context.Context, eventType string) ([]int64, error)
	Insert(ctx context.Context, eventType, detail string) (int64, error)
}
