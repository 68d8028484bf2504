package formation

import "context"

type Repository interface {
	IDByLabel(ctx context.Context, label string) (int64, error)
	Insert(ctx context.Context, label string) (int64, error)
}
