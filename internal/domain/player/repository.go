package player

import "context"

type Repository interface {
	IDByExternalID(ctx context.Context, externalID int64) (int64, error)
	Insert(ctx context.Context, p Player) (int64, error)
}
