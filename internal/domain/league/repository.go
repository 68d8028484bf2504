package league

import "context"

type Repository interface {
	IDByExternalID(ctx context.Context, externalID int64) (int64, error)
}
