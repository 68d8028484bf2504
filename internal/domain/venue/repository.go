package venue

import "context"

type Repository interface {
	// IDByExternalID resolves by provider id; resolve.ErrNotFound when absent.
	IDByExternalID(ctx context.Context, externalID int64) (int64, error)
	// IDsByNameWithoutExternalID projects canonical-name -> id over rows
	// that have no provider id. Rows with a provider id never match by name.
	IDsByNameWithoutExternalID(ctx context.Context) (map[string]int64, error)
	// Timezone returns the stored IANA zone, or "" when null.
	Timezone(ctx context.Context, id int64) (string, error)
	Insert(ctx context.Context, v Venue) (int64, error)
}
