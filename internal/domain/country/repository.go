package country

import "context"

// Repository exposes the lookup projection used for name resolution.
type Repository interface {
	// CodesByName returns a lowercase-name -> code projection of the
	// whole reference table.
	CodesByName(ctx context.Context) (map[string]string, error)
}
