package referee

import "context"

type Repository interface {
	// IDsByFullName returns a canonical-fullname -> id projection. The
	// canonical form is lowercase with collapsed whitespace, matching
	// the candidate generator's output.
	IDsByFullName(ctx context.Context) (map[string]int64, error)
	Insert(ctx context.Context, ref Referee) (int64, error)
}
