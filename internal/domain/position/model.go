package position

// Position is a free-text playing-position label with a surrogate key,
// inserted on first sight.
type Position struct {
	ID    int64
	Label string
}
