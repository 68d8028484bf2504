package resolve

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound means no reference row matched; callers insert and retry.
	ErrNotFound = errors.New("no matching entity")
	// ErrAmbiguous means two or more candidates resolved to different rows.
	ErrAmbiguous = errors.New("ambiguous entity match")
	// ErrConflict means an insert hit a natural-key uniqueness constraint,
	// usually because a concurrent run inserted the same entity first.
	ErrConflict = errors.New("natural key conflict")
)

// AmbiguityError reports the label and every key its candidates hit.
type AmbiguityError struct {
	Label string
	Keys  []string
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("ambiguous entity match for %q: keys [%s]", e.Label, strings.Join(e.Keys, ", "))
}

func (e *AmbiguityError) Unwrap() error {
	return ErrAmbiguous
}

// ManualInterventionError signals that resolution needs data only a human
// can supply. The caller decides what to do with it; nothing in this
// package reads from a terminal.
type ManualInterventionError struct {
	Kind   string
	Label  string
	Reason string
}

func (e *ManualInterventionError) Error() string {
	return fmt.Sprintf("manual intervention required for %s %q: %s", e.Kind, e.Label, e.Reason)
}

// IsManualIntervention reports whether err (or anything it wraps) is a
// ManualInterventionError.
func IsManualIntervention(err error) bool {
	var target *ManualInterventionError
	return errors.As(err, &target)
}
