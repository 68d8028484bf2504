package resolve

import (
	"fmt"
	"sort"
)

// Lookup tries every candidate against a (normalized name -> key)
// projection of a reference table. Exactly one distinct key wins; zero is
// ErrNotFound, and two or more distinct keys is an AmbiguityError rather
// than a silent first-match pick.
func Lookup[K comparable](label string, candidates []string, projection map[string]K) (K, error) {
	var zero K
	if len(candidates) == 0 {
		return zero, fmt.Errorf("%w: %q produced no candidates", ErrNotFound, label)
	}

	matched := make(map[K]struct{}, 1)
	var found K
	for _, candidate := range candidates {
		key, ok := projection[candidate]
		if !ok {
			continue
		}
		if _, dup := matched[key]; !dup {
			matched[key] = struct{}{}
			found = key
		}
	}

	switch len(matched) {
	case 0:
		return zero, fmt.Errorf("%w: %q", ErrNotFound, label)
	case 1:
		return found, nil
	default:
		keys := make([]string, 0, len(matched))
		for key := range matched {
			keys = append(keys, fmt.Sprint(key))
		}
		sort.Strings(keys)
		return zero, &AmbiguityError{Label: label, Keys: keys}
	}
}

// LookupName is Lookup over the candidate expansion of a single raw label.
func LookupName[K comparable](raw string, projection map[string]K) (K, error) {
	return Lookup(raw, Candidates(raw), projection)
}
