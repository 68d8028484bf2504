package referee

import "strings"

// Referee holds a split person name plus an optional country code.
type Referee struct {
	ID          int64
	FirstName   string
	LastName    *string
	CountryCode *string
}

// FullName rebuilds the display name the provider feeds use.
func (r Referee) FullName() string {
	if r.LastName == nil || *r.LastName == "" {
		return r.FirstName
	}
	return strings.TrimSpace(r.FirstName + " " + *r.LastName)
}
