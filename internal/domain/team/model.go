package team

import "time"

type Team struct {
	ID          int64
	ExternalID  int64
	Name        string
	CountryCode *string
	Founded     *time.Time
}

// FoundedFromYear turns a provider founding year into January 1st of that
// year, which is how the warehouse stores it.
func FoundedFromYear(year int) *time.Time {
	if year <= 0 {
		return nil
	}
	t := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return &t
}
