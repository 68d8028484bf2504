package coach

import "time"

type Coach struct {
	ID               int64
	ExternalID       int64
	FirstName        *string
	LastName         *string
	BirthDate        *time.Time
	BirthPlace       *string
	BirthCountryCode *string
	Nationality      *string
}
