package venue

// Venue is a match location. Venues carrying a provider id resolve by
// that id; venues without one resolve by name among other id-less rows.
type Venue struct {
	ID          int64
	ExternalID  *int64
	Name        string
	Address     *string
	City        *string
	State       *string
	CountryCode *string
	Capacity    *int
	Surface     *string
	Latitude    *float64
	Longitude   *float64
	Timezone    *string
}
