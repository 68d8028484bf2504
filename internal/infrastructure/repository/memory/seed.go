package memory

import "github.com/gislobo/matchvault/internal/domain/league"

// SeedCountries is a small slice of the reference country table,
// enough for the resolution paths the tests exercise.
func SeedCountries() map[string]string {
	return map[string]string{
		"England":       "GB-ENG",
		"Ireland":       "IE",
		"United States": "US",
		"Mexico":        "MX",
		"Germany":       "DE",
		"Ivory Coast":   "CI",
	}
}

// SeedLeagues mirrors the hand-curated league rows of the warehouse.
func SeedLeagues() []league.League {
	return []league.League{
		{ID: 1, ExternalID: 253, Name: "Major League Soccer"},
		{ID: 2, ExternalID: 257, Name: "US Open Cup"},
	}
}

// NewSeededWarehouse builds a warehouse pre-loaded with the reference
// seeds above.
func NewSeededWarehouse() *Warehouse {
	return NewWarehouse(SeedCountries(), SeedLeagues())
}
