package geocode

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ringsaturn/tzf"
)

// tzAliases maps common non-IANA zone spellings (US shorthand,
// abbreviations, Windows display names) onto IANA identifiers.
var tzAliases = map[string]string{
	"us/eastern":  "America/New_York",
	"us/central":  "America/Chicago",
	"us/mountain": "America/Denver",
	"us/pacific":  "America/Los_Angeles",

	// Abbreviations are ambiguous; pick the common US mappings.
	"est": "America/New_York",
	"edt": "America/New_York",
	"cst": "America/Chicago",
	"cdt": "America/Chicago",
	"mst": "America/Denver",
	"mdt": "America/Denver",
	"pst": "America/Los_Angeles",
	"pdt": "America/Los_Angeles",

	"(utc-05:00) eastern time (us & canada)":  "America/New_York",
	"(utc-06:00) central time (us & canada)":  "America/Chicago",
	"(utc-07:00) mountain time (us & canada)": "America/Denver",
	"(utc-08:00) pacific time (us & canada)":  "America/Los_Angeles",
	"eastern standard time":                   "America/New_York",
	"central standard time":                   "America/Chicago",
	"mountain standard time":                  "America/Denver",
	"pacific standard time":                   "America/Los_Angeles",
}

// NormalizeZone maps a provider-reported zone name to an IANA
// identifier. Names already containing a slash pass through unchanged.
func NormalizeZone(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || strings.Contains(trimmed, "/") {
		return trimmed
	}
	key := strings.Join(strings.Fields(strings.ToLower(trimmed)), " ")
	if iana, ok := tzAliases[key]; ok {
		return iana
	}
	return trimmed
}

var (
	finderOnce sync.Once
	finder     tzf.F
	finderErr  error
)

// Timezone resolves coordinates to an IANA zone name using an embedded
// timezone boundary index.
func Timezone(lat, lon float64) (string, error) {
	finderOnce.Do(func() {
		finder, finderErr = tzf.NewDefaultFinder()
	})
	if finderErr != nil {
		return "", fmt.Errorf("init timezone finder: %w", finderErr)
	}

	zone := finder.GetTimezoneName(lon, lat)
	if zone == "" {
		return "", fmt.Errorf("no timezone for coordinates (%f, %f)", lat, lon)
	}
	return zone, nil
}

// Timezone on Nominatim satisfies the geocoder interface expected by
// the ingestion layer.
func (n *Nominatim) Timezone(lat, lon float64) (string, error) {
	return Timezone(lat, lon)
}

func (n *Nominatim) NormalizeZone(name string) string {
	return NormalizeZone(name)
}
