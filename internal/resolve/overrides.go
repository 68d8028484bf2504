package resolve

import "strings"

// LeagueRound identifies a competition-plus-round combination that maps to
// a fixed warehouse key regardless of what generic resolution would say.
type LeagueRound struct {
	LeagueExternalID int64
	Round            string
}

// Overrides is the data-driven exception table consulted before generic
// resolution. New quirks are configuration, not code changes.
type Overrides struct {
	LeagueRound map[LeagueRound]int64
	VenueName   map[string]int64
}

// DefaultOverrides carries the exceptions the warehouse accumulated before
// the table became configurable.
func DefaultOverrides() Overrides {
	return Overrides{
		LeagueRound: map[LeagueRound]int64{
			{LeagueExternalID: 253, Round: "Play-In Round - Finals"}: 3,
		},
		VenueName: map[string]int64{
			canonical("Mercedes-Benz Stadium (Atlanta, Georgia)"): 4,
		},
	}
}

// LeagueKey returns the fixed key for a league/round pair, if any.
func (o Overrides) LeagueKey(leagueExternalID int64, round string) (int64, bool) {
	if o.LeagueRound == nil {
		return 0, false
	}
	key, ok := o.LeagueRound[LeagueRound{LeagueExternalID: leagueExternalID, Round: strings.TrimSpace(round)}]
	return key, ok
}

// VenueKey returns the fixed key for a venue name, if any. Names are
// compared in canonical form.
func (o Overrides) VenueKey(name string) (int64, bool) {
	if o.VenueName == nil {
		return 0, false
	}
	key, ok := o.VenueName[canonical(name)]
	return key, ok
}

// MergeVenueName adds or replaces venue overrides, canonicalizing keys.
func (o *Overrides) MergeVenueName(names map[string]int64) {
	if len(names) == 0 {
		return
	}
	if o.VenueName == nil {
		o.VenueName = make(map[string]int64, len(names))
	}
	for name, key := range names {
		o.VenueName[canonical(name)] = key
	}
}

// MergeLeagueRound adds or replaces league/round overrides.
func (o *Overrides) MergeLeagueRound(rounds map[LeagueRound]int64) {
	if len(rounds) == 0 {
		return
	}
	if o.LeagueRound == nil {
		o.LeagueRound = make(map[LeagueRound]int64, len(rounds))
	}
	for lr, key := range rounds {
		lr.Round = strings.TrimSpace(lr.Round)
		o.LeagueRound[lr] = key
	}
}
