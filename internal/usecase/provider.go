package usecase

import (
	"context"
	"time"
)

// ProviderTeamRef is a team as referenced inside a fixture payload.
type ProviderTeamRef struct {
	ExternalID int64
	Name       string
	Winner     *bool
}

// ProviderVenueRef is the venue block of a fixture payload. Most MLS-era
// rows carry no provider venue id, only a name.
type ProviderVenueRef struct {
	ExternalID *int64
	Name       string
	City       string
}

// ProviderStatus is the fixture status block: a short code plus elapsed
// minutes and optional stoppage extra.
type ProviderStatus struct {
	Short   string
	Elapsed *int
	Extra   *int
}

// ProviderScore carries the period-by-period score lines.
type ProviderScore struct {
	HalftimeHome  *int
	HalftimeAway  *int
	FulltimeHome  *int
	FulltimeAway  *int
	ExtratimeHome *int
	ExtratimeAway *int
	PenaltyHome   *int
	PenaltyAway   *int
}

// ProviderFixture is one match header as the provider reports it.
type ProviderFixture struct {
	ExternalID       int64
	Referee          string
	KickoffUTC       time.Time
	Venue            ProviderVenueRef
	Status           ProviderStatus
	LeagueExternalID int64
	Round            string
	HomeTeam         ProviderTeamRef
	AwayTeam         ProviderTeamRef
	HomeGoals        *int
	AwayGoals        *int
	Score            ProviderScore
}

// ProviderEvent is one in-match event.
type ProviderEvent struct {
	Type             string
	Detail           string
	Comments         *string
	Elapsed          *int
	ExtraElapsed     *int
	TeamExternalID   int64
	PlayerExternalID int64
	AssistExternalID *int64
}

// ProviderTeamStats is one team's stat line, numeric values already
// parsed (possession percent string becomes a float).
type ProviderTeamStats struct {
	TeamExternalID  int64
	ShotsOnGoal     *int
	ShotsOffGoal    *int
	TotalShots      *int
	BlockedShots    *int
	GoalkeeperSaves *int
	ShotsInsideBox  *int
	ShotsOutsideBox *int
	CornerKicks     *int
	Offsides        *int
	BallPossession  *float64
	TotalPasses     *int
	PassesAccurate  *int
	Fouls           *int
	YellowCards     *int
	RedCards        *int
}

// ProviderPlayerStats is one player's stat sheet for a fixture.
type ProviderPlayerStats struct {
	TeamExternalID     int64
	PlayerExternalID   int64
	PlayerName         string
	Minutes            *int
	Number             *int
	Position           string
	Rating             *float64
	Captain            *bool
	Substitute         *bool
	Offsides           *int
	TotalShots         *int
	ShotsOnGoal        *int
	Goals              *int
	GoalsConceded      *int
	Assists            *int
	Saves              *int
	TotalPasses        *int
	KeyPasses          *int
	PassAccuracy       *float64
	Tackles            *int
	Blocks             *int
	Interceptions      *int
	Duels              *int
	DuelsWon           *int
	DribbleAttempts    *int
	DribbleSuccesses   *int
	DribblesPast       *int
	FoulsCommitted     *int
	FoulsDrawn         *int
	YellowCards        *int
	RedCards           *int
	PenaltiesWon       *int
	PenaltiesCommitted *int
	PenaltiesScored    *int
	PenaltiesMissed    *int
	PenaltiesSaved     *int
}

// ProviderLineupPlayer is one slot in an announced lineup.
type ProviderLineupPlayer struct {
	ExternalID int64
	Name       string
	Number     *int
	Position   string
	Grid       *string
}

// ProviderLineup is one team's announced lineup.
type ProviderLineup struct {
	TeamExternalID  int64
	CoachExternalID *int64
	Formation       string
	Starters        []ProviderLineupPlayer
	Substitutes     []ProviderLineupPlayer
}

// ProviderFixtureBundle aggregates everything the provider reports
// about one fixture.
type ProviderFixtureBundle struct {
	Fixture     ProviderFixture
	Events      []ProviderEvent
	TeamStats   []ProviderTeamStats
	PlayerStats []ProviderPlayerStats
	Lineups     []ProviderLineup
}

// ProviderTeamVenue is the venue block of a team payload, used when a
// fixture introduces a venue the warehouse has not seen.
type ProviderTeamVenue struct {
	ExternalID *int64
	Name       string
	Address    string
	City       string
	Capacity   *int
	Surface    string
}

// ProviderTeam is a team profile.
type ProviderTeam struct {
	ExternalID int64
	Name       string
	Country    string
	Founded    *int
	Venue      ProviderTeamVenue
}

// ProviderPersonProfile is a player or coach profile.
type ProviderPersonProfile struct {
	ExternalID   int64
	FirstName    *string
	LastName     *string
	BirthDate    *time.Time
	BirthPlace   *string
	BirthCountry *string
	Nationality  *string
	HeightCM     *int
	WeightKG     *int
}

// Provider fetches match data from the upstream football API.
type Provider interface {
	FixtureBundle(ctx context.Context, fixtureExternalID int64) (ProviderFixtureBundle, error)
	Team(ctx context.Context, externalID int64) (ProviderTeam, error)
	Coach(ctx context.Context, externalID int64) (ProviderPersonProfile, error)
	PlayerProfile(ctx context.Context, externalID int64) (ProviderPersonProfile, error)
}

// Geocoder turns venue addresses into coordinates and coordinates into
// IANA time zones.
type Geocoder interface {
	Locate(ctx context.Context, address string) (lat, lon float64, err error)
	Timezone(lat, lon float64) (string, error)
	// NormalizeZone maps aliased zone spellings onto IANA identifiers,
	// returning unrecognized names unchanged.
	NormalizeZone(name string) string
}
