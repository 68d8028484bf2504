package fixture

import (
	"strings"
	"time"
)

// Fixture is the fact row tying one match to its resolved reference keys.
// Kickoff is stored three ways: UTC, venue-local, and home-market time.
type Fixture struct {
	ID            int64
	ExternalID    int64
	RefereeID     *int64
	UTCKickoff    time.Time
	LocalKickoff  time.Time
	MarketKickoff time.Time
	VenueID       int64
	LeagueID      int64
	HomeTeamID    int64
	AwayTeamID    int64
	StatusID      *int64
	WinnerTeamID  *int64
	HomeGoals     *int
	AwayGoals     *int
	HalftimeHome  *int
	HalftimeAway  *int
	FulltimeHome  *int
	FulltimeAway  *int
	ExtratimeHome *int
	ExtratimeAway *int
	PenaltyHome   *int
	PenaltyAway   *int
}

// Event is one in-match occurrence (goal, card, substitution, VAR call).
type Event struct {
	ID             int64
	FixtureID      int64
	EventTypeID    int64
	Comments       *string
	Elapsed        *int
	ExtraElapsed   *int
	TeamID         int64
	PlayerID       int64
	AssistPlayerID *int64
}

// TeamStatistics is one team's full-match stat line.
type TeamStatistics struct {
	ID              int64
	FixtureID       int64
	TeamID          int64
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

// PlayerStatistics is one player's full-match stat sheet.
type PlayerStatistics struct {
	ID                 int64
	FixtureID          int64
	TeamID             int64
	PlayerID           int64
	Minutes            *int
	Number             *int
	PositionID         *int64
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

// LineupEntry is one player's slot in a team's announced lineup.
type LineupEntry struct {
	ID          int64
	FixtureID   int64
	TeamID      int64
	CoachID     *int64
	FormationID *int64
	PlayerID    int64
	Number      *int
	PositionID  *int64
	Grid        *string
	Starter     bool
}

type statusKey struct {
	short   string
	elapsed int
}

// statusTable maps final provider statuses to warehouse status keys.
// Entries only apply when no extra time field is reported.
var statusTable = map[statusKey]int64{
	{short: "FT", elapsed: 90}:   1,
	{short: "PEN", elapsed: 120}: 2,
}

// StatusID maps a provider fixture status to the warehouse status key,
// or nil when the combination is not a recognized final state.
func StatusID(short string, elapsed int, extra *int) *int64 {
	if extra != nil {
		return nil
	}
	id, ok := statusTable[statusKey{short: strings.TrimSpace(short), elapsed: elapsed}]
	if !ok {
		return nil
	}
	return &id
}
