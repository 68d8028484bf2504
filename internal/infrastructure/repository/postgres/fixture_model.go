package postgres

import (
	"time"

	"github.com/gislobo/matchvault/internal/domain/fixture"
)

type fixtureTableModel struct {
	ExternalID    int64     `db:"externalid"`
	RefereeID     *int64    `db:"refereeid"`
	UTCKickoff    time.Time `db:"utckickoff"`
	LocalKickoff  time.Time `db:"localkickoff"`
	MarketKickoff time.Time `db:"marketkickoff"`
	VenueID       int64     `db:"venueid"`
	LeagueID      int64     `db:"leagueid"`
	HomeTeamID    int64     `db:"hometeamid"`
	AwayTeamID    int64     `db:"awayteamid"`
	StatusID      *int64    `db:"statusid"`
	WinnerTeamID  *int64    `db:"winnerteamid"`
	HomeGoals     *int      `db:"homegoals"`
	AwayGoals     *int      `db:"awaygoals"`
	HalftimeHome  *int      `db:"halftimehome"`
	HalftimeAway  *int      `db:"halftimeaway"`
	FulltimeHome  *int      `db:"fulltimehome"`
	FulltimeAway  *int      `db:"fulltimeaway"`
	ExtratimeHome *int      `db:"extratimehome"`
	ExtratimeAway *int      `db:"extratimeaway"`
	PenaltyHome   *int      `db:"penaltyhome"`
	PenaltyAway   *int      `db:"penaltyaway"`
}

func newFixtureTableModel(f fixture.Fixture) fixtureTableModel {
	return fixtureTableModel{
		ExternalID:    f.ExternalID,
		RefereeID:     f.RefereeID,
		UTCKickoff:    f.UTCKickoff,
		LocalKickoff:  f.LocalKickoff,
		MarketKickoff: f.MarketKickoff,
		VenueID:       f.VenueID,
		LeagueID:      f.LeagueID,
		HomeTeamID:    f.HomeTeamID,
		AwayTeamID:    f.AwayTeamID,
		StatusID:      f.StatusID,
		WinnerTeamID:  f.WinnerTeamID,
		HomeGoals:     f.HomeGoals,
		AwayGoals:     f.AwayGoals,
		HalftimeHome:  f.HalftimeHome,
		HalftimeAway:  f.HalftimeAway,
		FulltimeHome:  f.FulltimeHome,
		FulltimeAway:  f.FulltimeAway,
		ExtratimeHome: f.ExtratimeHome,
		ExtratimeAway: f.ExtratimeAway,
		PenaltyHome:   f.PenaltyHome,
		PenaltyAway:   f.PenaltyAway,
	}
}

type eventTableModel struct {
	FixtureID      int64   `db:"fixtureid"`
	EventTypeID    int64   `db:"eventtypeid"`
	Comments       *string `db:"comments"`
	Elapsed        *int    `db:"elapsed"`
	ExtraElapsed   *int    `db:"extraelapsed"`
	TeamID         int64   `db:"teamid"`
	PlayerID       int64   `db:"playerid"`
	AssistPlayerID *int64  `db:"assistplayerid"`
}

func newEventTableModel(e fixture.Event) eventTableModel {
	return eventTableModel{
		FixtureID:      e.FixtureID,
		EventTypeID:    e.EventTypeID,
		Comments:       e.Comments,
		Elapsed:        e.Elapsed,
		ExtraElapsed:   e.ExtraElapsed,
		TeamID:         e.TeamID,
		PlayerID:       e.PlayerID,
		AssistPlayerID: e.AssistPlayerID,
	}
}

// eventRow adds the generated key for reads.
type eventRow struct {
	ID int64 `db:"id"`
	eventTableModel
}

func (r eventRow) toDomain() fixture.Event {
	return fixture.Event{
		ID:             r.ID,
		FixtureID:      r.FixtureID,
		EventTypeID:    r.EventTypeID,
		Comments:       r.Comments,
		Elapsed:        r.Elapsed,
		ExtraElapsed:   r.ExtraElapsed,
		TeamID:         r.TeamID,
		PlayerID:       r.PlayerID,
		AssistPlayerID: r.AssistPlayerID,
	}
}

type teamStatisticsTableModel struct {
	FixtureID       int64    `db:"fixtureid"`
	TeamID          int64    `db:"teamid"`
	ShotsOnGoal     *int     `db:"shotsongoal"`
	ShotsOffGoal    *int     `db:"shotsoffgoal"`
	TotalShots      *int     `db:"totalshots"`
	BlockedShots    *int     `db:"blockedshots"`
	GoalkeeperSaves *int     `db:"goalkeepersaves"`
	ShotsInsideBox  *int     `db:"shotsinsidebox"`
	ShotsOutsideBox *int     `db:"shotsoutsidebox"`
	CornerKicks     *int     `db:"cornerkicks"`
	Offsides        *int     `db:"offsides"`
	BallPossession  *float64 `db:"ballpossession"`
	TotalPasses     *int     `db:"totalpasses"`
	PassesAccurate  *int     `db:"passesaccurate"`
	Fouls           *int     `db:"fouls"`
	YellowCards     *int     `db:"yellowcards"`
	RedCards        *int     `db:"redcards"`
}

func newTeamStatisticsTableModel(s fixture.TeamStatistics) teamStatisticsTableModel {
	return teamStatisticsTableModel{
		FixtureID:       s.FixtureID,
		TeamID:          s.TeamID,
		ShotsOnGoal:     s.ShotsOnGoal,
		ShotsOffGoal:    s.ShotsOffGoal,
		TotalShots:      s.TotalShots,
		BlockedShots:    s.BlockedShots,
		GoalkeeperSaves: s.GoalkeeperSaves,
		ShotsInsideBox:  s.ShotsInsideBox,
		ShotsOutsideBox: s.ShotsOutsideBox,
		CornerKicks:     s.CornerKicks,
		Offsides:        s.Offsides,
		BallPossession:  s.BallPossession,
		TotalPasses:     s.TotalPasses,
		PassesAccurate:  s.PassesAccurate,
		Fouls:           s.Fouls,
		YellowCards:     s.YellowCards,
		RedCards:        s.RedCards,
	}
}

type playerStatisticsTableModel struct {
	FixtureID          int64    `db:"fixtureid"`
	TeamID             int64    `db:"teamid"`
	PlayerID           int64    `db:"playerid"`
	Minutes            *int     `db:"minutes"`
	Number             *int     `db:"number"`
	PositionID         *int64   `db:"positionid"`
	Rating             *float64 `db:"rating"`
	Captain            *bool    `db:"captain"`
	Substitute         *bool    `db:"substitute"`
	Offsides           *int     `db:"offsides"`
	TotalShots         *int     `db:"totalshots"`
	ShotsOnGoal        *int     `db:"shotsongoal"`
	Goals              *int     `db:"goals"`
	GoalsConceded      *int     `db:"goalsconceded"`
	Assists            *int     `db:"assists"`
	Saves              *int     `db:"saves"`
	TotalPasses        *int     `db:"totalpasses"`
	KeyPasses          *int     `db:"keypasses"`
	PassAccuracy       *float64 `db:"passaccuracy"`
	Tackles            *int     `db:"tackles"`
	Blocks             *int     `db:"blocks"`
	Interceptions      *int     `db:"interceptions"`
	Duels              *int     `db:"duels"`
	DuelsWon           *int     `db:"duelswon"`
	DribbleAttempts    *int     `db:"dribbleattempts"`
	DribbleSuccesses   *int     `db:"dribblesuccesses"`
	DribblesPast       *int     `db:"dribblespast"`
	FoulsCommitted     *int     `db:"foulscommitted"`
	FoulsDrawn         *int     `db:"foulsdrawn"`
	YellowCards        *int     `db:"yellowcards"`
	RedCards           *int     `db:"redcards"`
	PenaltiesWon       *int     `db:"penaltieswon"`
	PenaltiesCommitted *int     `db:"penaltiescommitted"`
	PenaltiesScored    *int     `db:"penaltiesscored"`
	PenaltiesMissed    *int     `db:"penaltiesmissed"`
	PenaltiesSaved     *int     `db:"penaltiessaved"`
}

func newPlayerStatisticsTableModel(s fixture.PlayerStatistics) playerStatisticsTableModel {
	return playerStatisticsTableModel{
		FixtureID:          s.FixtureID,
		TeamID:             s.TeamID,
		PlayerID:           s.PlayerID,
		Minutes:            s.Minutes,
		Number:             s.Number,
		PositionID:         s.PositionID,
		Rating:             s.Rating,
		Captain:            s.Captain,
		Substitute:         s.Substitute,
		Offsides:           s.Offsides,
		TotalShots:         s.TotalShots,
		ShotsOnGoal:        s.ShotsOnGoal,
		Goals:              s.Goals,
		GoalsConceded:      s.GoalsConceded,
		Assists:            s.Assists,
		Saves:              s.Saves,
		TotalPasses:        s.TotalPasses,
		KeyPasses:          s.KeyPasses,
		PassAccuracy:       s.PassAccuracy,
		Tackles:            s.Tackles,
		Blocks:             s.Blocks,
		Interceptions:      s.Interceptions,
		Duels:              s.Duels,
		DuelsWon:           s.DuelsWon,
		DribbleAttempts:    s.DribbleAttempts,
		DribbleSuccesses:   s.DribbleSuccesses,
		DribblesPast:       s.DribblesPast,
		FoulsCommitted:     s.FoulsCommitted,
		FoulsDrawn:         s.FoulsDrawn,
		YellowCards:        s.YellowCards,
		RedCards:           s.RedCards,
		PenaltiesWon:       s.PenaltiesWon,
		PenaltiesCommitted: s.PenaltiesCommitted,
		PenaltiesScored:    s.PenaltiesScored,
		PenaltiesMissed:    s.PenaltiesMissed,
		PenaltiesSaved:     s.PenaltiesSaved,
	}
}

type lineupEntryTableModel struct {
	FixtureID   int64   `db:"fixtureid"`
	TeamID      int64   `db:"teamid"`
	CoachID     *int64  `db:"coachid"`
	FormationID *int64  `db:"formationid"`
	PlayerID    int64   `db:"playerid"`
	Number      *int    `db:"number"`
	PositionID  *int64  `db:"positionid"`
	Grid        *string `db:"grid"`
	Starter     bool    `db:"starter"`
}

func newLineupEntryTableModel(e fixture.LineupEntry) lineupEntryTableModel {
	return lineupEntryTableModel{
		FixtureID:   e.FixtureID,
		TeamID:      e.TeamID,
		CoachID:     e.CoachID,
		FormationID: e.FormationID,
		PlayerID:    e.PlayerID,
		Number:      e.Number,
		PositionID:  e.PositionID,
		Grid:        e.Grid,
		Starter:     e.Starter,
	}
}
