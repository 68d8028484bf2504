package apifootball

// Wire shapes for the v3 API. Every endpoint wraps its payload in the
// same envelope; results counts the response entries.

type envelopeMeta struct {
	Results int `json:"results"`
}

type fixturesEnvelope struct {
	envelopeMeta
	Response []fixtureItem `json:"response"`
}

type fixtureItem struct {
	Fixture fixtureHeader `json:"fixture"`
	League  leagueBlock   `json:"league"`
	Teams   teamsBlock    `json:"teams"`
	Goals   goalsBlock    `json:"goals"`
	Score   scoreBlock    `json:"score"`
}

type fixtureHeader struct {
	ID       int64       `json:"id"`
	Referee  string      `json:"referee"`
	Date     string      `json:"date"`
	Timezone string      `json:"timezone"`
	Venue    venueBlock  `json:"venue"`
	Status   statusBlock `json:"status"`
}

type venueBlock struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

type statusBlock struct {
	Long    string `json:"long"`
	Short   string `json:"short"`
	Elapsed *int   `json:"elapsed"`
	Extra   *int   `json:"extra"`
}

type leagueBlock struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Season int    `json:"season"`
	Round  string `json:"round"`
}

type teamsBlock struct {
	Home teamRef `json:"home"`
	Away teamRef `json:"away"`
}

type teamRef struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Winner *bool  `json:"winner"`
}

type goalsBlock struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type scoreBlock struct {
	Halftime  goalsBlock `json:"halftime"`
	Fulltime  goalsBlock `json:"fulltime"`
	Extratime goalsBlock `json:"extratime"`
	Penalty   goalsBlock `json:"penalty"`
}

type eventsEnvelope struct {
	envelopeMeta
	Response []eventItem `json:"response"`
}

type eventItem struct {
	Time     eventTime `json:"time"`
	Team     teamRef   `json:"team"`
	Player   personRef `json:"player"`
	Assist   personRef `json:"assist"`
	Type     string    `json:"type"`
	Detail   string    `json:"detail"`
	Comments *string   `json:"comments"`
}

type eventTime struct {
	Elapsed *int `json:"elapsed"`
	Extra   *int `json:"extra"`
}

type personRef struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
}

type statisticsEnvelope struct {
	envelopeMeta
	Response []teamStatisticsItem `json:"response"`
}

type teamStatisticsItem struct {
	Team       teamRef     `json:"team"`
	Statistics []statEntry `json:"statistics"`
}

// statEntry values arrive as int, percent string, or null.
type statEntry struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

type playersEnvelope struct {
	envelopeMeta
	Response []teamPlayersItem `json:"response"`
}

type teamPlayersItem struct {
	Team    teamRef          `json:"team"`
	Players []playerStatItem `json:"players"`
}

type playerStatItem struct {
	Player     personRef         `json:"player"`
	Statistics []playerStatSheet `json:"statistics"`
}

type playerStatSheet struct {
	Games     gamesBlock     `json:"games"`
	Offsides  *int           `json:"offsides"`
	Shots     shotsBlock     `json:"shots"`
	Goals     playerGoals    `json:"goals"`
	Passes    passesBlock    `json:"passes"`
	Tackles   tacklesBlock   `json:"tackles"`
	Duels     duelsBlock     `json:"duels"`
	Dribbles  dribblesBlock  `json:"dribbles"`
	Fouls     foulsBlock     `json:"fouls"`
	Cards     cardsBlock     `json:"cards"`
	Penalties penaltiesBlock `json:"penalty"`
}

type gamesBlock struct {
	Minutes    *int    `json:"minutes"`
	Number     *int    `json:"number"`
	Position   string  `json:"position"`
	Rating     *string `json:"rating"`
	Captain    *bool   `json:"captain"`
	Substitute *bool   `json:"substitute"`
}

type shotsBlock struct {
	Total *int `json:"total"`
	On    *int `json:"on"`
}

type playerGoals struct {
	Total    *int `json:"total"`
	Conceded *int `json:"conceded"`
	Assists  *int `json:"assists"`
	Saves    *int `json:"saves"`
}

type passesBlock struct {
	Total    *int    `json:"total"`
	Key      *int    `json:"key"`
	Accuracy *string `json:"accuracy"`
}

type tacklesBlock struct {
	Total         *int `json:"total"`
	Blocks        *int `json:"blocks"`
	Interceptions *int `json:"interceptions"`
}

type duelsBlock struct {
	Total *int `json:"total"`
	Won   *int `json:"won"`
}

type dribblesBlock struct {
	Attempts *int `json:"attempts"`
	Success  *int `json:"success"`
	Past     *int `json:"past"`
}

type foulsBlock struct {
	Drawn     *int `json:"drawn"`
	Committed *int `json:"committed"`
}

type cardsBlock struct {
	Yellow *int `json:"yellow"`
	Red    *int `json:"red"`
}

// The provider spells "commited" with one t on this endpoint.
type penaltiesBlock struct {
	Won       *int `json:"won"`
	Committed *int `json:"commited"`
	Scored    *int `json:"scored"`
	Missed    *int `json:"missed"`
	Saved     *int `json:"saved"`
}

type lineupsEnvelope struct {
	envelopeMeta
	Response []lineupItem `json:"response"`
}

type lineupItem struct {
	Team        teamRef          `json:"team"`
	Coach       personRef        `json:"coach"`
	Formation   string           `json:"formation"`
	StartXI     []lineupSlotItem `json:"startXI"`
	Substitutes []lineupSlotItem `json:"substitutes"`
}

type lineupSlotItem struct {
	Player lineupPlayer `json:"player"`
}

type lineupPlayer struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Number *int    `json:"number"`
	Pos    string  `json:"pos"`
	Grid   *string `json:"grid"`
}

type teamsEnvelope struct {
	envelopeMeta
	Response []teamItem `json:"response"`
}

type teamItem struct {
	Team  teamProfile   `json:"team"`
	Venue teamVenueInfo `json:"venue"`
}

type teamProfile struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Founded *int   `json:"founded"`
}

type teamVenueInfo struct {
	ID       *int64 `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Capacity *int   `json:"capacity"`
	Surface  string `json:"surface"`
}

type coachesEnvelope struct {
	envelopeMeta
	Response []coachItem `json:"response"`
}

type coachItem struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	FirstName   *string    `json:"firstname"`
	LastName    *string    `json:"lastname"`
	Birth       birthBlock `json:"birth"`
	Nationality *string    `json:"nationality"`
}

type birthBlock struct {
	Date    *string `json:"date"`
	Place   *string `json:"place"`
	Country *string `json:"country"`
}

type profilesEnvelope struct {
	envelopeMeta
	Response []profileItem `json:"response"`
}

type profileItem struct {
	Player profileBlock `json:"player"`
}

type profileBlock struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	FirstName   *string    `json:"firstname"`
	LastName    *string    `json:"lastname"`
	Birth       birthBlock `json:"birth"`
	Nationality *string    `json:"nationality"`
	Height      *string    `json:"height"`
	Weight      *string    `json:"weight"`
}
