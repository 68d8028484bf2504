package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gislobo/matchvault/internal/domain/venue"
	"github.com/gislobo/matchvault/internal/infrastructure/repository/memory"
	"github.com/gislobo/matchvault/internal/resolve"
)

type stubProvider struct {
	bundle  ProviderFixtureBundle
	teams   map[int64]ProviderTeam
	coaches map[int64]ProviderPersonProfile
	players map[int64]ProviderPersonProfile
}

func (p *stubProvider) FixtureBundle(_ context.Context, externalID int64) (ProviderFixtureBundle, error) {
	if externalID != p.bundle.Fixture.ExternalID {
		return ProviderFixtureBundle{}, fmt.Errorf("unknown fixture %d", externalID)
	}
	return p.bundle, nil
}

func (p *stubProvider) Team(_ context.Context, externalID int64) (ProviderTeam, error) {
	team, ok := p.teams[externalID]
	if !ok {
		return ProviderTeam{}, fmt.Errorf("unknown team %d", externalID)
	}
	return team, nil
}

func (p *stubProvider) Coach(_ context.Context, externalID int64) (ProviderPersonProfile, error) {
	coach, ok := p.coaches[externalID]
	if !ok {
		return ProviderPersonProfile{}, fmt.Errorf("unknown coach %d", externalID)
	}
	return coach, nil
}

func (p *stubProvider) PlayerProfile(_ context.Context, externalID int64) (ProviderPersonProfile, error) {
	player, ok := p.players[externalID]
	if !ok {
		return ProviderPersonProfile{}, fmt.Errorf("unknown player %d", externalID)
	}
	return player, nil
}

func intp(v int) *int             { return &v }
func int64p(v int64) *int64       { return &v }
func boolp(v bool) *bool          { return &v }
func float64p(v float64) *float64 { return &v }

func personProfile(externalID int64, first, last string) ProviderPersonProfile {
	return ProviderPersonProfile{
		ExternalID:   externalID,
		FirstName:    &first,
		LastName:     &last,
		Nationality:  strptr("United States"),
		BirthCountry: strptr("United States"),
	}
}

func strptr(v string) *string { return &v }

func newTestProvider() *stubProvider {
	return &stubProvider{
		bundle: ProviderFixtureBundle{
			Fixture: ProviderFixture{
				ExternalID: 147926,
				Referee:    "John A. Smith, England",
				KickoffUTC: time.Date(2019, 3, 3, 20, 0, 0, 0, time.UTC),
				Venue:      ProviderVenueRef{Name: "Mercedes-Benz Stadium", City: "Atlanta, Georgia"},
				Status:     ProviderStatus{Short: "FT", Elapsed: intp(90)},

				LeagueExternalID: 253,
				Round:            "Regular Season - 1",
				HomeTeam:         ProviderTeamRef{ExternalID: 1608, Name: "Atlanta United FC"},
				AwayTeam:         ProviderTeamRef{ExternalID: 1615, Name: "FC Cincinnati"},
				HomeGoals:        intp(1),
				AwayGoals:        intp(1),
				Score: ProviderScore{
					HalftimeHome: intp(0), HalftimeAway: intp(1),
					FulltimeHome: intp(1), FulltimeAway: intp(1),
				},
			},
			Events: []ProviderEvent{
				{
					Type: "Goal", Detail: "Normal Goal", Elapsed: intp(51),
					TeamExternalID: 1615, PlayerExternalID: 2289, AssistExternalID: int64p(2290),
				},
				{
					Type: "subst", Detail: "Substitution 1", Elapsed: intp(64),
					TeamExternalID: 1608, PlayerExternalID: 2057, AssistExternalID: int64p(2061),
				},
			},
			TeamStats: []ProviderTeamStats{
				{TeamExternalID: 1608, ShotsOnGoal: intp(5), BallPossession: float64p(61)},
				{TeamExternalID: 1615, ShotsOnGoal: intp(3), BallPossession: float64p(39)},
			},
			PlayerStats: []ProviderPlayerStats{
				{
					TeamExternalID: 1608, PlayerExternalID: 2057, PlayerName: "E. Remedi",
					Minutes: intp(64), Position: "M", Rating: float64p(7.2), Substitute: boolp(false),
				},
				{
					TeamExternalID: 1608, PlayerExternalID: 2061, PlayerName: "B. Shea",
					Minutes: intp(26), Position: "D", Substitute: boolp(false),
				},
			},
			Lineups: []ProviderLineup{
				{
					TeamExternalID:  1608,
					CoachExternalID: int64p(1564),
					Formation:       "3-4-3",
					Starters: []ProviderLineupPlayer{
						{ExternalID: 2057, Name: "E. Remedi", Number: intp(11), Position: "M", Grid: strptr("3:2")},
					},
					Substitutes: []ProviderLineupPlayer{
						{ExternalID: 2061, Name: "B. Shea", Number: intp(20), Position: "D"},
					},
				},
			},
		},
		teams: map[int64]ProviderTeam{
			1608: {ExternalID: 1608, Name: "Atlanta United FC", Country: "United States", Founded: intp(2014)},
			1615: {ExternalID: 1615, Name: "FC Cincinnati", Country: "United States", Founded: intp(2015)},
		},
		coaches: map[int64]ProviderPersonProfile{
			1564: personProfile(1564, "Frank", "de Boer"),
		},
		players: map[int64]ProviderPersonProfile{
			2057: personProfile(2057, "Eric", "Remedi"),
			2061: personProfile(2061, "Brek", "Shea"),
			2289: personProfile(2289, "Leonardo", "Garza"),
			2290: personProfile(2290, "Roland", "Waston"),
		},
	}
}

func newTestIngestion(t *testing.T, wh *memory.Warehouse, provider Provider) *IngestionService {
	t.Helper()

	resolver := NewResolverService(nil, resolve.Overrides{}, nil)
	svc, err := NewIngestionService(wh, provider, resolver, "America/New_York", nil)
	if err != nil {
		t.Fatalf("NewIngestionService returned error: %v", err)
	}
	return svc
}

func seedVenue(t *testing.T, wh *memory.Warehouse) int64 {
	t.Helper()

	zone := "America/New_York"
	id, err := wh.Repos().Venues.Insert(t.Context(), venue.Venue{Name: "Mercedes-Benz Stadium", Timezone: &zone})
	if err != nil {
		t.Fatalf("seed venue: %v", err)
	}
	return id
}

func TestIngestionService_IngestFixture(t *testing.T) {
	wh := memory.NewSeededWarehouse()
	venueID := seedVenue(t, wh)
	svc := newTestIngestion(t, wh, newTestProvider())

	if err := svc.IngestFixture(t.Context(), 147926); err != nil {
		t.Fatalf("IngestFixture returned error: %v", err)
	}

	fixtures := wh.Repos().Fixtures.(*memory.FixtureRepository)

	rows := fixtures.Fixtures()
	if len(rows) != 1 {
		t.Fatalf("fixture rows = %d, want 1", len(rows))
	}
	f := rows[0]
	if f.ExternalID != 147926 {
		t.Fatalf("fixture external id = %d, want 147926", f.ExternalID)
	}
	if f.VenueID != venueID {
		t.Fatalf("fixture venue = %d, want %d", f.VenueID, venueID)
	}
	if f.LeagueID != 1 {
		t.Fatalf("fixture league = %d, want 1", f.LeagueID)
	}
	if f.RefereeID == nil {
		t.Fatal("fixture referee id is nil")
	}
	if f.StatusID == nil || *f.StatusID != 1 {
		t.Fatalf("fixture status = %v, want 1", f.StatusID)
	}
	if f.WinnerTeamID != nil {
		t.Fatalf("fixture winner = %v, want nil for a draw", f.WinnerTeamID)
	}
	if !f.UTCKickoff.Equal(time.Date(2019, 3, 3, 20, 0, 0, 0, time.UTC)) {
		t.Fatalf("utc kickoff = %v", f.UTCKickoff)
	}
	if f.LocalKickoff.Hour() != 15 {
		t.Fatalf("local kickoff hour = %d, want 15 (Eastern wall time)", f.LocalKickoff.Hour())
	}
	if f.MarketKickoff.Hour() != 15 {
		t.Fatalf("market kickoff hour = %d, want 15", f.MarketKickoff.Hour())
	}

	events := fixtures.Events()
	if len(events) != 2 {
		t.Fatalf("event rows = %d, want 2", len(events))
	}
	if events[0].AssistPlayerID == nil {
		t.Fatal("goal event lost its assist")
	}

	hasTeamStats, err := fixtures.HasTeamStatistics(t.Context(), f.ID)
	if err != nil || !hasTeamStats {
		t.Fatalf("HasTeamStatistics = %v, %v; want true", hasTeamStats, err)
	}

	playerStats := fixtures.PlayerStatistics()
	if len(playerStats) != 2 {
		t.Fatalf("player stat rows = %d, want 2", len(playerStats))
	}
	for _, ps := range playerStats {
		if ps.PositionID == nil {
			t.Fatalf("player stat row %d has no position", ps.PlayerID)
		}
	}

	lineups := fixtures.Lineups()
	if len(lineups) != 2 {
		t.Fatalf("lineup rows = %d, want 2", len(lineups))
	}
	starters := 0
	for _, entry := range lineups {
		if entry.CoachID == nil || entry.FormationID == nil {
			t.Fatalf("lineup entry %d missing coach or formation", entry.PlayerID)
		}
		if entry.Starter {
			starters++
		}
	}
	if starters != 1 {
		t.Fatalf("starters = %d, want 1", starters)
	}
}

func TestIngestionService_IngestFixtureIsIdempotent(t *testing.T) {
	wh := memory.NewSeededWarehouse()
	seedVenue(t, wh)
	svc := newTestIngestion(t, wh, newTestProvider())

	if err := svc.IngestFixture(t.Context(), 147926); err != nil {
		t.Fatalf("first IngestFixture returned error: %v", err)
	}
	if err := svc.IngestFixture(t.Context(), 147926); err != nil {
		t.Fatalf("second IngestFixture returned error: %v", err)
	}

	fixtures := wh.Repos().Fixtures.(*memory.FixtureRepository)
	if got := len(fixtures.Fixtures()); got != 1 {
		t.Fatalf("fixture rows after rerun = %d, want 1", got)
	}
	if got := len(fixtures.Events()); got != 2 {
		t.Fatalf("event rows after rerun = %d, want 2", got)
	}
	if got := len(fixtures.PlayerStatistics()); got != 2 {
		t.Fatalf("player stat rows after rerun = %d, want 2", got)
	}
	if got := len(fixtures.Lineups()); got != 2 {
		t.Fatalf("lineup rows after rerun = %d, want 2", got)
	}
}

func TestIngestionService_IngestFixtureFailureEvictsResolvedIDs(t *testing.T) {
	wh := memory.NewSeededWarehouse()
	seedVenue(t, wh)
	provider := newTestProvider()
	provider.bundle.Events[0].Type = ""
	svc := newTestIngestion(t, wh, provider)

	if err := svc.IngestFixture(t.Context(), 147926); err == nil {
		t.Fatal("IngestFixture with a broken event returned nil error")
	}

	// Ids resolved before the failure must not outlive the transaction,
	// or the next fixture sharing this referee or team would reference
	// rows a rollback discarded.
	for _, key := range []string{"referee:john a. smith", "team:1608", "team:1615"} {
		if _, ok := svc.resolver.xref.Get(t.Context(), key); ok {
			t.Fatalf("key %q still cached after a failed load", key)
		}
	}

	provider.bundle.Events[0].Type = "Goal"
	if err := svc.IngestFixture(t.Context(), 147926); err != nil {
		t.Fatalf("IngestFixture after repair returned error: %v", err)
	}

	fixtures := wh.Repos().Fixtures.(*memory.FixtureRepository)
	if got := len(fixtures.Events()); got != 2 {
		t.Fatalf("event rows after rerun = %d, want 2", got)
	}
}

func TestIngestionService_IngestFixtureRejectsBadID(t *testing.T) {
	wh := memory.NewSeededWarehouse()
	svc := newTestIngestion(t, wh, newTestProvider())

	err := svc.IngestFixture(t.Context(), 0)
	if err == nil {
		t.Fatal("IngestFixture(0) returned nil error")
	}
}

func TestIngestionService_RepairSubstituteFlags(t *testing.T) {
	wh := memory.NewSeededWarehouse()
	seedVenue(t, wh)
	svc := newTestIngestion(t, wh, newTestProvider())

	if err := svc.IngestFixture(t.Context(), 147926); err != nil {
		t.Fatalf("IngestFixture returned error: %v", err)
	}

	flipped, err := svc.RepairSubstituteFlags(t.Context())
	if err != nil {
		t.Fatalf("RepairSubstituteFlags returned error: %v", err)
	}
	if flipped != 1 {
		t.Fatalf("flipped = %d, want 1", flipped)
	}

	fixtures := wh.Repos().Fixtures.(*memory.FixtureRepository)
	repos := wh.Repos()

	sheaID, err := repos.Players.IDByExternalID(t.Context(), 2061)
	if err != nil {
		t.Fatalf("look up substituted player: %v", err)
	}
	remediID, err := repos.Players.IDByExternalID(t.Context(), 2057)
	if err != nil {
		t.Fatalf("look up starter: %v", err)
	}

	for _, ps := range fixtures.PlayerStatistics() {
		switch ps.PlayerID {
		case sheaID:
			if ps.Substitute == nil || !*ps.Substitute {
				t.Fatalf("incoming player's substitute flag = %v, want true", ps.Substitute)
			}
		case remediID:
			if ps.Substitute != nil && *ps.Substitute {
				t.Fatal("starter's substitute flag flipped")
			}
		}
	}
}
