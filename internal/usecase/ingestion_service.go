package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/gislobo/matchvault/internal/domain/fixture"
	"github.com/gislobo/matchvault/internal/domain/warehouse"
	"github.com/gislobo/matchvault/internal/platform/logging"
	"github.com/gislobo/matchvault/internal/resolve"
)

const defaultMarketTimezone = "America/New_York"

const prefetchConcurrency = 4

// IngestionService loads one fixture's worth of provider data into the
// warehouse: the fact row plus events, statistics, and lineups, with
// every reference entity resolved or inserted along the way. Each
// fixture commits in a single transaction, so a failed fixture leaves
// no partial rows behind.
type IngestionService struct {
	warehouse warehouse.Warehouse
	provider  Provider
	resolver  *ResolverService
	marketTZ  *time.Location
	logger    *logging.Logger
}

func NewIngestionService(wh warehouse.Warehouse, provider Provider, resolver *ResolverService, marketTimezone string, logger *logging.Logger) (*IngestionService, error) {
	if wh == nil {
		return nil, fmt.Errorf("%w: warehouse is required", ErrInvalidInput)
	}
	if provider == nil {
		return nil, fmt.Errorf("%w: provider is required", ErrInvalidInput)
	}
	if resolver == nil {
		return nil, fmt.Errorf("%w: resolver is required", ErrInvalidInput)
	}
	if logger == nil {
		logger = logging.Default()
	}

	if marketTimezone == "" {
		marketTimezone = defaultMarketTimezone
	}
	marketTZ, err := time.LoadLocation(resolver.normalizeZone(marketTimezone))
	if err != nil {
		return nil, fmt.Errorf("load market timezone %q: %w", marketTimezone, err)
	}

	return &IngestionService{
		warehouse: wh,
		provider:  provider,
		resolver:  resolver,
		marketTZ:  marketTZ,
		logger:    logger,
	}, nil
}

// IngestFixture fetches the full provider bundle for one fixture and
// loads it. Already-loaded parts are skipped, so re-running a fixture
// fills in whatever an earlier run missed without duplicating rows.
func (s *IngestionService) IngestFixture(ctx context.Context, fixtureExternalID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.IngestFixture")
	defer span.End()

	if fixtureExternalID <= 0 {
		return fmt.Errorf("%w: fixture external id must be greater than zero", ErrInvalidInput)
	}

	bundle, err := s.provider.FixtureBundle(ctx, fixtureExternalID)
	if err != nil {
		return fmt.Errorf("fetch fixture bundle %d: %w", fixtureExternalID, err)
	}

	pre, err := s.prefetchProfiles(ctx, bundle)
	if err != nil {
		return fmt.Errorf("prefetch profiles for fixture %d: %w", fixtureExternalID, err)
	}

	txCtx, journal := withCacheJournal(ctx)
	err = s.warehouse.InTx(txCtx, func(repos warehouse.RepoSet) error {
		return s.loadFixture(txCtx, repos, bundle, pre)
	})
	if err != nil {
		// Ids cached during the transaction point at rows the rollback
		// discarded; drop them so later fixtures resolve afresh.
		journal.evict(ctx, s.resolver.xref)
		return fmt.Errorf("load fixture %d: %w", fixtureExternalID, err)
	}

	s.logger.InfoContext(ctx, "fixture ingested",
		"fixture", fixtureExternalID,
		"events", len(bundle.Events),
		"team_stats", len(bundle.TeamStats),
		"player_stats", len(bundle.PlayerStats),
		"lineups", len(bundle.Lineups))
	return nil
}

// prefetched holds provider profiles fetched ahead of the transaction,
// keeping network calls out of the transaction's lifetime.
type prefetched struct {
	mu      sync.Mutex
	teams   map[int64]ProviderTeam
	coaches map[int64]ProviderPersonProfile
	players map[int64]ProviderPersonProfile
}

// prefetchProfiles fetches profiles for every team, coach, and player
// the bundle references but the warehouse has not seen yet.
func (s *IngestionService) prefetchProfiles(ctx context.Context, bundle ProviderFixtureBundle) (*prefetched, error) {
	repos := s.warehouse.Repos()
	pre := &prefetched{
		teams:   make(map[int64]ProviderTeam),
		coaches: make(map[int64]ProviderPersonProfile),
		players: make(map[int64]ProviderPersonProfile),
	}

	teamIDs := map[int64]struct{}{
		bundle.Fixture.HomeTeam.ExternalID: {},
		bundle.Fixture.AwayTeam.ExternalID: {},
	}
	coachIDs := make(map[int64]struct{})
	playerIDs := make(map[int64]struct{})
	for _, e := range bundle.Events {
		playerIDs[e.PlayerExternalID] = struct{}{}
		if e.AssistExternalID != nil {
			playerIDs[*e.AssistExternalID] = struct{}{}
		}
	}
	for _, ps := range bundle.PlayerStats {
		playerIDs[ps.PlayerExternalID] = struct{}{}
	}
	for _, lineup := range bundle.Lineups {
		if lineup.CoachExternalID != nil {
			coachIDs[*lineup.CoachExternalID] = struct{}{}
		}
		for _, p := range lineup.Starters {
			playerIDs[p.ExternalID] = struct{}{}
		}
		for _, p := range lineup.Substitutes {
			playerIDs[p.ExternalID] = struct{}{}
		}
	}

	// The home team profile doubles as the venue source, so fetch it
	// whenever the fixture's venue is unknown, even if the team itself
	// is already loaded.
	needHomeTeam := false
	if extID := bundle.Fixture.Venue.ExternalID; extID != nil {
		if _, err := repos.Venues.IDByExternalID(ctx, *extID); errors.Is(err, resolve.ErrNotFound) {
			needHomeTeam = true
		}
	}

	p := pool.New().WithMaxGoroutines(prefetchConcurrency).WithContext(ctx)

	for extID := range teamIDs {
		if _, err := repos.Teams.IDByExternalID(ctx, extID); err == nil {
			if extID != bundle.Fixture.HomeTeam.ExternalID || !needHomeTeam {
				continue
			}
		} else if !errors.Is(err, resolve.ErrNotFound) {
			return nil, err
		}
		p.Go(func(ctx context.Context) error {
			profile, err := s.provider.Team(ctx, extID)
			if err != nil {
				return fmt.Errorf("fetch team %d: %w", extID, err)
			}
			pre.mu.Lock()
			pre.teams[extID] = profile
			pre.mu.Unlock()
			return nil
		})
	}

	for extID := range coachIDs {
		if _, err := repos.Coaches.IDByExternalID(ctx, extID); err == nil {
			continue
		} else if !errors.Is(err, resolve.ErrNotFound) {
			return nil, err
		}
		p.Go(func(ctx context.Context) error {
			profile, err := s.provider.Coach(ctx, extID)
			if err != nil {
				return fmt.Errorf("fetch coach %d: %w", extID, err)
			}
			pre.mu.Lock()
			pre.coaches[extID] = profile
			pre.mu.Unlock()
			return nil
		})
	}

	for extID := range playerIDs {
		if _, err := repos.Players.IDByExternalID(ctx, extID); err == nil {
			continue
		} else if !errors.Is(err, resolve.ErrNotFound) {
			return nil, err
		}
		p.Go(func(ctx context.Context) error {
			profile, err := s.provider.PlayerProfile(ctx, extID)
			if err != nil {
				return fmt.Errorf("fetch player %d: %w", extID, err)
			}
			pre.mu.Lock()
			pre.players[extID] = profile
			pre.mu.Unlock()
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}
	return pre, nil
}

func (pre *prefetched) teamProfile(s *IngestionService, extID int64) func(context.Context) (ProviderTeam, error) {
	return func(ctx context.Context) (ProviderTeam, error) {
		pre.mu.Lock()
		profile, ok := pre.teams[extID]
		pre.mu.Unlock()
		if ok {
			return profile, nil
		}
		return s.provider.Team(ctx, extID)
	}
}

func (pre *prefetched) coachProfile(s *IngestionService, extID int64) func(context.Context) (ProviderPersonProfile, error) {
	return func(ctx context.Context) (ProviderPersonProfile, error) {
		pre.mu.Lock()
		profile, ok := pre.coaches[extID]
		pre.mu.Unlock()
		if ok {
			return profile, nil
		}
		return s.provider.Coach(ctx, extID)
	}
}

func (pre *prefetched) playerProfile(s *IngestionService, extID int64) func(context.Context) (ProviderPersonProfile, error) {
	return func(ctx context.Context) (ProviderPersonProfile, error) {
		pre.mu.Lock()
		profile, ok := pre.players[extID]
		pre.mu.Unlock()
		if ok {
			return profile, nil
		}
		return s.provider.PlayerProfile(ctx, extID)
	}
}

func (s *IngestionService) loadFixture(ctx context.Context, repos warehouse.RepoSet, bundle ProviderFixtureBundle, pre *prefetched) error {
	f := bundle.Fixture

	refereeID, err := s.resolver.RefereeID(ctx, repos, f.Referee)
	if err != nil {
		return err
	}
	venueID, err := s.resolver.VenueID(ctx, repos, f.Venue, pre.teamProfile(s, f.HomeTeam.ExternalID))
	if err != nil {
		return err
	}
	leagueID, err := s.resolver.LeagueID(ctx, repos, f.LeagueExternalID, f.Round)
	if err != nil {
		return err
	}
	homeTeamID, err := s.resolver.TeamID(ctx, repos, f.HomeTeam.ExternalID, pre.teamProfile(s, f.HomeTeam.ExternalID))
	if err != nil {
		return err
	}
	awayTeamID, err := s.resolver.TeamID(ctx, repos, f.AwayTeam.ExternalID, pre.teamProfile(s, f.AwayTeam.ExternalID))
	if err != nil {
		return err
	}

	fixtureID, err := repos.Fixtures.IDByExternalID(ctx, f.ExternalID)
	switch {
	case err == nil:
		s.logger.DebugContext(ctx, "fixture row already loaded", "fixture", f.ExternalID)
	case errors.Is(err, resolve.ErrNotFound):
		fixtureID, err = s.insertFixture(ctx, repos, f, refereeID, venueID, leagueID, homeTeamID, awayTeamID)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("look up fixture %d: %w", f.ExternalID, err)
	}

	if err := s.loadEvents(ctx, repos, fixtureID, bundle.Events, pre); err != nil {
		return err
	}
	if err := s.loadTeamStatistics(ctx, repos, fixtureID, bundle.TeamStats, pre); err != nil {
		return err
	}
	if err := s.loadPlayerStatistics(ctx, repos, fixtureID, bundle.PlayerStats, pre); err != nil {
		return err
	}
	return s.loadLineups(ctx, repos, fixtureID, bundle.Lineups, pre)
}

func (s *IngestionService) insertFixture(ctx context.Context, repos warehouse.RepoSet, f ProviderFixture, refereeID *int64, venueID, leagueID, homeTeamID, awayTeamID int64) (int64, error) {
	localKickoff, err := s.localKickoff(ctx, repos, f.KickoffUTC, venueID)
	if err != nil {
		return 0, err
	}

	var statusID *int64
	if f.Status.Elapsed != nil {
		statusID = fixture.StatusID(f.Status.Short, *f.Status.Elapsed, f.Status.Extra)
	}
	if statusID == nil {
		s.logger.WarnContext(ctx, "fixture status not recognized as final, storing null status",
			"fixture", f.ExternalID, "status", f.Status.Short)
	}

	var winnerTeamID *int64
	switch {
	case f.HomeTeam.Winner != nil && *f.HomeTeam.Winner:
		winnerTeamID = &homeTeamID
	case f.AwayTeam.Winner != nil && *f.AwayTeam.Winner:
		winnerTeamID = &awayTeamID
	}

	id, err := repos.Fixtures.Insert(ctx, fixture.Fixture{
		ExternalID:    f.ExternalID,
		RefereeID:     refereeID,
		UTCKickoff:    f.KickoffUTC,
		LocalKickoff:  localKickoff,
		MarketKickoff: f.KickoffUTC.In(s.marketTZ),
		VenueID:       venueID,
		LeagueID:      leagueID,
		HomeTeamID:    homeTeamID,
		AwayTeamID:    awayTeamID,
		StatusID:      statusID,
		WinnerTeamID:  winnerTeamID,
		HomeGoals:     f.HomeGoals,
		AwayGoals:     f.AwayGoals,
		HalftimeHome:  f.Score.HalftimeHome,
		HalftimeAway:  f.Score.HalftimeAway,
		FulltimeHome:  f.Score.FulltimeHome,
		FulltimeAway:  f.Score.FulltimeAway,
		ExtratimeHome: f.Score.ExtratimeHome,
		ExtratimeAway: f.Score.ExtratimeAway,
		PenaltyHome:   f.Score.PenaltyHome,
		PenaltyAway:   f.Score.PenaltyAway,
	})
	if err == nil {
		return id, nil
	}
	if errors.Is(err, resolve.ErrConflict) {
		return repos.Fixtures.IDByExternalID(ctx, f.ExternalID)
	}
	return 0, fmt.Errorf("insert fixture %d: %w", f.ExternalID, err)
}

// localKickoff converts the UTC kickoff into the venue's wall-clock
// time. A venue without a stored zone keeps UTC.
func (s *IngestionService) localKickoff(ctx context.Context, repos warehouse.RepoSet, kickoffUTC time.Time, venueID int64) (time.Time, error) {
	zone, err := repos.Venues.Timezone(ctx, venueID)
	if err != nil {
		if errors.Is(err, resolve.ErrNotFound) {
			return kickoffUTC, nil
		}
		return time.Time{}, fmt.Errorf("look up venue %d timezone: %w", venueID, err)
	}
	if zone == "" {
		return kickoffUTC, nil
	}

	loc, err := time.LoadLocation(s.resolver.normalizeZone(zone))
	if err != nil {
		s.logger.WarnContext(ctx, "venue timezone not loadable, keeping UTC kickoff",
			"venue", venueID, "timezone", zone, "error", err)
		return kickoffUTC, nil
	}
	return kickoffUTC.In(loc), nil
}

func (s *IngestionService) loadEvents(ctx context.Context, repos warehouse.RepoSet, fixtureID int64, events []ProviderEvent, pre *prefetched) error {
	if len(events) == 0 {
		return nil
	}
	loaded, err := repos.Fixtures.HasEvents(ctx, fixtureID)
	if err != nil {
		return fmt.Errorf("check events: %w", err)
	}
	if loaded {
		return nil
	}

	for _, e := range events {
		eventTypeID, err := s.resolver.EventTypeID(ctx, repos, e.Type, e.Detail)
		if err != nil {
			return err
		}
		teamID, err := s.resolver.TeamID(ctx, repos, e.TeamExternalID, pre.teamProfile(s, e.TeamExternalID))
		if err != nil {
			return err
		}
		playerID, err := s.resolver.PlayerID(ctx, repos, e.PlayerExternalID, pre.playerProfile(s, e.PlayerExternalID))
		if err != nil {
			return err
		}
		var assistPlayerID *int64
		if e.AssistExternalID != nil {
			id, err := s.resolver.PlayerID(ctx, repos, *e.AssistExternalID, pre.playerProfile(s, *e.AssistExternalID))
			if err != nil {
				return err
			}
			assistPlayerID = &id
		}

		if _, err := repos.Fixtures.InsertEvent(ctx, fixture.Event{
			FixtureID:      fixtureID,
			EventTypeID:    eventTypeID,
			Comments:       e.Comments,
			Elapsed:        e.Elapsed,
			ExtraElapsed:   e.ExtraElapsed,
			TeamID:         teamID,
			PlayerID:       playerID,
			AssistPlayerID: assistPlayerID,
		}); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}
	return nil
}

func (s *IngestionService) loadTeamStatistics(ctx context.Context, repos warehouse.RepoSet, fixtureID int64, stats []ProviderTeamStats, pre *prefetched) error {
	if len(stats) == 0 {
		return nil
	}
	loaded, err := repos.Fixtures.HasTeamStatistics(ctx, fixtureID)
	if err != nil {
		return fmt.Errorf("check team statistics: %w", err)
	}
	if loaded {
		return nil
	}

	for _, st := range stats {
		teamID, err := s.resolver.TeamID(ctx, repos, st.TeamExternalID, pre.teamProfile(s, st.TeamExternalID))
		if err != nil {
			return err
		}
		if _, err := repos.Fixtures.InsertTeamStatistics(ctx, fixture.TeamStatistics{
			FixtureID:       fixtureID,
			TeamID:          teamID,
			ShotsOnGoal:     st.ShotsOnGoal,
			ShotsOffGoal:    st.ShotsOffGoal,
			TotalShots:      st.TotalShots,
			BlockedShots:    st.BlockedShots,
			GoalkeeperSaves: st.GoalkeeperSaves,
			ShotsInsideBox:  st.ShotsInsideBox,
			ShotsOutsideBox: st.ShotsOutsideBox,
			CornerKicks:     st.CornerKicks,
			Offsides:        st.Offsides,
			BallPossession:  st.BallPossession,
			TotalPasses:     st.TotalPasses,
			PassesAccurate:  st.PassesAccurate,
			Fouls:           st.Fouls,
			YellowCards:     st.YellowCards,
			RedCards:        st.RedCards,
		}); err != nil {
			return fmt.Errorf("insert team statistics: %w", err)
		}
	}
	return nil
}

func (s *IngestionService) loadPlayerStatistics(ctx context.Context, repos warehouse.RepoSet, fixtureID int64, stats []ProviderPlayerStats, pre *prefetched) error {
	if len(stats) == 0 {
		return nil
	}
	loaded, err := repos.Fixtures.HasPlayerStatistics(ctx, fixtureID)
	if err != nil {
		return fmt.Errorf("check player statistics: %w", err)
	}
	if loaded {
		return nil
	}

	for _, st := range stats {
		teamID, err := s.resolver.TeamID(ctx, repos, st.TeamExternalID, pre.teamProfile(s, st.TeamExternalID))
		if err != nil {
			return err
		}
		playerID, err := s.resolver.PlayerID(ctx, repos, st.PlayerExternalID, pre.playerProfile(s, st.PlayerExternalID))
		if err != nil {
			return err
		}
		positionID, err := s.resolver.PositionID(ctx, repos, st.Position)
		if err != nil {
			return err
		}

		if _, err := repos.Fixtures.InsertPlayerStatistics(ctx, fixture.PlayerStatistics{
			FixtureID:          fixtureID,
			TeamID:             teamID,
			PlayerID:           playerID,
			Minutes:            st.Minutes,
			Number:             st.Number,
			PositionID:         positionID,
			Rating:             st.Rating,
			Captain:            st.Captain,
			Substitute:         st.Substitute,
			Offsides:           st.Offsides,
			TotalShots:         st.TotalShots,
			ShotsOnGoal:        st.ShotsOnGoal,
			Goals:              st.Goals,
			GoalsConceded:      st.GoalsConceded,
			Assists:            st.Assists,
			Saves:              st.Saves,
			TotalPasses:        st.TotalPasses,
			KeyPasses:          st.KeyPasses,
			PassAccuracy:       st.PassAccuracy,
			Tackles:            st.Tackles,
			Blocks:             st.Blocks,
			Interceptions:      st.Interceptions,
			Duels:              st.Duels,
			DuelsWon:           st.DuelsWon,
			DribbleAttempts:    st.DribbleAttempts,
			DribbleSuccesses:   st.DribbleSuccesses,
			DribblesPast:       st.DribblesPast,
			FoulsCommitted:     st.FoulsCommitted,
			FoulsDrawn:         st.FoulsDrawn,
			YellowCards:        st.YellowCards,
			RedCards:           st.RedCards,
			PenaltiesWon:       st.PenaltiesWon,
			PenaltiesCommitted: st.PenaltiesCommitted,
			PenaltiesScored:    st.PenaltiesScored,
			PenaltiesMissed:    st.PenaltiesMissed,
			PenaltiesSaved:     st.PenaltiesSaved,
		}); err != nil {
			return fmt.Errorf("insert player statistics: %w", err)
		}
	}
	return nil
}

func (s *IngestionService) loadLineups(ctx context.Context, repos warehouse.RepoSet, fixtureID int64, lineups []ProviderLineup, pre *prefetched) error {
	if len(lineups) == 0 {
		return nil
	}
	loaded, err := repos.Fixtures.HasLineups(ctx, fixtureID)
	if err != nil {
		return fmt.Errorf("check lineups: %w", err)
	}
	if loaded {
		return nil
	}

	for _, lineup := range lineups {
		teamID, err := s.resolver.TeamID(ctx, repos, lineup.TeamExternalID, pre.teamProfile(s, lineup.TeamExternalID))
		if err != nil {
			return err
		}
		var coachID *int64
		if lineup.CoachExternalID != nil {
			id, err := s.resolver.CoachID(ctx, repos, *lineup.CoachExternalID, pre.coachProfile(s, *lineup.CoachExternalID))
			if err != nil {
				return err
			}
			coachID = &id
		}
		formationID, err := s.resolver.FormationID(ctx, repos, lineup.Formation)
		if err != nil {
			return err
		}

		insert := func(p ProviderLineupPlayer, starter bool) error {
			playerID, err := s.resolver.PlayerID(ctx, repos, p.ExternalID, pre.playerProfile(s, p.ExternalID))
			if err != nil {
				return err
			}
			positionID, err := s.resolver.PositionID(ctx, repos, p.Position)
			if err != nil {
				return err
			}
			if _, err := repos.Fixtures.InsertLineupEntry(ctx, fixture.LineupEntry{
				FixtureID:   fixtureID,
				TeamID:      teamID,
				CoachID:     coachID,
				FormationID: formationID,
				PlayerID:    playerID,
				Number:      p.Number,
				PositionID:  positionID,
				Grid:        p.Grid,
				Starter:     starter,
			}); err != nil {
				return fmt.Errorf("insert lineup entry: %w", err)
			}
			return nil
		}

		for _, p := range lineup.Starters {
			if err := insert(p, true); err != nil {
				return err
			}
		}
		for _, p := range lineup.Substitutes {
			if err := insert(p, false); err != nil {
				return err
			}
		}
	}
	return nil
}

// RepairSubstituteFlags flips the substitute flag on stat rows for
// players who entered through a substitution event but whose sheet
// arrived with the flag unset. In substitution events the assist slot
// names the player coming on. Returns the number of rows flipped.
func (s *IngestionService) RepairSubstituteFlags(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.RepairSubstituteFlags")
	defer span.End()

	repos := s.warehouse.Repos()

	typeIDs, err := repos.EventTypes.IDsByType(ctx, "subst")
	if err != nil {
		return 0, fmt.Errorf("list substitution event types: %w", err)
	}
	if len(typeIDs) == 0 {
		return 0, nil
	}

	events, err := repos.Fixtures.EventsByTypeIDs(ctx, typeIDs)
	if err != nil {
		return 0, fmt.Errorf("list substitution events: %w", err)
	}

	flipped := 0
	for _, e := range events {
		if e.AssistPlayerID == nil {
			continue
		}
		err := repos.Fixtures.MarkSubstitute(ctx, e.FixtureID, *e.AssistPlayerID, true)
		if err != nil {
			if errors.Is(err, resolve.ErrNotFound) {
				s.logger.WarnContext(ctx, "substitution event without a matching stat row",
					"fixture", e.FixtureID, "player", *e.AssistPlayerID)
				continue
			}
			return flipped, fmt.Errorf("mark substitute: %w", err)
		}
		flipped++
	}

	s.logger.InfoContext(ctx, "substitute flags repaired", "events", len(events), "flipped", flipped)
	return flipped, nil
}
