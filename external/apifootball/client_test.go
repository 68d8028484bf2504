package apifootball

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gislobo/matchvault/internal/usecase"
)

const fixturePayload = `{
  "results": 1,
  "response": [{
    "fixture": {
      "id": 147926,
      "referee": "John A. Smith, England",
      "date": "2019-03-03T20:00:00+00:00",
      "timezone": "UTC",
      "venue": {"id": null, "name": "Mercedes-Benz Stadium", "city": "Atlanta, Georgia"},
      "status": {"long": "Match Finished", "short": "FT", "elapsed": 90, "extra": null}
    },
    "league": {"id": 253, "name": "Major League Soccer", "season": 2019, "round": "Regular Season - 1"},
    "teams": {
      "home": {"id": 1608, "name": "Atlanta United FC", "winner": null},
      "away": {"id": 1615, "name": "FC Cincinnati", "winner": null}
    },
    "goals": {"home": 1, "away": 1},
    "score": {
      "halftime": {"home": 0, "away": 1},
      "fulltime": {"home": 1, "away": 1},
      "extratime": {"home": null, "away": null},
      "penalty": {"home": null, "away": null}
    }
  }]
}`

const eventsPayload = `{
  "results": 2,
  "response": [
    {
      "time": {"elapsed": 51, "extra": null},
      "team": {"id": 1615, "name": "FC Cincinnati"},
      "player": {"id": 2289, "name": "L. Garza"},
      "assist": {"id": 2290, "name": "R. Waston"},
      "type": "Goal",
      "detail": "Normal Goal",
      "comments": null
    },
    {
      "time": {"elapsed": 64, "extra": null},
      "team": {"id": 1608, "name": "Atlanta United FC"},
      "player": {"id": 2057, "name": "E. Remedi"},
      "assist": {"id": null, "name": null},
      "type": "subst",
      "detail": "Substitution 1",
      "comments": null
    }
  ]
}`

const statisticsPayload = `{
  "results": 1,
  "response": [{
    "team": {"id": 1608, "name": "Atlanta United FC"},
    "statistics": [
      {"type": "Shots on Goal", "value": 5},
      {"type": "Ball Possession", "value": "61%"},
      {"type": "Total passes", "value": 512},
      {"type": "Yellow Cards", "value": null}
    ]
  }]
}`

const playersPayload = `{
  "results": 1,
  "response": [{
    "team": {"id": 1608, "name": "Atlanta United FC"},
    "players": [{
      "player": {"id": 2057, "name": "E. Remedi"},
      "statistics": [{
        "games": {"minutes": 90, "number": 11, "position": "M", "rating": "7.2", "captain": false, "substitute": false},
        "offsides": null,
        "shots": {"total": 2, "on": 1},
        "goals": {"total": null, "conceded": 0, "assists": null, "saves": null},
        "passes": {"total": 53, "key": 1, "accuracy": "79"},
        "tackles": {"total": 3, "blocks": null, "interceptions": 2},
        "duels": {"total": 14, "won": 8},
        "dribbles": {"attempts": 2, "success": 1, "past": null},
        "fouls": {"drawn": 1, "committed": 2},
        "cards": {"yellow": 0, "red": 0},
        "penalty": {"won": null, "commited": 1, "scored": null, "missed": null, "saved": null}
      }]
    }]
  }]
}`

const lineupsPayload = `{
  "results": 1,
  "response": [{
    "team": {"id": 1608, "name": "Atlanta United FC"},
    "coach": {"id": 1564, "name": "F. de Boer"},
    "formation": "3-4-3",
    "startXI": [
      {"player": {"id": 2057, "name": "E. Remedi", "number": 11, "pos": "M", "grid": "3:2"}}
    ],
    "substitutes": [
      {"player": {"id": 2061, "name": "B. Shea", "number": 20, "pos": "D", "grid": null}}
    ]
  }]
}`

func newFixtureServer(t *testing.T, apiKey string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-apisports-key"); got != apiKey {
			t.Errorf("unexpected api key header %q", got)
		}
		switch r.URL.Path {
		case "/fixtures":
			_, _ = w.Write([]byte(fixturePayload))
		case "/fixtures/events":
			_, _ = w.Write([]byte(eventsPayload))
		case "/fixtures/statistics":
			_, _ = w.Write([]byte(statisticsPayload))
		case "/fixtures/players":
			_, _ = w.Write([]byte(playersPayload))
		case "/fixtures/lineups":
			_, _ = w.Write([]byte(lineupsPayload))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestFixtureBundle(t *testing.T) {
	server := newFixtureServer(t, "secret-key")
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, APIKey: "secret-key"})
	bundle, err := client.FixtureBundle(context.Background(), 147926)
	require.NoError(t, err)

	f := bundle.Fixture
	assert.Equal(t, int64(147926), f.ExternalID)
	assert.Equal(t, "John A. Smith, England", f.Referee)
	assert.Equal(t, time.Date(2019, 3, 3, 20, 0, 0, 0, time.UTC), f.KickoffUTC)
	assert.Nil(t, f.Venue.ExternalID)
	assert.Equal(t, "Mercedes-Benz Stadium", f.Venue.Name)
	assert.Equal(t, "FT", f.Status.Short)
	require.NotNil(t, f.Status.Elapsed)
	assert.Equal(t, 90, *f.Status.Elapsed)
	assert.Equal(t, int64(253), f.LeagueExternalID)
	assert.Equal(t, "Regular Season - 1", f.Round)
	require.NotNil(t, f.HomeGoals)
	assert.Equal(t, 1, *f.HomeGoals)

	require.Len(t, bundle.Events, 2)
	goal := bundle.Events[0]
	assert.Equal(t, "Goal", goal.Type)
	assert.Equal(t, int64(2289), goal.PlayerExternalID)
	require.NotNil(t, goal.AssistExternalID)
	assert.Equal(t, int64(2290), *goal.AssistExternalID)
	sub := bundle.Events[1]
	assert.Equal(t, "subst", sub.Type)
	assert.Nil(t, sub.AssistExternalID)

	require.Len(t, bundle.TeamStats, 1)
	stats := bundle.TeamStats[0]
	require.NotNil(t, stats.BallPossession)
	assert.Equal(t, 61.0, *stats.BallPossession)
	require.NotNil(t, stats.ShotsOnGoal)
	assert.Equal(t, 5, *stats.ShotsOnGoal)
	assert.Nil(t, stats.YellowCards)

	require.Len(t, bundle.PlayerStats, 1)
	ps := bundle.PlayerStats[0]
	assert.Equal(t, int64(2057), ps.PlayerExternalID)
	require.NotNil(t, ps.Rating)
	assert.Equal(t, 7.2, *ps.Rating)
	require.NotNil(t, ps.PassAccuracy)
	assert.Equal(t, 79.0, *ps.PassAccuracy)
	require.NotNil(t, ps.PenaltiesCommitted)
	assert.Equal(t, 1, *ps.PenaltiesCommitted)

	require.Len(t, bundle.Lineups, 1)
	lineup := bundle.Lineups[0]
	require.NotNil(t, lineup.CoachExternalID)
	assert.Equal(t, int64(1564), *lineup.CoachExternalID)
	assert.Equal(t, "3-4-3", lineup.Formation)
	require.Len(t, lineup.Starters, 1)
	assert.Equal(t, "3:2", *lineup.Starters[0].Grid)
	require.Len(t, lineup.Substitutes, 1)
}

func TestTeamProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/teams", r.URL.Path)
		_, _ = w.Write([]byte(`{
		  "results": 1,
		  "response": [{
		    "team": {"id": 1608, "name": "Atlanta United FC", "country": "USA", "founded": 2014},
		    "venue": {"id": 1613, "name": "Mercedes-Benz Stadium", "address": "441 Martin Luther King Jr Drive", "city": "Atlanta, Georgia", "capacity": 71000, "surface": "artificial turf"}
		  }]
		}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, APIKey: "k"})
	team, err := client.Team(context.Background(), 1608)
	require.NoError(t, err)

	assert.Equal(t, "Atlanta United FC", team.Name)
	require.NotNil(t, team.Founded)
	assert.Equal(t, 2014, *team.Founded)
	require.NotNil(t, team.Venue.ExternalID)
	assert.Equal(t, int64(1613), *team.Venue.ExternalID)
	assert.Equal(t, "441 Martin Luther King Jr Drive", team.Venue.Address)
}

func TestPlayerProfileMeasurements(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/players/profiles", r.URL.Path)
		require.Equal(t, "2057", r.URL.Query().Get("player"))
		_, _ = w.Write([]byte(`{
		  "results": 1,
		  "response": [{
		    "player": {
		      "id": 2057,
		      "name": "Eric Remedi",
		      "firstname": "Eric",
		      "lastname": "Remedi",
		      "birth": {"date": "1995-04-25", "place": "Saladillo", "country": "Argentina"},
		      "nationality": "Argentina",
		      "height": "174 cm",
		      "weight": "73 kg"
		    }
		  }]
		}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, APIKey: "k"})
	profile, err := client.PlayerProfile(context.Background(), 2057)
	require.NoError(t, err)

	require.NotNil(t, profile.HeightCM)
	assert.Equal(t, 174, *profile.HeightCM)
	require.NotNil(t, profile.WeightKG)
	assert.Equal(t, 73, *profile.WeightKG)
	require.NotNil(t, profile.BirthDate)
	assert.Equal(t, time.Date(1995, 4, 25, 0, 0, 0, 0, time.UTC), *profile.BirthDate)
	require.NotNil(t, profile.BirthCountry)
	assert.Equal(t, "Argentina", *profile.BirthCountry)
}

func TestRetryOnServerError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"results": 1, "response": [{"team": {"id": 1608, "name": "Atlanta United FC", "country": "USA", "founded": 2014}, "venue": {}}]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, APIKey: "k", MaxRetries: 2})
	team, err := client.Team(context.Background(), 1608)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, "Atlanta United FC", team.Name)
}

func TestClientErrorDoesNotResetBreakerWindow(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		switch calls.Add(1) {
		case 2:
			w.WriteHeader(http.StatusForbidden)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, APIKey: "k", FailureThreshold: 2, OpenTimeout: time.Minute})

	// Two server errors with a client error between them: the client
	// error must not clear the failure run, so the second server error
	// opens the circuit.
	for i := 0; i < 3; i++ {
		_, err := client.Team(context.Background(), 1608)
		require.Error(t, err)
	}

	_, err := client.Team(context.Background(), 1608)
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
	assert.Equal(t, int32(3), calls.Load())
}

func TestNonRetryableStatusFailsFast(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, APIKey: "k", MaxRetries: 3})
	_, err := client.Team(context.Background(), 1608)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}
