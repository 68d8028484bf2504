package config

import (
	"testing"
	"time"

	"github.com/gislobo/matchvault/internal/resolve"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APIFOOTBALL_KEY", "test-key")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppEnv != EnvDev {
		t.Fatalf("unexpected AppEnv: %q", cfg.AppEnv)
	}
	if cfg.MarketTimezone != "America/New_York" {
		t.Fatalf("unexpected MarketTimezone: %q", cfg.MarketTimezone)
	}
	if cfg.APIFootballTimeout != 15*time.Second {
		t.Fatalf("unexpected APIFootballTimeout: %s", cfg.APIFootballTimeout)
	}
	if cfg.IngestConcurrency != 2 {
		t.Fatalf("unexpected IngestConcurrency: %d", cfg.IngestConcurrency)
	}
}

func TestLoad_AppEnvValidation(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "invalid")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_RequiresAPIKey(t *testing.T) {
	t.Setenv("APIFOOTBALL_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when APIFOOTBALL_KEY is unset")
	}
}

func TestLoad_LogLevelValidation(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_LOG_LEVEL", "loud")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_LOG_LEVEL")
	}
}

func TestLoad_VenueOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("VENUE_OVERRIDES", `{"Historic Crew Stadium": 9}`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	overrides := cfg.Overrides()
	key, ok := overrides.VenueKey("Historic Crew Stadium")
	if !ok || key != 9 {
		t.Fatalf("VenueKey(Historic Crew Stadium) = %d, %v; want 9, true", key, ok)
	}
	// Built-in defaults survive the merge.
	if _, ok := overrides.VenueKey("Mercedes-Benz Stadium (Atlanta, Georgia)"); !ok {
		t.Fatalf("default venue override lost after merge")
	}
}

func TestLoad_VenueOverridesRejectsBadJSON(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("VENUE_OVERRIDES", `{"Historic Crew Stadium": "nine"}`)

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-numeric venue override")
	}
}

func TestLoad_LeagueRoundOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LEAGUE_ROUND_OVERRIDES", `[{"league": 257, "round": "Final", "id": 2}]`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	overrides := cfg.Overrides()
	key, ok := overrides.LeagueKey(257, "Final")
	if !ok || key != 2 {
		t.Fatalf("LeagueKey(257, Final) = %d, %v; want 2, true", key, ok)
	}
	if _, ok := overrides.LeagueKey(253, "Play-In Round - Finals"); !ok {
		t.Fatalf("default league override lost after merge")
	}
}

func TestLoad_LeagueRoundOverridesValidation(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LEAGUE_ROUND_OVERRIDES", `[{"league": 0, "round": "", "id": 0}]`)

	if _, err := Load(); err == nil {
		t.Fatalf("expected validation error for empty league round override")
	}
}

func TestOverrides_EmptyConfigKeepsDefaults(t *testing.T) {
	var cfg Config
	overrides := cfg.Overrides()

	want := resolve.DefaultOverrides()
	if len(overrides.VenueName) != len(want.VenueName) {
		t.Fatalf("venue overrides = %d entries, want %d", len(overrides.VenueName), len(want.VenueName))
	}
	if len(overrides.LeagueRound) != len(want.LeagueRound) {
		t.Fatalf("league overrides = %d entries, want %d", len(overrides.LeagueRound), len(want.LeagueRound))
	}
}
