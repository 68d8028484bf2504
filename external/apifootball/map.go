package apifootball

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gislobo/matchvault/internal/usecase"
)

func mapFixture(item fixtureItem) (usecase.ProviderFixture, error) {
	kickoff, err := parseKickoff(item.Fixture.Date)
	if err != nil {
		return usecase.ProviderFixture{}, fmt.Errorf("parse kickoff %q: %w", item.Fixture.Date, err)
	}

	return usecase.ProviderFixture{
		ExternalID: item.Fixture.ID,
		Referee:    strings.TrimSpace(item.Fixture.Referee),
		KickoffUTC: kickoff.UTC(),
		Venue: usecase.ProviderVenueRef{
			ExternalID: item.Fixture.Venue.ID,
			Name:       strings.TrimSpace(item.Fixture.Venue.Name),
			City:       strings.TrimSpace(item.Fixture.Venue.City),
		},
		Status: usecase.ProviderStatus{
			Short:   strings.TrimSpace(item.Fixture.Status.Short),
			Elapsed: item.Fixture.Status.Elapsed,
			Extra:   item.Fixture.Status.Extra,
		},
		LeagueExternalID: item.League.ID,
		Round:            strings.TrimSpace(item.League.Round),
		HomeTeam: usecase.ProviderTeamRef{
			ExternalID: item.Teams.Home.ID,
			Name:       item.Teams.Home.Name,
			Winner:     item.Teams.Home.Winner,
		},
		AwayTeam: usecase.ProviderTeamRef{
			ExternalID: item.Teams.Away.ID,
			Name:       item.Teams.Away.Name,
			Winner:     item.Teams.Away.Winner,
		},
		HomeGoals: item.Goals.Home,
		AwayGoals: item.Goals.Away,
		Score: usecase.ProviderScore{
			HalftimeHome:  item.Score.Halftime.Home,
			HalftimeAway:  item.Score.Halftime.Away,
			FulltimeHome:  item.Score.Fulltime.Home,
			FulltimeAway:  item.Score.Fulltime.Away,
			ExtratimeHome: item.Score.Extratime.Home,
			ExtratimeAway: item.Score.Extratime.Away,
			PenaltyHome:   item.Score.Penalty.Home,
			PenaltyAway:   item.Score.Penalty.Away,
		},
	}, nil
}

func mapEvents(items []eventItem) []usecase.ProviderEvent {
	out := make([]usecase.ProviderEvent, 0, len(items))
	for _, item := range items {
		if item.Player.ID == nil {
			continue
		}
		out = append(out, usecase.ProviderEvent{
			Type:             item.Type,
			Detail:           item.Detail,
			Comments:         item.Comments,
			Elapsed:          item.Time.Elapsed,
			ExtraElapsed:     item.Time.Extra,
			TeamExternalID:   item.Team.ID,
			PlayerExternalID: *item.Player.ID,
			AssistExternalID: item.Assist.ID,
		})
	}
	return out
}

func mapTeamStats(items []teamStatisticsItem) []usecase.ProviderTeamStats {
	out := make([]usecase.ProviderTeamStats, 0, len(items))
	for _, item := range items {
		stats := usecase.ProviderTeamStats{TeamExternalID: item.Team.ID}
		for _, entry := range item.Statistics {
			switch entry.Type {
			case "Shots on Goal":
				stats.ShotsOnGoal = statInt(entry.Value)
			case "Shots off Goal":
				stats.ShotsOffGoal = statInt(entry.Value)
			case "Total Shots":
				stats.TotalShots = statInt(entry.Value)
			case "Blocked Shots":
				stats.BlockedShots = statInt(entry.Value)
			case "Goalkeeper Saves":
				stats.GoalkeeperSaves = statInt(entry.Value)
			case "Shots insidebox":
				stats.ShotsInsideBox = statInt(entry.Value)
			case "Shots outsidebox":
				stats.ShotsOutsideBox = statInt(entry.Value)
			case "Corner Kicks":
				stats.CornerKicks = statInt(entry.Value)
			case "Offsides":
				stats.Offsides = statInt(entry.Value)
			case "Ball Possession":
				stats.BallPossession = statPercent(entry.Value)
			case "Total passes":
				stats.TotalPasses = statInt(entry.Value)
			case "Passes accurate":
				stats.PassesAccurate = statInt(entry.Value)
			case "Fouls":
				stats.Fouls = statInt(entry.Value)
			case "Yellow Cards":
				stats.YellowCards = statInt(entry.Value)
			case "Red Cards":
				stats.RedCards = statInt(entry.Value)
			}
		}
		out = append(out, stats)
	}
	return out
}

func mapPlayerStats(items []teamPlayersItem) []usecase.ProviderPlayerStats {
	out := make([]usecase.ProviderPlayerStats, 0)
	for _, item := range items {
		for _, ps := range item.Players {
			if ps.Player.ID == nil || len(ps.Statistics) == 0 {
				continue
			}
			sheet := ps.Statistics[0]
			out = append(out, usecase.ProviderPlayerStats{
				TeamExternalID:     item.Team.ID,
				PlayerExternalID:   *ps.Player.ID,
				PlayerName:         ps.Player.Name,
				Minutes:            sheet.Games.Minutes,
				Number:             sheet.Games.Number,
				Position:           sheet.Games.Position,
				Rating:             parseRating(sheet.Games.Rating),
				Captain:            sheet.Games.Captain,
				Substitute:         sheet.Games.Substitute,
				Offsides:           sheet.Offsides,
				TotalShots:         sheet.Shots.Total,
				ShotsOnGoal:        sheet.Shots.On,
				Goals:              sheet.Goals.Total,
				GoalsConceded:      sheet.Goals.Conceded,
				Assists:            sheet.Goals.Assists,
				Saves:              sheet.Goals.Saves,
				TotalPasses:        sheet.Passes.Total,
				KeyPasses:          sheet.Passes.Key,
				PassAccuracy:       parseRating(sheet.Passes.Accuracy),
				Tackles:            sheet.Tackles.Total,
				Blocks:             sheet.Tackles.Blocks,
				Interceptions:      sheet.Tackles.Interceptions,
				Duels:              sheet.Duels.Total,
				DuelsWon:           sheet.Duels.Won,
				DribbleAttempts:    sheet.Dribbles.Attempts,
				DribbleSuccesses:   sheet.Dribbles.Success,
				DribblesPast:       sheet.Dribbles.Past,
				FoulsCommitted:     sheet.Fouls.Committed,
				FoulsDrawn:         sheet.Fouls.Drawn,
				YellowCards:        sheet.Cards.Yellow,
				RedCards:           sheet.Cards.Red,
				PenaltiesWon:       sheet.Penalties.Won,
				PenaltiesCommitted: sheet.Penalties.Committed,
				PenaltiesScored:    sheet.Penalties.Scored,
				PenaltiesMissed:    sheet.Penalties.Missed,
				PenaltiesSaved:     sheet.Penalties.Saved,
			})
		}
	}
	return out
}

func mapLineups(items []lineupItem) []usecase.ProviderLineup {
	out := make([]usecase.ProviderLineup, 0, len(items))
	for _, item := range items {
		out = append(out, usecase.ProviderLineup{
			TeamExternalID:  item.Team.ID,
			CoachExternalID: item.Coach.ID,
			Formation:       strings.TrimSpace(item.Formation),
			Starters:        mapLineupSlots(item.StartXI),
			Substitutes:     mapLineupSlots(item.Substitutes),
		})
	}
	return out
}

func mapLineupSlots(slots []lineupSlotItem) []usecase.ProviderLineupPlayer {
	out := make([]usecase.ProviderLineupPlayer, 0, len(slots))
	for _, slot := range slots {
		if slot.Player.ID <= 0 {
			continue
		}
		out = append(out, usecase.ProviderLineupPlayer{
			ExternalID: slot.Player.ID,
			Name:       slot.Player.Name,
			Number:     slot.Player.Number,
			Position:   slot.Player.Pos,
			Grid:       slot.Player.Grid,
		})
	}
	return out
}

// parseKickoff accepts the provider's RFC3339 kickoff timestamp.
func parseKickoff(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, strings.TrimSpace(value))
}

func parseBirthDate(value *string) *time.Time {
	if value == nil {
		return nil
	}
	parsed, err := time.Parse("2006-01-02", strings.TrimSpace(*value))
	if err != nil {
		return nil
	}
	return &parsed
}

// parseMeasurement strips the unit off values like "183 cm" or "74 kg".
func parseMeasurement(value *string) *int {
	if value == nil {
		return nil
	}
	fields := strings.Fields(*value)
	if len(fields) == 0 {
		return nil
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil
	}
	return &n
}

// parseRating turns numeric strings like "7.2" into floats; dashes and
// blanks mean no value.
func parseRating(value *string) *float64 {
	if value == nil {
		return nil
	}
	text := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(*value), "%"))
	if text == "" || text == "-" {
		return nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil
	}
	return &f
}

// statInt coerces a statistics value that may arrive as a JSON number,
// a numeric string, or null.
func statInt(value any) *int {
	switch v := value.(type) {
	case float64:
		n := int(v)
		return &n
	case int64:
		n := int(v)
		return &n
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(v, "%")))
		if err != nil {
			return nil
		}
		return &n
	default:
		return nil
	}
}

// statPercent parses percent strings like "61%" into 61.0.
func statPercent(value any) *float64 {
	switch v := value.(type) {
	case float64:
		return &v
	case string:
		text := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "%"))
		if text == "" {
			return nil
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}
