package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gislobo/matchvault/internal/domain/coach"
	"github.com/gislobo/matchvault/internal/domain/player"
	"github.com/gislobo/matchvault/internal/domain/referee"
	"github.com/gislobo/matchvault/internal/domain/team"
	"github.com/gislobo/matchvault/internal/domain/venue"
	"github.com/gislobo/matchvault/internal/domain/warehouse"
	"github.com/gislobo/matchvault/internal/platform/cache"
	"github.com/gislobo/matchvault/internal/platform/logging"
	"github.com/gislobo/matchvault/internal/resolve"
)

// ResolverService turns provider labels and external ids into warehouse
// keys, inserting reference rows on first sight. Resolved keys are held
// in an in-process cross-reference cache for the life of the run, so a
// season's worth of fixtures resolves each entity once.
type ResolverService struct {
	geocoder  Geocoder
	overrides resolve.Overrides
	xref      *cache.Store
	logger    *logging.Logger
}

func NewResolverService(geocoder Geocoder, overrides resolve.Overrides, logger *logging.Logger) *ResolverService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ResolverService{
		geocoder:  geocoder,
		overrides: overrides,
		xref:      cache.NewStore(0),
		logger:    logger,
	}
}

// CountryCode resolves a free-text country name against the reference
// table. A blank or unknown name resolves to nil so the referencing row
// can keep a null country, mirroring how upstream feeds omit or misspell
// countries. An ambiguous name is an error.
func (s *ResolverService) CountryCode(ctx context.Context, repos warehouse.RepoSet, name string) (*string, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}

	projection, err := s.countryProjection(ctx, repos)
	if err != nil {
		return nil, err
	}

	code, err := resolve.LookupName(name, projection)
	if err != nil {
		if errors.Is(err, resolve.ErrNotFound) {
			s.logger.WarnContext(ctx, "country not in reference table, leaving null", "country", name)
			return nil, nil
		}
		return nil, fmt.Errorf("resolve country %q: %w", name, err)
	}
	return &code, nil
}

// RefereeID resolves the fixture referee string, formatted by the
// provider as "Full Name, Country". A new name is split and inserted;
// losing an insert race falls back to a second lookup.
func (s *ResolverService) RefereeID(ctx context.Context, repos warehouse.RepoSet, raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	name, countryName, _ := strings.Cut(raw, ",")
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	id, err := s.cachedID(ctx, "referee:"+canonicalLabel(name), func(ctx context.Context) (int64, error) {
		return idOrInsert(
			func() (int64, error) {
				projection, err := repos.Referees.IDsByFullName(ctx)
				if err != nil {
					return 0, fmt.Errorf("project referees: %w", err)
				}
				return resolve.LookupName(name, projection)
			},
			func() (int64, error) {
				countryCode, err := s.CountryCode(ctx, repos, countryName)
				if err != nil {
					return 0, err
				}
				first, last := resolve.SplitFullName(name)
				ref := referee.Referee{FirstName: first, CountryCode: countryCode}
				if last != "" {
					ref.LastName = &last
				}
				return repos.Referees.Insert(ctx, ref)
			},
		)
	})
	if err != nil {
		return nil, fmt.Errorf("resolve referee %q: %w", raw, err)
	}
	return &id, nil
}

// VenueID resolves the fixture venue. Venues carrying a provider id
// resolve by that id, inserting from the home team's profile on first
// sight. Id-less venues resolve by override, then by name among other
// id-less rows; an unknown id-less venue needs a human to add the row
// or an override, so resolution stops with a ManualInterventionError.
func (s *ResolverService) VenueID(ctx context.Context, repos warehouse.RepoSet, ref ProviderVenueRef, homeTeam func(context.Context) (ProviderTeam, error)) (int64, error) {
	if ref.ExternalID != nil {
		externalID := *ref.ExternalID
		return s.cachedID(ctx, fmt.Sprintf("venue:ext:%d", externalID), func(ctx context.Context) (int64, error) {
			return idOrInsert(
				func() (int64, error) {
					return repos.Venues.IDByExternalID(ctx, externalID)
				},
				func() (int64, error) {
					return s.insertVenue(ctx, repos, externalID, ref, homeTeam)
				},
			)
		})
	}

	label := ref.Name
	if ref.City != "" {
		label = fmt.Sprintf("%s (%s)", ref.Name, ref.City)
	}
	if key, ok := s.overrides.VenueKey(label); ok {
		return key, nil
	}
	if key, ok := s.overrides.VenueKey(ref.Name); ok {
		return key, nil
	}
	if strings.TrimSpace(ref.Name) == "" {
		return 0, fmt.Errorf("%w: venue has neither id nor name", ErrInvalidInput)
	}

	id, err := s.cachedID(ctx, "venue:name:"+canonicalLabel(ref.Name), func(ctx context.Context) (int64, error) {
		projection, err := repos.Venues.IDsByNameWithoutExternalID(ctx)
		if err != nil {
			return 0, fmt.Errorf("project venues: %w", err)
		}
		return resolve.LookupName(ref.Name, projection)
	})
	if err != nil {
		if errors.Is(err, resolve.ErrNotFound) {
			return 0, &resolve.ManualInterventionError{
				Kind:   "venue",
				Label:  label,
				Reason: "no provider id and no matching row; add the venue or a name override",
			}
		}
		return 0, fmt.Errorf("resolve venue %q: %w", label, err)
	}
	return id, nil
}

func (s *ResolverService) insertVenue(ctx context.Context, repos warehouse.RepoSet, externalID int64, ref ProviderVenueRef, homeTeam func(context.Context) (ProviderTeam, error)) (int64, error) {
	profile, err := homeTeam(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch team profile for venue %d: %w", externalID, err)
	}

	v := venue.Venue{
		ExternalID: &externalID,
		Name:       profile.Venue.Name,
		Address:    optional(profile.Venue.Address),
		City:       optional(profile.Venue.City),
		Capacity:   profile.Venue.Capacity,
		Surface:    optional(profile.Venue.Surface),
	}
	if v.Name == "" {
		v.Name = ref.Name
	}
	if v.City == nil {
		v.City = optional(ref.City)
	}

	code, err := s.CountryCode(ctx, repos, profile.Country)
	if err != nil {
		return 0, err
	}
	v.CountryCode = code

	s.geocodeVenue(ctx, &v)
	return repos.Venues.Insert(ctx, v)
}

// geocodeVenue fills coordinates and time zone when an address is known.
// Geocoding failures degrade to a null location rather than failing the
// whole fixture.
func (s *ResolverService) geocodeVenue(ctx context.Context, v *venue.Venue) {
	if s.geocoder == nil {
		return
	}

	parts := make([]string, 0, 2)
	if v.Address != nil {
		parts = append(parts, *v.Address)
	}
	if v.City != nil {
		parts = append(parts, *v.City)
	}
	address := strings.Join(parts, ", ")
	if address == "" {
		return
	}

	lat, lon, err := s.geocoder.Locate(ctx, address)
	if err != nil {
		s.logger.WarnContext(ctx, "geocoding failed, storing venue without coordinates",
			"venue", v.Name, "address", address, "error", err)
		return
	}
	v.Latitude = &lat
	v.Longitude = &lon

	zone, err := s.geocoder.Timezone(lat, lon)
	if err != nil {
		s.logger.WarnContext(ctx, "timezone lookup failed, storing venue without zone",
			"venue", v.Name, "lat", lat, "lon", lon, "error", err)
		return
	}
	v.Timezone = &zone
}

// LeagueID resolves a league by provider id. League rows are curated by
// hand, so a miss is a manual-intervention condition, not an insert.
// Round-specific overrides win before generic resolution.
func (s *ResolverService) LeagueID(ctx context.Context, repos warehouse.RepoSet, leagueExternalID int64, round string) (int64, error) {
	if key, ok := s.overrides.LeagueKey(leagueExternalID, round); ok {
		return key, nil
	}

	id, err := s.cachedID(ctx, fmt.Sprintf("league:%d", leagueExternalID), func(ctx context.Context) (int64, error) {
		return repos.Leagues.IDByExternalID(ctx, leagueExternalID)
	})
	if err != nil {
		if errors.Is(err, resolve.ErrNotFound) {
			return 0, &resolve.ManualInterventionError{
				Kind:   "league",
				Label:  fmt.Sprintf("%d (%s)", leagueExternalID, round),
				Reason: "league rows are curated by hand; add the league or a round override",
			}
		}
		return 0, fmt.Errorf("resolve league %d: %w", leagueExternalID, err)
	}
	return id, nil
}

// TeamID resolves a team by provider id, inserting from the team profile
// on first sight.
func (s *ResolverService) TeamID(ctx context.Context, repos warehouse.RepoSet, externalID int64, profile func(context.Context) (ProviderTeam, error)) (int64, error) {
	return s.cachedID(ctx, fmt.Sprintf("team:%d", externalID), func(ctx context.Context) (int64, error) {
		return idOrInsert(
			func() (int64, error) {
				return repos.Teams.IDByExternalID(ctx, externalID)
			},
			func() (int64, error) {
				p, err := profile(ctx)
				if err != nil {
					return 0, fmt.Errorf("fetch team profile %d: %w", externalID, err)
				}
				code, err := s.CountryCode(ctx, repos, p.Country)
				if err != nil {
					return 0, err
				}
				t := team.Team{ExternalID: externalID, Name: p.Name, CountryCode: code}
				if p.Founded != nil {
					t.Founded = team.FoundedFromYear(*p.Founded)
				}
				return repos.Teams.Insert(ctx, t)
			},
		)
	})
}

// CoachID resolves a coach by provider id, inserting from the coach
// profile on first sight.
func (s *ResolverService) CoachID(ctx context.Context, repos warehouse.RepoSet, externalID int64, profile func(context.Context) (ProviderPersonProfile, error)) (int64, error) {
	return s.cachedID(ctx, fmt.Sprintf("coach:%d", externalID), func(ctx context.Context) (int64, error) {
		return idOrInsert(
			func() (int64, error) {
				return repos.Coaches.IDByExternalID(ctx, externalID)
			},
			func() (int64, error) {
				p, err := profile(ctx)
				if err != nil {
					return 0, fmt.Errorf("fetch coach profile %d: %w", externalID, err)
				}
				birthCode, err := s.birthCountryCode(ctx, repos, p.BirthCountry)
				if err != nil {
					return 0, err
				}
				return repos.Coaches.Insert(ctx, coach.Coach{
					ExternalID:       externalID,
					FirstName:        p.FirstName,
					LastName:         p.LastName,
					BirthDate:        p.BirthDate,
					BirthPlace:       p.BirthPlace,
					BirthCountryCode: birthCode,
					Nationality:      p.Nationality,
				})
			},
		)
	})
}

// PlayerID resolves a player by provider id, inserting from the player
// profile on first sight.
func (s *ResolverService) PlayerID(ctx context.Context, repos warehouse.RepoSet, externalID int64, profile func(context.Context) (ProviderPersonProfile, error)) (int64, error) {
	return s.cachedID(ctx, fmt.Sprintf("player:%d", externalID), func(ctx context.Context) (int64, error) {
		return idOrInsert(
			func() (int64, error) {
				return repos.Players.IDByExternalID(ctx, externalID)
			},
			func() (int64, error) {
				p, err := profile(ctx)
				if err != nil {
					return 0, fmt.Errorf("fetch player profile %d: %w", externalID, err)
				}
				birthCode, err := s.birthCountryCode(ctx, repos, p.BirthCountry)
				if err != nil {
					return 0, err
				}
				return repos.Players.Insert(ctx, player.Player{
					ExternalID:       externalID,
					FirstName:        p.FirstName,
					LastName:         p.LastName,
					BirthDate:        p.BirthDate,
					BirthPlace:       p.BirthPlace,
					BirthCountryCode: birthCode,
					Nationality:      p.Nationality,
					HeightCM:         p.HeightCM,
					WeightKG:         p.WeightKG,
				})
			},
		)
	})
}

// PositionID resolves a playing-position label, inserting on first
// sight. Blank positions resolve to nil.
func (s *ResolverService) PositionID(ctx context.Context, repos warehouse.RepoSet, label string) (*int64, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, nil
	}

	id, err := s.cachedID(ctx, "position:"+label, func(ctx context.Context) (int64, error) {
		return idOrInsert(
			func() (int64, error) { return repos.Positions.IDByLabel(ctx, label) },
			func() (int64, error) { return repos.Positions.Insert(ctx, label) },
		)
	})
	if err != nil {
		return nil, fmt.Errorf("resolve position %q: %w", label, err)
	}
	return &id, nil
}

// FormationID resolves a formation label, inserting on first sight.
// Blank formations resolve to nil.
func (s *ResolverService) FormationID(ctx context.Context, repos warehouse.RepoSet, label string) (*int64, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, nil
	}

	id, err := s.cachedID(ctx, "formation:"+label, func(ctx context.Context) (int64, error) {
		return idOrInsert(
			func() (int64, error) { return repos.Formations.IDByLabel(ctx, label) },
			func() (int64, error) { return repos.Formations.Insert(ctx, label) },
		)
	})
	if err != nil {
		return nil, fmt.Errorf("resolve formation %q: %w", label, err)
	}
	return &id, nil
}

// EventTypeID resolves a (type, detail) event pair, inserting on first
// sight.
func (s *ResolverService) EventTypeID(ctx context.Context, repos warehouse.RepoSet, eventType, detail string) (int64, error) {
	eventType = strings.TrimSpace(eventType)
	detail = strings.TrimSpace(detail)
	if eventType == "" {
		return 0, fmt.Errorf("%w: event type is required", ErrInvalidInput)
	}

	id, err := s.cachedID(ctx, "eventtype:"+eventType+"/"+detail, func(ctx context.Context) (int64, error) {
		return idOrInsert(
			func() (int64, error) { return repos.EventTypes.IDByTypeDetail(ctx, eventType, detail) },
			func() (int64, error) { return repos.EventTypes.Insert(ctx, eventType, detail) },
		)
	})
	if err != nil {
		return 0, fmt.Errorf("resolve event type %q/%q: %w", eventType, detail, err)
	}
	return id, nil
}

func (s *ResolverService) countryProjection(ctx context.Context, repos warehouse.RepoSet) (map[string]string, error) {
	value, err := s.xref.GetOrLoad(ctx, "country:projection", func(ctx context.Context) (any, error) {
		projection, err := repos.Countries.CodesByName(ctx)
		if err != nil {
			return nil, fmt.Errorf("project countries: %w", err)
		}
		return projection, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(map[string]string), nil
}

func (s *ResolverService) birthCountryCode(ctx context.Context, repos warehouse.RepoSet, name *string) (*string, error) {
	if name == nil {
		return nil, nil
	}
	return s.CountryCode(ctx, repos, *name)
}

func (s *ResolverService) normalizeZone(name string) string {
	if s.geocoder == nil {
		return name
	}
	return s.geocoder.NormalizeZone(name)
}

func (s *ResolverService) cachedID(ctx context.Context, key string, load func(context.Context) (int64, error)) (int64, error) {
	value, err := s.xref.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		id, err := load(ctx)
		if err != nil {
			return nil, err
		}
		// Keys filled inside an open transaction are journaled so a
		// rollback can evict them along with the rows.
		journalFrom(ctx).record(key)
		return id, nil
	})
	if err != nil {
		return 0, err
	}
	return value.(int64), nil
}

// idOrInsert runs a lookup, inserting on a miss. An insert that loses a
// natural-key race to a concurrent run falls back to one more lookup.
func idOrInsert(lookup, insert func() (int64, error)) (int64, error) {
	id, err := lookup()
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, resolve.ErrNotFound) {
		return 0, err
	}

	id, err = insert()
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, resolve.ErrConflict) {
		return 0, err
	}
	return lookup()
}

func canonicalLabel(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
