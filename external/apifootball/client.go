package apifootball

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/gislobo/matchvault/internal/platform/logging"
	"github.com/gislobo/matchvault/internal/platform/resilience"
	"github.com/gislobo/matchvault/internal/usecase"
)

const (
	defaultBaseURL = "https://v3.football.api-sports.io"
	apiKeyHeader   = "x-apisports-key"
	maxBodyBytes   = 6 << 20
)

var errTransient = crerr.New("api-football transient failure")

type ClientConfig struct {
	HTTPClient       *http.Client
	BaseURL          string
	APIKey           string
	Timeout          time.Duration
	MaxRetries       int
	Logger           *logging.Logger
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

// Client talks to the v3 football API. Failed requests retry with
// linear backoff; a run of failures opens the circuit breaker, and
// concurrent identical requests collapse into one.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	maxRetries int
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	flight     resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	failureThreshold := cfg.FailureThreshold
	if failureThreshold <= 0 {
		failureThreshold = 5
	}
	openTimeout := cfg.OpenTimeout
	if openTimeout <= 0 {
		openTimeout = 30 * time.Second
	}
	halfOpenMaxReq := cfg.HalfOpenMaxReq
	if halfOpenMaxReq <= 0 {
		halfOpenMaxReq = 1
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		maxRetries: max(cfg.MaxRetries, 0),
		logger:     logger,
		breaker:    resilience.NewCircuitBreaker(failureThreshold, openTimeout, halfOpenMaxReq),
	}
}

// FixtureBundle pulls the fixture header plus its events, statistics,
// player statistics, and lineups.
func (c *Client) FixtureBundle(ctx context.Context, fixtureExternalID int64) (usecase.ProviderFixtureBundle, error) {
	if fixtureExternalID <= 0 {
		return usecase.ProviderFixtureBundle{}, fmt.Errorf("%w: fixture id must be greater than zero", usecase.ErrInvalidInput)
	}

	id := strconv.FormatInt(fixtureExternalID, 10)

	var fixtures fixturesEnvelope
	if err := c.doJSON(ctx, "/fixtures", map[string]string{"id": id}, &fixtures); err != nil {
		return usecase.ProviderFixtureBundle{}, fmt.Errorf("fetch fixture %d: %w", fixtureExternalID, err)
	}
	if len(fixtures.Response) == 0 {
		return usecase.ProviderFixtureBundle{}, fmt.Errorf("fixture %d: provider returned no rows", fixtureExternalID)
	}

	fixture, err := mapFixture(fixtures.Response[0])
	if err != nil {
		return usecase.ProviderFixtureBundle{}, fmt.Errorf("map fixture %d: %w", fixtureExternalID, err)
	}

	var events eventsEnvelope
	if err := c.doJSON(ctx, "/fixtures/events", map[string]string{"fixture": id}, &events); err != nil {
		return usecase.ProviderFixtureBundle{}, fmt.Errorf("fetch events fixture=%d: %w", fixtureExternalID, err)
	}

	var stats statisticsEnvelope
	if err := c.doJSON(ctx, "/fixtures/statistics", map[string]string{"fixture": id}, &stats); err != nil {
		return usecase.ProviderFixtureBundle{}, fmt.Errorf("fetch statistics fixture=%d: %w", fixtureExternalID, err)
	}

	var players playersEnvelope
	if err := c.doJSON(ctx, "/fixtures/players", map[string]string{"fixture": id}, &players); err != nil {
		return usecase.ProviderFixtureBundle{}, fmt.Errorf("fetch player statistics fixture=%d: %w", fixtureExternalID, err)
	}

	var lineups lineupsEnvelope
	if err := c.doJSON(ctx, "/fixtures/lineups", map[string]string{"fixture": id}, &lineups); err != nil {
		return usecase.ProviderFixtureBundle{}, fmt.Errorf("fetch lineups fixture=%d: %w", fixtureExternalID, err)
	}

	return usecase.ProviderFixtureBundle{
		Fixture:     fixture,
		Events:      mapEvents(events.Response),
		TeamStats:   mapTeamStats(stats.Response),
		PlayerStats: mapPlayerStats(players.Response),
		Lineups:     mapLineups(lineups.Response),
	}, nil
}

func (c *Client) Team(ctx context.Context, externalID int64) (usecase.ProviderTeam, error) {
	if externalID <= 0 {
		return usecase.ProviderTeam{}, fmt.Errorf("%w: team id must be greater than zero", usecase.ErrInvalidInput)
	}

	var teams teamsEnvelope
	query := map[string]string{"id": strconv.FormatInt(externalID, 10)}
	if err := c.doJSON(ctx, "/teams", query, &teams); err != nil {
		return usecase.ProviderTeam{}, fmt.Errorf("fetch team %d: %w", externalID, err)
	}
	if len(teams.Response) == 0 {
		return usecase.ProviderTeam{}, fmt.Errorf("team %d: provider returned no rows", externalID)
	}

	item := teams.Response[0]
	return usecase.ProviderTeam{
		ExternalID: item.Team.ID,
		Name:       item.Team.Name,
		Country:    item.Team.Country,
		Founded:    item.Team.Founded,
		Venue: usecase.ProviderTeamVenue{
			ExternalID: item.Venue.ID,
			Name:       item.Venue.Name,
			Address:    item.Venue.Address,
			City:       item.Venue.City,
			Capacity:   item.Venue.Capacity,
			Surface:    item.Venue.Surface,
		},
	}, nil
}

func (c *Client) Coach(ctx context.Context, externalID int64) (usecase.ProviderPersonProfile, error) {
	if externalID <= 0 {
		return usecase.ProviderPersonProfile{}, fmt.Errorf("%w: coach id must be greater than zero", usecase.ErrInvalidInput)
	}

	var coaches coachesEnvelope
	query := map[string]string{"id": strconv.FormatInt(externalID, 10)}
	if err := c.doJSON(ctx, "/coachs", query, &coaches); err != nil {
		return usecase.ProviderPersonProfile{}, fmt.Errorf("fetch coach %d: %w", externalID, err)
	}
	if len(coaches.Response) == 0 {
		return usecase.ProviderPersonProfile{}, fmt.Errorf("coach %d: provider returned no rows", externalID)
	}

	item := coaches.Response[0]
	return usecase.ProviderPersonProfile{
		ExternalID:   item.ID,
		FirstName:    item.FirstName,
		LastName:     item.LastName,
		BirthDate:    parseBirthDate(item.Birth.Date),
		BirthPlace:   item.Birth.Place,
		BirthCountry: item.Birth.Country,
		Nationality:  item.Nationality,
	}, nil
}

func (c *Client) PlayerProfile(ctx context.Context, externalID int64) (usecase.ProviderPersonProfile, error) {
	if externalID <= 0 {
		return usecase.ProviderPersonProfile{}, fmt.Errorf("%w: player id must be greater than zero", usecase.ErrInvalidInput)
	}

	var profiles profilesEnvelope
	query := map[string]string{"player": strconv.FormatInt(externalID, 10)}
	if err := c.doJSON(ctx, "/players/profiles", query, &profiles); err != nil {
		return usecase.ProviderPersonProfile{}, fmt.Errorf("fetch player profile %d: %w", externalID, err)
	}
	if len(profiles.Response) == 0 {
		return usecase.ProviderPersonProfile{}, fmt.Errorf("player profile %d: provider returned no rows", externalID)
	}

	p := profiles.Response[0].Player
	return usecase.ProviderPersonProfile{
		ExternalID:   p.ID,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		BirthDate:    parseBirthDate(p.Birth.Date),
		BirthPlace:   p.Birth.Place,
		BirthCountry: p.Birth.Country,
		Nationality:  p.Nationality,
		HeightCM:     parseMeasurement(p.Height),
		WeightKG:     parseMeasurement(p.Weight),
	}, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "api-football circuit breaker rejected request", "state", c.breaker.State())
		return fmt.Errorf("%w: football data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		switch {
		case reqErr == nil:
			c.breaker.RecordSuccess()
		case stderrors.Is(reqErr, errTransient):
			c.breaker.RecordFailure()
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set(apiKeyHeader, c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errTransient, redactKey(err.Error(), c.apiKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * time.Second)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "api-football request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func redactKey(value, key string) string {
	if key == "" {
		return value
	}
	return strings.ReplaceAll(value, key, "REDACTED")
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
