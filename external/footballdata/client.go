package footballdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/football-insights/internal/domain/feed"
	"github.com/riskibarqy/football-insights/internal/platform/logging"
	"github.com/riskibarqy/football-insights/internal/platform/resilience"
	"github.com/riskibarqy/football-insights/internal/usecase"
)

const (
	ProviderName     = "football-data"
	defaultBaseURL   = "https://api.football-data.org/v4"
	defaultTimeout   = 10 * time.Second
	maxResponseBytes = 6 << 20
	maxBodyPreview   = 240
	authHeader       = "X-Auth-Token"
)

var errFootballDataTransient = crerr.New("football-data transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads competitions, teams and matches from the football-data.org v4 API.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

var _ feed.FootballDataClient = (*Client)(nil)

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
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewNamedCircuitBreaker(ProviderName, breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) GetCompetitions(ctx context.Context) ([]feed.Competition, error) {
	var payload competitionsEnvelope
	if err := c.doJSON(ctx, "/competitions", nil, &payload); err != nil {
		return nil, fmt.Errorf("fetch competitions: %w", err)
	}
	return mapCompetitions(payload.Competitions), nil
}

func (c *Client) GetTeams(ctx context.Context, competitionID string) ([]feed.Team, error) {
	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return nil, fmt.Errorf("%w: competition id is required", usecase.ErrInvalidInput)
	}

	var payload teamsEnvelope
	path := "/competitions/" + url.PathEscape(competitionID) + "/teams"
	if err := c.doJSON(ctx, path, nil, &payload); err != nil {
		return nil, fmt.Errorf("fetch teams competition_id=%s: %w", competitionID, err)
	}

	out := make([]feed.Team, 0, len(payload.Teams))
	for _, item := range payload.Teams {
		out = append(out, mapTeam(item))
	}
	return out, nil
}

func (c *Client) GetTeam(ctx context.Context, teamID string) (feed.TeamDetail, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return feed.TeamDetail{}, fmt.Errorf("%w: team id is required", usecase.ErrInvalidInput)
	}

	var payload teamDTO
	if err := c.doJSON(ctx, "/teams/"+url.PathEscape(teamID), nil, &payload); err != nil {
		return feed.TeamDetail{}, fmt.Errorf("fetch team team_id=%s: %w", teamID, err)
	}
	return mapTeamDetail(payload), nil
}

func (c *Client) GetTeamMatches(ctx context.Context, teamID string, query feed.TeamMatchesQuery) ([]feed.FeedMatch, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("%w: team id is required", usecase.ErrInvalidInput)
	}

	params := url.Values{}
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}
	if status := strings.TrimSpace(query.Status); status != "" {
		params.Set("status", status)
	}

	var payload matchesEnvelope
	if err := c.doJSON(ctx, "/teams/"+url.PathEscape(teamID)+"/matches", params, &payload); err != nil {
		return nil, fmt.Errorf("fetch team matches team_id=%s: %w", teamID, err)
	}
	return mapMatches(payload.Matches), nil
}

func (c *Client) GetMatches(ctx context.Context, query feed.MatchesQuery) ([]feed.FeedMatch, error) {
	params := url.Values{}
	if !query.DateFrom.IsZero() {
		params.Set("dateFrom", query.DateFrom.UTC().Format(time.DateOnly))
	}
	if !query.DateTo.IsZero() {
		params.Set("dateTo", query.DateTo.UTC().Format(time.DateOnly))
	}

	var payload matchesEnvelope
	if err := c.doJSON(ctx, "/matches", params, &payload); err != nil {
		return nil, fmt.Errorf("fetch matches date_from=%s date_to=%s: %w", params.Get("dateFrom"), params.Get("dateTo"), err)
	}
	return mapMatches(payload.Matches), nil
}

func (c *Client) doJSON(ctx context.Context, path string, query url.Values, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "football-data circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: football-data is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errFootballDataTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
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
		return fmt.Errorf("decode football-data payload: %w", err)
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
		if c.token != "" {
			req.Header.Set(authHeader, c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = crerr.Mark(fmt.Errorf("send request: %s", sanitizeSensitiveText(err.Error(), c.token)), errFootballDataTransient)
			if ctx.Err() != nil {
				lastErr = crerr.Mark(fmt.Errorf("send request: %w", ctx.Err()), errFootballDataTransient)
			}
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Mark(fmt.Errorf("read response body: %v", readErr), errFootballDataTransient)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			default:
				upstream := &feed.UpstreamError{
					Provider:   ProviderName,
					StatusCode: resp.StatusCode,
					Body:       abbreviateBody(raw),
				}
				if !upstream.Retryable() {
					return nil, upstream
				}
				lastErr = crerr.Mark(upstream, errFootballDataTransient)
			}
		}

		if attempt == c.maxRetries || ctx.Err() != nil {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("football-data request failed")
	}
	c.logger.WarnContext(ctx, "football-data request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" || token == "" {
		return value
	}
	return strings.ReplaceAll(value, token, "REDACTED")
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= maxBodyPreview {
		return text
	}
	return text[:maxBodyPreview] + "..."
}
