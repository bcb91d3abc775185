package espn

import (
	"context"
	"fmt"
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
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

const (
	ProviderName     = "espn"
	defaultBaseURL   = "https://site.api.espn.com/apis/site/v2/sports/soccer"
	defaultTimeout   = 10 * time.Second
	maxResponseBytes = 4 << 20
	maxBodyPreview   = 240
	scoreboardDate   = "20060102"
)

var errESPNTransient = crerr.New("espn transient failure")

type ClientConfig struct {
	BaseURL         string
	Timeout         time.Duration
	MaxConnsPerHost int
	Logger          *logging.Logger
	CircuitBreaker  resilience.CircuitBreakerConfig
}

// Client reads the public ESPN soccer scoreboard. The endpoint needs no
// credentials; one request covers one league and one calendar day.
type Client struct {
	http           *fasthttp.Client
	baseURL        string
	timeout        time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

var _ feed.ScoreboardClient = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxConns := cfg.MaxConnsPerHost
	if maxConns <= 0 {
		maxConns = 64
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		http: &fasthttp.Client{
			Name:                "football-insights",
			MaxConnsPerHost:     maxConns,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
			MaxResponseBodySize: maxResponseBytes,
		},
		baseURL:        baseURL,
		timeout:        timeout,
		logger:         logger,
		breaker:        resilience.NewNamedCircuitBreaker(ProviderName, breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) GetScoreboard(ctx context.Context, leagueCode string, date time.Time, limit int) ([]feed.ScoreboardEvent, error) {
	leagueCode = strings.TrimSpace(leagueCode)
	if leagueCode == "" {
		return nil, fmt.Errorf("%w: league code is required", usecase.ErrInvalidInput)
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "espn circuit breaker rejected request", "league", leagueCode, "state", c.breaker.State())
			return nil, fmt.Errorf("%w: espn is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.scoreboardURL(leagueCode, date, limit)
	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.execute(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errESPNTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, fmt.Errorf("fetch scoreboard league=%s date=%s: %w", leagueCode, date.UTC().Format(time.DateOnly), err)
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}

	var payload scoreboardDTO
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode espn scoreboard league=%s: %w", leagueCode, err)
	}
	return mapEvents(payload.Events), nil
}

func (c *Client) scoreboardURL(leagueCode string, date time.Time, limit int) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(c.baseURL)
	_, _ = buf.WriteString("/")
	_, _ = buf.WriteString(url.PathEscape(leagueCode))
	_, _ = buf.WriteString("/scoreboard?dates=")
	_, _ = buf.WriteString(date.UTC().Format(scoreboardDate))
	if limit > 0 {
		_, _ = buf.WriteString("&limit=")
		_, _ = buf.WriteString(strconv.Itoa(limit))
	}
	return buf.String()
}

func (c *Client) execute(ctx context.Context, fullURL string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.timeout)
	}
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		if crerr.Is(err, fasthttp.ErrTimeout) || ctx.Err() != nil {
			return nil, crerr.Mark(fmt.Errorf("send request: %w", context.DeadlineExceeded), errESPNTransient)
		}
		return nil, crerr.Mark(fmt.Errorf("send request: %v", err), errESPNTransient)
	}

	status := resp.StatusCode()
	if status < fasthttp.StatusOK || status >= fasthttp.StatusMultipleChoices {
		upstream := &feed.UpstreamError{
			Provider:   ProviderName,
			StatusCode: status,
			Body:       abbreviateBody(resp.Body()),
		}
		c.logger.WarnContext(ctx, "espn request failed", "url", fullURL, "status", status)
		if upstream.Retryable() {
			return nil, crerr.Mark(upstream, errESPNTransient)
		}
		return nil, upstream
	}

	// resp is released on return, so the body must be copied.
	return append([]byte(nil), resp.Body()...), nil
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= maxBodyPreview {
		return text
	}
	return text[:maxBodyPreview] + "..."
}
