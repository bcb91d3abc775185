package footballdata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/football-insights/internal/domain/feed"
	"github.com/riskibarqy/football-insights/internal/platform/resilience"
	"github.com/riskibarqy/football-insights/internal/usecase"
)

func newTestClient(baseURL string, breaker resilience.CircuitBreakerConfig) *Client {
	return NewClient(ClientConfig{
		BaseURL:        baseURL,
		Token:          "secret-token",
		Timeout:        2 * time.Second,
		CircuitBreaker: breaker,
	})
}

func TestClient_GetTeam(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/teams/81" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("X-Auth-Token"); got != "secret-token" {
			t.Fatalf("unexpected auth header: %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = jsoniter.NewEncoder(w).Encode(map[string]any{
			"id":         81,
			"name":       "FC Barcelona",
			"shortName":  "Barça",
			"tla":        "FCB",
			"founded":    1899,
			"clubColors": "Red / Navy Blue",
			"area":       map[string]any{"name": "Spain"},
			"coach":      map[string]any{"name": "Hans-Dieter Flick", "nationality": "Germany"},
			"runningCompetitions": []map[string]any{
				{"id": 2014, "name": "Primera Division", "code": "PD", "type": "LEAGUE"},
			},
			"squad": []map[string]any{
				{"id": 3188, "name": "Marc-André ter Stegen", "position": "Goalkeeper", "dateOfBirth": "1992-04-30", "nationality": "Germany", "shirtNumber": 1},
				{"id": 133, "name": "Lamine Yamal", "position": "Right Winger", "dateOfBirth": "2007-07-13", "nationality": "Spain", "contract": map[string]any{"start": "2023-07", "until": "2030-06"}},
			},
		})
	}))
	defer server.Close()

	team, err := newTestClient(server.URL, resilience.CircuitBreakerConfig{}).GetTeam(context.Background(), "81")
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if team.Name != "FC Barcelona" || team.AreaName != "Spain" || team.Founded == nil || *team.Founded != 1899 {
		t.Fatalf("unexpected team: %+v", team.Team)
	}
	if team.Coach == nil || team.Coach.Nationality != "Germany" {
		t.Fatalf("unexpected coach: %+v", team.Coach)
	}
	if len(team.RunningCompetitions) != 1 || team.RunningCompetitions[0].Code != "PD" {
		t.Fatalf("unexpected competitions: %+v", team.RunningCompetitions)
	}
	if len(team.Squad) != 2 {
		t.Fatalf("expected two squad members, got %d", len(team.Squad))
	}
	if team.Squad[0].ShirtNumber == nil || *team.Squad[0].ShirtNumber != 1 {
		t.Fatalf("unexpected shirt number: %+v", team.Squad[0])
	}
	if team.Squad[1].ContractStart != "2023-07" || team.Squad[1].ContractUntil != "2030-06" {
		t.Fatalf("unexpected contract: %+v", team.Squad[1])
	}
}

func TestClient_GetMatches_SendsDateRange(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/matches" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if from, to := r.URL.Query().Get("dateFrom"), r.URL.Query().Get("dateTo"); from != "2025-10-01" || to != "2025-10-11" {
			t.Fatalf("unexpected range: %s..%s", from, to)
		}

		_ = jsoniter.NewEncoder(w).Encode(map[string]any{
			"matches": []map[string]any{
				{
					"id":       537785,
					"utcDate":  "2025-10-05T15:30:00Z",
					"status":   "FINISHED",
					"stage":    "REGULAR_SEASON",
					"matchday": 7,
					"homeTeam": map[string]any{"id": 57, "name": "Arsenal FC", "tla": "ARS"},
					"awayTeam": map[string]any{"id": 61, "name": "Chelsea FC", "tla": "CHE"},
					"score": map[string]any{
						"fullTime": map[string]any{"home": 2, "away": 1},
					},
					"competition": map[string]any{"id": 2021, "name": "Premier League", "code": "PL", "type": "LEAGUE"},
					"area":        map[string]any{"name": "England"},
				},
			},
		})
	}))
	defer server.Close()

	matches, err := newTestClient(server.URL, resilience.CircuitBreakerConfig{}).GetMatches(context.Background(), feed.MatchesQuery{
		DateFrom: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		DateTo:   time.Date(2025, 10, 11, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("get matches: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected one match, got %d", len(matches))
	}

	got := matches[0]
	if got.ID != 537785 || got.HomeTeam.TLA != "ARS" || got.Competition.AreaName != "England" {
		t.Fatalf("unexpected match: %+v", got)
	}
	if got.FullTimeHome == nil || *got.FullTimeHome != 2 || got.FullTimeAway == nil || *got.FullTimeAway != 1 {
		t.Fatalf("unexpected score: %+v", got)
	}
	if got.Matchday == nil || *got.Matchday != 7 {
		t.Fatalf("unexpected matchday: %+v", got.Matchday)
	}
}

func TestClient_GetTeamMatches_EncodesFilters(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/teams/81/matches" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("status") != "FINISHED" || r.URL.Query().Get("limit") != "10" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		_ = jsoniter.NewEncoder(w).Encode(map[string]any{"matches": []any{}})
	}))
	defer server.Close()

	matches, err := newTestClient(server.URL, resilience.CircuitBreakerConfig{}).
		GetTeamMatches(context.Background(), "81", feed.TeamMatchesQuery{Status: "FINISHED", Limit: 10})
	if err != nil {
		t.Fatalf("get team matches: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected no matches, got %d", len(matches))
	}
}

func TestClient_NotFoundIsUpstreamErrorAndKeepsBreakerClosed(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"The resource you are looking for does not exist.","errorCode":404}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1})
	for i := 0; i < 3; i++ {
		_, err := client.GetTeam(context.Background(), "999999")
		upstream, ok := feed.AsUpstreamError(err)
		if !ok || upstream.StatusCode != http.StatusNotFound || upstream.Provider != ProviderName {
			t.Fatalf("expected upstream 404, got %v", err)
		}
	}
	if hits.Load() != 3 {
		t.Fatalf("4xx must not trip the breaker, upstream saw %d requests", hits.Load())
	}
}

func TestClient_BreakerOpensAfterServerErrors(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	for i := 0; i < 2; i++ {
		_, err := client.GetCompetitions(context.Background())
		upstream, ok := feed.AsUpstreamError(err)
		if !ok || upstream.StatusCode != http.StatusServiceUnavailable {
			t.Fatalf("expected upstream 503, got %v", err)
		}
	}

	_, err := client.GetCompetitions(context.Background())
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	if hits.Load() != 2 {
		t.Fatalf("open breaker must short-circuit, upstream saw %d requests", hits.Load())
	}
}

func TestClient_RejectsEmptyIdentifiers(t *testing.T) {
	t.Parallel()

	client := newTestClient("http://127.0.0.1:0", resilience.CircuitBreakerConfig{})
	if _, err := client.GetTeam(context.Background(), " "); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := client.GetTeams(context.Background(), ""); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAbbreviateBody(t *testing.T) {
	t.Parallel()

	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}
	if got := abbreviateBody(long); len(got) != maxBodyPreview+3 {
		t.Fatalf("unexpected preview length %d", len(got))
	}
	if got := sanitizeSensitiveText("dial https://x?token=secret-token", "secret-token"); got != "dial https://x?token=REDACTED" {
		t.Fatalf("token not redacted: %s", got)
	}
}
