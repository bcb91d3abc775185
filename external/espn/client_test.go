package espn

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
	"github.com/riskibarqy/football-insights/internal/domain/match"
	"github.com/riskibarqy/football-insights/internal/platform/resilience"
	"github.com/riskibarqy/football-insights/internal/usecase"
)

var matchDay = time.Date(2025, 10, 4, 0, 0, 0, 0, time.UTC)

func competitor(side, id, name, score string) map[string]any {
	return map[string]any{
		"homeAway": side,
		"score":    score,
		"team": map[string]any{
			"id":           id,
			"displayName":  name,
			"abbreviation": name[:3],
			"logo":         "https://a.espncdn.com/i/teamlogos/soccer/500/" + id + ".png",
		},
	}
}

func TestClient_GetScoreboard(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/eng.1/scoreboard" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("dates") != "20251004" || r.URL.Query().Get("limit") != "50" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}

		_ = jsoniter.NewEncoder(w).Encode(map[string]any{
			"events": []map[string]any{
				{
					"id":     "704279",
					"date":   "2025-10-04T14:00Z",
					"status": map[string]any{"type": map[string]any{"name": "STATUS_FULL_TIME"}},
					"competitions": []map[string]any{
						{
							"venue": map[string]any{"fullName": "Emirates Stadium"},
							"competitors": []map[string]any{
								competitor("home", "359", "Arsenal", "2"),
								competitor("away", "363", "Chelsea", "0"),
							},
						},
					},
				},
				{"id": "broken", "date": "2025-10-04T16:30Z"},
			},
		})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Timeout: 2 * time.Second})
	events, err := client.GetScoreboard(context.Background(), "eng.1", matchDay.Add(9*time.Hour), 50)
	if err != nil {
		t.Fatalf("get scoreboard: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected raw events to be kept, got %d", len(events))
	}

	first := events[0]
	if first.VenueName != "Emirates Stadium" || first.StatusName != "STATUS_FULL_TIME" || len(first.Competitors) != 2 {
		t.Fatalf("unexpected event: %+v", first)
	}

	normalized, ok := feed.Normalize(first, "Premier League")
	if !ok {
		t.Fatalf("expected decoded event to normalize")
	}
	if normalized.ID != "espn_704279" || normalized.Status != match.StatusFinished {
		t.Fatalf("unexpected match: %+v", normalized)
	}
	if normalized.Score.Home == nil || *normalized.Score.Home != 2 || normalized.HomeTeam.TLA != "Ars" {
		t.Fatalf("unexpected home side: %+v %+v", normalized.Score, normalized.HomeTeam)
	}

	if _, ok := feed.Normalize(events[1], "Premier League"); ok {
		t.Fatalf("event without competitors must not normalize")
	}
}

func TestClient_GetScoreboard_UpstreamStatus(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"code":500,"message":"internal"}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Timeout: 2 * time.Second,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
		},
	})

	for i := 0; i < 2; i++ {
		_, err := client.GetScoreboard(context.Background(), "esp.1", matchDay, 50)
		upstream, ok := feed.AsUpstreamError(err)
		if !ok || upstream.StatusCode != http.StatusInternalServerError || upstream.Provider != ProviderName {
			t.Fatalf("expected upstream 500, got %v", err)
		}
	}

	_, err := client.GetScoreboard(context.Background(), "esp.1", matchDay, 50)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected open breaker, got %v", err)
	}
	if hits.Load() != 2 {
		t.Fatalf("open breaker must short-circuit, upstream saw %d requests", hits.Load())
	}
}

func TestClient_GetScoreboard_DeadlineIsTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(ClientConfig{BaseURL: server.URL, Timeout: 2 * time.Second})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.GetScoreboard(ctx, "ita.1", matchDay, 50)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestClient_ScoreboardURL(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{})
	got := client.scoreboardURL("uefa.champions", time.Date(2025, 12, 26, 23, 0, 0, 0, time.UTC), 10)
	want := "https://site.api.espn.com/apis/site/v2/sports/soccer/uefa.champions/scoreboard?dates=20251226&limit=10"
	if got != want {
		t.Fatalf("url=%s want %s", got, want)
	}
}
