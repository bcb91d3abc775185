package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/football-insights/internal/domain/feed"
	"github.com/riskibarqy/football-insights/internal/domain/importance"
	"github.com/riskibarqy/football-insights/internal/domain/matchday"
	feedmock "github.com/riskibarqy/football-insights/internal/mocks/domain/feed"
	"github.com/stretchr/testify/mock"
)

func newMatchesTodayService(scoreboard feed.ScoreboardClient, footballData feed.FootballDataClient, now time.Time) *MatchesTodayService {
	tables := importance.DefaultTables()
	merger := NewSourceMerger(scoreboard, footballData, DefaultMergePolicy(), nil, nil)
	svc := NewMatchesTodayService(merger, importance.NewScorer(tables), matchday.NewClassifier(tables))
	svc.now = func() time.Time { return now }
	return svc
}

func TestMatchesTodayService_EmptyDayFallsBackToFutureMatches(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 10, 4, 7, 30, 0, 0, time.UTC)
	scoreboard := feedmock.NewScoreboardClient(t)
	footballData := feedmock.NewFootballDataClient(t)

	scoreboard.
		On("GetScoreboard", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]feed.ScoreboardEvent{}, nil)

	inTwoDays := time.Date(2025, 10, 6, 18, 0, 0, 0, time.UTC)
	fixtures := make([]feed.FeedMatch, 0, 6)
	for i := int64(1); i <= 6; i++ {
		fixtures = append(fixtures, feedFixture(500+i, inTwoDays.Add(time.Duration(i)*time.Hour), 10+i, "Home", 20+i, "Away"))
	}
	footballData.
		On("GetMatches", mock.Anything, feed.MatchesQuery{
			DateFrom: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
			DateTo:   time.Date(2025, 10, 11, 0, 0, 0, 0, time.UTC),
		}).
		Return(fixtures, nil).
		Once()

	got, err := newMatchesTodayService(scoreboard, footballData, now).Get(context.Background(), "")
	if err != nil {
		t.Fatalf("get matches today: %v", err)
	}

	if !got.SourceStats.ExtendedSearch || got.SourceStats.Fallback != 6 {
		t.Fatalf("unexpected source stats %+v", got.SourceStats)
	}
	if got.TodayCount != 0 || got.FutureCount != 6 || got.TotalMatches != 6 || got.SourceStats.TotalUnique != 6 {
		t.Fatalf("unexpected counts today=%d future=%d total=%d", got.TodayCount, got.FutureCount, got.TotalMatches)
	}
	for _, m := range got.All {
		if m.Enhanced == nil || m.Enhanced.DaysFromToday != 2 {
			t.Fatalf("match %s should be two days out, got %+v", m.ID, m.Enhanced)
		}
		if m.Enhanced.Source != "football-data.org" {
			t.Fatalf("unexpected source label %q", m.Enhanced.Source)
		}
	}
	if len(got.Featured) != 6 {
		t.Fatalf("featured=%d want 6", len(got.Featured))
	}
	for i := 1; i < len(got.All); i++ {
		if got.All[i].KickoffAt.Before(got.All[i-1].KickoffAt) {
			t.Fatalf("equal-importance matches must be ordered by kickoff")
		}
	}
	if got.Date != "2025-10-04" || !got.LastUpdated.Equal(now) {
		t.Fatalf("unexpected date=%s last_updated=%s", got.Date, got.LastUpdated)
	}
}

func TestMatchesTodayService_ExplicitDateDropsPastMatches(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 10, 4, 7, 30, 0, 0, time.UTC)
	scoreboard := feedmock.NewScoreboardClient(t)
	footballData := feedmock.NewFootballDataClient(t)

	target := time.Date(2025, 12, 26, 0, 0, 0, 0, time.UTC)
	events := make([]feed.ScoreboardEvent, 0, 6)
	for i := 0; i < 5; i++ {
		events = append(events, scoreboardEvent("t"+string(rune('a'+i)), target.Add(time.Duration(12+i)*time.Hour), "Home", "Away"))
	}
	events = append(events, scoreboardEvent("yesterday", target.Add(-2*time.Hour), "Liverpool", "Everton"))

	scoreboard.
		On("GetScoreboard", mock.Anything, "eng.1", target, 50).
		Return(events, nil).
		Once()
	scoreboard.
		On("GetScoreboard", mock.Anything, mock.Anything, target, 50).
		Return(nil, nil)

	got, err := newMatchesTodayService(scoreboard, footballData, now).Get(context.Background(), "2025-12-26")
	if err != nil {
		t.Fatalf("get matches: %v", err)
	}
	if got.SourceStats.FallbackUsed || got.SourceStats.Scoreboard != 6 {
		t.Fatalf("unexpected source stats %+v", got.SourceStats)
	}
	if got.TodayCount != 5 || got.TotalMatches != 5 {
		t.Fatalf("past match should be dropped, today=%d total=%d", got.TodayCount, got.TotalMatches)
	}
	if got.Statistics.ByCompetition["Premier League"] != 5 {
		t.Fatalf("unexpected statistics %+v", got.Statistics)
	}
}

func TestMatchesTodayService_InvalidDate(t *testing.T) {
	t.Parallel()

	svc := newMatchesTodayService(feedmock.NewScoreboardClient(t), feedmock.NewFootballDataClient(t), time.Now())
	if _, err := svc.Get(context.Background(), "04-10-2025"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
