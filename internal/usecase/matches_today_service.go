package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/football-insights/internal/domain/importance"
	"github.com/riskibarqy/football-insights/internal/domain/match"
	"github.com/riskibarqy/football-insights/internal/domain/matchday"
)

// DailyMatchFetcher is satisfied by SourceMerger.
type DailyMatchFetcher interface {
	FetchDailyMatches(ctx context.Context, targetDate time.Time) ([]match.Match, SourceStats)
}

type MatchesToday struct {
	Date         string
	All          []match.Match
	Featured     []match.Match
	TodayCount   int
	FutureCount  int
	TotalMatches int
	SourceStats  SourceStats
	Statistics   matchday.DayStats
	LastUpdated  time.Time
}

type MatchesTodayService struct {
	fetcher    DailyMatchFetcher
	scorer     *importance.Scorer
	classifier *matchday.Classifier
	now        func() time.Time
}

func NewMatchesTodayService(fetcher DailyMatchFetcher, scorer *importance.Scorer, classifier *matchday.Classifier) *MatchesTodayService {
	return &MatchesTodayService{
		fetcher:    fetcher,
		scorer:     scorer,
		classifier: classifier,
		now:        time.Now,
	}
}

// Get builds the matchday view for date (YYYY-MM-DD). An empty date means
// the current UTC day.
func (s *MatchesTodayService) Get(ctx context.Context, date string) (MatchesToday, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchesTodayService.Get")
	defer span.End()

	now := s.now().UTC()
	day := match.DateOf(now)
	if date = strings.TrimSpace(date); date != "" {
		parsed, err := time.Parse(time.DateOnly, date)
		if err != nil {
			return MatchesToday{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
		}
		day = parsed
	}

	raw, stats := s.fetcher.FetchDailyMatches(ctx, day)

	enhanced := make([]match.Match, 0, len(raw))
	for _, m := range raw {
		enhanced = append(enhanced, s.scorer.Enhance(m, day))
	}

	classified := s.classifier.Classify(enhanced, day)
	stats.TotalUnique = len(classified.All)

	return MatchesToday{
		Date:         day.Format(time.DateOnly),
		All:          classified.All,
		Featured:     classified.Featured,
		TodayCount:   len(classified.Todays),
		FutureCount:  len(classified.Future),
		TotalMatches: len(classified.All),
		SourceStats:  stats,
		Statistics:   classified.Stats,
		LastUpdated:  now,
	}, nil
}
