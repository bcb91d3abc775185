package usecase

import (
	"context"
	"errors"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/football-insights/internal/domain/feed"
	"github.com/riskibarqy/football-insights/internal/domain/match"
	"github.com/riskibarqy/football-insights/internal/platform/logging"
)

// LeagueSource is one scoreboard league probed by the merger.
type LeagueSource struct {
	Code string
	Name string
}

var DefaultScoreboardLeagues = []LeagueSource{
	{Code: "eng.1", Name: "Premier League"},
	{Code: "esp.1", Name: "La Liga"},
	{Code: "ger.1", Name: "Bundesliga"},
	{Code: "ita.1", Name: "Serie A"},
	{Code: "fra.1", Name: "Ligue 1"},
	{Code: "uefa.champions", Name: "UEFA Champions League"},
	{Code: "uefa.europa", Name: "UEFA Europa League"},
	{Code: "uefa.europa.conf", Name: "UEFA Conference League"},
	{Code: "ned.1", Name: "Eredivisie"},
	{Code: "por.1", Name: "Primeira Liga"},
	{Code: "bel.1", Name: "Pro League"},
	{Code: "aut.1", Name: "Austrian Bundesliga"},
	{Code: "tur.1", Name: "Süper Lig"},
	{Code: "sco.1", Name: "Scottish Premiership"},
	{Code: "eng.2", Name: "Championship"},
	{Code: "esp.2", Name: "Segunda División"},
	{Code: "ger.2", Name: "2. Bundesliga"},
	{Code: "ita.2", Name: "Serie B"},
	{Code: "bra.1", Name: "Brasileirão"},
	{Code: "arg.1", Name: "Liga Profesional"},
}

type MergePolicy struct {
	Leagues        []LeagueSource
	PrimaryLimit   int
	PrimaryTimeout time.Duration

	ExtendedLeagueCount int
	ExtendedLimit       int
	ExtendedTimeout     time.Duration
	ExtendedPastDays    int
	ExtendedFutureDays  int
	ExtendedStopAt      int

	FallbackThreshold int
	FallbackTimeout   time.Duration

	MaxWorkers int
	// DedupeAcrossSources drops later matches sharing home name, away name
	// and kickoff date with an earlier one.
	DedupeAcrossSources bool
}

func DefaultMergePolicy() MergePolicy {
	return MergePolicy{
		Leagues:             append([]LeagueSource(nil), DefaultScoreboardLeagues...),
		PrimaryLimit:        50,
		PrimaryTimeout:      10 * time.Second,
		ExtendedLeagueCount: 5,
		ExtendedLimit:       10,
		ExtendedTimeout:     8 * time.Second,
		ExtendedPastDays:    3,
		ExtendedFutureDays:  7,
		ExtendedStopAt:      20,
		FallbackThreshold:   5,
		FallbackTimeout:     10 * time.Second,
		MaxWorkers:          8,
	}
}

// withDefaults fills every zero field from DefaultMergePolicy.
func (p MergePolicy) withDefaults() MergePolicy {
	def := DefaultMergePolicy()
	if len(p.Leagues) == 0 {
		p.Leagues = def.Leagues
	}
	if p.PrimaryLimit <= 0 {
		p.PrimaryLimit = def.PrimaryLimit
	}
	if p.PrimaryTimeout <= 0 {
		p.PrimaryTimeout = def.PrimaryTimeout
	}
	if p.ExtendedLeagueCount <= 0 {
		p.ExtendedLeagueCount = def.ExtendedLeagueCount
	}
	if p.ExtendedLimit <= 0 {
		p.ExtendedLimit = def.ExtendedLimit
	}
	if p.ExtendedTimeout <= 0 {
		p.ExtendedTimeout = def.ExtendedTimeout
	}
	if p.ExtendedPastDays <= 0 {
		p.ExtendedPastDays = def.ExtendedPastDays
	}
	if p.ExtendedFutureDays <= 0 {
		p.ExtendedFutureDays = def.ExtendedFutureDays
	}
	if p.ExtendedStopAt <= 0 {
		p.ExtendedStopAt = def.ExtendedStopAt
	}
	if p.FallbackThreshold <= 0 {
		p.FallbackThreshold = def.FallbackThreshold
	}
	if p.FallbackTimeout <= 0 {
		p.FallbackTimeout = def.FallbackTimeout
	}
	if p.MaxWorkers <= 0 {
		p.MaxWorkers = def.MaxWorkers
	}
	return p
}

// extendedOffsets lists the day offsets scanned when the target date is empty:
// past days first, then future days, never the target itself.
func (p MergePolicy) extendedOffsets() []int {
	out := make([]int, 0, p.ExtendedPastDays+p.ExtendedFutureDays)
	for offset := -p.ExtendedPastDays; offset <= p.ExtendedFutureDays; offset++ {
		if offset == 0 {
			continue
		}
		out = append(out, offset)
	}
	return out
}

type CallOutcome string

const (
	CallOutcomeSuccess CallOutcome = "success"
	CallOutcomeTimeout CallOutcome = "timeout"
	CallOutcomeError   CallOutcome = "error"
)

// CallResult records one outbound provider call.
type CallResult struct {
	Source     match.Source  `json:"source"`
	League     string        `json:"league,omitempty"`
	DateFrom   string        `json:"date_from"`
	DateTo     string        `json:"date_to"`
	Outcome    CallOutcome   `json:"outcome"`
	Events     int           `json:"events"`
	Normalized int           `json:"normalized"`
	Dropped    int           `json:"dropped"`
	Duration   time.Duration `json:"-"`
	Error      string        `json:"error,omitempty"`
}

type SourceStats struct {
	Scoreboard     int          `json:"scoreboard"`
	Fallback       int          `json:"fallback"`
	ExtendedSearch bool         `json:"extended_search"`
	FallbackUsed   bool         `json:"fallback_used"`
	Duplicates     int          `json:"duplicates"`
	TotalUnique    int          `json:"total_unique"`
	Calls          []CallResult `json:"calls"`
}

// CallRecorder observes provider calls made by the merger.
type CallRecorder interface {
	ObserveProviderCall(source, league, outcome string, duration time.Duration, normalized int)
}

type nopCallRecorder struct{}

func (nopCallRecorder) ObserveProviderCall(string, string, string, time.Duration, int) {}

type SourceMerger struct {
	scoreboard   feed.ScoreboardClient
	footballData feed.FootballDataClient
	policy       MergePolicy
	recorder     CallRecorder
	logger       *logging.Logger
}

func NewSourceMerger(
	scoreboard feed.ScoreboardClient,
	footballData feed.FootballDataClient,
	policy MergePolicy,
	recorder CallRecorder,
	logger *logging.Logger,
) *SourceMerger {
	if recorder == nil {
		recorder = nopCallRecorder{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &SourceMerger{
		scoreboard:   scoreboard,
		footballData: footballData,
		policy:       policy.withDefaults(),
		recorder:     recorder,
		logger:       logger,
	}
}

func (m *SourceMerger) Policy() MergePolicy {
	return m.policy
}

// FetchDailyMatches collects canonical matches around targetDate from the
// scoreboard provider, widening the window and falling back to the feed
// provider when too few are found. Provider failures never fail the call.
func (m *SourceMerger) FetchDailyMatches(ctx context.Context, targetDate time.Time) ([]match.Match, SourceStats) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SourceMerger.FetchDailyMatches")
	defer span.End()

	day := match.DateOf(targetDate)
	stats := SourceStats{Calls: make([]CallResult, 0, len(m.policy.Leagues))}

	matches := m.probeScoreboard(ctx, day, m.policy.Leagues, m.policy.PrimaryLimit, m.policy.PrimaryTimeout, &stats)

	if len(matches) == 0 {
		stats.ExtendedSearch = true
		leagues := m.policy.Leagues
		if len(leagues) > m.policy.ExtendedLeagueCount {
			leagues = leagues[:m.policy.ExtendedLeagueCount]
		}
		for _, offset := range m.policy.extendedOffsets() {
			date := day.AddDate(0, 0, offset)
			found := m.probeScoreboard(ctx, date, leagues, m.policy.ExtendedLimit, m.policy.ExtendedTimeout, &stats)
			matches = append(matches, found...)
			if len(matches) >= m.policy.ExtendedStopAt {
				break
			}
		}
	}
	stats.Scoreboard = len(matches)

	if len(matches) < m.policy.FallbackThreshold && m.footballData != nil {
		from, to := day, day.AddDate(0, 0, 1)
		if stats.ExtendedSearch {
			from = day.AddDate(0, 0, -m.policy.ExtendedPastDays)
			to = day.AddDate(0, 0, m.policy.ExtendedFutureDays)
		}
		fallback := m.fetchFallback(ctx, from, to, &stats)
		stats.FallbackUsed = true
		stats.Fallback = len(fallback)
		matches = append(matches, fallback...)
	}

	if m.policy.DedupeAcrossSources {
		matches, stats.Duplicates = dedupeAcrossSources(matches)
	}

	m.logger.DebugContext(ctx, "daily matches merged",
		"date", day.Format(time.DateOnly),
		"scoreboard", stats.Scoreboard,
		"fallback", stats.Fallback,
		"extended_search", stats.ExtendedSearch,
		"calls", len(stats.Calls),
	)
	return matches, stats
}

type leagueSlot struct {
	matches []match.Match
	result  CallResult
}

// probeScoreboard fans out one call per league. Results are written into a
// slot per league so output order follows the league list.
func (m *SourceMerger) probeScoreboard(
	ctx context.Context,
	date time.Time,
	leagues []LeagueSource,
	limit int,
	timeout time.Duration,
	stats *SourceStats,
) []match.Match {
	if m.scoreboard == nil || len(leagues) == 0 {
		return nil
	}

	slots := make([]leagueSlot, len(leagues))
	workerCount := m.policy.MaxWorkers
	if workerCount > len(leagues) {
		workerCount = len(leagues)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		m.logger.WarnContext(ctx, "create scoreboard worker pool failed, probing inline", "error", err)
		pool = nil
	} else {
		defer pool.Release()
	}

	var workers sync.WaitGroup
	for i, league := range leagues {
		i, league := i, league
		task := func() {
			defer workers.Done()
			slots[i] = m.callScoreboard(ctx, league, date, limit, timeout)
		}
		workers.Add(1)
		if pool == nil {
			task()
			continue
		}
		if err := pool.Submit(task); err != nil {
			m.logger.WarnContext(ctx, "submit scoreboard call failed, probing inline", "league", league.Code, "error", err)
			task()
		}
	}
	workers.Wait()

	out := make([]match.Match, 0)
	for _, slot := range slots {
		out = append(out, slot.matches...)
		stats.Calls = append(stats.Calls, slot.result)
	}
	return out
}

func (m *SourceMerger) callScoreboard(
	ctx context.Context,
	league LeagueSource,
	date time.Time,
	limit int,
	timeout time.Duration,
) leagueSlot {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	day := date.Format(time.DateOnly)
	result := CallResult{
		Source:   match.SourceScoreboard,
		League:   league.Code,
		DateFrom: day,
		DateTo:   day,
	}

	start := time.Now()
	events, err := m.scoreboard.GetScoreboard(callCtx, league.Code, date, limit)
	result.Duration = time.Since(start)
	if err != nil {
		result.Outcome = callOutcome(callCtx, err)
		result.Error = err.Error()
		m.logger.WarnContext(ctx, "scoreboard call skipped",
			"league", league.Code,
			"date", day,
			"outcome", result.Outcome,
			"error", err,
		)
		m.recorder.ObserveProviderCall(string(result.Source), league.Code, string(result.Outcome), result.Duration, 0)
		return leagueSlot{result: result}
	}

	out := make([]match.Match, 0, len(events))
	for _, event := range events {
		normalized, ok := feed.Normalize(event, league.Name)
		if !ok {
			result.Dropped++
			continue
		}
		out = append(out, normalized)
	}
	result.Outcome = CallOutcomeSuccess
	result.Events = len(events)
	result.Normalized = len(out)

	m.recorder.ObserveProviderCall(string(result.Source), league.Code, string(result.Outcome), result.Duration, result.Normalized)
	return leagueSlot{matches: out, result: result}
}

func (m *SourceMerger) fetchFallback(ctx context.Context, from, to time.Time, stats *SourceStats) []match.Match {
	callCtx, cancel := context.WithTimeout(ctx, m.policy.FallbackTimeout)
	defer cancel()

	result := CallResult{
		Source:   match.SourceFeed,
		DateFrom: from.Format(time.DateOnly),
		DateTo:   to.Format(time.DateOnly),
	}

	start := time.Now()
	items, err := m.footballData.GetMatches(callCtx, feed.MatchesQuery{DateFrom: from, DateTo: to})
	result.Duration = time.Since(start)
	if err != nil {
		result.Outcome = callOutcome(callCtx, err)
		result.Error = err.Error()
		stats.Calls = append(stats.Calls, result)
		m.logger.WarnContext(ctx, "fallback call skipped",
			"date_from", result.DateFrom,
			"date_to", result.DateTo,
			"outcome", result.Outcome,
			"error", err,
		)
		m.recorder.ObserveProviderCall(string(result.Source), "", string(result.Outcome), result.Duration, 0)
		return nil
	}

	out := make([]match.Match, 0, len(items))
	for _, item := range items {
		normalized, ok := feed.Normalize(item, "")
		if !ok {
			result.Dropped++
			continue
		}
		out = append(out, normalized)
	}
	result.Outcome = CallOutcomeSuccess
	result.Events = len(items)
	result.Normalized = len(out)
	stats.Calls = append(stats.Calls, result)

	m.recorder.ObserveProviderCall(string(result.Source), "", string(result.Outcome), result.Duration, result.Normalized)
	return out
}

func callOutcome(callCtx context.Context, err error) CallOutcome {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return CallOutcomeTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return CallOutcomeTimeout
	}
	return CallOutcomeError
}

func dedupeAcrossSources(matches []match.Match) ([]match.Match, int) {
	seen := make(map[string]struct{}, len(matches))
	out := make([]match.Match, 0, len(matches))
	duplicates := 0
	for _, m := range matches {
		key := fixtureKey(m)
		if key != "" {
			if _, ok := seen[key]; ok {
				duplicates++
				continue
			}
			seen[key] = struct{}{}
		}
		out = append(out, m)
	}
	return out, duplicates
}

func fixtureKey(m match.Match) string {
	date, ok := m.Date()
	if !ok {
		return ""
	}
	home := strings.ToLower(strings.TrimSpace(m.HomeTeam.Name))
	away := strings.ToLower(strings.TrimSpace(m.AwayTeam.Name))
	if home == "" || away == "" {
		return ""
	}
	return home + "|" + away + "|" + date.Format(time.DateOnly)
}
