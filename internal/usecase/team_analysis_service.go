package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/football-insights/internal/domain/competition"
	"github.com/riskibarqy/football-insights/internal/domain/feed"
	"github.com/riskibarqy/football-insights/internal/domain/match"
	"github.com/riskibarqy/football-insights/internal/domain/squad"
	"github.com/riskibarqy/football-insights/internal/domain/teamform"
	"github.com/riskibarqy/football-insights/internal/platform/logging"
	"github.com/sourcegraph/conc"
)

const (
	recentMatchesLimit   = 10
	upcomingMatchesLimit = 20
	historyMatchesLimit  = 50

	sectionRecentForm   = "recent_form"
	sectionUpcoming     = "upcoming_matches"
	sectionCompetitions = "competitions"
)

type TeamAnalysis struct {
	Team            feed.TeamDetail
	RecentForm      teamform.Stats
	Squad           squad.Analysis
	UpcomingMatches []match.Match
	Competitions    competition.Analysis
	// Degraded names the optional sections that could not be loaded.
	Degraded    []string
	GeneratedAt time.Time
}

type TeamPlayers struct {
	Team   feed.Team
	Roster squad.Roster
}

type TeamAnalysisService struct {
	footballData feed.FootballDataClient
	logger       *logging.Logger
	now          func() time.Time
}

func NewTeamAnalysisService(footballData feed.FootballDataClient, logger *logging.Logger) *TeamAnalysisService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamAnalysisService{
		footballData: footballData,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *TeamAnalysisService) GetTeam(ctx context.Context, teamID string) (feed.TeamDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamAnalysisService.GetTeam")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return feed.TeamDetail{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	team, err := s.footballData.GetTeam(ctx, teamID)
	if err != nil {
		return feed.TeamDetail{}, fmt.Errorf("get team id=%s: %w", teamID, err)
	}
	return team, nil
}

// GetTeamAnalysis loads the team and then its recent, upcoming and full match
// lists concurrently. Only the team lookup is mandatory; a failed match list
// leaves its section empty and is listed in Degraded.
func (s *TeamAnalysisService) GetTeamAnalysis(ctx context.Context, teamID string) (TeamAnalysis, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamAnalysisService.GetTeamAnalysis")
	defer span.End()

	team, err := s.GetTeam(ctx, teamID)
	if err != nil {
		return TeamAnalysis{}, err
	}
	teamID = strings.TrimSpace(teamID)
	now := s.now().UTC()

	out := TeamAnalysis{
		Team:            team,
		Squad:           squad.Analyze(squadPlayers(team.Squad), now),
		UpcomingMatches: []match.Match{},
		GeneratedAt:     now,
	}

	var (
		mu       sync.Mutex
		degraded = make(map[string]struct{}, 3)
		recent   []match.Match
		upcoming []match.Match
		history  []match.Match
	)
	load := func(section string, query feed.TeamMatchesQuery, dst *[]match.Match) func() {
		return func() {
			items, err := s.footballData.GetTeamMatches(ctx, teamID, query)
			if err != nil {
				s.logger.WarnContext(ctx, "team matches unavailable",
					"team_id", teamID,
					"section", section,
					"status", query.Status,
					"error", err,
				)
				mu.Lock()
				degraded[section] = struct{}{}
				mu.Unlock()
				return
			}
			*dst = normalizeFeedMatches(items)
		}
	}

	var wg conc.WaitGroup
	wg.Go(load(sectionRecentForm, feed.TeamMatchesQuery{Status: string(match.StatusFinished), Limit: recentMatchesLimit}, &recent))
	wg.Go(load(sectionUpcoming, feed.TeamMatchesQuery{Status: string(match.StatusScheduled), Limit: upcomingMatchesLimit}, &upcoming))
	wg.Go(load(sectionCompetitions, feed.TeamMatchesQuery{Limit: historyMatchesLimit}, &history))
	wg.Wait()

	if _, failed := degraded[sectionRecentForm]; !failed {
		out.RecentForm = teamform.Compute(mostRecentFirst(recent), teamID)
	}
	if _, failed := degraded[sectionUpcoming]; !failed {
		out.UpcomingMatches = upcoming
	}
	if _, failed := degraded[sectionCompetitions]; !failed {
		out.Competitions = competition.Analyze(history, teamID, now)
	}
	for _, section := range []string{sectionRecentForm, sectionUpcoming, sectionCompetitions} {
		if _, failed := degraded[section]; failed {
			out.Degraded = append(out.Degraded, section)
		}
	}

	return out, nil
}

// GetTeamPlayers returns the squad roster grouped by position.
func (s *TeamAnalysisService) GetTeamPlayers(ctx context.Context, teamID string) (TeamPlayers, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamAnalysisService.GetTeamPlayers")
	defer span.End()

	team, err := s.GetTeam(ctx, teamID)
	if err != nil {
		return TeamPlayers{}, err
	}

	return TeamPlayers{
		Team:   team.Team,
		Roster: squad.BuildRoster(squadPlayers(team.Squad), s.now().UTC()),
	}, nil
}

func squadPlayers(members []feed.SquadMember) []squad.Player {
	out := make([]squad.Player, 0, len(members))
	for _, m := range members {
		out = append(out, squad.Player{
			ID:            m.ID,
			Name:          m.Name,
			Position:      m.Position,
			Nationality:   m.Nationality,
			DateOfBirth:   m.DateOfBirth,
			ShirtNumber:   m.ShirtNumber,
			MarketValue:   m.MarketValue,
			ContractStart: m.ContractStart,
			ContractUntil: m.ContractUntil,
		})
	}
	return out
}

func normalizeFeedMatches(items []feed.FeedMatch) []match.Match {
	out := make([]match.Match, 0, len(items))
	for _, item := range items {
		if m, ok := feed.Normalize(item, ""); ok {
			out = append(out, m)
		}
	}
	return out
}

func mostRecentFirst(items []match.Match) []match.Match {
	out := append([]match.Match(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].KickoffAt.After(out[j].KickoffAt)
	})
	return out
}
