package teamform

import (
	"math"
	"sort"
	"strings"

	"github.com/riskibarqy/football-insights/internal/domain/match"
)

const (
	maxMatches = 10
	formLength = 5
)

type Record struct {
	Wins   int
	Draws  int
	Losses int
}

type Summary struct {
	WinPercentage   float64
	Points          int
	AvgGoalsFor     float64
	AvgGoalsAgainst float64
	GoalDifference  int
}

type Stats struct {
	MatchesPlayed int
	Wins          int
	Draws         int
	Losses        int
	GoalsFor      int
	GoalsAgainst  int
	CleanSheets   int
	Home          Record
	Away          Record
	Form          []string
	Competitions  []string
	Summary       *Summary
}

// Compute rolls up results for teamID over the first ten matches. Matches
// without a full-time score are skipped.
func Compute(matches []match.Match, teamID string) Stats {
	teamID = strings.TrimSpace(teamID)
	if len(matches) > maxMatches {
		matches = matches[:maxMatches]
	}

	stats := Stats{Form: make([]string, 0, formLength)}
	competitions := make(map[string]struct{})
	for _, m := range matches {
		if !m.Score.Complete() {
			continue
		}
		home := m.HomeTeam.ID == teamID
		goalsFor, goalsAgainst := *m.Score.Home, *m.Score.Away
		if !home {
			goalsFor, goalsAgainst = goalsAgainst, goalsFor
		}

		stats.MatchesPlayed++
		stats.GoalsFor += goalsFor
		stats.GoalsAgainst += goalsAgainst
		if goalsAgainst == 0 {
			stats.CleanSheets++
		}

		split := &stats.Away
		if home {
			split = &stats.Home
		}
		var letter string
		switch {
		case goalsFor > goalsAgainst:
			stats.Wins++
			split.Wins++
			letter = "W"
		case goalsFor == goalsAgainst:
			stats.Draws++
			split.Draws++
			letter = "D"
		default:
			stats.Losses++
			split.Losses++
			letter = "L"
		}
		if len(stats.Form) < formLength {
			stats.Form = append(stats.Form, letter)
		}

		if name := strings.TrimSpace(m.Competition.Name); name != "" {
			competitions[name] = struct{}{}
		}
	}

	stats.Competitions = make([]string, 0, len(competitions))
	for name := range competitions {
		stats.Competitions = append(stats.Competitions, name)
	}
	sort.Strings(stats.Competitions)

	if stats.MatchesPlayed > 0 {
		played := float64(stats.MatchesPlayed)
		stats.Summary = &Summary{
			WinPercentage:   round1(float64(stats.Wins) / played * 100),
			Points:          stats.Wins*3 + stats.Draws,
			AvgGoalsFor:     round1(float64(stats.GoalsFor) / played),
			AvgGoalsAgainst: round1(float64(stats.GoalsAgainst) / played),
			GoalDifference:  stats.GoalsFor - stats.GoalsAgainst,
		}
	}
	return stats
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
