package teamform

import (
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/football-insights/internal/domain/match"
)

func played(homeID, awayID string, home, away int, competition string) match.Match {
	return match.Match{
		KickoffAt:   time.Date(2025, 9, 1, 15, 0, 0, 0, time.UTC),
		Status:      match.StatusFinished,
		HomeTeam:    match.TeamRef{ID: homeID},
		AwayTeam:    match.TeamRef{ID: awayID},
		Score:       match.Score{Home: &home, Away: &away},
		Competition: match.CompetitionRef{Name: competition},
	}
}

func TestCompute_Summary(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		played("86", "5", 2, 0, "Primera Division"),
		played("7", "86", 1, 2, "UEFA Champions League"),
		played("86", "10", 1, 1, "Primera Division"),
		{HomeTeam: match.TeamRef{ID: "86"}, AwayTeam: match.TeamRef{ID: "3"}, Status: match.StatusScheduled},
	}

	got := Compute(matches, "86")

	if got.MatchesPlayed != 3 || got.Wins != 2 || got.Draws != 1 || got.Losses != 0 {
		t.Fatalf("unexpected record %+v", got)
	}
	if got.GoalsFor != 5 || got.GoalsAgainst != 2 || got.CleanSheets != 1 {
		t.Fatalf("goals=%d-%d clean sheets=%d", got.GoalsFor, got.GoalsAgainst, got.CleanSheets)
	}
	if got.Home.Wins != 1 || got.Home.Draws != 1 || got.Away.Wins != 1 {
		t.Fatalf("unexpected home/away split %+v %+v", got.Home, got.Away)
	}
	if fmt.Sprint(got.Form) != "[W W D]" {
		t.Fatalf("form=%v", got.Form)
	}
	if fmt.Sprint(got.Competitions) != "[Primera Division UEFA Champions League]" {
		t.Fatalf("competitions=%v", got.Competitions)
	}
	if got.Summary == nil {
		t.Fatalf("summary must be set when matches were counted")
	}
	if got.Summary.Points != 7 || got.Summary.WinPercentage != 66.7 || got.Summary.GoalDifference != 3 {
		t.Fatalf("unexpected summary %+v", *got.Summary)
	}
	if got.Summary.AvgGoalsFor != 1.7 || got.Summary.AvgGoalsAgainst != 0.7 {
		t.Fatalf("unexpected averages %+v", *got.Summary)
	}
}

func TestCompute_CapsAndForm(t *testing.T) {
	t.Parallel()

	matches := make([]match.Match, 0, 12)
	for i := 0; i < 12; i++ {
		matches = append(matches, played("1", "2", 0, 1, "League"))
	}

	got := Compute(matches, "1")
	if got.MatchesPlayed != 10 {
		t.Fatalf("only the first 10 matches count, got %d", got.MatchesPlayed)
	}
	if len(got.Form) != 5 {
		t.Fatalf("form should hold 5 letters, got %v", got.Form)
	}
	if got.Summary.Points != 0 || got.Summary.WinPercentage != 0 {
		t.Fatalf("unexpected summary %+v", *got.Summary)
	}
}

func TestCompute_NoScoredMatches(t *testing.T) {
	t.Parallel()

	got := Compute([]match.Match{{HomeTeam: match.TeamRef{ID: "1"}}}, "1")
	if got.Summary != nil || got.MatchesPlayed != 0 {
		t.Fatalf("expected empty stats, got %+v", got)
	}
}
