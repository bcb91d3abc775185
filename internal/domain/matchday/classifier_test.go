package matchday

import (
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/riskibarqy/football-insights/internal/domain/importance"
	"github.com/riskibarqy/football-insights/internal/domain/match"
)

var today = time.Date(2025, 10, 4, 8, 0, 0, 0, time.UTC)

func scored(id string, kickoff time.Time, score int, competition string) match.Match {
	return match.Match{
		ID:          id,
		KickoffAt:   kickoff,
		Status:      match.StatusScheduled,
		Competition: match.CompetitionRef{Name: competition},
		Enhanced: &match.EnhancedInfo{
			ImportanceScore: score,
			DaysFromToday:   match.DaysBetween(today, kickoff),
		},
	}
}

func ids(items []match.Match) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestClassify_PartitionsAndDropsPast(t *testing.T) {
	t.Parallel()

	c := NewClassifier(importance.DefaultTables())
	matches := []match.Match{
		scored("past", today.AddDate(0, 0, -1), 90, "Premier League"),
		scored("future-low", today.AddDate(0, 0, 2), 20, "Serie B"),
		scored("today-low", today.Add(4*time.Hour), 15, "Serie B"),
		scored("today-high", today.Add(10*time.Hour), 80, "Premier League"),
		scored("future-high", today.AddDate(0, 0, 1), 95, "UEFA Champions League"),
		{ID: "no-date", Enhanced: &match.EnhancedInfo{ImportanceScore: 99}},
	}

	got := c.Classify(matches, today)

	for _, m := range got.Todays {
		if d, _ := m.Date(); !d.Equal(match.DateOf(today)) {
			t.Fatalf("%s not dated today", m.ID)
		}
	}
	for _, m := range got.Future {
		if d, _ := m.Date(); !d.After(match.DateOf(today)) {
			t.Fatalf("%s not in the future", m.ID)
		}
	}

	wantAll := []string{"today-high", "today-low", "future-high", "future-low"}
	if fmt.Sprint(ids(got.All)) != fmt.Sprint(wantAll) {
		t.Fatalf("all=%v want=%v", ids(got.All), wantAll)
	}
	concat := append(append([]match.Match(nil), got.Todays...), got.Future...)
	if fmt.Sprint(ids(concat)) != fmt.Sprint(ids(got.All)) {
		t.Fatalf("all must equal todays ++ future")
	}

	wantFeatured := []string{"future-high", "today-high", "future-low", "today-low"}
	if fmt.Sprint(ids(got.Featured)) != fmt.Sprint(wantFeatured) {
		t.Fatalf("featured=%v want=%v", ids(got.Featured), wantFeatured)
	}
}

func TestClassify_FeaturedCappedAndSorted(t *testing.T) {
	t.Parallel()

	c := NewClassifier(importance.DefaultTables())
	matches := make([]match.Match, 0, 10)
	for i := 0; i < 10; i++ {
		kickoff := today.Add(time.Duration(i) * time.Hour)
		matches = append(matches, scored(fmt.Sprintf("m%d", i), kickoff, 50+(i%3)*10, "La Liga"))
	}

	got := c.Classify(matches, today)
	if len(got.Featured) != DefaultFeaturedLimit {
		t.Fatalf("expected %d featured, got %d", DefaultFeaturedLimit, len(got.Featured))
	}
	if !sort.SliceIsSorted(got.Featured, func(i, j int) bool {
		return Less(got.Featured[i], got.Featured[j], today)
	}) {
		t.Fatalf("featured not sorted by comparator: %v", ids(got.Featured))
	}
	for _, m := range got.Featured {
		if m.Enhanced.ImportanceScore < 60 {
			t.Fatalf("low-importance match %s should not be featured", m.ID)
		}
	}
}

func TestClassify_TiesOrderedByKickoff(t *testing.T) {
	t.Parallel()

	c := NewClassifier(importance.DefaultTables())
	later := scored("later", today.AddDate(0, 0, 1).Add(18*time.Hour), 40, "Ligue 1")
	earlier := scored("earlier", today.AddDate(0, 0, 1).Add(12*time.Hour), 40, "Ligue 1")

	got := c.Classify([]match.Match{later, earlier}, today)
	if fmt.Sprint(ids(got.All)) != "[earlier later]" {
		t.Fatalf("all=%v", ids(got.All))
	}
	if fmt.Sprint(ids(got.Featured)) != "[earlier later]" {
		t.Fatalf("featured=%v", ids(got.Featured))
	}
}

func TestClassify_DayStats(t *testing.T) {
	t.Parallel()

	c := NewClassifier(importance.DefaultTables())
	live := scored("live", time.Date(2025, 10, 4, 19, 30, 0, 0, time.UTC), 75, "Premier League")
	live.Status = match.StatusLive
	live.Enhanced.RivalryFactor = "North London Derby"
	morning := scored("morning", time.Date(2025, 10, 4, 9, 0, 0, 0, time.UTC), 20, "J1 League")
	night := scored("night", time.Date(2025, 10, 5, 2, 0, 0, 0, time.UTC), 61, "Serie A")

	stats := c.Classify([]match.Match{live, morning, night}, today).Stats

	if stats.LiveMatches != 1 || stats.Rivalries != 1 {
		t.Fatalf("unexpected live/rivalry counts: %+v", stats)
	}
	if stats.HighImportance != 2 {
		t.Fatalf("high importance=%d want 2", stats.HighImportance)
	}
	if stats.MajorLeagueMatches != 2 {
		t.Fatalf("major leagues=%d want 2", stats.MajorLeagueMatches)
	}
	if stats.TimeSlots[SlotEvening] != 1 || stats.TimeSlots[SlotMorning] != 1 || stats.TimeSlots[SlotLateNight] != 1 || stats.TimeSlots[SlotAfternoon] != 0 {
		t.Fatalf("unexpected time slots %+v", stats.TimeSlots)
	}
	if stats.ByCompetition["Serie A"] != 1 {
		t.Fatalf("unexpected competition counts %+v", stats.ByCompetition)
	}
}
