package matchday

import (
	"sort"
	"time"

	"github.com/riskibarqy/football-insights/internal/domain/match"
)

const (
	DefaultFeaturedLimit   = 6
	highImportanceMinScore = 60
)

const (
	SlotMorning   = "morning"
	SlotAfternoon = "afternoon"
	SlotEvening   = "evening"
	SlotLateNight = "late_night"
)

// MajorLeagueSet reports whether a competition counts as a major league.
type MajorLeagueSet interface {
	IsMajorLeague(name string) bool
}

type DayStats struct {
	ByCompetition      map[string]int
	TimeSlots          map[string]int
	LiveMatches        int
	HighImportance     int
	Rivalries          int
	MajorLeagueMatches int
}

type Result struct {
	All      []match.Match
	Featured []match.Match
	Todays   []match.Match
	Future   []match.Match
	Stats    DayStats
}

type Classifier struct {
	majorLeagues  MajorLeagueSet
	featuredLimit int
}

func NewClassifier(majorLeagues MajorLeagueSet) *Classifier {
	return &Classifier{
		majorLeagues:  majorLeagues,
		featuredLimit: DefaultFeaturedLimit,
	}
}

// Classify drops past matches, splits the rest into today and future, and
// picks the featured subset.
func (c *Classifier) Classify(matches []match.Match, today time.Time) Result {
	day := match.DateOf(today)

	todays := make([]match.Match, 0, len(matches))
	future := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		date, ok := m.Date()
		if !ok {
			continue
		}
		switch {
		case date.Equal(day):
			todays = append(todays, m)
		case date.After(day):
			future = append(future, m)
		}
	}

	less := comparator(day)
	sortMatches(todays, less)
	sortMatches(future, less)

	all := make([]match.Match, 0, len(todays)+len(future))
	all = append(all, todays...)
	all = append(all, future...)

	ranked := append([]match.Match(nil), all...)
	sortMatches(ranked, less)
	limit := c.featuredLimit
	if limit <= 0 || limit > len(ranked) {
		limit = len(ranked)
	}
	featured := append([]match.Match(nil), ranked[:limit]...)
	sortMatches(featured, less)

	return Result{
		All:      all,
		Featured: featured,
		Todays:   todays,
		Future:   future,
		Stats:    c.dayStats(all),
	}
}

// Less reports whether a ranks ahead of b: importance descending, then
// proximity, then kickoff.
func Less(a, b match.Match, today time.Time) bool {
	return comparator(match.DateOf(today))(a, b)
}

func comparator(day time.Time) func(a, b match.Match) bool {
	return func(a, b match.Match) bool {
		ia, ib := importanceOf(a), importanceOf(b)
		if ia != ib {
			return ia > ib
		}
		da, db := daysFrom(a, day), daysFrom(b, day)
		if da != db {
			return da < db
		}
		return a.KickoffKey() < b.KickoffKey()
	}
}

func sortMatches(items []match.Match, less func(a, b match.Match) bool) {
	sort.SliceStable(items, func(i, j int) bool {
		return less(items[i], items[j])
	})
}

func importanceOf(m match.Match) int {
	if m.Enhanced == nil {
		return 0
	}
	return m.Enhanced.ImportanceScore
}

func daysFrom(m match.Match, day time.Time) int {
	date, ok := m.Date()
	if !ok {
		return 0
	}
	return match.DaysBetween(day, date)
}

func (c *Classifier) dayStats(matches []match.Match) DayStats {
	stats := DayStats{
		ByCompetition: make(map[string]int),
		TimeSlots: map[string]int{
			SlotMorning:   0,
			SlotAfternoon: 0,
			SlotEvening:   0,
			SlotLateNight: 0,
		},
	}

	for _, m := range matches {
		stats.ByCompetition[m.Competition.Name]++
		stats.TimeSlots[TimeSlot(m.KickoffAt)]++

		if m.Status.IsLive() {
			stats.LiveMatches++
		}
		if importanceOf(m) >= highImportanceMinScore {
			stats.HighImportance++
		}
		if m.Enhanced != nil && m.Enhanced.RivalryFactor != "" {
			stats.Rivalries++
		}
		if c.majorLeagues != nil && c.majorLeagues.IsMajorLeague(m.Competition.Name) {
			stats.MajorLeagueMatches++
		}
	}
	return stats
}

// TimeSlot buckets a kickoff by its UTC hour.
func TimeSlot(kickoff time.Time) string {
	hour := kickoff.UTC().Hour()
	switch {
	case hour >= 6 && hour < 12:
		return SlotMorning
	case hour >= 12 && hour < 18:
		return SlotAfternoon
	case hour >= 18:
		return SlotEvening
	default:
		return SlotLateNight
	}
}
