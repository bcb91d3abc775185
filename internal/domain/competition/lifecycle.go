package competition

import (
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/football-insights/internal/domain/match"
)

type Lifecycle string

const (
	LifecycleActive    Lifecycle = "active"
	LifecycleUpcoming  Lifecycle = "upcoming"
	LifecycleCompleted Lifecycle = "completed"
	LifecycleUnknown   Lifecycle = "unknown"
)

const unlistedPriority = 99

var priorities = map[string]int{
	"UEFA Champions League":  1,
	"UEFA Europa League":     2,
	"UEFA Conference League": 3,
	"Premier League":         4,
	"La Liga":                4,
	"Primera Division":       4,
	"Serie A":                4,
	"Bundesliga":             4,
	"Ligue 1":                4,
	"FA Cup":                 5,
	"Copa del Rey":           5,
	"DFB-Pokal":              5,
	"Coppa Italia":           5,
	"EFL Cup":                6,
	"Championship":           7,
}

// Fixture is one team match reduced to what the lifecycle view shows.
type Fixture struct {
	Date     time.Time
	Status   match.Status
	Stage    string
	Matchday *int
	Opponent match.TeamRef
}

type Bucket struct {
	ID               string
	Name             string
	Type             string
	Code             string
	Emblem           string
	Matches          []Fixture
	Status           Lifecycle
	NextMatch        *Fixture
	LastMatch        *Fixture
	MatchesPlayed    *int
	MatchesRemaining *int
	Starts           *time.Time
	Ended            *time.Time
}

type Analysis struct {
	Active            []Bucket
	Upcoming          []Bucket
	Completed         []Bucket
	TotalCompetitions int
}

// Priority ranks a competition by name; lower is more prominent.
func Priority(name string) int {
	if p, ok := priorities[strings.TrimSpace(name)]; ok {
		return p
	}
	return unlistedPriority
}

// Analyze groups a team's matches by competition and classifies each
// competition relative to now.
func Analyze(matches []match.Match, teamID string, now time.Time) Analysis {
	order := make([]string, 0, 8)
	buckets := make(map[string]*Bucket, 8)

	for _, m := range matches {
		id := strings.TrimSpace(m.Competition.ID)
		if id == "" || m.KickoffAt.IsZero() {
			continue
		}
		bucket, ok := buckets[id]
		if !ok {
			bucket = &Bucket{
				ID:     id,
				Name:   m.Competition.Name,
				Type:   m.Competition.Type,
				Code:   m.Competition.Code,
				Emblem: m.Competition.Emblem,
			}
			buckets[id] = bucket
			order = append(order, id)
		}
		bucket.Matches = append(bucket.Matches, Fixture{
			Date:     m.KickoffAt.UTC(),
			Status:   m.Status,
			Stage:    m.Stage,
			Matchday: m.Matchday,
			Opponent: opponentOf(m, teamID),
		})
	}

	out := Analysis{TotalCompetitions: len(order)}
	for _, id := range order {
		bucket := buckets[id]
		classify(bucket, now)
		switch bucket.Status {
		case LifecycleActive:
			out.Active = append(out.Active, *bucket)
		case LifecycleUpcoming:
			out.Upcoming = append(out.Upcoming, *bucket)
		case LifecycleCompleted:
			out.Completed = append(out.Completed, *bucket)
		}
	}

	sortBuckets(out.Active, now)
	sortBuckets(out.Upcoming, now)
	sortBuckets(out.Completed, now)
	return out
}

func classify(bucket *Bucket, now time.Time) {
	sort.SliceStable(bucket.Matches, func(i, j int) bool {
		return bucket.Matches[i].Date.Before(bucket.Matches[j].Date)
	})

	var upcoming, recent []int
	for i, f := range bucket.Matches {
		switch {
		case f.Date.After(now) && f.Status.IsPending():
			upcoming = append(upcoming, i)
		case !f.Date.After(now) && (f.Status.IsFinished() || f.Status.IsLive()):
			recent = append(recent, i)
		}
	}

	switch {
	case len(upcoming) > 0 && len(recent) > 0:
		bucket.Status = LifecycleActive
		bucket.MatchesPlayed = intPtr(len(recent))
		bucket.MatchesRemaining = intPtr(len(upcoming))
		bucket.NextMatch = fixturePtr(bucket.Matches[upcoming[0]])
		bucket.LastMatch = fixturePtr(bucket.Matches[recent[len(recent)-1]])
	case len(upcoming) > 0:
		bucket.Status = LifecycleUpcoming
		bucket.MatchesRemaining = intPtr(len(upcoming))
		starts := bucket.Matches[upcoming[0]].Date
		bucket.Starts = &starts
		bucket.NextMatch = fixturePtr(bucket.Matches[upcoming[0]])
	case len(recent) > 0:
		bucket.Status = LifecycleCompleted
		bucket.MatchesPlayed = intPtr(len(recent))
		ended := bucket.Matches[recent[len(recent)-1]].Date
		bucket.Ended = &ended
		bucket.LastMatch = fixturePtr(bucket.Matches[recent[len(recent)-1]])
	default:
		bucket.Status = LifecycleUnknown
	}
}

func sortBuckets(items []Bucket, now time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		pi, pj := Priority(items[i].Name), Priority(items[j].Name)
		if pi != pj {
			return pi < pj
		}
		return sortDate(items[i], now).Before(sortDate(items[j], now))
	})
}

func sortDate(b Bucket, now time.Time) time.Time {
	if b.Status == LifecycleUpcoming && b.Starts != nil {
		return *b.Starts
	}
	return now
}

func opponentOf(m match.Match, teamID string) match.TeamRef {
	if m.HomeTeam.ID == strings.TrimSpace(teamID) {
		return m.AwayTeam
	}
	return m.HomeTeam
}

func intPtr(v int) *int { return &v }

func fixturePtr(f Fixture) *Fixture { return &f }
