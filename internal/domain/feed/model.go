package feed

import (
	"time"

	"github.com/riskibarqy/football-insights/internal/domain/match"
)

// Event is a provider-native match payload. Implemented by ScoreboardEvent and
// FeedMatch only.
type Event interface {
	source() match.Source
}

// ScoreboardEvent mirrors one event of the ESPN scoreboard payload.
type ScoreboardEvent struct {
	ID          string
	Date        string
	StatusName  string
	Competitors []ScoreboardCompetitor
	VenueName   string
}

type ScoreboardCompetitor struct {
	HomeAway     string
	Score        string
	TeamID       string
	DisplayName  string
	Abbreviation string
	Logo         string
}

func (ScoreboardEvent) source() match.Source { return match.SourceScoreboard }

// FeedMatch mirrors a football-data.org v4 match.
type FeedMatch struct {
	ID           int64
	UTCDate      string
	Status       string
	Stage        string
	Matchday     *int
	HomeTeam     TeamRef
	AwayTeam     TeamRef
	FullTimeHome *int
	FullTimeAway *int
	Competition  Competition
	Venue        string
}

func (FeedMatch) source() match.Source { return match.SourceFeed }

type TeamRef struct {
	ID        int64
	Name      string
	ShortName string
	TLA       string
	Crest     string
}

type Competition struct {
	ID              int64
	Name            string
	Code            string
	Type            string
	Emblem          string
	AreaName        string
	SeasonStart     string
	SeasonEnd       string
	CurrentMatchday *int
}

type Team struct {
	ID         int64
	Name       string
	ShortName  string
	TLA        string
	Crest      string
	Venue      string
	Founded    *int
	ClubColors string
	Website    string
	AreaName   string
}

type Coach struct {
	Name        string
	Nationality string
}

type TeamDetail struct {
	Team
	Coach               *Coach
	RunningCompetitions []Competition
	Squad               []SquadMember
}

type SquadMember struct {
	ID            int64
	Name          string
	Position      string
	DateOfBirth   string
	Nationality   string
	ShirtNumber   *int
	MarketValue   *int64
	ContractStart string
	ContractUntil string
}

type TeamMatchesQuery struct {
	Limit  int
	Status string
}

type MatchesQuery struct {
	DateFrom time.Time
	DateTo   time.Time
}
