package importance

import (
	"time"

	"github.com/riskibarqy/football-insights/internal/domain/match"
)

const (
	maxScore = 100

	primeTimeThreshold = 70
	majorThreshold     = 50
	channelThreshold   = 30
)

const (
	TVPrimeTime      = "Prime Time TV"
	TVMajorNetworks  = "Major Sports Networks"
	TVSportsChannels = "Sports Channels"
	TVLeague         = "League Broadcasting"
	TVStreaming      = "Streaming/Regional"

	AttendanceSoldOut  = "Sold Out (70,000+)"
	AttendanceHigh     = "High (50,000+)"
	AttendanceGood     = "Good (30,000+)"
	AttendanceModerate = "Moderate (15,000+)"
	AttendanceLow      = "Low (5,000+)"
)

// Scorer ranks matches by broadcast and fan significance.
type Scorer struct {
	tables *Tables
}

func NewScorer(tables *Tables) *Scorer {
	if tables == nil {
		tables = DefaultTables()
	}
	return &Scorer{tables: tables}
}

func (s *Scorer) Tables() *Tables {
	return s.tables
}

// Score returns a value in [0, 100].
func (s *Scorer) Score(m match.Match) int {
	score := s.tables.CompetitionPoints(m.Competition.Name)

	homeBig := s.tables.IsBigClub(m.HomeTeam.Name)
	awayBig := s.tables.IsBigClub(m.AwayTeam.Name)
	if homeBig || awayBig {
		score += s.tables.eitherBigClubBonus
	}
	if homeBig && awayBig {
		score += s.tables.bothBigClubBonus
	}

	switch {
	case m.Status.IsLive():
		score += s.tables.liveBonus
	case m.Status == match.StatusTimed:
		score += s.tables.timedBonus
	}

	score += s.tables.StageBonus(m.Stage)

	if score > maxScore {
		return maxScore
	}
	if score < 0 {
		return 0
	}
	return score
}

func (s *Scorer) TVCoverage(m match.Match, score int) string {
	switch {
	case score >= primeTimeThreshold:
		return TVPrimeTime
	case score >= majorThreshold:
		return TVMajorNetworks
	case score >= channelThreshold:
		return TVSportsChannels
	case s.tables.IsBroadcastLeague(m.Competition.Name):
		return TVLeague
	default:
		return TVStreaming
	}
}

func (s *Scorer) AttendanceEstimate(m match.Match, score int) string {
	if s.tables.IsMarqueeStadium(m.Venue) {
		return AttendanceSoldOut
	}
	switch {
	case score >= primeTimeThreshold:
		return AttendanceHigh
	case score >= majorThreshold:
		return AttendanceGood
	case score >= channelThreshold:
		return AttendanceModerate
	default:
		return AttendanceLow
	}
}

func (s *Scorer) Rivalry(m match.Match) (string, bool) {
	return s.tables.Rivalry(m.HomeTeam.Name, m.AwayTeam.Name)
}

// Enhance attaches the enhanced info block relative to today.
func (s *Scorer) Enhance(m match.Match, today time.Time) match.Match {
	score := s.Score(m)
	info := &match.EnhancedInfo{
		ImportanceScore:    score,
		TVCoverage:         s.TVCoverage(m, score),
		AttendanceEstimate: s.AttendanceEstimate(m, score),
		Source:             m.Source.Label(),
	}
	if rivalry, ok := s.Rivalry(m); ok {
		info.RivalryFactor = rivalry
	}
	if date, ok := m.Date(); ok {
		info.MatchDate = date.Format(time.DateOnly)
		info.DaysFromToday = match.DaysBetween(today, date)
	}
	m.Enhanced = info
	return m
}
