package match

import (
	"strings"
	"time"
)

type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusTimed     Status = "TIMED"
	StatusLive      Status = "LIVE"
	StatusInPlay    Status = "IN_PLAY"
	StatusFinished  Status = "FINISHED"
	StatusPostponed Status = "POSTPONED"
	StatusCancelled Status = "CANCELLED"
)

const (
	WinnerHome = "HOME_TEAM"
	WinnerAway = "AWAY_TEAM"
	WinnerDraw = "DRAW"
)

type Source string

const (
	SourceScoreboard Source = "espn"
	SourceFeed       Source = "football-data"
)

// Label is the display tag attached to enhanced match info.
func (s Source) Label() string {
	switch s {
	case SourceScoreboard:
		return "ESPN"
	case SourceFeed:
		return "football-data.org"
	default:
		return string(s)
	}
}

type TeamRef struct {
	ID        string
	Name      string
	ShortName string
	TLA       string
	Crest     string
}

type CompetitionRef struct {
	ID     string
	Name   string
	Type   string
	Code   string
	Emblem string
}

// Score holds the full-time result. Nil sides mean the value is unknown.
type Score struct {
	Home *int
	Away *int
}

func (s Score) Complete() bool {
	return s.Home != nil && s.Away != nil
}

type EnhancedInfo struct {
	ImportanceScore    int
	TVCoverage         string
	AttendanceEstimate string
	RivalryFactor      string
	MatchDate          string
	DaysFromToday      int
	Source             string
}

// Match is the canonical record every provider payload is normalized into.
type Match struct {
	ID          string
	KickoffAt   time.Time
	Status      Status
	Stage       string
	Matchday    *int
	HomeTeam    TeamRef
	AwayTeam    TeamRef
	Score       Score
	Competition CompetitionRef
	Venue       string
	Source      Source
	Enhanced    *EnhancedInfo
}

// Winner derives the result from the score. Empty unless the match is finished
// and both sides are known.
func (m Match) Winner() string {
	if m.Status != StatusFinished || !m.Score.Complete() {
		return ""
	}
	switch home, away := *m.Score.Home, *m.Score.Away; {
	case home > away:
		return WinnerHome
	case away > home:
		return WinnerAway
	default:
		return WinnerDraw
	}
}

// Sanitize drops scores for statuses that cannot carry one.
func (m Match) Sanitize() Match {
	if !m.Status.CarriesScore() {
		m.Score = Score{}
	}
	m.KickoffAt = m.KickoffAt.UTC()
	return m
}

// KickoffKey is the timestamp string used as the last ordering tie-break.
func (m Match) KickoffKey() string {
	if m.KickoffAt.IsZero() {
		return ""
	}
	return m.KickoffAt.UTC().Format(time.RFC3339)
}

// Date returns the UTC calendar date of kickoff. ok is false when the kickoff
// is unknown.
func (m Match) Date() (time.Time, bool) {
	if m.KickoffAt.IsZero() {
		return time.Time{}, false
	}
	return DateOf(m.KickoffAt), true
}

// DateOf truncates t to midnight UTC.
func DateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole calendar days from -> to.
func DaysBetween(from, to time.Time) int {
	return int(DateOf(to).Sub(DateOf(from)).Hours() / 24)
}

func (s Status) IsLive() bool {
	return s == StatusLive || s == StatusInPlay
}

func (s Status) IsFinished() bool {
	return s == StatusFinished
}

func (s Status) IsPending() bool {
	return s == StatusScheduled || s == StatusTimed
}

func (s Status) CarriesScore() bool {
	return s.IsFinished() || s.IsLive()
}

// NormalizeStatus folds provider status strings into the canonical enum.
func NormalizeStatus(value string) Status {
	switch status := Status(strings.ToUpper(strings.TrimSpace(value))); status {
	case StatusScheduled, StatusTimed, StatusLive, StatusInPlay, StatusFinished, StatusPostponed, StatusCancelled:
		return status
	case "PAUSED", "HT":
		return StatusInPlay
	case "SUSPENDED":
		return StatusPostponed
	case "AWARDED":
		return StatusFinished
	case "CANCELED":
		return StatusCancelled
	default:
		return StatusScheduled
	}
}
