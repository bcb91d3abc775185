package feed

import (
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/football-insights/internal/domain/match"
)

const (
	scoreboardIDPrefix = "espn_"
	feedIDPrefix       = "fd_"
	regularSeason      = "REGULAR_SEASON"
	leagueType         = "LEAGUE"
)

var scoreboardStatuses = map[string]match.Status{
	"STATUS_SCHEDULED":   match.StatusScheduled,
	"STATUS_IN_PROGRESS": match.StatusLive,
	"STATUS_FIRST_HALF":  match.StatusLive,
	"STATUS_SECOND_HALF": match.StatusLive,
	"STATUS_HALFTIME":    match.StatusLive,
	"STATUS_FINAL":       match.StatusFinished,
	"STATUS_FULL_TIME":   match.StatusFinished,
	"STATUS_POSTPONED":   match.StatusPostponed,
	"STATUS_CANCELED":    match.StatusCancelled,
}

var scoreboardDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z",
}

// Normalize converts a provider event into the canonical match. ok is false
// when the event is malformed and must be skipped.
func Normalize(event Event, leagueName string) (match.Match, bool) {
	switch e := event.(type) {
	case ScoreboardEvent:
		return normalizeScoreboard(e, leagueName)
	case FeedMatch:
		return normalizeFeedMatch(e)
	default:
		return match.Match{}, false
	}
}

func normalizeScoreboard(e ScoreboardEvent, leagueName string) (match.Match, bool) {
	id := strings.TrimSpace(e.ID)
	if id == "" || len(e.Competitors) < 2 {
		return match.Match{}, false
	}

	var home, away *ScoreboardCompetitor
	for i := range e.Competitors {
		c := &e.Competitors[i]
		switch strings.ToLower(strings.TrimSpace(c.HomeAway)) {
		case "home":
			if home == nil {
				home = c
			}
		case "away":
			if away == nil {
				away = c
			}
		}
	}
	if home == nil || away == nil {
		return match.Match{}, false
	}

	kickoff, ok := parseScoreboardDate(e.Date)
	if !ok {
		return match.Match{}, false
	}

	status, ok := scoreboardStatuses[strings.TrimSpace(e.StatusName)]
	if !ok {
		status = match.StatusScheduled
	}

	out := match.Match{
		ID:          scoreboardIDPrefix + id,
		KickoffAt:   kickoff,
		Status:      status,
		Stage:       regularSeason,
		HomeTeam:    scoreboardTeam(*home),
		AwayTeam:    scoreboardTeam(*away),
		Competition: scoreboardCompetition(leagueName),
		Venue:       strings.TrimSpace(e.VenueName),
		Source:      match.SourceScoreboard,
	}
	if status == match.StatusFinished || status == match.StatusLive {
		out.Score = match.Score{
			Home: parseScore(home.Score),
			Away: parseScore(away.Score),
		}
	}

	return out.Sanitize(), true
}

func normalizeFeedMatch(e FeedMatch) (match.Match, bool) {
	if e.ID <= 0 || e.HomeTeam.ID <= 0 || e.AwayTeam.ID <= 0 {
		return match.Match{}, false
	}
	kickoff, err := time.Parse(time.RFC3339, strings.TrimSpace(e.UTCDate))
	if err != nil {
		return match.Match{}, false
	}

	out := match.Match{
		ID:        feedIDPrefix + strconv.FormatInt(e.ID, 10),
		KickoffAt: kickoff,
		Status:    match.NormalizeStatus(e.Status),
		Stage:     strings.TrimSpace(e.Stage),
		Matchday:  e.Matchday,
		HomeTeam:  feedTeam(e.HomeTeam),
		AwayTeam:  feedTeam(e.AwayTeam),
		Score: match.Score{
			Home: e.FullTimeHome,
			Away: e.FullTimeAway,
		},
		Competition: match.CompetitionRef{
			ID:     feedCompetitionID(e.Competition.ID),
			Name:   strings.TrimSpace(e.Competition.Name),
			Type:   strings.TrimSpace(e.Competition.Type),
			Code:   strings.TrimSpace(e.Competition.Code),
			Emblem: strings.TrimSpace(e.Competition.Emblem),
		},
		Venue:  strings.TrimSpace(e.Venue),
		Source: match.SourceFeed,
	}

	return out.Sanitize(), true
}

// ScoreboardCompetitionID derives a stable competition id from the league
// display name.
func ScoreboardCompetitionID(leagueName string) string {
	name := strings.ToLower(strings.TrimSpace(leagueName))
	return scoreboardIDPrefix + strings.ReplaceAll(name, " ", "_")
}

func scoreboardCompetition(leagueName string) match.CompetitionRef {
	name := strings.TrimSpace(leagueName)
	code := []rune(strings.ToUpper(name))
	if len(code) > 3 {
		code = code[:3]
	}
	return match.CompetitionRef{
		ID:   ScoreboardCompetitionID(name),
		Name: name,
		Type: leagueType,
		Code: string(code),
	}
}

func scoreboardTeam(c ScoreboardCompetitor) match.TeamRef {
	name := strings.TrimSpace(c.DisplayName)
	return match.TeamRef{
		ID:        strings.TrimSpace(c.TeamID),
		Name:      name,
		ShortName: name,
		TLA:       strings.TrimSpace(c.Abbreviation),
		Crest:     strings.TrimSpace(c.Logo),
	}
}

func feedTeam(t TeamRef) match.TeamRef {
	return match.TeamRef{
		ID:        strconv.FormatInt(t.ID, 10),
		Name:      strings.TrimSpace(t.Name),
		ShortName: strings.TrimSpace(t.ShortName),
		TLA:       strings.TrimSpace(t.TLA),
		Crest:     strings.TrimSpace(t.Crest),
	}
}

func feedCompetitionID(id int64) string {
	if id <= 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

func parseScoreboardDate(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range scoreboardDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}

func parseScore(raw string) *int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &value
}
