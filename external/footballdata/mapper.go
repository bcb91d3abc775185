package footballdata

import (
	"strings"

	"github.com/riskibarqy/football-insights/internal/domain/feed"
)

type competitionsEnvelope struct {
	Count        int              `json:"count"`
	Competitions []competitionDTO `json:"competitions"`
}

type teamsEnvelope struct {
	Count int       `json:"count"`
	Teams []teamDTO `json:"teams"`
}

type matchesEnvelope struct {
	Matches []matchDTO `json:"matches"`
}

type areaDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type seasonDTO struct {
	ID              int64  `json:"id"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
	CurrentMatchday *int   `json:"currentMatchday"`
}

type competitionDTO struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Code          string     `json:"code"`
	Type          string     `json:"type"`
	Emblem        string     `json:"emblem"`
	Area          *areaDTO   `json:"area"`
	CurrentSeason *seasonDTO `json:"currentSeason"`
}

type coachDTO struct {
	Name        string `json:"name"`
	Nationality string `json:"nationality"`
}

type contractDTO struct {
	Start string `json:"start"`
	Until string `json:"until"`
}

type squadMemberDTO struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Position    string       `json:"position"`
	DateOfBirth string       `json:"dateOfBirth"`
	Nationality string       `json:"nationality"`
	ShirtNumber *int         `json:"shirtNumber"`
	MarketValue *int64       `json:"marketValue"`
	Contract    *contractDTO `json:"contract"`
}

type teamDTO struct {
	ID                  int64            `json:"id"`
	Name                string           `json:"name"`
	ShortName           string           `json:"shortName"`
	TLA                 string           `json:"tla"`
	Crest               string           `json:"crest"`
	Venue               string           `json:"venue"`
	Founded             *int             `json:"founded"`
	ClubColors          string           `json:"clubColors"`
	Website             string           `json:"website"`
	Area                *areaDTO         `json:"area"`
	Coach               *coachDTO        `json:"coach"`
	RunningCompetitions []competitionDTO `json:"runningCompetitions"`
	Squad               []squadMemberDTO `json:"squad"`
}

type teamRefDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	TLA       string `json:"tla"`
	Crest     string `json:"crest"`
}

type scoreDTO struct {
	FullTime struct {
		Home *int `json:"home"`
		Away *int `json:"away"`
	} `json:"fullTime"`
}

type matchDTO struct {
	ID          int64          `json:"id"`
	UTCDate     string         `json:"utcDate"`
	Status      string         `json:"status"`
	Stage       string         `json:"stage"`
	Matchday    *int           `json:"matchday"`
	Venue       string         `json:"venue"`
	HomeTeam    teamRefDTO     `json:"homeTeam"`
	AwayTeam    teamRefDTO     `json:"awayTeam"`
	Score       scoreDTO       `json:"score"`
	Competition competitionDTO `json:"competition"`
	Area        *areaDTO       `json:"area"`
}

func mapCompetitions(items []competitionDTO) []feed.Competition {
	out := make([]feed.Competition, 0, len(items))
	for _, item := range items {
		out = append(out, mapCompetition(item))
	}
	return out
}

func mapCompetition(item competitionDTO) feed.Competition {
	out := feed.Competition{
		ID:     item.ID,
		Name:   strings.TrimSpace(item.Name),
		Code:   strings.TrimSpace(item.Code),
		Type:   strings.TrimSpace(item.Type),
		Emblem: strings.TrimSpace(item.Emblem),
	}
	if item.Area != nil {
		out.AreaName = strings.TrimSpace(item.Area.Name)
	}
	if item.CurrentSeason != nil {
		out.SeasonStart = item.CurrentSeason.StartDate
		out.SeasonEnd = item.CurrentSeason.EndDate
		out.CurrentMatchday = item.CurrentSeason.CurrentMatchday
	}
	return out
}

func mapTeam(item teamDTO) feed.Team {
	out := feed.Team{
		ID:         item.ID,
		Name:       strings.TrimSpace(item.Name),
		ShortName:  strings.TrimSpace(item.ShortName),
		TLA:        strings.TrimSpace(item.TLA),
		Crest:      strings.TrimSpace(item.Crest),
		Venue:      strings.TrimSpace(item.Venue),
		Founded:    item.Founded,
		ClubColors: strings.TrimSpace(item.ClubColors),
		Website:    strings.TrimSpace(item.Website),
	}
	if item.Area != nil {
		out.AreaName = strings.TrimSpace(item.Area.Name)
	}
	return out
}

func mapTeamDetail(item teamDTO) feed.TeamDetail {
	out := feed.TeamDetail{
		Team:                mapTeam(item),
		RunningCompetitions: mapCompetitions(item.RunningCompetitions),
		Squad:               make([]feed.SquadMember, 0, len(item.Squad)),
	}
	if item.Coach != nil && strings.TrimSpace(item.Coach.Name) != "" {
		out.Coach = &feed.Coach{
			Name:        strings.TrimSpace(item.Coach.Name),
			Nationality: strings.TrimSpace(item.Coach.Nationality),
		}
	}
	for _, member := range item.Squad {
		player := feed.SquadMember{
			ID:          member.ID,
			Name:        strings.TrimSpace(member.Name),
			Position:    strings.TrimSpace(member.Position),
			DateOfBirth: strings.TrimSpace(member.DateOfBirth),
			Nationality: strings.TrimSpace(member.Nationality),
			ShirtNumber: member.ShirtNumber,
			MarketValue: member.MarketValue,
		}
		if member.Contract != nil {
			player.ContractStart = strings.TrimSpace(member.Contract.Start)
			player.ContractUntil = strings.TrimSpace(member.Contract.Until)
		}
		out.Squad = append(out.Squad, player)
	}
	return out
}

func mapTeamRef(item teamRefDTO) feed.TeamRef {
	return feed.TeamRef{
		ID:        item.ID,
		Name:      strings.TrimSpace(item.Name),
		ShortName: strings.TrimSpace(item.ShortName),
		TLA:       strings.TrimSpace(item.TLA),
		Crest:     strings.TrimSpace(item.Crest),
	}
}

// mapMatches keeps malformed rows; feed.Normalize decides what to drop.
func mapMatches(items []matchDTO) []feed.FeedMatch {
	out := make([]feed.FeedMatch, 0, len(items))
	for _, item := range items {
		competition := mapCompetition(item.Competition)
		if competition.AreaName == "" && item.Area != nil {
			competition.AreaName = strings.TrimSpace(item.Area.Name)
		}
		out = append(out, feed.FeedMatch{
			ID:           item.ID,
			UTCDate:      strings.TrimSpace(item.UTCDate),
			Status:       strings.TrimSpace(item.Status),
			Stage:        strings.TrimSpace(item.Stage),
			Matchday:     item.Matchday,
			HomeTeam:     mapTeamRef(item.HomeTeam),
			AwayTeam:     mapTeamRef(item.AwayTeam),
			FullTimeHome: item.Score.FullTime.Home,
			FullTimeAway: item.Score.FullTime.Away,
			Competition:  competition,
			Venue:        strings.TrimSpace(item.Venue),
		})
	}
	return out
}
