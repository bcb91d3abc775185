package espn

import (
	"strings"

	"github.com/riskibarqy/football-insights/internal/domain/feed"
)

type scoreboardDTO struct {
	Events []eventDTO `json:"events"`
}

type eventDTO struct {
	ID           string           `json:"id"`
	Date         string           `json:"date"`
	Status       statusDTO        `json:"status"`
	Competitions []competitionDTO `json:"competitions"`
}

type statusDTO struct {
	Type struct {
		Name string `json:"name"`
	} `json:"type"`
}

type competitionDTO struct {
	Venue       *venueDTO       `json:"venue"`
	Competitors []competitorDTO `json:"competitors"`
}

type venueDTO struct {
	FullName string `json:"fullName"`
}

type competitorDTO struct {
	HomeAway string  `json:"homeAway"`
	Score    string  `json:"score"`
	Team     teamDTO `json:"team"`
}

type teamDTO struct {
	ID           string `json:"id"`
	DisplayName  string `json:"displayName"`
	Abbreviation string `json:"abbreviation"`
	Logo         string `json:"logo"`
}

// mapEvents flattens the first competition of each event. Events without a
// competition keep an empty competitor list and are dropped by normalization.
func mapEvents(items []eventDTO) []feed.ScoreboardEvent {
	out := make([]feed.ScoreboardEvent, 0, len(items))
	for _, item := range items {
		event := feed.ScoreboardEvent{
			ID:         strings.TrimSpace(item.ID),
			Date:       strings.TrimSpace(item.Date),
			StatusName: strings.TrimSpace(item.Status.Type.Name),
		}
		if len(item.Competitions) > 0 {
			competition := item.Competitions[0]
			if competition.Venue != nil {
				event.VenueName = strings.TrimSpace(competition.Venue.FullName)
			}
			event.Competitors = make([]feed.ScoreboardCompetitor, 0, len(competition.Competitors))
			for _, competitor := range competition.Competitors {
				event.Competitors = append(event.Competitors, feed.ScoreboardCompetitor{
					HomeAway:     strings.TrimSpace(competitor.HomeAway),
					Score:        strings.TrimSpace(competitor.Score),
					TeamID:       strings.TrimSpace(competitor.Team.ID),
					DisplayName:  strings.TrimSpace(competitor.Team.DisplayName),
					Abbreviation: strings.TrimSpace(competitor.Team.Abbreviation),
					Logo:         strings.TrimSpace(competitor.Team.Logo),
				})
			}
		}
		out = append(out, event)
	}
	return out
}
