package feed

import (
	"context"
	"time"
)

// ScoreboardClient fetches one league's scoreboard for a single day.
type ScoreboardClient interface {
	GetScoreboard(ctx context.Context, leagueCode string, date time.Time, limit int) ([]ScoreboardEvent, error)
}

// FootballDataClient exposes the football-data.org endpoints the service reads.
type FootballDataClient interface {
	GetCompetitions(ctx context.Context) ([]Competition, error)
	GetTeams(ctx context.Context, competitionID string) ([]Team, error)
	GetTeam(ctx context.Context, teamID string) (TeamDetail, error)
	GetTeamMatches(ctx context.Context, teamID string, query TeamMatchesQuery) ([]FeedMatch, error)
	GetMatches(ctx context.Context, query MatchesQuery) ([]FeedMatch, error)
}
