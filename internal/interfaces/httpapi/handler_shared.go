package httpapi

import (
	"time"

	"github.com/riskibarqy/football-insights/internal/domain/competition"
	"github.com/riskibarqy/football-insights/internal/domain/feed"
	"github.com/riskibarqy/football-insights/internal/domain/match"
	"github.com/riskibarqy/football-insights/internal/domain/matchday"
	"github.com/riskibarqy/football-insights/internal/domain/squad"
	"github.com/riskibarqy/football-insights/internal/domain/teamform"
	"github.com/riskibarqy/football-insights/internal/usecase"
)

type teamRefDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name,omitempty"`
	TLA       string `json:"tla,omitempty"`
	Crest     string `json:"crest,omitempty"`
}

type competitionRefDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type,omitempty"`
	Code   string `json:"code,omitempty"`
	Emblem string `json:"emblem,omitempty"`
}

type fullTimeDTO struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type scoreDTO struct {
	Winner   *string     `json:"winner"`
	FullTime fullTimeDTO `json:"full_time"`
}

type enhancedInfoDTO struct {
	ImportanceScore    int    `json:"importance_score"`
	TVCoverage         string `json:"tv_coverage"`
	AttendanceEstimate string `json:"attendance_estimate"`
	RivalryFactor      string `json:"rivalry_factor"`
	MatchDate          string `json:"match_date"`
	DaysFromToday      int    `json:"days_from_today"`
	Source             string `json:"source"`
}

type matchDTO struct {
	ID           string            `json:"id"`
	UTCDate      string            `json:"utc_date"`
	Status       string            `json:"status"`
	Stage        string            `json:"stage,omitempty"`
	Matchday     *int              `json:"matchday,omitempty"`
	HomeTeam     teamRefDTO        `json:"home_team"`
	AwayTeam     teamRefDTO        `json:"away_team"`
	Score        scoreDTO          `json:"score"`
	Competition  competitionRefDTO `json:"competition"`
	Venue        string            `json:"venue,omitempty"`
	Source       string            `json:"source"`
	EnhancedInfo *enhancedInfoDTO  `json:"enhanced_info,omitempty"`
}

type dayStatsDTO struct {
	ByCompetition      map[string]int `json:"by_competition"`
	TimeSlots          map[string]int `json:"time_slots"`
	LiveMatches        int            `json:"live_matches"`
	HighImportance     int            `json:"high_importance"`
	Rivalries          int            `json:"rivalries"`
	MajorLeagueMatches int            `json:"major_league_matches"`
}

type matchesTodayDTO struct {
	Date            string              `json:"date"`
	Matches         []matchDTO          `json:"matches"`
	FeaturedMatches []matchDTO          `json:"featured_matches"`
	TodayCount      int                 `json:"today_count"`
	FutureCount     int                 `json:"future_count"`
	TotalMatches    int                 `json:"total_matches"`
	SourceStats     usecase.SourceStats `json:"source_stats"`
	MatchStatistics dayStatsDTO         `json:"match_statistics"`
	LastUpdated     string              `json:"last_updated"`
}

type competitionDTO struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Code            string `json:"code,omitempty"`
	Type            string `json:"type,omitempty"`
	Emblem          string `json:"emblem,omitempty"`
	Area            string `json:"area,omitempty"`
	SeasonStart     string `json:"season_start,omitempty"`
	SeasonEnd       string `json:"season_end,omitempty"`
	CurrentMatchday *int   `json:"current_matchday,omitempty"`
}

type teamDTO struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ShortName  string `json:"short_name,omitempty"`
	TLA        string `json:"tla,omitempty"`
	Crest      string `json:"crest,omitempty"`
	Venue      string `json:"venue,omitempty"`
	Founded    *int   `json:"founded,omitempty"`
	ClubColors string `json:"club_colors,omitempty"`
	Website    string `json:"website,omitempty"`
	Area       string `json:"area,omitempty"`
}

type coachDTO struct {
	Name        string `json:"name"`
	Nationality string `json:"nationality,omitempty"`
}

type squadMemberDTO struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Position      string `json:"position,omitempty"`
	DateOfBirth   string `json:"date_of_birth,omitempty"`
	Nationality   string `json:"nationality,omitempty"`
	ShirtNumber   *int   `json:"shirt_number,omitempty"`
	MarketValue   *int64 `json:"market_value,omitempty"`
	ContractStart string `json:"contract_start,omitempty"`
	ContractUntil string `json:"contract_until,omitempty"`
}

type teamDetailDTO struct {
	teamDTO
	Coach               *coachDTO        `json:"coach,omitempty"`
	RunningCompetitions []competitionDTO `json:"running_competitions"`
	Squad               []squadMemberDTO `json:"squad"`
}

type recordDTO struct {
	Wins   int `json:"wins"`
	Draws  int `json:"draws"`
	Losses int `json:"losses"`
}

type formSummaryDTO struct {
	WinPercentage   float64 `json:"win_percentage"`
	Points          int     `json:"points"`
	AvgGoalsFor     float64 `json:"avg_goals_for"`
	AvgGoalsAgainst float64 `json:"avg_goals_against"`
	GoalDifference  int     `json:"goal_difference"`
}

type recentFormDTO struct {
	MatchesPlayed int             `json:"matches_played"`
	Wins          int             `json:"wins"`
	Draws         int             `json:"draws"`
	Losses        int             `json:"losses"`
	GoalsFor      int             `json:"goals_for"`
	GoalsAgainst  int             `json:"goals_against"`
	CleanSheets   int             `json:"clean_sheets"`
	Home          recordDTO       `json:"home_record"`
	Away          recordDTO       `json:"away_record"`
	Form          []string        `json:"form"`
	Competitions  []string        `json:"competitions"`
	Summary       *formSummaryDTO `json:"summary,omitempty"`
}

type squadPlayerDTO struct {
	squadMemberDTO
	Group string `json:"group"`
	Age   *int   `json:"age"`
}

type positionGroupDTO struct {
	Group   string           `json:"group"`
	Label   string           `json:"label"`
	Players []squadPlayerDTO `json:"players"`
}

type nationalityCountDTO struct {
	Country    string  `json:"country"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type squadSummaryDTO struct {
	TotalPlayers       int      `json:"total_players"`
	AverageAge         *float64 `json:"average_age"`
	Youngest           *int     `json:"youngest"`
	Oldest             *int     `json:"oldest"`
	TotalNationalities int      `json:"total_nationalities"`
	Nationalities      []string `json:"nationalities"`
}

type ageDistributionDTO struct {
	Under20   int `json:"under_20"`
	Age20To24 int `json:"20_24"`
	Age25To29 int `json:"25_29"`
	Age30Plus int `json:"30_plus"`
}

type squadAnalyticsDTO struct {
	TopNationality       nationalityCountDTO `json:"top_nationality"`
	AgeDistribution      ageDistributionDTO  `json:"age_distribution"`
	PositionDistribution map[string]int      `json:"position_distribution"`
	SquadDepth           map[string]int      `json:"squad_depth"`
}

type formationDTO struct {
	Formation   string `json:"formation"`
	Goalkeepers int    `json:"goalkeepers"`
	Defenders   int    `json:"defenders"`
	Midfielders int    `json:"midfielders"`
	Attackers   int    `json:"attackers"`
}

type squadAnalysisDTO struct {
	ByPosition    []positionGroupDTO    `json:"by_position"`
	YoungTalents  []squadPlayerDTO      `json:"young_talents"`
	Experienced   []squadPlayerDTO      `json:"experienced_players"`
	Summary       squadSummaryDTO       `json:"summary"`
	Nationalities []nationalityCountDTO `json:"nationalities"`
	Analytics     squadAnalyticsDTO     `json:"analytics"`
	Formation     formationDTO          `json:"formation"`
}

type competitionFixtureDTO struct {
	Date     string     `json:"date"`
	Status   string     `json:"status"`
	Stage    string     `json:"stage,omitempty"`
	Matchday *int       `json:"matchday,omitempty"`
	Opponent teamRefDTO `json:"opponent"`
}

type competitionBucketDTO struct {
	ID               string                  `json:"id"`
	Name             string                  `json:"name"`
	Type             string                  `json:"type,omitempty"`
	Code             string                  `json:"code,omitempty"`
	Emblem           string                  `json:"emblem,omitempty"`
	Status           string                  `json:"status"`
	Matches          []competitionFixtureDTO `json:"matches"`
	NextMatch        *competitionFixtureDTO  `json:"next_match,omitempty"`
	LastMatch        *competitionFixtureDTO  `json:"last_match,omitempty"`
	MatchesPlayed    *int                    `json:"matches_played,omitempty"`
	MatchesRemaining *int                    `json:"matches_remaining,omitempty"`
	Starts           string                  `json:"starts,omitempty"`
	Ended            string                  `json:"ended,omitempty"`
}

type competitionAnalysisDTO struct {
	Active            []competitionBucketDTO `json:"active"`
	Upcoming          []competitionBucketDTO `json:"upcoming"`
	Completed         []competitionBucketDTO `json:"completed"`
	TotalCompetitions int                    `json:"total_competitions"`
}

type teamAnalysisDTO struct {
	TeamInfo            teamDetailDTO          `json:"team_info"`
	RecentForm          recentFormDTO          `json:"stats"`
	SquadAnalysis       squadAnalysisDTO       `json:"squad_analysis"`
	UpcomingMatches     []matchDTO             `json:"upcoming_matches"`
	CompetitionAnalysis competitionAnalysisDTO `json:"competition_analysis"`
	Degraded            []string               `json:"degraded,omitempty"`
	GeneratedAt         string                 `json:"generated_at"`
}

type rosterPlayerDTO struct {
	squadPlayerDTO
	TimeAtClub string `json:"time_at_club"`
}

type rosterGroupDTO struct {
	Position string            `json:"position"`
	Players  []rosterPlayerDTO `json:"players"`
}

type teamPlayersDTO struct {
	Team              teamDTO           `json:"team"`
	Players           []rosterPlayerDTO `json:"players"`
	PlayersByPosition []rosterGroupDTO  `json:"players_by_position"`
	TotalPlayers      int               `json:"total_players"`
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func teamRefToDTO(v match.TeamRef) teamRefDTO {
	return teamRefDTO{
		ID:        v.ID,
		Name:      v.Name,
		ShortName: v.ShortName,
		TLA:       v.TLA,
		Crest:     v.Crest,
	}
}

func matchToDTO(v match.Match) matchDTO {
	out := matchDTO{
		ID:       v.ID,
		UTCDate:  formatTime(v.KickoffAt),
		Status:   string(v.Status),
		Stage:    v.Stage,
		Matchday: v.Matchday,
		HomeTeam: teamRefToDTO(v.HomeTeam),
		AwayTeam: teamRefToDTO(v.AwayTeam),
		Score: scoreDTO{
			FullTime: fullTimeDTO{Home: v.Score.Home, Away: v.Score.Away},
		},
		Competition: competitionRefDTO{
			ID:     v.Competition.ID,
			Name:   v.Competition.Name,
			Type:   v.Competition.Type,
			Code:   v.Competition.Code,
			Emblem: v.Competition.Emblem,
		},
		Venue:  v.Venue,
		Source: string(v.Source),
	}
	if winner := v.Winner(); winner != "" {
		out.Score.Winner = &winner
	}
	if e := v.Enhanced; e != nil {
		out.EnhancedInfo = &enhancedInfoDTO{
			ImportanceScore:    e.ImportanceScore,
			TVCoverage:         e.TVCoverage,
			AttendanceEstimate: e.AttendanceEstimate,
			RivalryFactor:      e.RivalryFactor,
			MatchDate:          e.MatchDate,
			DaysFromToday:      e.DaysFromToday,
			Source:             e.Source,
		}
	}
	return out
}

func matchesToDTO(items []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchToDTO(item))
	}
	return out
}

func dayStatsToDTO(v matchday.DayStats) dayStatsDTO {
	out := dayStatsDTO{
		ByCompetition:      v.ByCompetition,
		TimeSlots:          v.TimeSlots,
		LiveMatches:        v.LiveMatches,
		HighImportance:     v.HighImportance,
		Rivalries:          v.Rivalries,
		MajorLeagueMatches: v.MajorLeagueMatches,
	}
	if out.ByCompetition == nil {
		out.ByCompetition = map[string]int{}
	}
	if out.TimeSlots == nil {
		out.TimeSlots = map[string]int{}
	}
	return out
}

func matchesTodayToDTO(v usecase.MatchesToday) matchesTodayDTO {
	stats := v.SourceStats
	if stats.Calls == nil {
		stats.Calls = []usecase.CallResult{}
	}
	return matchesTodayDTO{
		Date:            v.Date,
		Matches:         matchesToDTO(v.All),
		FeaturedMatches: matchesToDTO(v.Featured),
		TodayCount:      v.TodayCount,
		FutureCount:     v.FutureCount,
		TotalMatches:    v.TotalMatches,
		SourceStats:     stats,
		MatchStatistics: dayStatsToDTO(v.Statistics),
		LastUpdated:     formatTime(v.LastUpdated),
	}
}

func competitionToDTO(v feed.Competition) competitionDTO {
	return competitionDTO{
		ID:              v.ID,
		Name:            v.Name,
		Code:            v.Code,
		Type:            v.Type,
		Emblem:          v.Emblem,
		Area:            v.AreaName,
		SeasonStart:     v.SeasonStart,
		SeasonEnd:       v.SeasonEnd,
		CurrentMatchday: v.CurrentMatchday,
	}
}

func teamToDTO(v feed.Team) teamDTO {
	return teamDTO{
		ID:         v.ID,
		Name:       v.Name,
		ShortName:  v.ShortName,
		TLA:        v.TLA,
		Crest:      v.Crest,
		Venue:      v.Venue,
		Founded:    v.Founded,
		ClubColors: v.ClubColors,
		Website:    v.Website,
		Area:       v.AreaName,
	}
}

func teamDetailToDTO(v feed.TeamDetail) teamDetailDTO {
	out := teamDetailDTO{
		teamDTO:             teamToDTO(v.Team),
		RunningCompetitions: make([]competitionDTO, 0, len(v.RunningCompetitions)),
		Squad:               make([]squadMemberDTO, 0, len(v.Squad)),
	}
	if v.Coach != nil {
		out.Coach = &coachDTO{Name: v.Coach.Name, Nationality: v.Coach.Nationality}
	}
	for _, item := range v.RunningCompetitions {
		out.RunningCompetitions = append(out.RunningCompetitions, competitionToDTO(item))
	}
	for _, item := range v.Squad {
		out.Squad = append(out.Squad, squadMemberDTO{
			ID:            item.ID,
			Name:          item.Name,
			Position:      item.Position,
			DateOfBirth:   item.DateOfBirth,
			Nationality:   item.Nationality,
			ShirtNumber:   item.ShirtNumber,
			MarketValue:   item.MarketValue,
			ContractStart: item.ContractStart,
			ContractUntil: item.ContractUntil,
		})
	}
	return out
}

func recentFormToDTO(v teamform.Stats) recentFormDTO {
	out := recentFormDTO{
		MatchesPlayed: v.MatchesPlayed,
		Wins:          v.Wins,
		Draws:         v.Draws,
		Losses:        v.Losses,
		GoalsFor:      v.GoalsFor,
		GoalsAgainst:  v.GoalsAgainst,
		CleanSheets:   v.CleanSheets,
		Home:          recordDTO(v.Home),
		Away:          recordDTO(v.Away),
		Form:          v.Form,
		Competitions:  v.Competitions,
	}
	if out.Form == nil {
		out.Form = []string{}
	}
	if out.Competitions == nil {
		out.Competitions = []string{}
	}
	if v.Summary != nil {
		summary := formSummaryDTO(*v.Summary)
		out.Summary = &summary
	}
	return out
}

func squadPlayerToDTO(v squad.Member) squadPlayerDTO {
	return squadPlayerDTO{
		squadMemberDTO: squadMemberDTO{
			ID:            v.ID,
			Name:          v.Name,
			Position:      v.Position,
			DateOfBirth:   v.DateOfBirth,
			Nationality:   v.Nationality,
			ShirtNumber:   v.ShirtNumber,
			MarketValue:   v.MarketValue,
			ContractStart: v.ContractStart,
			ContractUntil: v.ContractUntil,
		},
		Group: string(v.Group),
		Age:   v.Age,
	}
}

func squadPlayersToDTO(items []squad.Member) []squadPlayerDTO {
	out := make([]squadPlayerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, squadPlayerToDTO(item))
	}
	return out
}

func nationalityCountToDTO(v squad.NationalityCount) nationalityCountDTO {
	return nationalityCountDTO{Country: v.Country, Count: v.Count, Percentage: v.Percentage}
}

func squadAnalysisToDTO(v squad.Analysis) squadAnalysisDTO {
	out := squadAnalysisDTO{
		ByPosition:   make([]positionGroupDTO, 0, len(v.ByPosition)),
		YoungTalents: squadPlayersToDTO(v.YoungTalents),
		Experienced:  squadPlayersToDTO(v.Experienced),
		Summary: squadSummaryDTO{
			TotalPlayers:       v.Summary.TotalPlayers,
			AverageAge:         v.Summary.AverageAge,
			Youngest:           v.Summary.Youngest,
			Oldest:             v.Summary.Oldest,
			TotalNationalities: v.Summary.TotalNationalities,
			Nationalities:      v.Summary.Nationalities,
		},
		Nationalities: make([]nationalityCountDTO, 0, len(v.Nationalities)),
		Analytics: squadAnalyticsDTO{
			TopNationality:       nationalityCountToDTO(v.Analytics.TopNationality),
			AgeDistribution:      ageDistributionDTO(v.Analytics.AgeDistribution),
			PositionDistribution: v.Analytics.PositionDistribution,
			SquadDepth:           make(map[string]int, len(v.Analytics.SquadDepth)),
		},
		Formation: formationDTO(v.Formation),
	}
	if out.Summary.Nationalities == nil {
		out.Summary.Nationalities = []string{}
	}
	if out.Analytics.PositionDistribution == nil {
		out.Analytics.PositionDistribution = map[string]int{}
	}
	for group, count := range v.Analytics.SquadDepth {
		out.Analytics.SquadDepth[string(group)] = count
	}
	for _, group := range v.ByPosition {
		out.ByPosition = append(out.ByPosition, positionGroupDTO{
			Group:   string(group.Group),
			Label:   group.Label,
			Players: squadPlayersToDTO(group.Players),
		})
	}
	for _, item := range v.Nationalities {
		out.Nationalities = append(out.Nationalities, nationalityCountToDTO(item))
	}
	return out
}

func competitionFixtureToDTO(v competition.Fixture) competitionFixtureDTO {
	return competitionFixtureDTO{
		Date:     formatTime(v.Date),
		Status:   string(v.Status),
		Stage:    v.Stage,
		Matchday: v.Matchday,
		Opponent: teamRefToDTO(v.Opponent),
	}
}

func competitionBucketsToDTO(items []competition.Bucket) []competitionBucketDTO {
	out := make([]competitionBucketDTO, 0, len(items))
	for _, item := range items {
		bucket := competitionBucketDTO{
			ID:               item.ID,
			Name:             item.Name,
			Type:             item.Type,
			Code:             item.Code,
			Emblem:           item.Emblem,
			Status:           string(item.Status),
			Matches:          make([]competitionFixtureDTO, 0, len(item.Matches)),
			MatchesPlayed:    item.MatchesPlayed,
			MatchesRemaining: item.MatchesRemaining,
		}
		for _, fixture := range item.Matches {
			bucket.Matches = append(bucket.Matches, competitionFixtureToDTO(fixture))
		}
		if item.NextMatch != nil {
			next := competitionFixtureToDTO(*item.NextMatch)
			bucket.NextMatch = &next
		}
		if item.LastMatch != nil {
			last := competitionFixtureToDTO(*item.LastMatch)
			bucket.LastMatch = &last
		}
		if item.Starts != nil {
			bucket.Starts = formatTime(*item.Starts)
		}
		if item.Ended != nil {
			bucket.Ended = formatTime(*item.Ended)
		}
		out = append(out, bucket)
	}
	return out
}

func teamAnalysisToDTO(v usecase.TeamAnalysis) teamAnalysisDTO {
	return teamAnalysisDTO{
		TeamInfo:        teamDetailToDTO(v.Team),
		RecentForm:      recentFormToDTO(v.RecentForm),
		SquadAnalysis:   squadAnalysisToDTO(v.Squad),
		UpcomingMatches: matchesToDTO(v.UpcomingMatches),
		CompetitionAnalysis: competitionAnalysisDTO{
			Active:            competitionBucketsToDTO(v.Competitions.Active),
			Upcoming:          competitionBucketsToDTO(v.Competitions.Upcoming),
			Completed:         competitionBucketsToDTO(v.Competitions.Completed),
			TotalCompetitions: v.Competitions.TotalCompetitions,
		},
		Degraded:    v.Degraded,
		GeneratedAt: formatTime(v.GeneratedAt),
	}
}

func rosterPlayersToDTO(items []squad.RosterPlayer) []rosterPlayerDTO {
	out := make([]rosterPlayerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, rosterPlayerDTO{
			squadPlayerDTO: squadPlayerToDTO(item.Member),
			TimeAtClub:     item.TimeAtClub,
		})
	}
	return out
}

func teamPlayersToDTO(v usecase.TeamPlayers) teamPlayersDTO {
	out := teamPlayersDTO{
		Team:              teamToDTO(v.Team),
		Players:           rosterPlayersToDTO(v.Roster.Players),
		PlayersByPosition: make([]rosterGroupDTO, 0, len(v.Roster.ByPosition)),
		TotalPlayers:      v.Roster.Total,
	}
	for _, group := range v.Roster.ByPosition {
		out.PlayersByPosition = append(out.PlayersByPosition, rosterGroupDTO{
			Position: group.Position,
			Players:  rosterPlayersToDTO(group.Players),
		})
	}
	return out
}
