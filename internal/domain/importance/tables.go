package importance

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tables holds the static lookup data the scorer reads. It is built once at
// startup and never mutated afterwards.
type Tables struct {
	competitionPoints        map[string]int
	defaultCompetitionPoints int
	bigClubs                 map[string]struct{}
	eitherBigClubBonus       int
	bothBigClubBonus         int
	liveBonus                int
	timedBonus               int
	stageBonus               map[string]int
	rivalries                map[string]string
	broadcastLeagues         map[string]struct{}
	marqueeStadiums          []string
	majorLeagues             map[string]struct{}
}

type Rivalry struct {
	Home  string `yaml:"home"`
	Away  string `yaml:"away"`
	Label string `yaml:"label"`
}

// TablesFile is the YAML shape accepted by LoadTables. Omitted sections keep
// the defaults.
type TablesFile struct {
	CompetitionPoints        map[string]int `yaml:"competition_points"`
	DefaultCompetitionPoints *int           `yaml:"default_competition_points"`
	BigClubs                 []string       `yaml:"big_clubs"`
	StageBonus               map[string]int `yaml:"stage_bonus"`
	Rivalries                []Rivalry      `yaml:"rivalries"`
	BroadcastLeagues         []string       `yaml:"broadcast_leagues"`
	MarqueeStadiums          []string       `yaml:"marquee_stadiums"`
	MajorLeagues             []string       `yaml:"major_leagues"`
}

var defaultCompetitionPoints = map[string]int{
	"FIFA World Cup":                50,
	"European Championship":         45,
	"UEFA Champions League":         40,
	"Premier League":                35,
	"La Liga":                       32,
	"Primera Division":              32,
	"Bundesliga":                    30,
	"Serie A":                       30,
	"Ligue 1":                       28,
	"UEFA Europa League":            25,
	"Copa Libertadores":             25,
	"Eredivisie":                    22,
	"UEFA Conference League":        20,
	"Primeira Liga":                 20,
	"Brasileirão":                   20,
	"Campeonato Brasileiro Série A": 20,
	"Pro League":                    18,
	"Süper Lig":                     18,
	"Championship":                  18,
	"Liga Profesional":              18,
	"Austrian Bundesliga":           16,
	"2. Bundesliga":                 16,
	"Scottish Premiership":          15,
	"Segunda División":              15,
	"Copa del Rey":                  15,
	"FA Cup":                        15,
	"Serie B":                       14,
	"Liga MX":                       14,
	"DFB-Pokal":                     12,
	"Coppa Italia":                  12,
	"MLS":                           12,
	"Coupe de France":               10,
	"J1 League":                     10,
	"K League 1":                    8,
}

var defaultBigClubs = []string{
	// England
	"Manchester United", "Manchester City", "Liverpool", "Arsenal", "Chelsea",
	"Tottenham", "Newcastle United", "Aston Villa", "West Ham United",
	// Spain
	"Real Madrid", "Barcelona", "Atletico Madrid", "Sevilla", "Real Betis", "Villarreal",
	// Germany
	"Bayern Munich", "Borussia Dortmund", "RB Leipzig", "Bayer Leverkusen", "Eintracht Frankfurt",
	// Italy
	"Juventus", "AC Milan", "Inter Milan", "AS Roma", "Napoli", "Lazio", "Atalanta", "Fiorentina",
	// France
	"Paris Saint-Germain", "Olympique Marseille", "Olympique Lyon", "AS Monaco", "Lille",
	// Netherlands
	"Ajax", "PSV Eindhoven", "Feyenoord", "AZ Alkmaar",
	// Portugal
	"Benfica", "FC Porto", "Sporting CP", "SC Braga",
	// Belgium
	"Club Brugge", "Anderlecht", "Standard Liège", "Genk",
	// Turkey
	"Galatasaray", "Fenerbahce", "Besiktas", "Trabzonspor",
	// Scotland
	"Celtic", "Rangers", "Aberdeen",
	// Brazil
	"Flamengo", "Palmeiras", "Santos", "São Paulo", "Corinthians", "Grêmio", "Internacional",
	// Argentina
	"River Plate", "Boca Juniors", "Racing Club", "Independiente", "San Lorenzo",
}

var defaultStageBonus = map[string]int{
	"FINAL":          20,
	"SEMI_FINALS":    15,
	"QUARTER_FINALS": 10,
	"ROUND_OF_16":    8,
	"LAST_16":        8,
	"PLAYOFFS":       5,
}

var defaultRivalries = []Rivalry{
	{Home: "Manchester United", Away: "Liverpool", Label: "Historic Rivalry"},
	{Home: "Manchester United", Away: "Manchester City", Label: "Manchester Derby"},
	{Home: "Arsenal", Away: "Tottenham", Label: "North London Derby"},
	{Home: "Liverpool", Away: "Everton", Label: "Merseyside Derby"},
	{Home: "Chelsea", Away: "Arsenal", Label: "London Derby"},
	{Home: "Real Madrid", Away: "Barcelona", Label: "El Clásico"},
	{Home: "Real Madrid", Away: "Atletico Madrid", Label: "Madrid Derby"},
	{Home: "Barcelona", Away: "Espanyol", Label: "Barcelona Derby"},
	{Home: "Juventus", Away: "AC Milan", Label: "Classic Rivalry"},
	{Home: "Inter Milan", Away: "AC Milan", Label: "Derby della Madonnina"},
	{Home: "AS Roma", Away: "Lazio", Label: "Derby della Capitale"},
	{Home: "Bayern Munich", Away: "Borussia Dortmund", Label: "Der Klassiker"},
	{Home: "Schalke 04", Away: "Borussia Dortmund", Label: "Revierderby"},
	{Home: "Ajax", Away: "Feyenoord", Label: "De Klassieker"},
	{Home: "Benfica", Away: "FC Porto", Label: "O Clássico"},
}

var defaultBroadcastLeagues = []string{
	"Premier League", "La Liga", "Serie A", "Bundesliga", "Ligue 1", "UEFA Champions League",
}

var defaultMarqueeStadiums = []string{
	"Camp Nou", "Santiago Bernabéu", "Old Trafford", "Emirates Stadium",
	"Allianz Arena", "San Siro", "Anfield", "Etihad Stadium",
}

var defaultMajorLeagues = []string{
	"Premier League", "UEFA Champions League", "La Liga", "Serie A", "Bundesliga", "Ligue 1",
}

func DefaultTables() *Tables {
	t := &Tables{
		competitionPoints:        make(map[string]int, len(defaultCompetitionPoints)),
		defaultCompetitionPoints: 10,
		eitherBigClubBonus:       15,
		bothBigClubBonus:         10,
		liveBonus:                20,
		timedBonus:               5,
		stageBonus:               make(map[string]int, len(defaultStageBonus)),
	}
	for name, points := range defaultCompetitionPoints {
		t.competitionPoints[name] = points
	}
	for stage, bonus := range defaultStageBonus {
		t.stageBonus[stage] = bonus
	}
	t.bigClubs = toSet(defaultBigClubs)
	t.rivalries = buildRivalries(defaultRivalries)
	t.broadcastLeagues = toSet(defaultBroadcastLeagues)
	t.marqueeStadiums = append([]string(nil), defaultMarqueeStadiums...)
	t.majorLeagues = toSet(defaultMajorLeagues)
	return t
}

// LoadTables reads a YAML override file on top of the defaults. An empty path
// returns the defaults.
func LoadTables(path string) (*Tables, error) {
	tables := DefaultTables()
	path = strings.TrimSpace(path)
	if path == "" {
		return tables, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scoring tables %s: %w", path, err)
	}

	var file TablesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode scoring tables %s: %w", path, err)
	}
	if err := tables.apply(file); err != nil {
		return nil, fmt.Errorf("apply scoring tables %s: %w", path, err)
	}
	return tables, nil
}

func (t *Tables) apply(file TablesFile) error {
	if len(file.CompetitionPoints) > 0 {
		t.competitionPoints = make(map[string]int, len(file.CompetitionPoints))
		for name, points := range file.CompetitionPoints {
			if points < 0 {
				return fmt.Errorf("competition %q has negative points", name)
			}
			t.competitionPoints[strings.TrimSpace(name)] = points
		}
	}
	if file.DefaultCompetitionPoints != nil {
		if *file.DefaultCompetitionPoints < 0 {
			return fmt.Errorf("default competition points must be >= 0")
		}
		t.defaultCompetitionPoints = *file.DefaultCompetitionPoints
	}
	if len(file.BigClubs) > 0 {
		t.bigClubs = toSet(file.BigClubs)
	}
	if len(file.StageBonus) > 0 {
		t.stageBonus = make(map[string]int, len(file.StageBonus))
		for stage, bonus := range file.StageBonus {
			if bonus < 0 {
				return fmt.Errorf("stage %q has negative bonus", stage)
			}
			t.stageBonus[strings.ToUpper(strings.TrimSpace(stage))] = bonus
		}
	}
	if len(file.Rivalries) > 0 {
		t.rivalries = buildRivalries(file.Rivalries)
	}
	if len(file.BroadcastLeagues) > 0 {
		t.broadcastLeagues = toSet(file.BroadcastLeagues)
	}
	if len(file.MarqueeStadiums) > 0 {
		t.marqueeStadiums = append([]string(nil), file.MarqueeStadiums...)
	}
	if len(file.MajorLeagues) > 0 {
		t.majorLeagues = toSet(file.MajorLeagues)
	}
	return nil
}

func (t *Tables) CompetitionPoints(name string) int {
	if points, ok := t.competitionPoints[strings.TrimSpace(name)]; ok {
		return points
	}
	return t.defaultCompetitionPoints
}

func (t *Tables) IsBigClub(name string) bool {
	_, ok := t.bigClubs[strings.TrimSpace(name)]
	return ok
}

func (t *Tables) StageBonus(stage string) int {
	return t.stageBonus[strings.ToUpper(strings.TrimSpace(stage))]
}

// Rivalry looks up the unordered pair; argument order does not matter.
func (t *Tables) Rivalry(a, b string) (string, bool) {
	label, ok := t.rivalries[pairKey(a, b)]
	return label, ok
}

func (t *Tables) IsBroadcastLeague(name string) bool {
	_, ok := t.broadcastLeagues[strings.TrimSpace(name)]
	return ok
}

func (t *Tables) IsMajorLeague(name string) bool {
	_, ok := t.majorLeagues[strings.TrimSpace(name)]
	return ok
}

func (t *Tables) IsMarqueeStadium(venue string) bool {
	venue = strings.ToLower(strings.TrimSpace(venue))
	if venue == "" {
		return false
	}
	for _, stadium := range t.marqueeStadiums {
		if strings.Contains(venue, strings.ToLower(stadium)) {
			return true
		}
	}
	return false
}

func buildRivalries(items []Rivalry) map[string]string {
	out := make(map[string]string, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Home) == "" || strings.TrimSpace(item.Away) == "" {
			continue
		}
		out[pairKey(item.Home, item.Away)] = strings.TrimSpace(item.Label)
	}
	return out
}

func pairKey(a, b string) string {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if b < a {
		a, b = b, a
	}
	return a + "\x00" + b
}

func toSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out[item] = struct{}{}
	}
	return out
}
