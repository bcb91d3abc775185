package squad

import (
	"math"
	"sort"
	"strings"
	"time"
)

type Group string

const (
	GroupGoalkeeper Group = "Goalkeeper"
	GroupDefender   Group = "Defender"
	GroupMidfielder Group = "Midfielder"
	GroupAttacker   Group = "Attacker"
	GroupOther      Group = "Other"
)

const (
	youngTalentMaxAge    = 23
	experiencedMinAge    = 30
	highlightLimit       = 8
	summaryNationalities = 10
	minOutfieldPlayers   = 10
	unknownNationality   = "Unknown"
	UnknownFormation     = "Unknown"
)

var groupOrder = []Group{GroupGoalkeeper, GroupDefender, GroupMidfielder, GroupAttacker, GroupOther}

var groupLabels = map[Group]string{
	GroupGoalkeeper: "Goalkeepers",
	GroupDefender:   "Defenders",
	GroupMidfielder: "Midfielders",
	GroupAttacker:   "Attackers",
	GroupOther:      "Other",
}

// Player is one raw squad entry as listed by the provider.
type Player struct {
	ID            int64
	Name          string
	Position      string
	Nationality   string
	DateOfBirth   string
	ShirtNumber   *int
	MarketValue   *int64
	ContractStart string
	ContractUntil string
}

type Member struct {
	Player
	Group Group
	Age   *int
}

type PositionGroup struct {
	Group   Group
	Label   string
	Players []Member
}

type NationalityCount struct {
	Country    string
	Count      int
	Percentage float64
}

type Summary struct {
	TotalPlayers       int
	AverageAge         *float64
	Youngest           *int
	Oldest             *int
	TotalNationalities int
	Nationalities      []string
}

type AgeDistribution struct {
	Under20   int
	Age20To24 int
	Age25To29 int
	Age30Plus int
}

type Analytics struct {
	TopNationality       NationalityCount
	AgeDistribution      AgeDistribution
	PositionDistribution map[string]int
	SquadDepth           map[Group]int
}

type Formation struct {
	Formation   string
	Goalkeepers int
	Defenders   int
	Midfielders int
	Attackers   int
}

type Analysis struct {
	ByPosition    []PositionGroup
	YoungTalents  []Member
	Experienced   []Member
	Summary       Summary
	Nationalities []NationalityCount
	Analytics     Analytics
	Formation     Formation
}

// ClassifyPosition maps a free-text provider position onto a group. First
// match wins.
func ClassifyPosition(position string) Group {
	p := strings.ToLower(position)
	switch {
	case strings.Contains(p, "goalkeeper"):
		return GroupGoalkeeper
	case strings.Contains(p, "back"), strings.Contains(p, "defence"), strings.Contains(p, "defender"):
		return GroupDefender
	case strings.Contains(p, "midfield"):
		return GroupMidfielder
	case strings.Contains(p, "forward"), strings.Contains(p, "winger"), strings.Contains(p, "attacker"), strings.Contains(p, "offence"):
		return GroupAttacker
	default:
		return GroupOther
	}
}

// AgeOn returns the age in whole years at now, or nil when the birth date is
// missing or unparsable.
func AgeOn(dateOfBirth string, now time.Time) *int {
	dob, ok := parseDate(dateOfBirth)
	if !ok {
		return nil
	}
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	if age < 0 {
		return nil
	}
	return &age
}

func NewMembers(players []Player, now time.Time) []Member {
	out := make([]Member, 0, len(players))
	for _, p := range players {
		out = append(out, Member{
			Player: p,
			Group:  ClassifyPosition(p.Position),
			Age:    AgeOn(p.DateOfBirth, now),
		})
	}
	return out
}

// Analyze derives position, age and nationality rollups for a squad.
func Analyze(players []Player, now time.Time) Analysis {
	members := NewMembers(players, now)
	total := len(members)

	byGroup := make(map[Group][]Member, len(groupOrder))
	for _, m := range members {
		byGroup[m.Group] = append(byGroup[m.Group], m)
	}

	out := Analysis{
		ByPosition: make([]PositionGroup, 0, len(groupOrder)),
		Analytics: Analytics{
			PositionDistribution: make(map[string]int, len(groupOrder)),
			SquadDepth:           make(map[Group]int, 4),
		},
	}
	for _, g := range groupOrder {
		items := append([]Member(nil), byGroup[g]...)
		sort.SliceStable(items, func(i, j int) bool {
			return ageLess(items[i].Age, items[j].Age)
		})
		out.ByPosition = append(out.ByPosition, PositionGroup{Group: g, Label: groupLabels[g], Players: items})
		if len(items) > 0 {
			out.Analytics.PositionDistribution[groupLabels[g]] = len(items)
		}
		if g != GroupOther {
			out.Analytics.SquadDepth[g] = len(items)
		}
	}

	out.YoungTalents = pickByAge(members, func(age int) bool { return age < youngTalentMaxAge }, true)
	out.Experienced = pickByAge(members, func(age int) bool { return age >= experiencedMinAge }, false)

	out.Nationalities = nationalityBreakdown(members, total)
	out.Summary = summarize(members, out.Nationalities)
	out.Analytics.AgeDistribution = ageDistribution(members)
	if len(out.Nationalities) > 0 {
		out.Analytics.TopNationality = out.Nationalities[0]
	} else {
		out.Analytics.TopNationality = NationalityCount{Country: unknownNationality}
	}

	out.Formation = Formation{
		Goalkeepers: len(byGroup[GroupGoalkeeper]),
		Defenders:   len(byGroup[GroupDefender]),
		Midfielders: len(byGroup[GroupMidfielder]),
		Attackers:   len(byGroup[GroupAttacker]),
	}
	out.Formation.Formation = InferFormation(out.Formation.Defenders, out.Formation.Midfielders, out.Formation.Attackers)

	return out
}

// InferFormation guesses a preferred shape from outfield depth.
func InferFormation(defenders, midfielders, attackers int) string {
	if defenders+midfielders+attackers < minOutfieldPlayers {
		return UnknownFormation
	}
	switch {
	case defenders >= 4 && midfielders >= 3 && attackers >= 3:
		return "4-3-3"
	case defenders >= 4 && midfielders >= 4 && attackers >= 2:
		return "4-4-2"
	case defenders >= 3 && midfielders >= 5 && attackers >= 2:
		return "3-5-2"
	case defenders >= 5 && midfielders >= 3 && attackers >= 2:
		return "5-3-2"
	default:
		return "4-4-2"
	}
}

func pickByAge(members []Member, keep func(int) bool, ascending bool) []Member {
	out := make([]Member, 0, highlightLimit)
	for _, m := range members {
		if m.Age != nil && keep(*m.Age) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if ascending {
			return *out[i].Age < *out[j].Age
		}
		return *out[i].Age > *out[j].Age
	})
	if len(out) > highlightLimit {
		out = out[:highlightLimit]
	}
	return out
}

func nationalityBreakdown(members []Member, total int) []NationalityCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, m := range members {
		country := strings.TrimSpace(m.Nationality)
		if country == "" || strings.EqualFold(country, unknownNationality) {
			continue
		}
		if _, ok := counts[country]; !ok {
			order = append(order, country)
		}
		counts[country]++
	}

	out := make([]NationalityCount, 0, len(order))
	for _, country := range order {
		out = append(out, NationalityCount{
			Country:    country,
			Count:      counts[country],
			Percentage: percentage(counts[country], total),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

func summarize(members []Member, nationalities []NationalityCount) Summary {
	s := Summary{
		TotalPlayers:       len(members),
		TotalNationalities: len(nationalities),
	}

	sum, known := 0, 0
	for _, m := range members {
		if m.Age == nil {
			continue
		}
		age := *m.Age
		sum += age
		known++
		if s.Youngest == nil || age < *s.Youngest {
			s.Youngest = intPtr(age)
		}
		if s.Oldest == nil || age > *s.Oldest {
			s.Oldest = intPtr(age)
		}
	}
	if known > 0 {
		avg := round1(float64(sum) / float64(known))
		s.AverageAge = &avg
	}

	names := make([]string, 0, len(nationalities))
	for _, n := range nationalities {
		names = append(names, n.Country)
	}
	sort.Strings(names)
	if len(names) > summaryNationalities {
		names = names[:summaryNationalities]
	}
	s.Nationalities = names
	return s
}

func ageDistribution(members []Member) AgeDistribution {
	var d AgeDistribution
	for _, m := range members {
		if m.Age == nil {
			continue
		}
		switch age := *m.Age; {
		case age < 20:
			d.Under20++
		case age < 25:
			d.Age20To24++
		case age < 30:
			d.Age25To29++
		default:
			d.Age30Plus++
		}
	}
	return d
}

// ageLess orders known ages ascending with unknown ages last.
func ageLess(a, b *int) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return *a < *b
	}
}

func parseDate(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339, "2006-01"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(count) / float64(total) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func intPtr(v int) *int { return &v }
