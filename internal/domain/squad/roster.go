package squad

import (
	"fmt"
	"sort"
	"time"
)

const (
	UnknownTimeAtClub   = "Unknown"
	rosterUnknownGroup  = "Unknown"
	missingShirtOrdinal = 999
)

var rosterOrder = []string{"Goalkeeper", "Defender", "Midfielder", "Attacker", rosterUnknownGroup}

type RosterPlayer struct {
	Member
	TimeAtClub string
}

type RosterGroup struct {
	Position string
	Players  []RosterPlayer
}

type Roster struct {
	Players    []RosterPlayer
	ByPosition []RosterGroup
	Total      int
}

// BuildRoster lists every squad member with age and time at club, grouped
// by position and ordered by shirt number.
func BuildRoster(players []Player, now time.Time) Roster {
	members := NewMembers(players, now)
	out := Roster{
		Players: make([]RosterPlayer, 0, len(members)),
		Total:   len(members),
	}

	grouped := make(map[string][]RosterPlayer, len(rosterOrder))
	for _, m := range members {
		p := RosterPlayer{Member: m, TimeAtClub: TimeAtClub(m.ContractStart, now)}
		out.Players = append(out.Players, p)
		grouped[rosterPosition(m.Group)] = append(grouped[rosterPosition(m.Group)], p)
	}

	for _, position := range rosterOrder {
		items := grouped[position]
		if len(items) == 0 {
			continue
		}
		sort.SliceStable(items, func(i, j int) bool {
			return shirtOrdinal(items[i].ShirtNumber) < shirtOrdinal(items[j].ShirtNumber)
		})
		out.ByPosition = append(out.ByPosition, RosterGroup{Position: position, Players: items})
	}
	return out
}

// TimeAtClub renders the span since contractStart as "Xy Ym" or "Ym".
func TimeAtClub(contractStart string, now time.Time) string {
	start, ok := parseDate(contractStart)
	if !ok || start.After(now) {
		return UnknownTimeAtClub
	}
	months := (now.Year()-start.Year())*12 + int(now.Month()) - int(start.Month())
	if now.Day() < start.Day() {
		months--
	}
	if months < 0 {
		months = 0
	}
	if years := months / 12; years > 0 {
		return fmt.Sprintf("%dy %dm", years, months%12)
	}
	return fmt.Sprintf("%dm", months)
}

func rosterPosition(g Group) string {
	if g == GroupOther {
		return rosterUnknownGroup
	}
	return string(g)
}

func shirtOrdinal(n *int) int {
	if n == nil {
		return missingShirtOrdinal
	}
	return *n
}
