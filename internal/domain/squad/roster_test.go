package squad

import (
	"testing"
	"time"
)

func shirt(n int) *int { return &n }

func TestBuildRoster_GroupsAndShirtOrder(t *testing.T) {
	t.Parallel()

	players := []Player{
		{ID: 1, Name: "Keeper Two", Position: "Goalkeeper", ShirtNumber: shirt(13)},
		{ID: 2, Name: "Keeper One", Position: "Goalkeeper", ShirtNumber: shirt(1)},
		{ID: 3, Name: "No Shirt", Position: "Defence"},
		{ID: 4, Name: "Back", Position: "Right-Back", ShirtNumber: shirt(2)},
		{ID: 5, Name: "Mystery", Position: "Coach"},
	}

	got := BuildRoster(players, now)

	if got.Total != 5 || len(got.Players) != 5 {
		t.Fatalf("unexpected totals %d/%d", got.Total, len(got.Players))
	}
	if len(got.ByPosition) != 3 {
		t.Fatalf("expected 3 non-empty groups, got %+v", got.ByPosition)
	}
	if got.ByPosition[0].Position != "Goalkeeper" || got.ByPosition[0].Players[0].Name != "Keeper One" {
		t.Fatalf("goalkeepers not ordered by shirt: %+v", got.ByPosition[0])
	}
	defenders := got.ByPosition[1]
	if defenders.Position != "Defender" || defenders.Players[1].Name != "No Shirt" {
		t.Fatalf("missing shirt must sort last: %+v", defenders)
	}
	if got.ByPosition[2].Position != "Unknown" {
		t.Fatalf("unmapped position should land in Unknown, got %s", got.ByPosition[2].Position)
	}
}

func TestTimeAtClub(t *testing.T) {
	t.Parallel()

	ref := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	cases := map[string]string{
		"2022-01":    "3y 5m",
		"2025-01-01": "5m",
		"2025-06-20": "Unknown",
		"":           "Unknown",
		"garbage":    "Unknown",
		"2024-06-15": "1y 0m",
	}
	for start, want := range cases {
		if got := TimeAtClub(start, ref); got != want {
			t.Fatalf("TimeAtClub(%q)=%s want %s", start, got, want)
		}
	}
}
