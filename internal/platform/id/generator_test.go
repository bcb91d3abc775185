package id

import (
	"strings"
	"testing"
)

func TestRandomGenerator_NewID(t *testing.T) {
	t.Parallel()

	g := NewRandomGenerator(0)
	first, err := g.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	second, err := g.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if len(first) != 2*defaultSize || first == second {
		t.Fatalf("unexpected ids %q %q", first, second)
	}

	if got, _ := NewRandomGenerator(16).NewID(); len(got) != 32 {
		t.Fatalf("expected 32 hex chars, got %q", got)
	}
}

func TestAccept(t *testing.T) {
	t.Parallel()

	accepted := []string{"abc123", "req-2025.10.04_01", strings.Repeat("a", 64)}
	for _, in := range accepted {
		if !Accept(in) {
			t.Fatalf("expected %q to be accepted", in)
		}
	}

	rejected := []string{"", "has space", "line\nbreak", "emoji😀", strings.Repeat("a", 65)}
	for _, in := range rejected {
		if Accept(in) {
			t.Fatalf("expected %q to be rejected", in)
		}
	}
}
