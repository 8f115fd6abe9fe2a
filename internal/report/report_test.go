package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/deckforge/deckforge/internal/deck"
)

func sampleList() *deck.DeckList {
	return &deck.DeckList{
		Commander: deck.CommanderChoice{Name: "Kess, Dissident Mage", ColorIdentity: []string{"U", "B", "R"}},
		Main: []deck.DeckEntry{
			{Name: "Sol Ring", Quantity: 1, Role: deck.RoleRampRock, CMC: 1},
			{Name: "Counterspell", Quantity: 1, Role: deck.RoleInteraction, CMC: 2},
			{Name: "Torment of Hailfire", Quantity: 1, Role: deck.RoleFinisher, CMC: 2},
		},
		Lands: []deck.DeckEntry{
			{Name: "Island", Quantity: 12, Role: deck.RoleLand},
		},
		Stats: deck.DeckStats{
			TotalNonlands: 3,
			TotalLands:    12,
			ByRoleFamily: map[deck.RoleFamily]int{
				deck.FamilyRamp:        1,
				deck.FamilyInteraction: 1,
				deck.FamilyFinisher:    1,
				deck.FamilyLand:        12,
			},
			StrategyExplanation: "Kess wants a mid, medium-tempo game plan.",
		},
	}
}

func TestWriteHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	if err := WriteHTML(sampleList(), path); err != nil {
		t.Fatalf("WriteHTML() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	html := string(data)

	for _, want := range []string{"Mana Curve", "Role Distribution", "Kess, Dissident Mage"} {
		if !strings.Contains(html, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestWriteHTMLBadPath(t *testing.T) {
	err := WriteHTML(sampleList(), filepath.Join(t.TempDir(), "missing", "report.html"))
	if err == nil {
		t.Fatal("WriteHTML() error = nil, want create failure")
	}
}
