package deck

import (
	"testing"

	"github.com/deckforge/deckforge/internal/cards"
)

func upgradeFixture() (*CommanderPlan, *ProfileTargets, *DeckList, map[string]*cards.Card) {
	plan := BuildPlan(testCommander("Stonehide Colossus", "Legendary Creature — Giant", "", 6, "R", "G"), nil)
	targets := ResolveTargets(plan, Options{Archetype: ArchetypeBalanced, Power: PowerUpgraded})

	// A deck with its synergy slots mostly staffed but zero removal.
	bear := testCard("Gray Bear", "Creature — Bear", "", 2, "G")
	_, cardMap := testPool(bear)
	list := &DeckList{Main: []DeckEntry{{Name: bear.Name, Role: RoleSynergy}}}
	return plan, targets, list, cardMap
}

func TestRankUpgradeSuggestionsOrdersByGap(t *testing.T) {
	plan, targets, list, cardMap := upgradeFixture()

	removal := testCard("Lava Dart", "Instant", "Destroy target creature.", 2, "R")
	filler := testCard("Hill Giant", "Creature — Giant", "", 4, "R")
	candidates := []*cards.Card{filler, removal}

	got := RankUpgradeSuggestions(list, cardMap, plan, targets, candidates, nil, 0)
	if len(got) != 2 {
		t.Fatalf("suggestions = %d, want 2", len(got))
	}
	if got[0].Name != "Lava Dart" {
		t.Errorf("top suggestion = %s, want the removal gap filled first", got[0].Name)
	}
	if got[0].ImpactScore <= got[1].ImpactScore {
		t.Errorf("impact order %v <= %v, want strictly descending", got[0].ImpactScore, got[1].ImpactScore)
	}
	if got[0].Role != RoleRemoval {
		t.Errorf("top suggestion role = %s, want %s", got[0].Role, RoleRemoval)
	}
}

func TestRankUpgradeSuggestionsSkips(t *testing.T) {
	plan, targets, list, cardMap := upgradeFixture()

	inDeck := testCard("Gray Bear", "Creature — Bear", "", 2, "G")
	owned := testCard("Owned Bolt", "Instant", "Destroy target creature.", 1, "R")
	offColor := testCard("Tide Counter", "Instant", "Counter target spell.", 2, "U")
	land := testCard("Wild Ridge", "Land", "{T}: Add {R} or {G}.", 0)
	keeper := testCard("Lava Dart", "Instant", "Destroy target creature.", 2, "R")

	candidates := []*cards.Card{inDeck, owned, offColor, land, keeper}
	got := RankUpgradeSuggestions(list, cardMap, plan, targets, candidates,
		map[string]bool{"owned bolt": true}, 0)

	if len(got) != 1 || got[0].Name != "Lava Dart" {
		t.Fatalf("suggestions = %v, want only Lava Dart", suggestionNames(got))
	}
}

func TestRankUpgradeSuggestionsLegality(t *testing.T) {
	plan, targets, list, cardMap := upgradeFixture()
	banned := testCard("Primeval Titan", "Creature — Giant",
		"Trample. Whenever this creature enters or attacks, you may search your library for up to two land cards.", 6, "G")

	list.LegalityEnforced = true
	got := RankUpgradeSuggestions(list, cardMap, plan, targets, []*cards.Card{banned}, nil, 0)
	if len(got) != 0 {
		t.Errorf("suggestions = %v, want banned card skipped under enforcement", suggestionNames(got))
	}

	list.LegalityEnforced = false
	got = RankUpgradeSuggestions(list, cardMap, plan, targets, []*cards.Card{banned}, nil, 0)
	if len(got) != 1 {
		t.Errorf("suggestions = %v, want banned card allowed without enforcement", suggestionNames(got))
	}
}

func TestRankUpgradeSuggestionsLimitAndTiebreak(t *testing.T) {
	plan, targets, list, cardMap := upgradeFixture()

	// Identical cards under different names tie on impact; names break the tie.
	a := testCard("Arc Bolt", "Instant", "Destroy target creature.", 2, "R")
	b := testCard("Zap Bolt", "Instant", "Destroy target creature.", 2, "R")
	got := RankUpgradeSuggestions(list, cardMap, plan, targets, []*cards.Card{b, a}, nil, 0)
	if len(got) != 2 || got[0].Name != "Arc Bolt" {
		t.Errorf("tied suggestions = %v, want name-ascending order", suggestionNames(got))
	}

	got = RankUpgradeSuggestions(list, cardMap, plan, targets, []*cards.Card{b, a}, nil, 1)
	if len(got) != 1 {
		t.Errorf("limited suggestions = %d, want 1", len(got))
	}
}

func TestUpgradeImpactPackageGap(t *testing.T) {
	// A spellslinger deck short of its cheap-spell package rewards cheap
	// instants beyond their role value.
	plan := BuildPlan(kessCommander(), nil)
	targets := ResolveTargets(plan, Options{Archetype: ArchetypeBalanced, Power: PowerUpgraded})

	cheap := testCard("Quick Jab", "Instant", "Counter target spell.", 1, "U")
	role := AssignRole(cheap)

	withGap := upgradeImpact(cheap, role, plan, targets,
		map[RoleFamily]int{}, map[PackageID]int{}, 0)
	filled := map[PackageID]int{}
	for pkg, min := range plan.PackageMinimums {
		filled[pkg] = min
	}
	withoutGap := upgradeImpact(cheap, role, plan, targets,
		map[RoleFamily]int{}, filled, 0)

	if withGap <= withoutGap {
		t.Errorf("impact with package gap %v <= without %v, want package deficit rewarded", withGap, withoutGap)
	}
}

func suggestionNames(s []UpgradeSuggestion) []string {
	names := make([]string, len(s))
	for i, sug := range s {
		names[i] = sug.Name
	}
	return names
}
