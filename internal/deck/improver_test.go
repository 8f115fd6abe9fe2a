package deck

import (
	"math/rand"
	"strings"
	"testing"
)

func TestImproverSwapsTowardSynergy(t *testing.T) {
	plan := BuildPlan(kessCommander(), nil)
	targets := ResolveTargets(plan, Options{Archetype: ArchetypeBalanced, Power: PowerUpgraded})
	state := newDeckState(plan, targets)

	weak := &CandidateEntry{Card: testCard("Gray Ogre", "Creature — Ogre", "", 3, "R"), Role: RoleSynergy}
	strong := &CandidateEntry{Card: testCard("Prowess Adept", "Creature — Human Monk", "Prowess.", 3, "U"), Role: RoleSynergy}

	state.add(weak)
	main := []*CandidateEntry{weak}
	pool := []*CandidateEntry{weak, strong}

	reasons := map[string]string{"gray ogre": "synergy"}
	im := newImprover(state, pool, ArchetypeBalanced, rand.New(rand.NewSource(1)), reasons)
	swaps := im.improve(main)

	if swaps != 1 {
		t.Errorf("improve() = %d swaps, want exactly 1", swaps)
	}
	if main[0] != strong {
		t.Errorf("main[0] = %s, want the on-theme replacement", main[0].Card.Name)
	}
	if !state.used["prowess adept"] || state.used["gray ogre"] {
		t.Error("state used-set not updated by the swap")
	}
	if reasons["prowess adept"] != "local-search upgrade" {
		t.Errorf("reason = %q, want the swap recorded", reasons["prowess adept"])
	}
	if _, ok := reasons["gray ogre"]; ok {
		t.Error("removed card still carries a placement reason")
	}
}

func TestImproverNoSwapWithoutImprovement(t *testing.T) {
	plan := BuildPlan(kessCommander(), nil)
	targets := ResolveTargets(plan, Options{Archetype: ArchetypeBalanced, Power: PowerUpgraded})
	state := newDeckState(plan, targets)

	placed := &CandidateEntry{Card: testCard("Gray Ogre", "Creature — Ogre", "", 3, "R"), Role: RoleSynergy}
	equal := &CandidateEntry{Card: testCard("Hill Giant", "Creature — Giant", "", 3, "R"), Role: RoleSynergy}

	state.add(placed)
	main := []*CandidateEntry{placed}
	pool := []*CandidateEntry{placed, equal}

	im := newImprover(state, pool, ArchetypeBalanced, rand.New(rand.NewSource(1)), nil)
	if swaps := im.improve(main); swaps != 0 {
		t.Errorf("improve() = %d swaps, want 0 for an equal-value candidate", swaps)
	}
	if main[0] != placed {
		t.Errorf("main[0] = %s, want the incumbent kept", main[0].Card.Name)
	}
}

func TestImproverPreservesDeckSize(t *testing.T) {
	commander := kaaliaCommander()
	plan := BuildPlan(commander, nil)
	targets := ResolveTargets(plan, Options{Archetype: ArchetypeBalanced, Power: PowerUpgraded})

	owned, cardMap := testPool(buildablePool([]string{"W", "B", "R"})...)
	pool := Shortlist(owned, cardMap, commander, plan, nil, false)

	asm := newAssembler(pool, plan, targets, ArchetypeBalanced)
	main := asm.run()
	before := len(main)

	im := newImprover(asm.state, pool, ArchetypeBalanced, rand.New(rand.NewSource(99)), asm.reasons)
	im.improve(main)

	if len(main) != before {
		t.Fatalf("main size changed: %d -> %d", before, len(main))
	}
	seen := make(map[string]bool, len(main))
	for _, entry := range main {
		key := strings.ToLower(entry.Card.Name)
		if seen[key] {
			t.Fatalf("duplicate entry after improvement: %s", entry.Card.Name)
		}
		seen[key] = true
	}
	if asm.state.nonlands != len(main) {
		t.Errorf("state nonlands = %d, want %d", asm.state.nonlands, len(main))
	}
}

func TestImproverSeededReplay(t *testing.T) {
	commander := kaaliaCommander()
	plan := BuildPlan(commander, nil)
	targets := ResolveTargets(plan, Options{Archetype: ArchetypeBalanced, Power: PowerUpgraded})
	owned, cardMap := testPool(buildablePool([]string{"W", "B", "R"})...)

	runOnce := func() []string {
		pool := Shortlist(owned, cardMap, commander, plan, nil, false)
		asm := newAssembler(pool, plan, targets, ArchetypeBalanced)
		main := asm.run()
		newImprover(asm.state, pool, ArchetypeBalanced, rand.New(rand.NewSource(5)), asm.reasons).improve(main)
		names := make([]string, len(main))
		for i, entry := range main {
			names[i] = entry.Card.Name
		}
		return names
	}

	first, second := runOnce(), runOnce()
	if len(first) != len(second) {
		t.Fatalf("sizes differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("slot %d differs: %s vs %s", i, first[i], second[i])
		}
	}
}
