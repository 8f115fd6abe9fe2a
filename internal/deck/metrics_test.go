package deck

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

func metricsFixture() (*CommanderPlan, *ProfileTargets) {
	plan := BuildPlan(testCommander("Stonehide Colossus", "Legendary Creature — Giant", "", 6, "R", "G"), nil)
	targets := ResolveTargets(plan, Options{Archetype: ArchetypeBalanced, Power: PowerUpgraded})
	return plan, targets
}

func TestCurveMetric(t *testing.T) {
	_, targets := metricsFixture() // target average 2.8

	onTarget := &DeckList{Main: []DeckEntry{{CMC: 2.8}, {CMC: 2.8}}}
	if got := curveMetric(onTarget, targets); math.Abs(got-1) > 1e-9 {
		t.Errorf("on-target curve = %v, want 1", got)
	}

	drifted := &DeckList{Main: []DeckEntry{{CMC: 3.8}}}
	if got := curveMetric(drifted, targets); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("one-point drift = %v, want 0.5", got)
	}

	far := &DeckList{Main: []DeckEntry{{CMC: 6.8}}}
	if got := curveMetric(far, targets); got != 0 {
		t.Errorf("extreme drift = %v, want 0", got)
	}

	if got := curveMetric(&DeckList{}, targets); got != 0 {
		t.Errorf("empty deck = %v, want 0", got)
	}
}

func TestRoleRatioMetric(t *testing.T) {
	_, targets := metricsFixture()

	var full []DeckEntry
	fill := func(role Role, n int) {
		for i := 0; i < n; i++ {
			full = append(full, DeckEntry{Name: fmt.Sprintf("%s %d", role, i), Role: role})
		}
	}
	fill(RoleRampRock, targets.Ramp)
	fill(RoleDrawEngine, targets.Draw)
	fill(RoleRemoval, targets.Removal)
	fill(RoleSweeper, targets.Sweeper)
	fill(RoleInteraction, targets.Interaction)
	fill(RoleFinisher, targets.Finisher)

	if got := roleRatioMetric(&DeckList{Main: full}, targets); math.Abs(got-1) > 1e-9 {
		t.Errorf("fully staffed deck = %v, want 1", got)
	}

	if got := roleRatioMetric(&DeckList{}, targets); got != 0 {
		t.Errorf("empty deck = %v, want 0", got)
	}

	// Oversaturating one family does not push the metric past 1.
	fill(RoleRampRock, 20)
	if got := roleRatioMetric(&DeckList{Main: full}, targets); got > 1+1e-9 {
		t.Errorf("oversaturated deck = %v, want capped at 1", got)
	}
}

func TestSynergyDensityMetric(t *testing.T) {
	t.Run("themed plan counts serving cards", func(t *testing.T) {
		plan := BuildPlan(kessCommander(), nil)
		onTheme := testCard("Arcane Apprentice", "Creature — Elemental", "Prowess.", 2, "U")
		offTheme := testCard("Gray Bear", "Creature — Bear", "", 2, "G")
		_, cardMap := testPool(onTheme, offTheme)

		list := &DeckList{Main: []DeckEntry{
			{Name: onTheme.Name}, {Name: offTheme.Name},
		}}
		if got := synergyDensityMetric(list, cardMap, plan); math.Abs(got-0.5) > 1e-9 {
			t.Errorf("density = %v, want 0.5", got)
		}
	})

	t.Run("themeless plan falls back to creature share", func(t *testing.T) {
		plan := &CommanderPlan{CommanderName: "Blank"}
		creature := testCard("Gray Bear", "Creature — Bear", "", 2, "G")
		rock := testCard("Plain Rock", "Artifact", "{T}: Add {C}.", 2)
		_, cardMap := testPool(creature, rock)

		list := &DeckList{Main: []DeckEntry{
			{Name: creature.Name}, {Name: rock.Name},
		}}
		if got := synergyDensityMetric(list, cardMap, plan); math.Abs(got-0.5) > 1e-9 {
			t.Errorf("creature share = %v, want 0.5", got)
		}
	})
}

func TestManaStabilityMetric(t *testing.T) {
	_, targets := metricsFixture()

	list := &DeckList{
		Lands: []DeckEntry{{Name: "Forest", Quantity: targets.LandsMin, Role: RoleLand}},
	}
	for i := 0; i < targets.Ramp; i++ {
		list.Main = append(list.Main, DeckEntry{Name: fmt.Sprintf("Rock %d", i), Role: RoleRampRock})
	}
	if got := manaStabilityMetric(list, targets); math.Abs(got-1) > 1e-9 {
		t.Errorf("full stability = %v, want 1", got)
	}

	halfLands := &DeckList{
		Lands: []DeckEntry{{Name: "Forest", Quantity: targets.LandsMin / 2, Role: RoleLand}},
	}
	got := manaStabilityMetric(halfLands, targets)
	if got >= 0.5 {
		t.Errorf("half lands, no ramp = %v, want below 0.5", got)
	}
}

func TestInteractionMetric(t *testing.T) {
	_, targets := metricsFixture() // minimum 10

	var main []DeckEntry
	for i := 0; i < 5; i++ {
		main = append(main, DeckEntry{Name: fmt.Sprintf("Removal %d", i), Role: RoleRemoval})
	}
	if got := interactionMetric(&DeckList{Main: main}, targets); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("half interaction = %v, want 0.5", got)
	}

	for i := 0; i < 10; i++ {
		main = append(main, DeckEntry{Name: fmt.Sprintf("Counter %d", i), Role: RoleInteraction})
	}
	if got := interactionMetric(&DeckList{Main: main}, targets); math.Abs(got-1) > 1e-9 {
		t.Errorf("surplus interaction = %v, want capped at 1", got)
	}
}

func TestComputeDeckMetricsOnBuiltDeck(t *testing.T) {
	commander := kaaliaCommander()
	pool := buildablePool([]string{"W", "B", "R"})
	_, cardMap := testPool(pool...)

	list := buildDeck(t, commander, pool, Options{Seed: 7})
	plan := BuildPlan(commander, nil)
	targets := ResolveTargets(plan, Options{Archetype: ArchetypeBalanced, Power: PowerUpgraded})

	m := ComputeDeckMetrics(list, cardMap, plan, targets)
	axes := map[string]float64{
		"curve":       m.CurveScore,
		"roleRatio":   m.RoleRatioScore,
		"synergy":     m.SynergyDensity,
		"stability":   m.ManaStability,
		"interaction": m.InteractionScore,
		"composite":   m.Composite,
	}
	for name, v := range axes {
		if v < 0 || v > 1 {
			t.Errorf("%s = %v, want within [0, 1]", name, v)
		}
	}
	if m.RoleRatioScore < 0.7 {
		t.Errorf("RoleRatioScore = %v, want >= 0.7 with a fully stocked pool", m.RoleRatioScore)
	}
	if m.ManaStability < 0.9 {
		t.Errorf("ManaStability = %v, want >= 0.9 with full land and ramp targets", m.ManaStability)
	}

	wantComposite := weightCurve*m.CurveScore + weightRoleRatio*m.RoleRatioScore +
		weightSynergy*m.SynergyDensity + weightStability*m.ManaStability +
		weightInteraction*m.InteractionScore
	if math.Abs(m.Composite-wantComposite) > 1e-9 {
		t.Errorf("Composite = %v, want weighted sum %v", m.Composite, wantComposite)
	}
	if !strings.Contains(list.Stats.StrategyExplanation, "Kaalia") {
		t.Errorf("explanation %q does not name the commander", list.Stats.StrategyExplanation)
	}
}
